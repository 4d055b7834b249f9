// Package analytics derives dashboard KPIs from journal trade records.
//
// Every reducer in this package is pure: it never mutates its input, never
// returns an error, and produces a fully populated zero-value result for an
// empty or nil trade list. Records with missing or unparsable numeric fields
// are silently excluded from the statistics that need those fields, but still
// contribute to statistics that do not.
package analytics

import (
	"time"

	"tradebook/internal/models"
)

// ExpectancyMode selects which expectancy formula an Overview uses.
type ExpectancyMode int

const (
	// ExpectancyAvg reports expectancy as net P&L divided by trade count.
	ExpectancyAvg ExpectancyMode = iota
	// ExpectancyClassic reports win% x avgWin - loss% x avgLoss.
	ExpectancyClassic
)

// TypeConfig parameterizes the reducers per journal type. The upstream
// dashboards duplicated the reducer bodies per trade type with small
// variations; the variations live here instead.
type TypeConfig struct {
	Type models.TradeType

	// UseEntryDate selects EntryDate over Date as the primary calendar
	// field. Positional and swing journals record entry/exit dates, the
	// intraday journals record a single trade date.
	UseEntryDate bool

	// SubtractCharges deducts the per-trade charges field from P&L.
	SubtractCharges bool

	Expectancy ExpectancyMode
}

var typeConfigs = map[models.TradeType]TypeConfig{
	models.TypeOptions: {
		Type:       models.TypeOptions,
		Expectancy: ExpectancyClassic,
	},
	models.TypeEquityIntraday: {
		Type:            models.TypeEquityIntraday,
		SubtractCharges: true,
		Expectancy:      ExpectancyAvg,
	},
	models.TypeFuturesIntraday: {
		Type:            models.TypeFuturesIntraday,
		SubtractCharges: true,
		Expectancy:      ExpectancyAvg,
	},
	models.TypeOptionsPositional: {
		Type:         models.TypeOptionsPositional,
		UseEntryDate: true,
		Expectancy:   ExpectancyAvg,
	},
	models.TypeFuturesPositional: {
		Type:            models.TypeFuturesPositional,
		UseEntryDate:    true,
		SubtractCharges: true,
		Expectancy:      ExpectancyAvg,
	},
	models.TypeSwing: {
		Type:         models.TypeSwing,
		UseEntryDate: true,
		Expectancy:   ExpectancyAvg,
	},
}

// ConfigFor returns the reducer configuration for a journal type. Unknown
// types get the OPTIONS-style defaults minus the classic expectancy formula.
func ConfigFor(tt models.TradeType) TypeConfig {
	if cfg, ok := typeConfigs[tt]; ok {
		return cfg
	}
	return TypeConfig{Type: tt, Expectancy: ExpectancyAvg}
}

// tradeDate returns the configured calendar field, falling back to whichever
// date the record carries.
func (c TypeConfig) tradeDate(t *models.TradeRecord) string {
	if c.UseEntryDate {
		if t.EntryDate != "" {
			return t.EntryDate
		}
		return t.Date
	}
	return t.DateValue()
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02-01-2006",
}

// parseDate parses a journal date string. The second result is false when the
// string is empty or matches no known layout.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
