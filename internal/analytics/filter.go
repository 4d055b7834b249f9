package analytics

import (
	"tradebook/internal/models"
)

// Filter field names. These key both FilterState selections and the
// option-list discovery result.
const (
	FieldStrategy   = "strategy"
	FieldOptionType = "optionType"
	FieldPosition   = "position"
	FieldConfidence = "confidence"
	FieldReason     = "reason"
	FieldExitReason = "exitReason"
	FieldBroker     = "broker"
	FieldTimeframe  = "timeframe"
	FieldTimeRange  = "timeRange"
	FieldUnderlying = "underlying"
	FieldExpiry     = "expiry"
	FieldStrike     = "strike"
)

// FilterFields lists every categorical filter field in display order.
var FilterFields = []string{
	FieldStrategy,
	FieldOptionType,
	FieldPosition,
	FieldConfidence,
	FieldReason,
	FieldExitReason,
	FieldBroker,
	FieldTimeframe,
	FieldTimeRange,
	FieldUnderlying,
	FieldExpiry,
	FieldStrike,
}

var fieldValue = map[string]func(*models.TradeRecord) string{
	FieldStrategy:   func(t *models.TradeRecord) string { return t.Strategy },
	FieldOptionType: func(t *models.TradeRecord) string { return string(t.OptionType) },
	FieldPosition:   func(t *models.TradeRecord) string { return string(t.Position) },
	FieldConfidence: func(t *models.TradeRecord) string { return t.Confidence },
	FieldReason:     func(t *models.TradeRecord) string { return t.Reason },
	FieldExitReason: func(t *models.TradeRecord) string { return t.ExitReason },
	FieldBroker:     func(t *models.TradeRecord) string { return t.Broker },
	FieldTimeframe:  func(t *models.TradeRecord) string { return t.Timeframe },
	FieldTimeRange:  func(t *models.TradeRecord) string { return t.TimeRange },
	FieldUnderlying: func(t *models.TradeRecord) string { return t.SymbolValue() },
	FieldExpiry:     func(t *models.TradeRecord) string { return t.Expiry },
	FieldStrike:     func(t *models.TradeRecord) string { return t.Strike },
}

// FilterState is a date range plus multi-select constraints keyed by field
// name. An empty selection slice means no restriction on that field.
type FilterState struct {
	From string
	To   string

	Selections map[string][]string
}

// Select returns a copy of f with the given field constrained to values.
func (f FilterState) Select(field string, values ...string) FilterState {
	selections := make(map[string][]string, len(f.Selections)+1)
	for k, v := range f.Selections {
		selections[k] = v
	}
	selections[field] = values
	f.Selections = selections
	return f
}

// Apply returns the trades matching the filter state. Matching is exact
// string equality with no case normalization. A trade whose date is missing
// or unparsable is never excluded by the date bounds; the source dashboards
// disagreed with each other here and this is the rule we standardize on.
func Apply(trades []models.TradeRecord, f FilterState) []models.TradeRecord {
	from, hasFrom := parseDate(f.From)
	to, hasTo := parseDate(f.To)

	out := make([]models.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if hasFrom || hasTo {
			if when, ok := parseDate(t.DateValue()); ok {
				if hasFrom && when.Before(from) {
					continue
				}
				if hasTo && when.After(to) {
					continue
				}
			}
		}

		match := true
		for field, selected := range f.Selections {
			if len(selected) == 0 {
				continue
			}
			get, ok := fieldValue[field]
			if !ok {
				continue
			}
			if !contains(selected, get(&t)) {
				match = false
				break
			}
		}
		if match {
			out = append(out, t)
		}
	}
	return out
}

// Options discovers the selectable values per filter field: the distinct
// non-empty values across the given (unfiltered) trade set, in first-seen
// order. Discovery always runs over the unfiltered set so narrowing one
// field never shrinks another field's choices.
func Options(trades []models.TradeRecord) map[string][]string {
	out := make(map[string][]string, len(FilterFields))
	for _, field := range FilterFields {
		get := fieldValue[field]
		seen := map[string]bool{}
		var values []string
		for _, t := range trades {
			v := get(&t)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		out[field] = values
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
