// Package models defines the core journal entities.
package models

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// TradeType identifies which journal a trade belongs to.
type TradeType string

const (
	TypeOptions           TradeType = "OPTIONS"
	TypeEquityIntraday    TradeType = "EQUITY_INTRADAY"
	TypeFuturesIntraday   TradeType = "FUTURES_INTRADAY"
	TypeOptionsPositional TradeType = "OPTIONS_POSITIONAL"
	TypeFuturesPositional TradeType = "FUTURES_POSITIONAL"
	TypeSwing             TradeType = "SWING"
)

// TradeTypes lists every journal type in display order.
var TradeTypes = []TradeType{
	TypeOptions,
	TypeEquityIntraday,
	TypeFuturesIntraday,
	TypeOptionsPositional,
	TypeFuturesPositional,
	TypeSwing,
}

// Valid reports whether t is a known trade type.
func (t TradeType) Valid() bool {
	for _, known := range TradeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Position represents the trade direction.
type Position string

const (
	Long  Position = "LONG"
	Short Position = "SHORT"
)

// OptionType distinguishes calls from puts.
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// TradeRecord is a single journal entry.
//
// Numeric inputs (Entry, ExitPrice, SL, Target, Qty, Charges) are carried as
// the raw strings the entry form submitted. Coercion happens only inside the
// analytics normalizer, so a record with an unparsable price still round-trips
// through storage unchanged and is simply excluded from the statistics that
// need the missing field.
type TradeRecord struct {
	ID        string    `csv:"id"`
	TradeType TradeType `csv:"trade_type"`

	// Intraday types populate Date; positional/swing types populate
	// EntryDate and ExitDate.
	Date      string `csv:"date"`
	EntryDate string `csv:"entry_date"`
	ExitDate  string `csv:"exit_date"`

	Entry     string `csv:"entry"`
	ExitPrice string `csv:"exit_price"`
	SL        string `csv:"sl"`
	Target    string `csv:"target"`
	Qty       string `csv:"qty"`
	Charges   string `csv:"charges"`

	Position Position `csv:"position"`

	Strategy   string     `csv:"strategy"`
	Reason     string     `csv:"reason"`
	ExitReason string     `csv:"exit_reason"`
	Confidence string     `csv:"confidence"`
	Broker     string     `csv:"broker"`
	Timeframe  string     `csv:"timeframe"`
	TimeRange  string     `csv:"time_range"`
	Underlying string     `csv:"underlying"`
	Symbol     string     `csv:"symbol"`
	Expiry     string     `csv:"expiry"`
	Strike     string     `csv:"strike"`
	OptionType OptionType `csv:"option_type"`

	Remarks    string `csv:"remarks"`
	ChartImage string `csv:"-"` // base64 blob, never exported

	CreatedAt time.Time `csv:"-"`
	UpdatedAt time.Time `csv:"-"`
}

// DateValue returns the first populated date field, preferring Date.
func (t *TradeRecord) DateValue() string {
	if t.Date != "" {
		return t.Date
	}
	return t.EntryDate
}

// SymbolValue returns the underlying or, for equity/swing records, the symbol.
func (t *TradeRecord) SymbolValue() string {
	if t.Underlying != "" {
		return t.Underlying
	}
	return t.Symbol
}

// NewTradeID returns a new ULID suitable for a TradeRecord.
func NewTradeID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
