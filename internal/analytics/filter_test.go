package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradebook/internal/models"
)

func taggedTrade(date, strategy, broker string) models.TradeRecord {
	t := longTrade(date, "100", "110", "1")
	t.Strategy = strategy
	t.Broker = broker
	return t
}

func TestApplyCategoricalSelection(t *testing.T) {
	trades := []models.TradeRecord{
		taggedTrade("2024-01-01", "breakout", "zerodha"),
		taggedTrade("2024-01-02", "reversal", "zerodha"),
		taggedTrade("2024-01-03", "breakout", "dhan"),
	}

	got := Apply(trades, FilterState{}.Select(FieldStrategy, "breakout"))
	assert.Len(t, got, 2)

	got = Apply(trades, FilterState{}.
		Select(FieldStrategy, "breakout").
		Select(FieldBroker, "dhan"))
	assert.Len(t, got, 1)
	assert.Equal(t, "2024-01-03", got[0].Date)
}

func TestApplyExactMatchNoCaseFolding(t *testing.T) {
	trades := []models.TradeRecord{taggedTrade("2024-01-01", "Breakout", "")}

	assert.Empty(t, Apply(trades, FilterState{}.Select(FieldStrategy, "breakout")))
	assert.Len(t, Apply(trades, FilterState{}.Select(FieldStrategy, "Breakout")), 1)
}

func TestApplyEmptySelectionMeansNoRestriction(t *testing.T) {
	trades := []models.TradeRecord{
		taggedTrade("2024-01-01", "breakout", ""),
		taggedTrade("2024-01-02", "reversal", ""),
	}

	got := Apply(trades, FilterState{}.Select(FieldStrategy))
	assert.Len(t, got, 2)
}

func TestApplyDateRange(t *testing.T) {
	trades := []models.TradeRecord{
		taggedTrade("2024-01-01", "", ""),
		taggedTrade("2024-01-15", "", ""),
		taggedTrade("2024-02-01", "", ""),
	}

	got := Apply(trades, FilterState{From: "2024-01-10", To: "2024-01-31"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2024-01-15", got[0].Date)

	// Inclusive bounds.
	got = Apply(trades, FilterState{From: "2024-01-01", To: "2024-02-01"})
	assert.Len(t, got, 3)
}

func TestApplyMissingDateNeverExcludedByBounds(t *testing.T) {
	undated := taggedTrade("", "breakout", "")
	garbled := taggedTrade("not-a-date", "breakout", "")
	dated := taggedTrade("2023-06-01", "breakout", "")

	got := Apply([]models.TradeRecord{undated, garbled, dated},
		FilterState{From: "2024-01-01", To: "2024-12-31"})

	assert.Len(t, got, 2)
	for _, tr := range got {
		assert.NotEqual(t, "2023-06-01", tr.Date)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	trades := []models.TradeRecord{
		taggedTrade("2024-01-01", "breakout", ""),
		taggedTrade("2024-01-02", "reversal", ""),
	}
	before := make([]models.TradeRecord, len(trades))
	copy(before, trades)

	Apply(trades, FilterState{}.Select(FieldStrategy, "breakout"))

	assert.Equal(t, before, trades)
}

func TestOptionsDiscoversDistinctValuesFirstSeenOrder(t *testing.T) {
	trades := []models.TradeRecord{
		taggedTrade("2024-01-01", "reversal", "zerodha"),
		taggedTrade("2024-01-02", "breakout", ""),
		taggedTrade("2024-01-03", "reversal", "dhan"),
	}

	options := Options(trades)

	assert.Equal(t, []string{"reversal", "breakout"}, options[FieldStrategy])
	assert.Equal(t, []string{"zerodha", "dhan"}, options[FieldBroker])
	assert.Empty(t, options[FieldConfidence])
}

func TestOptionsRunsOverUnfilteredSet(t *testing.T) {
	trades := []models.TradeRecord{
		taggedTrade("2024-01-01", "breakout", "zerodha"),
		taggedTrade("2024-01-02", "reversal", "dhan"),
	}

	// Narrowing strategy must not shrink broker choices; discovery is the
	// caller's responsibility to run on the unfiltered list.
	filtered := Apply(trades, FilterState{}.Select(FieldStrategy, "breakout"))
	assert.Len(t, filtered, 1)

	options := Options(trades)
	assert.Equal(t, []string{"zerodha", "dhan"}, options[FieldBroker])
}
