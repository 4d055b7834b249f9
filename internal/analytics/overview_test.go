package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/models"
)

func optionsConfig() TypeConfig {
	return ConfigFor(models.TypeOptions)
}

func longTrade(date, entry, exit, qty string) models.TradeRecord {
	return models.TradeRecord{
		TradeType: models.TypeOptions,
		Date:      date,
		Entry:     entry,
		ExitPrice: exit,
		Qty:       qty,
		Position:  models.Long,
	}
}

func shortTrade(date, entry, exit, qty string) models.TradeRecord {
	t := longTrade(date, entry, exit, qty)
	t.Position = models.Short
	return t
}

func TestOverviewBalancedWinAndLoss(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "110", "1"),
		longTrade("2024-01-02", "100", "90", "1"),
	}

	v := optionsConfig().Overview(trades)

	assert.Equal(t, 2, v.TotalTrades)
	assert.Equal(t, 0.0, v.NetPNL)
	assert.Equal(t, "50.0", v.WinRate)
	assert.Equal(t, "50.0", v.LossRate)
	assert.Equal(t, "1.00", v.ProfitFactor)
	assert.Equal(t, 0.0, v.AvgPNL)
}

func TestOverviewBreakevenTradeCountsButDecidesNothing(t *testing.T) {
	trades := []models.TradeRecord{
		shortTrade("2024-01-01", "100", "100", "1"),
	}
	trades[0].SL = "90"

	v := optionsConfig().Overview(trades)

	assert.Equal(t, 1, v.TotalTrades)
	assert.Equal(t, 0.0, v.NetPNL)
	assert.Equal(t, "0.0", v.WinRate)
	assert.Equal(t, "0.0", v.LossRate)
	// No losing trades, so the sentinel.
	assert.Equal(t, InfiniteProfitFactor, v.ProfitFactor)
}

func TestOverviewEmptyInput(t *testing.T) {
	v := optionsConfig().Overview(nil)

	assert.Equal(t, 0, v.TotalTrades)
	assert.Equal(t, 0.0, v.NetPNL)
	assert.Equal(t, "0", v.WinRate)
	assert.Equal(t, "0", v.LossRate)
	assert.Equal(t, "0.00", v.ProfitFactor)
	assert.Equal(t, "0", v.MaxDDPercent)
}

func TestOverviewProfitFactorSentinel(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "600", "1"),
	}

	v := optionsConfig().Overview(trades)

	require.Equal(t, 500.0, v.NetPNL)
	assert.Equal(t, InfiniteProfitFactor, v.ProfitFactor)
}

func TestOverviewSkipsUnparsablePrices(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "110", "1"),
		longTrade("2024-01-02", "abc", "110", "1"),
		longTrade("2024-01-03", "100", "", "1"),
		longTrade("2024-01-04", "0", "110", "1"), // zero price = missing
	}

	v := optionsConfig().Overview(trades)

	assert.Equal(t, 1, v.TotalTrades)
	assert.Equal(t, 10.0, v.NetPNL)
}

func TestOverviewDrawdownFollowsChronology(t *testing.T) {
	// Supplied out of order; the fold must sort by date first. Equity path
	// by date: +100 (peak), -150 (dd 150), +200.
	trades := []models.TradeRecord{
		longTrade("2024-01-03", "100", "300", "1"), // +200
		longTrade("2024-01-01", "100", "200", "1"), // +100
		longTrade("2024-01-02", "250", "100", "1"), // -150
	}

	v := optionsConfig().Overview(trades)

	assert.Equal(t, 150.0, v.MaxDrawdown)
	assert.Equal(t, 150.0, v.NetPNL)
}

func TestOverviewChargesSubtractedForEquityIntraday(t *testing.T) {
	trade := longTrade("2024-01-01", "100", "110", "2")
	trade.TradeType = models.TypeEquityIntraday
	trade.Charges = "5"

	v := ConfigFor(models.TypeEquityIntraday).Overview([]models.TradeRecord{trade})

	assert.Equal(t, 15.0, v.NetPNL) // (110-100)*2 - 5
}

func TestOverviewExpectancyModes(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "130", "1"), // +30
		longTrade("2024-01-02", "100", "90", "1"),  // -10
	}

	classic := ConfigFor(models.TypeOptions).Overview(trades)
	// 0.5*30 - 0.5*10
	assert.Equal(t, 10.0, classic.Expectancy)

	avg := ConfigFor(models.TypeSwing).Overview(trades)
	assert.Equal(t, avg.AvgPNL, avg.Expectancy)
	assert.Equal(t, 10.0, avg.Expectancy)
}

func TestOverviewShortSignConvention(t *testing.T) {
	trades := []models.TradeRecord{
		shortTrade("2024-01-01", "110", "100", "3"),
	}

	v := optionsConfig().Overview(trades)

	assert.Equal(t, 30.0, v.NetPNL) // (110-100)*3
}

func TestOverviewDoesNotMutateInput(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-02", "100", "110", "1"),
		longTrade("2024-01-01", "100", "90", "1"),
	}
	before := make([]models.TradeRecord, len(trades))
	copy(before, trades)

	optionsConfig().Overview(trades)

	assert.Equal(t, before, trades)
}
