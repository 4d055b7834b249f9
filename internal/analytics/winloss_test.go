package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradebook/internal/models"
)

func TestWinLossDaysGroupsByCalendarDate(t *testing.T) {
	// Three trades on one date: +50, -20, +30 sum to +60, one win day.
	trades := []models.TradeRecord{
		longTrade("2024-01-05", "100", "150", "1"),
		longTrade("2024-01-05", "100", "80", "1"),
		longTrade("2024-01-05", "100", "130", "1"),
	}

	v := optionsConfig().WinLossDays(trades)

	assert.Equal(t, 1, v.WinDays)
	assert.Equal(t, 0, v.LossDays)
	assert.Equal(t, 60.0, v.AvgWinDay)
	assert.Equal(t, 60.0, v.MaxWinDay)
}

func TestWinLossDaysZeroDayIsNeither(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-05", "100", "150", "1"),
		longTrade("2024-01-05", "150", "100", "1"),
	}

	v := optionsConfig().WinLossDays(trades)

	assert.Equal(t, 0, v.WinDays)
	assert.Equal(t, 0, v.LossDays)
}

func TestWinLossDaysStreaks(t *testing.T) {
	// Day P&L sequence: +, +, -, +, +, + -> longest win run 3, loss run 1.
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "110", "1"),
		longTrade("2024-01-02", "100", "120", "1"),
		longTrade("2024-01-03", "100", "90", "1"),
		longTrade("2024-01-04", "100", "105", "1"),
		longTrade("2024-01-05", "100", "115", "1"),
		longTrade("2024-01-06", "100", "101", "1"),
	}

	v := optionsConfig().WinLossDays(trades)

	assert.Equal(t, 4, v.WinDays)
	assert.Equal(t, 1, v.LossDays)
	assert.Equal(t, 3, v.ConsecutiveWinDays)
	assert.Equal(t, 1, v.ConsecutiveLossDays)
}

func TestWinLossDaysTradeStreaksIgnoreZeroPnL(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "110", "1"),
		longTrade("2024-01-02", "100", "100", "1"), // zero, breaks nothing
		longTrade("2024-01-03", "100", "120", "1"),
	}

	v := optionsConfig().WinLossDays(trades)

	assert.Equal(t, 2, v.ConsecutiveWinTrades)
	assert.Equal(t, 0, v.ConsecutiveLossTrades)
}

func TestWinLossDaysSortsOutOfOrderInput(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-03", "100", "110", "1"),
		longTrade("2024-01-01", "100", "110", "1"),
		longTrade("2024-01-02", "100", "110", "1"),
	}

	v := optionsConfig().WinLossDays(trades)

	assert.Equal(t, 3, v.WinDays)
	assert.Equal(t, 3, v.ConsecutiveWinDays)
}

func TestWinLossDaysSkipsUndatedAndUnparsable(t *testing.T) {
	undated := longTrade("", "100", "110", "1")
	badPrice := longTrade("2024-01-01", "x", "110", "1")

	v := optionsConfig().WinLossDays([]models.TradeRecord{undated, badPrice})

	assert.Equal(t, DayStats{}, v)
}

func TestWinLossDaysEmptyInput(t *testing.T) {
	assert.Equal(t, DayStats{}, optionsConfig().WinLossDays(nil))
}
