package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradebook/internal/models"
)

func TestTimingBuckets(t *testing.T) {
	mk := func(date, exit, timeRange string) models.TradeRecord {
		tr := longTrade(date, "100", exit, "1")
		tr.TimeRange = timeRange
		return tr
	}

	trades := []models.TradeRecord{
		mk("2024-01-01", "120", "9:15-10:00"),
		mk("2024-01-02", "90", "9:15-10:00"),
		mk("2024-01-03", "105", "14:00-15:00"),
	}

	v := optionsConfig().Timing(trades)

	morning := v.TimeRange["9:15-10:00"]
	assert.Equal(t, 2, morning.Trades)
	assert.Equal(t, 10.0, morning.PnL)
	assert.Equal(t, "50.0", morning.WinPct())

	assert.Equal(t, "9:15-10:00", v.BestTimeRange)
	assert.Equal(t, "14:00-15:00", v.WorstTimeRange)
}

func TestTimingBestWorstByPnL(t *testing.T) {
	mk := func(date, exit, tf string) models.TradeRecord {
		tr := longTrade(date, "100", exit, "1")
		tr.Timeframe = tf
		return tr
	}

	trades := []models.TradeRecord{
		mk("2024-01-01", "130", "5m"), // +30
		mk("2024-01-02", "90", "15m"), // -10
	}

	v := optionsConfig().Timing(trades)

	assert.Equal(t, "5m", v.BestTimeframe)
	assert.Equal(t, "15m", v.WorstTimeframe)
}

func TestTimingWeekdayAndTradesPerDay(t *testing.T) {
	trades := []models.TradeRecord{
		longTrade("2024-01-01", "100", "110", "1"), // Monday
		longTrade("2024-01-01", "100", "120", "1"),
		longTrade("2024-01-02", "100", "90", "1"), // Tuesday
	}

	v := optionsConfig().Timing(trades)

	assert.Equal(t, 2, v.Weekday["Monday"].Trades)
	assert.Equal(t, 1, v.Weekday["Tuesday"].Trades)
	assert.Equal(t, "Monday", v.BestWeekday)
	assert.Equal(t, "Tuesday", v.WorstWeekday)
	assert.Equal(t, "1.5", v.AvgTradesPerDay)
	assert.Equal(t, 2, v.MaxTradesPerDay)
}

func TestTimingDirectionSplit(t *testing.T) {
	long := longTrade("2024-01-01", "100", "110", "1")
	short := shortTrade("2024-01-02", "100", "110", "1") // -10

	v := optionsConfig().Timing([]models.TradeRecord{long, short})

	assert.Equal(t, 10.0, v.LongPNL)
	assert.Equal(t, -10.0, v.ShortPNL)
	assert.Equal(t, "100.0", v.LongWinPct)
	assert.Equal(t, "0.0", v.ShortWinPct)
}

func TestTimingExpiryBuckets(t *testing.T) {
	weekly := longTrade("2024-01-01", "100", "110", "1")
	weekly.Expiry = "Weekly"
	monthly := longTrade("2024-01-02", "100", "90", "1")
	monthly.Expiry = "Monthly"
	other := longTrade("2024-01-03", "100", "150", "1")
	other.Expiry = "2024-01-25"

	v := optionsConfig().Timing([]models.TradeRecord{weekly, monthly, other})

	assert.Equal(t, 10.0, v.WeeklyPNL)
	assert.Equal(t, -10.0, v.MonthlyPNL)
}

func TestTimingUnparsablePricesStillCountInBuckets(t *testing.T) {
	tr := longTrade("2024-01-01", "", "", "1")
	tr.TimeRange = "9:15-10:00"

	v := optionsConfig().Timing([]models.TradeRecord{tr})

	bucket := v.TimeRange["9:15-10:00"]
	assert.Equal(t, 1, bucket.Trades)
	assert.Equal(t, 0.0, bucket.PnL)
}

func TestTimingEmptyInput(t *testing.T) {
	v := optionsConfig().Timing(nil)

	assert.Equal(t, "0", v.AvgTradesPerDay)
	assert.Equal(t, "0", v.LongWinPct)
	assert.NotNil(t, v.TimeRange)
}
