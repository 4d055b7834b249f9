package analytics

import (
	"sort"
	"time"

	"tradebook/internal/models"
)

// DayStats summarizes the journal at calendar-day granularity plus the
// trade-level streaks.
type DayStats struct {
	WinDays  int
	LossDays int

	AvgWinDay  float64
	AvgLossDay float64 // magnitude
	MaxWinDay  float64
	MaxLossDay float64 // magnitude

	ConsecutiveWinDays  int
	ConsecutiveLossDays int

	ConsecutiveWinTrades  int
	ConsecutiveLossTrades int
}

type dayTrade struct {
	when    time.Time
	dateStr string
	pnl     float64
}

// WinLossDays groups trades by calendar date, classifies each day as a win or
// loss day by its summed P&L, and tracks the longest consecutive runs both at
// day and at trade level. A day summing to exactly zero counts as neither.
// Records missing a parsable date or P&L are skipped entirely.
func (c TypeConfig) WinLossDays(trades []models.TradeRecord) DayStats {
	var out DayStats

	normalized := make([]dayTrade, 0, len(trades))
	for _, t := range trades {
		dateStr := t.DateValue()
		when, ok := parseDate(dateStr)
		if !ok {
			continue
		}
		n := c.Numbers(&t)
		if !n.HasPnL {
			continue
		}
		normalized = append(normalized, dayTrade{when: when, dateStr: dateStr, pnl: n.PnL})
	}
	if len(normalized) == 0 {
		return out
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].when.Before(normalized[j].when)
	})

	// Day-wise P&L, order preserved from the sorted trade sequence.
	type day struct {
		dateStr string
		pnl     float64
	}
	var days []day
	for _, t := range normalized {
		if len(days) == 0 || days[len(days)-1].dateStr != t.dateStr {
			days = append(days, day{dateStr: t.dateStr, pnl: t.pnl})
		} else {
			days[len(days)-1].pnl += t.pnl
		}
	}

	var (
		winSum, lossSum      float64
		runWinDays, runLossDays int
	)
	for _, d := range days {
		switch {
		case d.pnl > 0:
			out.WinDays++
			winSum += d.pnl
			if d.pnl > out.MaxWinDay {
				out.MaxWinDay = d.pnl
			}
			runWinDays++
			runLossDays = 0
		case d.pnl < 0:
			out.LossDays++
			loss := -d.pnl
			lossSum += loss
			if loss > out.MaxLossDay {
				out.MaxLossDay = loss
			}
			runLossDays++
			runWinDays = 0
		}
		if runWinDays > out.ConsecutiveWinDays {
			out.ConsecutiveWinDays = runWinDays
		}
		if runLossDays > out.ConsecutiveLossDays {
			out.ConsecutiveLossDays = runLossDays
		}
	}

	if out.WinDays > 0 {
		out.AvgWinDay = winSum / float64(out.WinDays)
	}
	if out.LossDays > 0 {
		out.AvgLossDay = lossSum / float64(out.LossDays)
	}

	// Trade-level streaks over the same chronological order, independent of
	// day grouping. Zero-P&L trades break neither streak.
	var runWins, runLosses int
	for _, t := range normalized {
		switch {
		case t.pnl > 0:
			runWins++
			runLosses = 0
		case t.pnl < 0:
			runLosses++
			runWins = 0
		}
		if runWins > out.ConsecutiveWinTrades {
			out.ConsecutiveWinTrades = runWins
		}
		if runLosses > out.ConsecutiveLossTrades {
			out.ConsecutiveLossTrades = runLosses
		}
	}

	return out
}
