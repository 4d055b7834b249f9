package analytics

import (
	"fmt"

	"tradebook/internal/models"
)

// BucketStats aggregates trades sharing a categorical bucket value.
type BucketStats struct {
	PnL    float64
	Trades int
	Wins   int
}

// WinPct returns the bucket's win percentage.
func (s *BucketStats) WinPct() string { return pct(s.Wins, s.Trades) }

// Timing is the time, weekday, strike, and direction breakdown.
type Timing struct {
	TimeRange map[string]*BucketStats
	Timeframe map[string]*BucketStats
	Weekday   map[string]*BucketStats
	Strike    map[string]*BucketStats

	BestTimeRange  string
	WorstTimeRange string
	BestTimeframe  string
	WorstTimeframe string
	BestWeekday    string
	WorstWeekday   string
	BestStrike     string
	WorstStrike    string

	AvgTradesPerDay string // one decimal, "0" when no dated trades
	MaxTradesPerDay int

	LongPNL     float64
	ShortPNL    float64
	LongWinPct  string
	ShortWinPct string

	// Net P&L bucketed by the literal expiry values "Weekly" and "Monthly".
	WeeklyPNL  float64
	MonthlyPNL float64
}

// Timing folds the trade list into the time-based and option-specific
// buckets. A trade with an unparsable entry/exit contributes zero P&L but
// still counts toward bucket trade counts, matching the dashboards.
func (c TypeConfig) Timing(trades []models.TradeRecord) Timing {
	out := Timing{
		TimeRange:       map[string]*BucketStats{},
		Timeframe:       map[string]*BucketStats{},
		Weekday:         map[string]*BucketStats{},
		Strike:          map[string]*BucketStats{},
		AvgTradesPerDay: "0",
		LongWinPct:      "0",
		ShortWinPct:     "0",
	}

	var (
		longTrades, shortTrades int
		longWins, shortWins     int
		dateCount               = map[string]int{}
	)

	bump := func(m map[string]*BucketStats, key string, pnl float64) {
		if key == "" {
			return
		}
		s, ok := m[key]
		if !ok {
			s = &BucketStats{}
			m[key] = s
		}
		s.PnL += pnl
		s.Trades++
		if pnl > 0 {
			s.Wins++
		}
	}

	for _, t := range trades {
		n := c.Numbers(&t)
		pnl := n.PnL // zero when entry/exit missing

		bump(out.TimeRange, t.TimeRange, pnl)
		bump(out.Timeframe, t.Timeframe, pnl)
		bump(out.Strike, t.Strike, pnl)

		dateStr := c.tradeDate(&t)
		if when, ok := parseDate(dateStr); ok {
			bump(out.Weekday, when.Weekday().String(), pnl)
		}
		if dateStr != "" {
			dateCount[dateStr]++
		}

		switch t.Position {
		case models.Long:
			longTrades++
			out.LongPNL += pnl
			if pnl > 0 {
				longWins++
			}
		case models.Short:
			shortTrades++
			out.ShortPNL += pnl
			if pnl > 0 {
				shortWins++
			}
		}

		switch t.Expiry {
		case "Weekly":
			out.WeeklyPNL += pnl
		case "Monthly":
			out.MonthlyPNL += pnl
		}
	}

	out.BestTimeRange, out.WorstTimeRange = bestWorstBucket(out.TimeRange)
	out.BestTimeframe, out.WorstTimeframe = bestWorstBucket(out.Timeframe)
	out.BestWeekday, out.WorstWeekday = bestWorstBucket(out.Weekday)
	out.BestStrike, out.WorstStrike = bestWorstBucket(out.Strike)

	if len(dateCount) > 0 {
		out.AvgTradesPerDay = fmt.Sprintf("%.1f", float64(len(trades))/float64(len(dateCount)))
	}
	for _, count := range dateCount {
		if count > out.MaxTradesPerDay {
			out.MaxTradesPerDay = count
		}
	}

	out.LongWinPct = pct(longWins, longTrades)
	out.ShortWinPct = pct(shortWins, shortTrades)

	return out
}

func bestWorstBucket(m map[string]*BucketStats) (best, worst string) {
	for key, s := range m {
		if best == "" || s.PnL > m[best].PnL || (s.PnL == m[best].PnL && key < best) {
			best = key
		}
		if worst == "" || s.PnL < m[worst].PnL || (s.PnL == m[worst].PnL && key < worst) {
			worst = key
		}
	}
	return best, worst
}
