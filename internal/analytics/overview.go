package analytics

import (
	"fmt"
	"sort"

	"tradebook/internal/models"
)

// InfiniteProfitFactor is the sentinel emitted when gross loss is zero.
const InfiniteProfitFactor = "∞"

// Overview holds the headline KPI row of a dashboard.
//
// Percentages and the profit factor are pre-formatted strings because the
// profit factor needs a non-numeric sentinel and the rates are fixed to one
// decimal; monetary values stay raw for the presentation layer to format.
type Overview struct {
	TotalTrades  int
	NetPNL       float64
	WinRate      string
	LossRate     string
	AvgPNL       float64
	ProfitFactor string
	Expectancy   float64
	MaxDrawdown  float64
	MaxDDPercent string
}

// Overview folds the trade list into the headline KPIs. Only records with a
// parsable non-zero entry and exit price count; everything else is skipped.
// Trades are folded in chronological order of the configured date field so the
// drawdown tracker sees the equity curve the way it actually unfolded.
func (c TypeConfig) Overview(trades []models.TradeRecord) Overview {
	out := Overview{
		WinRate:      "0",
		LossRate:     "0",
		ProfitFactor: "0.00",
		MaxDDPercent: "0",
	}

	var (
		wins, losses           int
		grossProfit, grossLoss float64
		equity, peak, maxDD    float64
	)

	for _, t := range c.sortByDate(trades) {
		n := c.Numbers(&t)
		if !n.HasPnL {
			continue
		}

		out.TotalTrades++
		out.NetPNL += n.PnL

		equity += n.PnL
		if equity > peak {
			peak = equity
		}
		if dd := peak - equity; dd > maxDD {
			maxDD = dd
		}

		switch {
		case n.PnL > 0:
			wins++
			grossProfit += n.PnL
		case n.PnL < 0:
			losses++
			grossLoss += -n.PnL
		}
	}

	if out.TotalTrades == 0 {
		return out
	}

	out.WinRate = pct(wins, out.TotalTrades)
	out.LossRate = pct(losses, out.TotalTrades)
	out.AvgPNL = out.NetPNL / float64(out.TotalTrades)

	if grossLoss > 0 {
		out.ProfitFactor = fmt.Sprintf("%.2f", grossProfit/grossLoss)
	} else {
		out.ProfitFactor = InfiniteProfitFactor
	}

	switch c.Expectancy {
	case ExpectancyClassic:
		avgWin, avgLoss := 0.0, 0.0
		if wins > 0 {
			avgWin = grossProfit / float64(wins)
		}
		if losses > 0 {
			avgLoss = grossLoss / float64(losses)
		}
		total := float64(out.TotalTrades)
		out.Expectancy = float64(wins)/total*avgWin - float64(losses)/total*avgLoss
	default:
		out.Expectancy = out.AvgPNL
	}

	out.MaxDrawdown = maxDD
	if peak > 0 {
		out.MaxDDPercent = fmt.Sprintf("%.1f", maxDD/peak*100)
	}

	return out
}

// sortByDate returns a chronologically sorted copy of the trade list. Records
// whose date is missing or unparsable sort to the front, keeping their
// relative input order.
func (c TypeConfig) sortByDate(trades []models.TradeRecord) []models.TradeRecord {
	sorted := make([]models.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := parseDate(c.tradeDate(&sorted[i]))
		tj, _ := parseDate(c.tradeDate(&sorted[j]))
		return ti.Before(tj)
	})
	return sorted
}

// pct formats n/d*100 to one decimal, with "0" as the zero-denominator
// sentinel so callers never render NaN.
func pct(n, d int) string {
	if d == 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", float64(n)/float64(d)*100)
}

// fixed2 formats a ratio to two decimals, with "0" when the sample is empty.
func fixed2(sum float64, count int) string {
	if count == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", sum/float64(count))
}
