package analytics

import (
	"math"
	"time"

	"tradebook/internal/models"
)

// StrategyStats aggregates one strategy's trades.
type StrategyStats struct {
	PnL     float64
	Wins    int
	Losses  int
	WinAmt  float64
	LossAmt float64 // magnitude

	// MaxDrawdown is the strategy-scoped running drawdown magnitude over
	// that strategy's trades in chronological order.
	MaxDrawdown float64

	rrSum   float64
	rrCount int
	equity  float64
	peak    float64
}

// WinPct returns the strategy win percentage over decided trades.
func (s *StrategyStats) WinPct() string { return pct(s.Wins, s.Wins+s.Losses) }

// LossPct returns the strategy loss percentage over decided trades.
func (s *StrategyStats) LossPct() string { return pct(s.Losses, s.Wins+s.Losses) }

// AvgRR returns the mean realized risk-reward ratio, signed by direction.
func (s *StrategyStats) AvgRR() string { return fixed2(s.rrSum, s.rrCount) }

// Expectancy returns win% x avgWin - loss% x avgLoss for the strategy.
func (s *StrategyStats) Expectancy() float64 {
	decided := s.Wins + s.Losses
	if decided == 0 {
		return 0
	}
	avgWin, avgLoss := 0.0, 0.0
	if s.Wins > 0 {
		avgWin = s.WinAmt / float64(s.Wins)
	}
	if s.Losses > 0 {
		avgLoss = s.LossAmt / float64(s.Losses)
	}
	winFrac := float64(s.Wins) / float64(decided)
	return winFrac*avgWin - (1-winFrac)*avgLoss
}

// RiskStrategy is the risk profile and per-strategy performance breakdown.
// Only records with parsable entry, exit, and stop loss participate; risk and
// drawdown have no meaning without a stop.
type RiskStrategy struct {
	AvgRisk float64 // mean |entry-sl|*qty
	MaxRisk float64

	MaxDrawdown    float64 // magnitude, global equity curve
	RecoveryFactor string  // netPNL / maxDrawdown, "0" when flat
	RecoveryDays   int     // calendar days spent inside the deepest drawdown

	Strategies map[string]*StrategyStats

	BestStrategy       string
	WorstStrategy      string
	ConsistentStrategy string // smallest strategy-scoped max drawdown
}

// RiskStrategy folds the trade list into the risk profile and the
// per-strategy breakdown, in chronological order of the configured date
// field.
func (c TypeConfig) RiskStrategy(trades []models.TradeRecord) RiskStrategy {
	out := RiskStrategy{
		RecoveryFactor: "0",
		Strategies:     map[string]*StrategyStats{},
	}

	var (
		riskSum   float64
		riskCount int

		equity, peak, maxDD float64
		netPNL              float64

		ddStart, ddEnd time.Time
		inDrawdown     bool
	)

	for _, t := range c.sortByDate(trades) {
		n := c.Numbers(&t)
		if !n.HasPnL || !n.HasRisk {
			continue
		}

		risk := n.RiskPerUnit * n.Qty
		riskSum += risk
		riskCount++
		if risk > out.MaxRisk {
			out.MaxRisk = risk
		}

		netPNL += n.PnL
		equity += n.PnL
		if equity > peak {
			peak = equity
			inDrawdown = false
		} else if dd := peak - equity; dd > maxDD {
			maxDD = dd
			if when, ok := parseDate(c.tradeDate(&t)); ok {
				if !inDrawdown {
					ddStart = when
					inDrawdown = true
				}
				ddEnd = when
			}
		}

		if t.Strategy == "" {
			continue
		}
		s, ok := out.Strategies[t.Strategy]
		if !ok {
			s = &StrategyStats{}
			out.Strategies[t.Strategy] = s
		}
		s.PnL += n.PnL
		switch {
		case n.PnL > 0:
			s.Wins++
			s.WinAmt += n.PnL
		case n.PnL < 0:
			s.Losses++
			s.LossAmt += -n.PnL
		}
		s.rrSum += n.SignedRR
		s.rrCount++

		s.equity += n.PnL
		if s.equity > s.peak {
			s.peak = s.equity
		}
		if dd := s.peak - s.equity; dd > s.MaxDrawdown {
			s.MaxDrawdown = dd
		}
	}

	if riskCount > 0 {
		out.AvgRisk = riskSum / float64(riskCount)
	}
	out.MaxDrawdown = maxDD
	if maxDD != 0 {
		out.RecoveryFactor = fixed2(netPNL/maxDD, 1)
	}
	if inDrawdown || !ddEnd.IsZero() {
		if !ddStart.IsZero() && !ddEnd.Before(ddStart) {
			out.RecoveryDays = int(math.Ceil(ddEnd.Sub(ddStart).Hours() / 24))
		}
	}

	var bestPnL, worstPnL, smallestDD float64
	first := true
	for name, s := range out.Strategies {
		if first || s.PnL > bestPnL || (s.PnL == bestPnL && name < out.BestStrategy) {
			bestPnL = s.PnL
			out.BestStrategy = name
		}
		if first || s.PnL < worstPnL || (s.PnL == worstPnL && name < out.WorstStrategy) {
			worstPnL = s.PnL
			out.WorstStrategy = name
		}
		if first || s.MaxDrawdown < smallestDD || (s.MaxDrawdown == smallestDD && name < out.ConsistentStrategy) {
			smallestDD = s.MaxDrawdown
			out.ConsistentStrategy = name
		}
		first = false
	}

	return out
}
