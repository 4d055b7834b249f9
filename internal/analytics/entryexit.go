package analytics

import (
	"tradebook/internal/models"
)

// exitTolerance is the fraction of the entry price by which an exit may
// overshoot the stop loss before it counts as an SL jump.
const exitTolerance = 0.0015

// ReasonStats aggregates trades sharing an entry or exit reason.
type ReasonStats struct {
	PnL    float64
	Trades int
	Wins   int
}

// ConfidenceStats aggregates trades sharing a confidence tag. The realized RR
// here is the unsigned magnitude ratio.
type ConfidenceStats struct {
	Trades int
	Wins   int
	PnL    float64

	rrSum   float64
	rrCount int
}

// WinPct returns the bucket's win percentage.
func (s *ConfidenceStats) WinPct() string { return pct(s.Wins, s.Trades) }

// AvgRR returns the bucket's mean realized risk-reward magnitude.
func (s *ConfidenceStats) AvgRR() string { return fixed2(s.rrSum, s.rrCount) }

// TradePct returns the bucket's share of the given total trade count.
func (s *ConfidenceStats) TradePct(total int) string { return pct(s.Trades, total) }

// EntryExit is the entry/exit behaviour and confidence breakdown.
type EntryExit struct {
	EntryStats map[string]*ReasonStats
	ExitStats  map[string]*ReasonStats

	BestEntry  string
	WorstEntry string
	BestExit   string
	WorstExit  string

	// Exit-quality percentages over the full (unvalidated) trade count.
	PrematureExitPct string // closed before reaching target
	SLBeforeExitPct  string // exited between entry and stop without breaching it
	SLJumpExitPct    string // exit breached the stop beyond the tolerance

	Confidence  map[string]*ConfidenceStats
	TotalTrades int
}

// EntryExit folds the trade list into per-reason performance, exit-quality
// classification, and confidence buckets. The percentage denominators use the
// raw list length, matching the dashboards this derives from.
func (c TypeConfig) EntryExit(trades []models.TradeRecord) EntryExit {
	out := EntryExit{
		EntryStats:       map[string]*ReasonStats{},
		ExitStats:        map[string]*ReasonStats{},
		Confidence:       map[string]*ConfidenceStats{},
		PrematureExitPct: "0",
		SLBeforeExitPct:  "0",
		SLJumpExitPct:    "0",
		TotalTrades:      len(trades),
	}

	var premature, slBefore, slJump int

	for _, t := range trades {
		n := c.Numbers(&t)
		if !n.HasPnL {
			continue
		}
		win := n.PnL > 0

		bump := func(m map[string]*ReasonStats, key string) {
			if key == "" {
				return
			}
			s, ok := m[key]
			if !ok {
				s = &ReasonStats{}
				m[key] = s
			}
			s.PnL += n.PnL
			s.Trades++
			if win {
				s.Wins++
			}
		}
		bump(out.EntryStats, t.Reason)
		bump(out.ExitStats, t.ExitReason)

		entry, _ := parseNum(t.Entry)
		exit, _ := parseNum(t.ExitPrice)

		if target, ok := parseNum(t.Target); ok {
			if (t.Position != models.Short && exit < target) ||
				(t.Position == models.Short && exit > target) {
				premature++
			}
		}

		if sl, ok := parseNum(t.SL); ok {
			if (t.Position != models.Short && exit > sl && exit < entry) ||
				(t.Position == models.Short && exit < sl && exit > entry) {
				slBefore++
			}
			tolerance := entry * exitTolerance
			if (t.Position != models.Short && exit < sl-tolerance) ||
				(t.Position == models.Short && exit > sl+tolerance) {
				slJump++
			}
		}

		if t.Confidence == "" || !n.HasRisk {
			continue
		}
		cs, ok := out.Confidence[t.Confidence]
		if !ok {
			cs = &ConfidenceStats{}
			out.Confidence[t.Confidence] = cs
		}
		cs.Trades++
		cs.PnL += n.PnL
		if win {
			cs.Wins++
		}
		cs.rrSum += n.ActualRR
		cs.rrCount++
	}

	out.BestEntry, out.WorstEntry = bestWorstReason(out.EntryStats)
	out.BestExit, out.WorstExit = bestWorstReason(out.ExitStats)

	out.PrematureExitPct = pct(premature, out.TotalTrades)
	out.SLBeforeExitPct = pct(slBefore, out.TotalTrades)
	out.SLJumpExitPct = pct(slJump, out.TotalTrades)

	return out
}

// bestWorstReason picks the keys with the highest and lowest net P&L, ties
// broken alphabetically for determinism.
func bestWorstReason(m map[string]*ReasonStats) (best, worst string) {
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
