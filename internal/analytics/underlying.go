package analytics

import (
	"tradebook/internal/models"
)

// UnderlyingStats aggregates one underlying's trades.
type UnderlyingStats struct {
	Trades int
	Wins   int
	PnL    float64

	rrSum   float64
	rrCount int
}

// WinPct returns the underlying's win percentage.
func (s *UnderlyingStats) WinPct() string { return pct(s.Wins, s.Trades) }

// AvgRR returns the underlying's mean realized risk-reward magnitude.
func (s *UnderlyingStats) AvgRR() string { return fixed2(s.rrSum, s.rrCount) }

// Underlying folds the trade list into per-underlying performance. Records
// with no underlying (or symbol) tag, or with unparsable entry/exit prices,
// are skipped; the RR sample additionally requires a usable stop loss.
func (c TypeConfig) Underlying(trades []models.TradeRecord) map[string]*UnderlyingStats {
	out := map[string]*UnderlyingStats{}

	for _, t := range trades {
		key := t.SymbolValue()
		if key == "" {
			continue
		}
		n := c.Numbers(&t)
		if !n.HasPnL {
			continue
		}

		s, ok := out[key]
		if !ok {
			s = &UnderlyingStats{}
			out[key] = s
		}
		s.Trades++
		s.PnL += n.PnL
		if n.PnL > 0 {
			s.Wins++
		}
		if n.HasRisk {
			s.rrSum += n.ActualRR
			s.rrCount++
		}
	}

	return out
}
