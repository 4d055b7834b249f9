package analytics

import (
	"tradebook/internal/models"
)

// Quality is the trade quality (risk-reward) breakdown. A record needs a
// parsable entry, exit, and stop loss to participate; the RR achievement
// percentages are nevertheless taken over the full trade count.
type Quality struct {
	AvgPlannedRR  string
	AvgActualRR   string // signed by direction
	AvgRRSlippage string // actual minus planned, over trades where both exist

	RR1Pct string // realized RR >= 1
	RR2Pct string
	RR3Pct string

	TargetHitPct string // realized RR > 0
	SLHitPct     string

	CallTrades  int
	PutTrades   int
	CallPNL     float64
	PutPNL      float64
	CallWinRate string
	PutWinRate  string
}

// Quality folds the trade list into the risk-reward achievement KPIs and the
// CALL vs PUT split.
func (c TypeConfig) Quality(trades []models.TradeRecord) Quality {
	out := Quality{
		AvgPlannedRR:  "0",
		AvgActualRR:   "0",
		AvgRRSlippage: "0",
		RR1Pct:        "0",
		RR2Pct:        "0",
		RR3Pct:        "0",
		TargetHitPct:  "0",
		SLHitPct:      "0",
		CallWinRate:   "0",
		PutWinRate:    "0",
	}

	var (
		plannedSum   float64
		plannedCount int
		actualSum    float64
		actualCount  int
		slippageSum  float64
		slipCount    int

		rr1, rr2, rr3     int
		targetHit, slHit  int
		callWins, putWins int
	)

	for _, t := range trades {
		n := c.Numbers(&t)
		if !n.HasPnL || !n.HasRisk {
			continue
		}

		if n.HasPlannedRR {
			plannedSum += n.PlannedRR
			plannedCount++
			slippageSum += n.SignedRR - n.PlannedRR
			slipCount++
		}
		actualSum += n.SignedRR
		actualCount++

		if n.SignedRR >= 1 {
			rr1++
		}
		if n.SignedRR >= 2 {
			rr2++
		}
		if n.SignedRR >= 3 {
			rr3++
		}
		if n.SignedRR > 0 {
			targetHit++
		} else {
			slHit++
		}

		switch t.OptionType {
		case models.Call:
			out.CallTrades++
			out.CallPNL += n.PnL
			if n.PnL > 0 {
				callWins++
			}
		case models.Put:
			out.PutTrades++
			out.PutPNL += n.PnL
			if n.PnL > 0 {
				putWins++
			}
		}
	}

	total := len(trades)
	out.AvgPlannedRR = fixed2(plannedSum, plannedCount)
	out.AvgActualRR = fixed2(actualSum, actualCount)
	out.AvgRRSlippage = fixed2(slippageSum, slipCount)

	out.RR1Pct = pct(rr1, total)
	out.RR2Pct = pct(rr2, total)
	out.RR3Pct = pct(rr3, total)
	out.TargetHitPct = pct(targetHit, total)
	out.SLHitPct = pct(slHit, total)

	out.CallWinRate = pct(callWins, out.CallTrades)
	out.PutWinRate = pct(putWins, out.PutTrades)

	return out
}
