package analytics

import (
	"math"
	"strconv"

	"tradebook/internal/models"
)

// Numbers is the normalized numeric view of a single trade record.
type Numbers struct {
	// PnL is the signed profit, charges already deducted when the type
	// config says so. Valid only when HasPnL is set.
	PnL    float64
	HasPnL bool

	// RiskPerUnit is |entry - sl|. Valid only when HasRisk is set, which
	// requires a parsable non-zero stop loss and a strictly positive risk.
	RiskPerUnit float64
	HasRisk     bool

	// ActualRR is the unsigned magnitude ratio |exit - entry| / risk.
	// SignedRR is the direction-aware reward / risk ratio.
	// Both are valid only when HasRisk (and HasPnL) are set.
	ActualRR float64
	SignedRR float64

	// PlannedRR uses the target price instead of the exit, signed by
	// direction. Valid only when HasPlannedRR is set.
	PlannedRR    float64
	HasPlannedRR bool

	Qty float64
}

// parseNum coerces a raw form field to a float. The second result is false
// when the field is empty, unparsable, or zero; zero prices are treated the
// same as missing ones throughout the dashboards.
func parseNum(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

// parseQty returns the quantity multiplier, defaulting to 1.
func parseQty(s string) float64 {
	if v, ok := parseNum(s); ok {
		return v
	}
	return 1
}

// parseCharges returns the charges field, defaulting to 0. Unlike prices, a
// literal zero is a perfectly good charges value.
func parseCharges(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Numbers normalizes a single record under this configuration. It never
// panics; every derived value carries a presence flag instead.
func (c TypeConfig) Numbers(t *models.TradeRecord) Numbers {
	n := Numbers{Qty: parseQty(t.Qty)}

	entry, okEntry := parseNum(t.Entry)
	exit, okExit := parseNum(t.ExitPrice)
	if !okEntry || !okExit {
		return n
	}

	reward := exit - entry
	if t.Position == models.Short {
		reward = entry - exit
	}
	n.PnL = reward * n.Qty
	if c.SubtractCharges {
		n.PnL -= parseCharges(t.Charges)
	}
	n.HasPnL = true

	sl, okSL := parseNum(t.SL)
	if okSL {
		risk := math.Abs(entry - sl)
		if risk > 0 {
			n.RiskPerUnit = risk
			n.HasRisk = true
			n.ActualRR = math.Abs(exit-entry) / risk
			n.SignedRR = reward / risk

			if target, okTarget := parseNum(t.Target); okTarget {
				planned := target - entry
				if t.Position == models.Short {
					planned = entry - target
				}
				n.PlannedRR = planned / risk
				n.HasPlannedRR = true
			}
		}
	}

	return n
}
