package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/models"
)

func TestEntryExitReasonBreakdown(t *testing.T) {
	mk := func(entry, exit, reason, exitReason string) models.TradeRecord {
		tr := longTrade("2024-01-01", entry, exit, "1")
		tr.Reason = reason
		tr.ExitReason = exitReason
		return tr
	}

	trades := []models.TradeRecord{
		mk("100", "120", "breakout", "target"),
		mk("100", "95", "breakout", "panic"),
		mk("100", "110", "news", "target"),
	}

	v := optionsConfig().EntryExit(trades)

	require.Len(t, v.EntryStats, 2)
	assert.Equal(t, 15.0, v.EntryStats["breakout"].PnL)
	assert.Equal(t, 1, v.EntryStats["breakout"].Wins)
	assert.Equal(t, "breakout", v.BestEntry)
	assert.Equal(t, "news", v.WorstEntry)

	assert.Equal(t, "target", v.BestExit)
	assert.Equal(t, "panic", v.WorstExit)
}

func TestEntryExitQualityClassification(t *testing.T) {
	premature := longTrade("2024-01-01", "100", "110", "1")
	premature.Target = "120" // exited short of target

	slBefore := longTrade("2024-01-02", "100", "97", "1")
	slBefore.SL = "95" // bailed between entry and stop

	slJump := longTrade("2024-01-03", "100", "90", "1")
	slJump.SL = "95" // exit blew through the stop

	v := optionsConfig().EntryExit([]models.TradeRecord{premature, slBefore, slJump})

	assert.Equal(t, "33.3", v.PrematureExitPct)
	assert.Equal(t, "33.3", v.SLBeforeExitPct)
	assert.Equal(t, "33.3", v.SLJumpExitPct)
}

func TestEntryExitSLJumpTolerance(t *testing.T) {
	// Exit 0.1% beyond the stop stays within the 0.15% tolerance band.
	within := longTrade("2024-01-01", "1000", "949", "1")
	within.SL = "950"

	beyond := longTrade("2024-01-02", "1000", "940", "1")
	beyond.SL = "950"

	v := optionsConfig().EntryExit([]models.TradeRecord{within, beyond})

	assert.Equal(t, "50.0", v.SLJumpExitPct)
}

func TestEntryExitConfidenceNeedsTagAndStop(t *testing.T) {
	tagged := longTrade("2024-01-01", "100", "110", "1")
	tagged.Confidence = "HIGH"
	tagged.SL = "95"

	noStop := longTrade("2024-01-02", "100", "110", "1")
	noStop.Confidence = "HIGH"

	untagged := longTrade("2024-01-03", "100", "110", "1")
	untagged.SL = "95"

	v := optionsConfig().EntryExit([]models.TradeRecord{tagged, noStop, untagged})

	require.Len(t, v.Confidence, 1)
	high := v.Confidence["HIGH"]
	assert.Equal(t, 1, high.Trades)
	assert.Equal(t, "100.0", high.WinPct())
	assert.Equal(t, "2.00", high.AvgRR())
	assert.Equal(t, "33.3", high.TradePct(v.TotalTrades))
}

func TestEntryExitEmptyInput(t *testing.T) {
	v := optionsConfig().EntryExit(nil)

	assert.NotNil(t, v.EntryStats)
	assert.NotNil(t, v.ExitStats)
	assert.NotNil(t, v.Confidence)
	assert.Equal(t, "0", v.PrematureExitPct)
	assert.Equal(t, "0", v.SLBeforeExitPct)
	assert.Equal(t, "0", v.SLJumpExitPct)
}
