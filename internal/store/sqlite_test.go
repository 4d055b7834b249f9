package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradebook/internal/errors"
	"tradebook/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testTrade(id string, tt models.TradeType) *models.TradeRecord {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.TradeRecord{
		ID:         id,
		TradeType:  tt,
		Date:       "2024-01-05",
		Entry:      "100.5",
		ExitPrice:  "110",
		SL:         "95",
		Qty:        "50",
		Position:   models.Long,
		Strategy:   "breakout",
		Underlying: "NIFTY",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestSaveAndGetTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := testTrade("t1", models.TypeOptions)
	require.NoError(t, s.SaveTrade(ctx, "alice", trade))

	got, err := s.GetTrade(ctx, "alice", "t1")
	require.NoError(t, err)
	assert.Equal(t, trade.Entry, got.Entry)
	assert.Equal(t, trade.Strategy, got.Strategy)
	assert.Equal(t, models.TypeOptions, got.TradeType)
}

func TestGetTradeScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTrade(ctx, "alice", testTrade("t1", models.TypeOptions)))

	_, err := s.GetTrade(ctx, "bob", "t1")
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)
}

func TestGetTradesFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := testTrade("t1", models.TypeOptions)
	b := testTrade("t2", models.TypeSwing)
	b.Date = ""
	b.EntryDate = "2024-02-01"
	b.Underlying = ""
	b.Symbol = "RELIANCE"
	require.NoError(t, s.SaveTrade(ctx, "alice", a))
	require.NoError(t, s.SaveTrade(ctx, "alice", b))

	byType, err := s.GetTrades(ctx, "alice", TradeQuery{Type: models.TypeOptions})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "t1", byType[0].ID)

	bySymbol, err := s.GetTrades(ctx, "alice", TradeQuery{Symbol: "RELIANCE"})
	require.NoError(t, err)
	require.Len(t, bySymbol, 1)
	assert.Equal(t, "t2", bySymbol[0].ID)

	byDate, err := s.GetTrades(ctx, "alice", TradeQuery{From: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "t2", byDate[0].ID)

	all, err := s.GetTrades(ctx, "alice", TradeQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := s.GetTrades(ctx, "bob", TradeQuery{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	trade := testTrade("t1", models.TypeOptions)
	require.NoError(t, s.SaveTrade(ctx, "alice", trade))

	trade.ExitPrice = "not-a-number" // raw strings round-trip untouched
	trade.Remarks = "fat finger"
	require.NoError(t, s.UpdateTrade(ctx, "alice", trade))

	got, err := s.GetTrade(ctx, "alice", "t1")
	require.NoError(t, err)
	assert.Equal(t, "not-a-number", got.ExitPrice)
	assert.Equal(t, "fat finger", got.Remarks)

	missing := testTrade("ghost", models.TypeOptions)
	assert.ErrorIs(t, s.UpdateTrade(ctx, "alice", missing), errors.ErrTradeNotFound)
}

func TestDeleteTrade(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTrade(ctx, "alice", testTrade("t1", models.TypeOptions)))
	require.NoError(t, s.DeleteTrade(ctx, "alice", "t1"))

	_, err := s.GetTrade(ctx, "alice", "t1")
	assert.ErrorIs(t, err, errors.ErrTradeNotFound)

	assert.ErrorIs(t, s.DeleteTrade(ctx, "alice", "t1"), errors.ErrTradeNotFound)
}
