// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"tradebook/internal/models"
)

// TradeStore defines the persistence interface for journal trades.
//
// Every call takes an explicit userID so the store never reads ambient
// "current user" state; the caller owns session scoping.
type TradeStore interface {
	SaveTrade(ctx context.Context, userID string, trade *models.TradeRecord) error
	GetTrade(ctx context.Context, userID, id string) (*models.TradeRecord, error)
	GetTrades(ctx context.Context, userID string, query TradeQuery) ([]models.TradeRecord, error)
	// UpdateTrade replaces every mutable field of the stored record;
	// ID and CreatedAt are preserved.
	UpdateTrade(ctx context.Context, userID string, trade *models.TradeRecord) error
	DeleteTrade(ctx context.Context, userID, id string) error

	Close() error
}

// TradeQuery narrows a GetTrades call. Zero values mean no restriction.
type TradeQuery struct {
	Type   models.TradeType
	Symbol string
	From   string // inclusive date bound, journal date format
	To     string
	Limit  int
}
