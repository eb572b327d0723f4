// Package interfaces defines service contracts for the tracking engine
package interfaces

import (
	"context"
	"errors"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// PositionStore persists Position records.
type PositionStore interface {
	// GetPosition retrieves the position for (account, symbol), active or not.
	GetPosition(ctx context.Context, accountID, symbol string) (*models.Position, error)

	// ListActivePositions retrieves all active positions for an account.
	ListActivePositions(ctx context.Context, accountID string) ([]*models.Position, error)

	// SavePosition creates or updates a position.
	SavePosition(ctx context.Context, position *models.Position) error
}

// QuoteStore persists last-known PriceQuote values across refresh cycles.
type QuoteStore interface {
	// GetQuote retrieves the stored quote for a symbol.
	GetQuote(ctx context.Context, symbol string) (*models.PriceQuote, error)

	// SaveQuote creates or overwrites the stored quote for a symbol.
	SaveQuote(ctx context.Context, quote *models.PriceQuote) error

	// ListQuotes retrieves all stored quotes, used to warm the in-memory
	// cache at startup.
	ListQuotes(ctx context.Context) ([]*models.PriceQuote, error)
}

// SnapshotStore persists the daily account value series.
type SnapshotStore interface {
	// SaveSnapshot records the account value for a date, overwriting any
	// snapshot already recorded for that date.
	SaveSnapshot(ctx context.Context, snapshot *models.ValueSnapshot) error

	// ListSnapshots retrieves snapshots for an account in chronological
	// order. limit <= 0 returns all.
	ListSnapshots(ctx context.Context, accountID string, limit int) ([]*models.ValueSnapshot, error)
}

// StorageManager aggregates the engine's stores.
type StorageManager interface {
	Positions() PositionStore
	Quotes() QuoteStore
	Snapshots() SnapshotStore
	Close() error
}

// ErrNotFound is returned by stores when a record does not exist. Defined
// here so service code doesn't import storage implementations.
var ErrNotFound = errors.New("record not found")
