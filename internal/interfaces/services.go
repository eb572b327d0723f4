// Package interfaces defines service contracts for the tracking engine
package interfaces

import (
	"context"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// PriceResolver resolves current prices for a batch of symbols.
type PriceResolver interface {
	// ResolvePrices returns an entry for every requested symbol, degrading
	// through fresh cache, live fetch, stale cache and estimation. It never
	// returns partial results; the Source tag on each quote distinguishes
	// quality.
	ResolvePrices(ctx context.Context, symbols []string) map[string]models.PriceQuote
}

// PortfolioService maintains positions and runs refresh cycles for an account.
type PortfolioService interface {
	// ApplyLot merges a buy lot into the account's position for the symbol
	// using weighted-average cost, creating the position if absent.
	ApplyLot(ctx context.Context, accountID, symbol string, quantity, unitCost float64) (*models.Position, error)

	// ReduceLot sells quantity units out of the account's position for the
	// symbol. A reduction to exactly zero deactivates the position.
	ReduceLot(ctx context.Context, accountID, symbol string, quantity float64) (*models.Position, error)

	// RefreshPrices revalues all active positions for the account and
	// records a value snapshot.
	RefreshPrices(ctx context.Context, accountID string) ([]*models.Position, error)

	// ComputePerformance derives a performance report from the account's
	// stored value snapshots and the supplied benchmark return series.
	ComputePerformance(ctx context.Context, accountID string, benchmarks map[string][]float64) (*models.PerformanceReport, error)
}
