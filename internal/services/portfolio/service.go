package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/services/performance"
)

// Service implements PortfolioService over a position store, a price
// resolver and a snapshot store.
type Service struct {
	storage  interfaces.StorageManager
	resolver interfaces.PriceResolver
	logger   *common.Logger
	now      func() time.Time // injectable clock for testing
}

// NewService creates a new portfolio service.
func NewService(storage interfaces.StorageManager, resolver interfaces.PriceResolver, logger *common.Logger) *Service {
	return &Service{
		storage:  storage,
		resolver: resolver,
		logger:   logger,
		now:      time.Now,
	}
}

// ApplyLot merges a buy lot into the account's position for the symbol and
// persists the result. Validation failures leave the store unmodified.
func (s *Service) ApplyLot(ctx context.Context, accountID, symbol string, quantity, unitCost float64) (*models.Position, error) {
	symbol = models.NormalizeSymbol(symbol)

	existing, err := s.storage.Positions().GetPosition(ctx, accountID, symbol)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, fmt.Errorf("failed to load position %s/%s: %w", accountID, symbol, err)
	}

	updated, err := ApplyLot(existing, accountID, symbol, quantity, unitCost)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Positions().SavePosition(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save position %s/%s: %w", accountID, symbol, err)
	}

	s.logger.Debug().
		Str("account", accountID).
		Str("symbol", symbol).
		Float64("quantity", updated.Quantity).
		Float64("avg_cost", updated.AverageCost).
		Msg("Lot applied")

	return updated, nil
}

// ReduceLot sells quantity units out of the account's position for the
// symbol and persists the result.
func (s *Service) ReduceLot(ctx context.Context, accountID, symbol string, quantity float64) (*models.Position, error) {
	symbol = models.NormalizeSymbol(symbol)

	existing, err := s.storage.Positions().GetPosition(ctx, accountID, symbol)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInactive
		}
		return nil, fmt.Errorf("failed to load position %s/%s: %w", accountID, symbol, err)
	}

	updated, err := ReduceLot(existing, quantity)
	if err != nil {
		return nil, err
	}

	if err := s.storage.Positions().SavePosition(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save position %s/%s: %w", accountID, symbol, err)
	}

	return updated, nil
}

// RefreshPrices resolves current prices for every active position in the
// account, revalues the positions, persists updated positions and quotes,
// and records a value snapshot for the day.
func (s *Service) RefreshPrices(ctx context.Context, accountID string) ([]*models.Position, error) {
	positions, err := s.storage.Positions().ListActivePositions(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions for %s: %w", accountID, err)
	}
	if len(positions) == 0 {
		return nil, nil
	}

	symbols := DistinctSymbols(positions)
	quotes := s.resolver.ResolvePrices(ctx, symbols)

	for _, p := range positions {
		quote, ok := quotes[models.NormalizeSymbol(p.Symbol)]
		if !ok {
			// Resolver guarantees total coverage; treat a miss as a bug.
			s.logger.Error().Str("symbol", p.Symbol).Msg("Resolver returned no quote for symbol")
			continue
		}
		fetchedAt := quote.FetchedAt
		p.CurrentPrice = quote.Price
		p.LastPricedAt = &fetchedAt
		p.PriceSource = quote.Source
		p.UpdatedAt = s.now()

		if err := s.storage.Positions().SavePosition(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to save position %s/%s: %w", accountID, p.Symbol, err)
		}
		if quote.Source != models.SourceEstimate {
			q := quote
			if err := s.storage.Quotes().SaveQuote(ctx, &q); err != nil {
				s.logger.Warn().Err(err).Str("symbol", p.Symbol).Msg("Failed to persist quote")
			}
		}
	}

	snapshot := &models.ValueSnapshot{
		AccountID: accountID,
		Date:      s.now().Truncate(24 * time.Hour),
		Value:     TotalValue(positions),
	}
	if err := s.storage.Snapshots().SaveSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn().Err(err).Str("account", accountID).Msg("Failed to record value snapshot")
	}

	s.logger.Info().
		Str("account", accountID).
		Int("positions", len(positions)).
		Float64("total_value", snapshot.Value).
		Msg("Prices refreshed")

	return positions, nil
}

// ComputePerformance derives a performance report from the account's stored
// value snapshots. An empty benchmark map yields an empty comparison map,
// not an error.
func (s *Service) ComputePerformance(ctx context.Context, accountID string, benchmarks map[string][]float64) (*models.PerformanceReport, error) {
	snapshots, err := s.storage.Snapshots().ListSnapshots(ctx, accountID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for %s: %w", accountID, err)
	}

	values := make([]float64, len(snapshots))
	for i, snap := range snapshots {
		values[i] = snap.Value
	}

	var daysHeld float64
	if len(snapshots) >= 2 {
		daysHeld = snapshots[len(snapshots)-1].Date.Sub(snapshots[0].Date).Hours() / 24
	}

	report := performance.Compute(values, benchmarks, performance.Options{
		DaysHeld: daysHeld,
	})
	report.AccountID = accountID
	return report, nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
