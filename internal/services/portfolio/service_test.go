package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// --- Mocks ---

type memPositionStore struct {
	positions map[string]*models.Position
	saves     int
}

func posKey(accountID, symbol string) string {
	return accountID + "/" + models.NormalizeSymbol(symbol)
}

func (m *memPositionStore) GetPosition(_ context.Context, accountID, symbol string) (*models.Position, error) {
	if p, ok := m.positions[posKey(accountID, symbol)]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *memPositionStore) ListActivePositions(_ context.Context, accountID string) ([]*models.Position, error) {
	var out []*models.Position
	for _, p := range m.positions {
		if p.AccountID == accountID && p.Active {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memPositionStore) SavePosition(_ context.Context, position *models.Position) error {
	m.saves++
	copied := *position
	m.positions[posKey(position.AccountID, position.Symbol)] = &copied
	return nil
}

type memQuoteStore struct {
	quotes map[string]*models.PriceQuote
}

func (m *memQuoteStore) GetQuote(_ context.Context, symbol string) (*models.PriceQuote, error) {
	if q, ok := m.quotes[models.NormalizeSymbol(symbol)]; ok {
		return q, nil
	}
	return nil, interfaces.ErrNotFound
}

func (m *memQuoteStore) SaveQuote(_ context.Context, quote *models.PriceQuote) error {
	m.quotes[models.NormalizeSymbol(quote.Symbol)] = quote
	return nil
}

func (m *memQuoteStore) ListQuotes(_ context.Context) ([]*models.PriceQuote, error) {
	var out []*models.PriceQuote
	for _, q := range m.quotes {
		out = append(out, q)
	}
	return out, nil
}

type memSnapshotStore struct {
	snapshots []*models.ValueSnapshot
}

func (m *memSnapshotStore) SaveSnapshot(_ context.Context, snapshot *models.ValueSnapshot) error {
	m.snapshots = append(m.snapshots, snapshot)
	return nil
}

func (m *memSnapshotStore) ListSnapshots(_ context.Context, accountID string, _ int) ([]*models.ValueSnapshot, error) {
	var out []*models.ValueSnapshot
	for _, s := range m.snapshots {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

type memStorage struct {
	positions *memPositionStore
	quotes    *memQuoteStore
	snapshots *memSnapshotStore
}

func newMemStorage() *memStorage {
	return &memStorage{
		positions: &memPositionStore{positions: make(map[string]*models.Position)},
		quotes:    &memQuoteStore{quotes: make(map[string]*models.PriceQuote)},
		snapshots: &memSnapshotStore{},
	}
}

func (m *memStorage) Positions() interfaces.PositionStore { return m.positions }
func (m *memStorage) Quotes() interfaces.QuoteStore       { return m.quotes }
func (m *memStorage) Snapshots() interfaces.SnapshotStore { return m.snapshots }
func (m *memStorage) Close() error                        { return nil }

type stubResolver struct {
	quotes map[string]models.PriceQuote
	batch  []string
}

func (r *stubResolver) ResolvePrices(_ context.Context, symbols []string) map[string]models.PriceQuote {
	r.batch = symbols
	out := make(map[string]models.PriceQuote, len(symbols))
	for _, s := range symbols {
		if q, ok := r.quotes[s]; ok {
			out[s] = q
		}
	}
	return out
}

func newTestService(storage *memStorage, resolver *stubResolver) *Service {
	return NewService(storage, resolver, common.NewSilentLogger())
}

// --- Tests ---

func TestService_ApplyLot_PersistsMergedPosition(t *testing.T) {
	storage := newMemStorage()
	svc := newTestService(storage, &stubResolver{})
	ctx := context.Background()

	_, err := svc.ApplyLot(ctx, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	p, err := svc.ApplyLot(ctx, "acct-1", "AAPL", 5, 160)
	require.NoError(t, err)
	assert.Equal(t, 15.0, p.Quantity)
	assert.InDelta(t, 153.3333, p.AverageCost, 0.001)

	stored, err := storage.positions.GetPosition(ctx, "acct-1", "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 15.0, stored.Quantity)
}

func TestService_ApplyLot_ValidationLeavesStoreUntouched(t *testing.T) {
	storage := newMemStorage()
	svc := newTestService(storage, &stubResolver{})

	_, err := svc.ApplyLot(context.Background(), "acct-1", "AAPL", -10, 150)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Zero(t, storage.positions.saves)
}

func TestService_ReduceLot_MissingPosition(t *testing.T) {
	storage := newMemStorage()
	svc := newTestService(storage, &stubResolver{})

	_, err := svc.ReduceLot(context.Background(), "acct-1", "AAPL", 5)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestService_RefreshPrices(t *testing.T) {
	storage := newMemStorage()
	now := time.Now()
	resolver := &stubResolver{quotes: map[string]models.PriceQuote{
		"AAPL": {Symbol: "AAPL", Price: 190, FetchedAt: now, Source: models.SourceLive},
		"MSFT": {Symbol: "MSFT", Price: 420, FetchedAt: now, Source: models.SourceEstimate},
	}}
	svc := newTestService(storage, resolver)
	ctx := context.Background()

	_, err := svc.ApplyLot(ctx, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)
	_, err = svc.ApplyLot(ctx, "acct-1", "MSFT", 2, 400)
	require.NoError(t, err)

	positions, err := svc.RefreshPrices(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, positions, 2)

	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, resolver.batch)

	bySymbol := map[string]*models.Position{}
	for _, p := range positions {
		bySymbol[p.Symbol] = p
	}
	assert.Equal(t, 10.0, bySymbol["AAPL"].Quantity)
	assert.Equal(t, 190.0, bySymbol["AAPL"].CurrentPrice)
	assert.Equal(t, models.SourceLive, bySymbol["AAPL"].PriceSource)
	assert.Equal(t, models.SourceEstimate, bySymbol["MSFT"].PriceSource)
	require.NotNil(t, bySymbol["AAPL"].LastPricedAt)

	// Snapshot records total market value: 10×190 + 2×420
	require.Len(t, storage.snapshots.snapshots, 1)
	assert.InDelta(t, 10*190+2*420.0, storage.snapshots.snapshots[0].Value, 1e-9)

	// Live quotes persisted, estimates not
	_, err = storage.quotes.GetQuote(ctx, "AAPL")
	assert.NoError(t, err)
	_, err = storage.quotes.GetQuote(ctx, "MSFT")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestService_RefreshPrices_NoPositions(t *testing.T) {
	storage := newMemStorage()
	svc := newTestService(storage, &stubResolver{})

	positions, err := svc.RefreshPrices(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Empty(t, positions)
	assert.Empty(t, storage.snapshots.snapshots)
}

func TestService_ComputePerformance(t *testing.T) {
	storage := newMemStorage()
	svc := newTestService(storage, &stubResolver{})
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i, v := range []float64{100000, 101000, 99500, 102000} {
		err := storage.snapshots.SaveSnapshot(ctx, &models.ValueSnapshot{
			AccountID: "acct-1",
			Date:      base.AddDate(0, 0, i),
			Value:     v,
		})
		require.NoError(t, err)
	}

	report, err := svc.ComputePerformance(ctx, "acct-1", map[string][]float64{
		"SPX": {0.01, -0.0149, 0.0251},
	})
	require.NoError(t, err)

	assert.Equal(t, "acct-1", report.AccountID)
	assert.InDelta(t, 2.0, report.TotalReturnPct, 1e-9)
	assert.Contains(t, report.VsBenchmarks, "SPX")
	assert.NotZero(t, report.VolatilityPct)
}

func TestService_ComputePerformance_NoSnapshots(t *testing.T) {
	storage := newMemStorage()
	svc := newTestService(storage, &stubResolver{})

	report, err := svc.ComputePerformance(context.Background(), "acct-1", nil)
	require.NoError(t, err)
	assert.Zero(t, report.TotalReturnPct)
	assert.Equal(t, 1.0, report.Beta)
}
