package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

func TestApplyLot_CreatesPosition(t *testing.T) {
	p, err := ApplyLot(nil, "acct-1", "aapl", 10, 150)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "acct-1", p.AccountID)
	assert.Equal(t, "AAPL", p.Symbol)
	assert.Equal(t, 10.0, p.Quantity)
	assert.Equal(t, 150.0, p.AverageCost)
	assert.True(t, p.Active)
}

func TestApplyLot_WeightedAverageCost(t *testing.T) {
	p, err := ApplyLot(nil, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	p, err = ApplyLot(p, "acct-1", "AAPL", 5, 160)
	require.NoError(t, err)

	assert.Equal(t, 15.0, p.Quantity)
	assert.InDelta(t, 153.3333, p.AverageCost, 0.001)
}

func TestApplyLot_PreservesCostBasis(t *testing.T) {
	lots := []struct{ quantity, unitCost float64 }{
		{10, 150}, {5, 160}, {0.5, 91.25}, {100, 3.17},
	}

	var p *models.Position
	wantBasis := 0.0
	for _, lot := range lots {
		var err error
		p, err = ApplyLot(p, "acct-1", "AAPL", lot.quantity, lot.unitCost)
		require.NoError(t, err)
		wantBasis += lot.quantity * lot.unitCost
		assert.InDelta(t, wantBasis, p.Quantity*p.AverageCost, 1e-6)
	}
}

func TestApplyLot_Validation(t *testing.T) {
	_, err := ApplyLot(nil, "acct-1", "AAPL", 0, 150)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ApplyLot(nil, "acct-1", "AAPL", -5, 150)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ApplyLot(nil, "acct-1", "AAPL", 5, -1)
	assert.ErrorIs(t, err, ErrInvalidUnitCost)
}

func TestApplyLot_ZeroUnitCostAllowed(t *testing.T) {
	// Free shares (grants, splits) carry zero cost
	p, err := ApplyLot(nil, "acct-1", "AAPL", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.AverageCost)
}

func TestApplyLot_InactivePositionStartsFresh(t *testing.T) {
	p, err := ApplyLot(nil, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	p, err = ReduceLot(p, 10)
	require.NoError(t, err)
	require.False(t, p.Active)

	// A new lot after a full exit reopens with its own cost basis
	p, err = ApplyLot(p, "acct-1", "AAPL", 4, 200)
	require.NoError(t, err)
	assert.True(t, p.Active)
	assert.Equal(t, 4.0, p.Quantity)
	assert.Equal(t, 200.0, p.AverageCost)
}

func TestApplyLot_DoesNotMutateExisting(t *testing.T) {
	p1, err := ApplyLot(nil, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	_, err = ApplyLot(p1, "acct-1", "AAPL", 5, 160)
	require.NoError(t, err)

	assert.Equal(t, 10.0, p1.Quantity)
	assert.Equal(t, 150.0, p1.AverageCost)
}

func TestReduceLot(t *testing.T) {
	p, err := ApplyLot(nil, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	p, err = ReduceLot(p, 4)
	require.NoError(t, err)
	assert.Equal(t, 6.0, p.Quantity)
	assert.Equal(t, 150.0, p.AverageCost) // unchanged on sell
	assert.True(t, p.Active)
}

func TestReduceLot_ToZeroDeactivates(t *testing.T) {
	p, err := ApplyLot(nil, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	p, err = ReduceLot(p, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Quantity)
	assert.False(t, p.Active, "position reduced to zero must be deactivated, not destroyed")
}

func TestReduceLot_Validation(t *testing.T) {
	p, err := ApplyLot(nil, "acct-1", "AAPL", 10, 150)
	require.NoError(t, err)

	_, err = ReduceLot(p, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ReduceLot(p, 11)
	assert.ErrorIs(t, err, ErrOversell)

	_, err = ReduceLot(nil, 5)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestTotalValue(t *testing.T) {
	positions := []*models.Position{
		{Symbol: "AAPL", Quantity: 10, CurrentPrice: 190, Active: true},
		{Symbol: "MSFT", Quantity: 5, CurrentPrice: 420, Active: true},
		{Symbol: "OLD", Quantity: 100, CurrentPrice: 50, Active: false}, // excluded
		{Symbol: "NEW", Quantity: 3, Active: true},                     // never priced
		nil,
	}
	assert.InDelta(t, 10*190+5*420.0, TotalValue(positions), 1e-9)
}

func TestDistinctSymbols(t *testing.T) {
	positions := []*models.Position{
		{Symbol: "aapl", Active: true},
		{Symbol: "AAPL", Active: true},
		{Symbol: "MSFT", Active: true},
		{Symbol: "GONE", Active: false},
	}
	assert.Equal(t, []string{"AAPL", "MSFT"}, DistinctSymbols(positions))
}
