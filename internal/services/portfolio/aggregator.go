// Package portfolio maintains weighted-average-cost positions and runs
// price refresh cycles over them.
package portfolio

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

// Validation failures on lot input. These are the only errors in the engine
// surfaced to callers as operation-level failures; the store is never
// touched when one is returned.
var (
	ErrInvalidQuantity = errors.New("lot quantity must be positive")
	ErrInvalidUnitCost = errors.New("lot unit cost must be non-negative")
	ErrOversell        = errors.New("reduction exceeds position quantity")
	ErrInactive        = errors.New("position is inactive")
)

// ApplyLot merges a buy lot into an existing position, or creates a new one
// when existing is nil. The new average cost is the quantity-weighted mean
// of the old basis and the incoming lot, so total cost basis is preserved:
//
//	newQty × newAvgCost == oldQty × oldAvgCost + quantity × unitCost
func ApplyLot(existing *models.Position, accountID, symbol string, quantity, unitCost float64) (*models.Position, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if unitCost < 0 {
		return nil, ErrInvalidUnitCost
	}
	symbol = models.NormalizeSymbol(symbol)
	now := time.Now()

	if existing == nil || !existing.Active {
		return &models.Position{
			ID:          uuid.NewString(),
			AccountID:   accountID,
			Symbol:      symbol,
			Quantity:    quantity,
			AverageCost: unitCost,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}, nil
	}

	merged := *existing
	newQuantity := existing.Quantity + quantity
	merged.AverageCost = (existing.Quantity*existing.AverageCost + quantity*unitCost) / newQuantity
	merged.Quantity = newQuantity
	merged.UpdatedAt = now
	return &merged, nil
}

// ReduceLot sells quantity units out of a position. The average cost is
// unchanged — realized gains are the caller's concern. A reduction to
// exactly zero deactivates the position instead of leaving it with an
// undefined average cost.
func ReduceLot(existing *models.Position, quantity float64) (*models.Position, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if existing == nil || !existing.Active {
		return nil, ErrInactive
	}
	if quantity > existing.Quantity {
		return nil, ErrOversell
	}

	reduced := *existing
	reduced.Quantity = existing.Quantity - quantity
	reduced.UpdatedAt = time.Now()
	if reduced.Quantity == 0 {
		reduced.Active = false
	}
	return &reduced, nil
}
