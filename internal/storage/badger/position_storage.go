package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

type positionStorage struct {
	store  *Store
	logger *common.Logger
}

// positionKey builds the storage key for an (account, symbol) pair.
func positionKey(accountID, symbol string) string {
	return accountID + "/" + models.NormalizeSymbol(symbol)
}

func (s *positionStorage) GetPosition(_ context.Context, accountID, symbol string) (*models.Position, error) {
	var position models.Position
	err := s.store.db.Get(positionKey(accountID, symbol), &position)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get position %s/%s: %w", accountID, symbol, err)
	}
	return &position, nil
}

func (s *positionStorage) ListActivePositions(_ context.Context, accountID string) ([]*models.Position, error) {
	var positions []models.Position
	query := badgerhold.Where("AccountID").Eq(accountID).And("Active").Eq(true)
	if err := s.store.db.Find(&positions, query); err != nil {
		return nil, fmt.Errorf("failed to list positions for %s: %w", accountID, err)
	}
	result := make([]*models.Position, len(positions))
	for i := range positions {
		result[i] = &positions[i]
	}
	return result, nil
}

func (s *positionStorage) SavePosition(_ context.Context, position *models.Position) error {
	if position.UpdatedAt.IsZero() {
		position.UpdatedAt = time.Now()
	}
	if position.CreatedAt.IsZero() {
		position.CreatedAt = position.UpdatedAt
	}

	key := positionKey(position.AccountID, position.Symbol)
	if err := s.store.db.Upsert(key, position); err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	s.logger.Debug().Str("key", key).Msg("Position saved")
	return nil
}
