package badger

import (
	"context"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

type quoteStorage struct {
	store  *Store
	logger *common.Logger
}

func (s *quoteStorage) GetQuote(_ context.Context, symbol string) (*models.PriceQuote, error) {
	var quote models.PriceQuote
	err := s.store.db.Get(models.NormalizeSymbol(symbol), &quote)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	return &quote, nil
}

func (s *quoteStorage) SaveQuote(_ context.Context, quote *models.PriceQuote) error {
	if !quote.Valid() {
		return fmt.Errorf("refusing to persist invalid quote for %s", quote.Symbol)
	}
	quote.Symbol = models.NormalizeSymbol(quote.Symbol)
	if err := s.store.db.Upsert(quote.Symbol, quote); err != nil {
		return fmt.Errorf("failed to save quote for %s: %w", quote.Symbol, err)
	}
	return nil
}

func (s *quoteStorage) ListQuotes(_ context.Context) ([]*models.PriceQuote, error) {
	var quotes []models.PriceQuote
	if err := s.store.db.Find(&quotes, nil); err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	result := make([]*models.PriceQuote, len(quotes))
	for i := range quotes {
		result[i] = &quotes[i]
	}
	return result, nil
}
