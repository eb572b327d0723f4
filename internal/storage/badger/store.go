// Package badger provides BadgerHold-based storage for positions, quotes
// and value snapshots.
package badger

import (
	"fmt"
	"os"

	"github.com/timshannon/badgerhold/v4"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/interfaces"
)

// Store wraps a BadgerHold database connection and the engine's stores.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger

	positions *positionStorage
	quotes    *quoteStorage
	snapshots *snapshotStorage
}

// NewStore creates a new BadgerHold store at the given directory path.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create badger directory %s: %w", path, err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = path
	options.ValueDir = path
	options.Logger = nil // Disable default badger logger

	db, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	logger.Debug().Str("path", path).Msg("BadgerHold store opened")

	s := &Store{db: db, logger: logger}
	s.positions = &positionStorage{store: s, logger: logger}
	s.quotes = &quoteStorage{store: s, logger: logger}
	s.snapshots = &snapshotStorage{store: s, logger: logger}
	return s, nil
}

// Positions returns the position store.
func (s *Store) Positions() interfaces.PositionStore { return s.positions }

// Quotes returns the quote store.
func (s *Store) Quotes() interfaces.QuoteStore { return s.quotes }

// Snapshots returns the snapshot store.
func (s *Store) Snapshots() interfaces.SnapshotStore { return s.snapshots }

// Close closes the BadgerHold database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure Store implements StorageManager
var _ interfaces.StorageManager = (*Store)(nil)
