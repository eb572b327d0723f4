package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/StealthyScripter/TradingSystem-sub000/internal/common"
	"github.com/StealthyScripter/TradingSystem-sub000/internal/models"
)

type snapshotStorage struct {
	store  *Store
	logger *common.Logger
}

func snapshotKey(accountID string, snapshot *models.ValueSnapshot) string {
	return accountID + "/" + snapshot.Date.Format("2006-01-02")
}

func (s *snapshotStorage) SaveSnapshot(_ context.Context, snapshot *models.ValueSnapshot) error {
	key := snapshotKey(snapshot.AccountID, snapshot)
	if err := s.store.db.Upsert(key, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *snapshotStorage) ListSnapshots(_ context.Context, accountID string, limit int) ([]*models.ValueSnapshot, error) {
	var snapshots []models.ValueSnapshot
	query := badgerhold.Where("AccountID").Eq(accountID)
	if err := s.store.db.Find(&snapshots, query); err != nil {
		return nil, fmt.Errorf("failed to list snapshots for %s: %w", accountID, err)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date.Before(snapshots[j].Date)
	})

	// limit keeps the most recent N, still in chronological order
	if limit > 0 && len(snapshots) > limit {
		snapshots = snapshots[len(snapshots)-limit:]
	}

	result := make([]*models.ValueSnapshot, len(snapshots))
	for i := range snapshots {
		result[i] = &snapshots[i]
	}
	return result, nil
}
