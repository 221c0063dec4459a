package memory

import (
	"context"
	"sync"

	"moneybook/internal/core"
	"moneybook/internal/sheets"
)

// Store keeps exported snapshots in memory. It stands in for a spreadsheet
// when none is configured.
type Store struct {
	mu    sync.Mutex
	snaps []sheets.Snapshot
	limit int
}

var _ sheets.SnapshotWriter = (*Store)(nil)

// New keeps at most limit snapshots; limit < 1 keeps one.
func New(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{limit: limit}
}

func (s *Store) WriteSnapshot(ctx context.Context, snap sheets.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap.Transactions = append([]core.Transaction(nil), snap.Transactions...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	if len(s.snaps) > s.limit {
		s.snaps = s.snaps[len(s.snaps)-s.limit:]
	}
	return nil
}

// Latest returns the most recent snapshot.
func (s *Store) Latest() (sheets.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snaps) == 0 {
		return sheets.Snapshot{}, false
	}
	return s.snaps[len(s.snaps)-1], true
}

// Count returns how many snapshots are retained.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}
