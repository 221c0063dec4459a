package sheets

import "context"

// SnapshotWriter replaces the exported copy of the ledger with snap.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, snap Snapshot) error
}
