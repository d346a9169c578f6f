package out

import (
	"context"

	"compass/internal/modules/planner/domain"
)

// SnapshotStore persists the whole planner state as one opaque blob. Load
// returns nil without error when nothing has been saved yet.
type SnapshotStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}

type JournalWriter interface {
	WriteDay(ctx context.Context, entry domain.JournalEntry) (string, error)
}
