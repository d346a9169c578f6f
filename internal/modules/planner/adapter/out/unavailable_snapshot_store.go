package out

import (
	"context"
	"fmt"

	plannerout "compass/internal/modules/planner/port/out"
)

// UnavailableSnapshotStore stands in for a store that could not be opened.
// Load reports no snapshot so the planner starts from defaults; Save keeps
// failing with the original cause so every mutation carries a warning.
type UnavailableSnapshotStore struct {
	cause error
}

func NewUnavailableSnapshotStore(cause error) plannerout.SnapshotStore {
	return UnavailableSnapshotStore{cause: cause}
}

func (s UnavailableSnapshotStore) Load(context.Context) ([]byte, error) {
	return nil, nil
}

func (s UnavailableSnapshotStore) Save(context.Context, []byte) error {
	return fmt.Errorf("snapshot store unavailable: %w", s.cause)
}
