package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	plannerout "compass/internal/modules/planner/port/out"
)

// FileSnapshotStore keeps the snapshot as a JSON document on disk. Writes go
// through a temporary file and a rename so a crash never leaves half a file.
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) plannerout.SnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (s *FileSnapshotStore) Load(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return payload, nil
}

func (s *FileSnapshotStore) Save(_ context.Context, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
