package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	plannerout "compass/internal/modules/planner/adapter/out"
	"compass/internal/modules/planner/domain"
	"compass/internal/platform/markdown"
)

func TestSQLiteSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), ".compass", "compass.db")
	store, err := plannerout.NewSQLiteSnapshotStore(dbPath)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	ctx := context.Background()

	empty, err := store.Load(ctx)
	if err != nil || empty != nil {
		t.Fatalf("fresh store must load nothing: %v %q", err, empty)
	}
	for _, payload := range []string{`{"version":1}`, `{"version":1,"days":{}}`} {
		if err := store.Save(ctx, []byte(payload)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"version":1,"days":{}}` {
		t.Fatalf("expected last write to win, got %s", got)
	}

	reopened, err := plannerout.NewSQLiteSnapshotStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	again, err := reopened.Load(ctx)
	if err != nil || string(again) != string(got) {
		t.Fatalf("reopened store lost data: %v %s", err, again)
	}
}

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".compass", "state.json")
	store := plannerout.NewFileSnapshotStore(path)
	ctx := context.Background()

	if payload, err := store.Load(ctx); err != nil || payload != nil {
		t.Fatalf("missing file must load nothing: %v %q", err, payload)
	}
	if err := store.Save(ctx, []byte(`{"version":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, err := store.Load(ctx)
	if err != nil || string(payload) != `{"version":1}` {
		t.Fatalf("load: %v %s", err, payload)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temporary file must be renamed away: %v", err)
	}
}

func TestVaultJournalWriterPreservesUserText(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writer := plannerout.NewVaultJournalWriter(root)
	ctx := context.Background()
	day := domain.Day{
		Kickoff: "Deep work",
		Tasks: []domain.Task{
			{ID: "a", Text: "Draft intro", Context: domain.ContextWork, Minutes: 30, MustDo: true, Completed: true, CreatedAt: time.Date(2024, 1, 4, 8, 0, 0, 0, time.UTC)},
			{ID: "b", Text: "Groceries", Context: domain.ContextErrands, Minutes: 20, RolledFrom: "2024-01-03"},
		},
		Recap: domain.Recap{Summary: "Good focus", DelayReasons: []domain.DelayReason{{TaskID: "b", Reason: "rain"}}},
	}

	path, err := writer.WriteDay(ctx, domain.JournalEntry{Date: "2024-01-04", Day: day, Successful: true})
	if err != nil {
		t.Fatalf("write day: %v", err)
	}
	if path != filepath.Join(root, "2024", "01", "04.md") {
		t.Fatalf("unexpected path %s", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(content)
	for _, want := range []string{"tasks_total: 2", "tasks_completed: 1", "successful: true", "- [x] Draft intro (Work, 30 min, must-do)", "- [ ] Groceries (Errands, 20 min, from 2024-01-03)", "- Groceries: rain"} {
		if !strings.Contains(note, want) {
			t.Fatalf("note missing %q:\n%s", want, note)
		}
	}

	if err := os.WriteFile(path, []byte(note+"\nMy own reflection.\n"), 0o644); err != nil {
		t.Fatalf("append user text: %v", err)
	}
	day.Tasks[1].Completed = true
	if _, err := writer.WriteDay(ctx, domain.JournalEntry{Date: "2024-01-04", Day: day, Successful: true}); err != nil {
		t.Fatalf("rewrite day: %v", err)
	}
	content, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reread note: %v", err)
	}
	meta, body, err := markdown.SplitFrontmatter(string(content))
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if meta["tasks_completed"] != 2 || meta["date"] != "2024-01-04" {
		t.Fatalf("frontmatter not refreshed: %v", meta)
	}
	if !strings.Contains(body, "My own reflection.") || strings.Count(body, "<!-- compass:day:start -->") != 1 {
		t.Fatalf("user text lost or block duplicated:\n%s", body)
	}
	if !strings.Contains(body, "- [x] Groceries") {
		t.Fatalf("managed block not regenerated:\n%s", body)
	}
}

func TestUnavailableSnapshotStoreLoadsNothingAndFailsSaves(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := plannerout.NewUnavailableSnapshotStore(os.ErrPermission)
	payload, err := store.Load(ctx)
	if err != nil || payload != nil {
		t.Fatalf("unavailable store must load nothing: %v %q", err, payload)
	}
	if err := store.Save(ctx, []byte(`{}`)); !errors.Is(err, os.ErrPermission) {
		t.Fatalf("save must fail with the cause, got %v", err)
	}
}
