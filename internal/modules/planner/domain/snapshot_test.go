package domain_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"compass/internal/modules/planner/domain"
)

func TestDecodeSnapshotDegradesToDefaults(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "not json", "[1,2]", "null", `"text"`, "{}"} {
		state := domain.DecodeSnapshot([]byte(raw))
		if state.Version != domain.SchemaVersion || state.Days == nil || state.Notes == nil {
			t.Fatalf("%q: expected default state, got %+v", raw, state)
		}
		if state.Settings != (domain.Settings{}) {
			t.Fatalf("%q: expected zero settings, got %+v", raw, state.Settings)
		}
	}
}

func TestDecodeSnapshotNormalizesFieldByField(t *testing.T) {
	t.Parallel()
	raw := `{
  "version": 7,
  "extra": {"ignored": true},
  "notes": {"not": "an array"},
  "settings": {"lastOpenedDate": 42, "remindersEnabled": "yes", "reminderTime": "08:30", "bestStreak": -3},
  "days": {
    "not-a-key": {"tasks": []},
    "2024-01-01": {"kickoff": 5, "tasks": "nope", "recap": "bad", "rolledForward": "true"},
    "2024-01-02": {
      "kickoff": "Deep work",
      "rolledForward": true,
      "recap": {"summary": "ok", "delayReasons": {"t2": "Waiting", "t9": 4, "t1": "Tired"}},
      "tasks": [
        7,
        {"id": "t1", "text": "Draft", "context": "Garden", "mustDo": 1, "minutes": "400", "completed": false, "completedAt": "2024-01-02T10:00:00.000Z", "source": "voice"},
        {"text": "No id", "minutes": null, "completed": true, "completedAt": "2024-01-02T11:30:00.000Z", "createdAt": "bad"}
      ]
    }
  }
}`
	state := domain.DecodeSnapshot([]byte(raw))

	if len(state.Notes) != 0 {
		t.Fatalf("non-array notes must become empty")
	}
	if state.Settings.LastOpenedDate != "" || !state.Settings.RemindersEnabled || state.Settings.ReminderTime != "08:30" || state.Settings.BestStreak != 0 {
		t.Fatalf("unexpected settings %+v", state.Settings)
	}
	if _, ok := state.Days["not-a-key"]; ok {
		t.Fatalf("invalid day keys must be dropped")
	}

	broken := state.Days["2024-01-01"]
	if broken.Kickoff != "" || len(broken.Tasks) != 0 || broken.RolledForward || broken.Recap.Summary != "" {
		t.Fatalf("malformed day must degrade to defaults: %+v", broken)
	}

	day := state.Days["2024-01-02"]
	if day.Kickoff != "Deep work" || !day.RolledForward || day.Recap.Summary != "ok" {
		t.Fatalf("valid fields lost: %+v", day)
	}
	if len(day.Recap.DelayReasons) != 2 || day.Recap.DelayReasons[0].TaskID != "t2" || day.Recap.DelayReasons[1].TaskID != "t1" {
		t.Fatalf("delay reasons must keep document order and drop non-strings: %+v", day.Recap.DelayReasons)
	}
	if len(day.Tasks) != 2 {
		t.Fatalf("non-object task entries must be dropped, got %d", len(day.Tasks))
	}
	first := day.Tasks[0]
	if first.Context != domain.ContextHome || !first.MustDo || first.Minutes != 300 || first.Source != domain.SourceVoice {
		t.Fatalf("task fields not normalized: %+v", first)
	}
	if !first.CompletedAt.IsZero() {
		t.Fatalf("pending task must not keep completedAt")
	}
	second := day.Tasks[1]
	if second.ID != "t_2024-01-02_2" || second.Minutes != 5 || !second.CreatedAt.IsZero() || second.Source != domain.SourceTyped {
		t.Fatalf("second task not normalized: %+v", second)
	}
	if want := time.Date(2024, 1, 2, 11, 30, 0, 0, time.UTC); !second.CompletedAt.Equal(want) {
		t.Fatalf("completedAt not parsed: %s", second.CompletedAt)
	}
}

func TestDecodeSnapshotClampsHugeMinutesToMaximum(t *testing.T) {
	t.Parallel()
	raw := `{"days": {"2024-01-02": {"tasks": [
    {"id": "a", "text": "Huge", "minutes": 1e20},
    {"id": "b", "text": "Huge string", "minutes": "1e300"},
    {"id": "c", "text": "Negative", "minutes": -1e20}
  ]}}}`
	day := domain.DecodeSnapshot([]byte(raw)).Days["2024-01-02"]
	if len(day.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(day.Tasks))
	}
	for i, want := range []int{300, 300, 5} {
		if got := day.Tasks[i].Minutes; got != want {
			t.Fatalf("task %s: expected %d minutes, got %d", day.Tasks[i].ID, want, got)
		}
	}
}

func TestEncodeDecodeRoundTripKeepsNotesAndReasonOrder(t *testing.T) {
	t.Parallel()
	state := domain.NewState()
	state.Notes = []json.RawMessage{json.RawMessage(`{"id":"n1","title":"Ideas","pinned":true}`)}
	state.Settings = domain.Settings{LastOpenedDate: "2024-01-02", RemindersEnabled: true, ReminderTime: "07:35", BestStreak: 4}
	day := state.Days.EnsureDay("2024-01-02")
	created := time.Date(2024, 1, 2, 7, 0, 0, 123000000, time.UTC)
	day.Tasks = append(day.Tasks, domain.Task{ID: "z", Text: "Plan", Context: domain.ContextWork, Minutes: 30, CreatedAt: created, Source: domain.SourceQuick})
	day.Recap.SetDelayReason("z", "meetings")
	day.Recap.SetDelayReason("a", "energy")

	payload, err := domain.EncodeSnapshot(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := string(payload)
	if !strings.Contains(text, `"createdAt": "2024-01-02T07:00:00.123Z"`) || !strings.Contains(text, `"completedAt": ""`) {
		t.Fatalf("unexpected timestamp encoding:\n%s", text)
	}
	if strings.Index(text, `"z": "meetings"`) > strings.Index(text, `"a": "energy"`) {
		t.Fatalf("delay reasons must encode in insertion order:\n%s", text)
	}

	decoded := domain.DecodeSnapshot(payload)
	if decoded.Settings != state.Settings {
		t.Fatalf("settings changed: %+v", decoded.Settings)
	}
	if len(decoded.Notes) != 1 || !strings.Contains(string(decoded.Notes[0]), `"Ideas"`) {
		t.Fatalf("notes not preserved: %s", decoded.Notes)
	}
	got := decoded.Days["2024-01-02"]
	if got.Tasks[0].ID != "z" || !got.Tasks[0].CreatedAt.Equal(created) || got.Tasks[0].Source != domain.SourceQuick {
		t.Fatalf("task changed: %+v", got.Tasks[0])
	}
	if got.Recap.DelayReasons[0].TaskID != "z" || got.Recap.DelayReasons[1].TaskID != "a" {
		t.Fatalf("reason order lost: %+v", got.Recap.DelayReasons)
	}

	empty, err := domain.EncodeSnapshot(domain.NewState())
	if err != nil {
		t.Fatalf("encode empty: %v", err)
	}
	if !strings.Contains(string(empty), `"lastOpenedDate": null`) {
		t.Fatalf("empty last opened date must encode as null:\n%s", empty)
	}
}
