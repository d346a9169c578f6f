package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"compass/internal/platform/calendar"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type wireSnapshot struct {
	Version  int                `json:"version"`
	Days     map[string]wireDay `json:"days"`
	Notes    []json.RawMessage  `json:"notes"`
	Settings wireSettings       `json:"settings"`
}

type wireSettings struct {
	LastOpenedDate       *string `json:"lastOpenedDate"`
	RemindersEnabled     bool    `json:"remindersEnabled"`
	ReminderTime         string  `json:"reminderTime"`
	LastReminderSentDate string  `json:"lastReminderSentDate"`
	BestStreak           int     `json:"bestStreak"`
}

type wireDay struct {
	Kickoff       string     `json:"kickoff"`
	Tasks         []wireTask `json:"tasks"`
	Recap         wireRecap  `json:"recap"`
	RolledForward bool       `json:"rolledForward"`
}

type wireRecap struct {
	Summary      string         `json:"summary"`
	DelayReasons orderedReasons `json:"delayReasons"`
}

type wireTask struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	Context       string `json:"context"`
	MustDo        bool   `json:"mustDo"`
	Minutes       int    `json:"minutes"`
	Completed     bool   `json:"completed"`
	CreatedAt     string `json:"createdAt"`
	CompletedAt   string `json:"completedAt"`
	RolledFrom    string `json:"rolledFrom"`
	CarrySourceID string `json:"carrySourceId"`
	Source        string `json:"source"`
}

// orderedReasons encodes as a JSON object whose keys keep slice order.
type orderedReasons []DelayReason

func (r orderedReasons) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, item := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.TaskID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(item.Reason)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func EncodeSnapshot(state *State) ([]byte, error) {
	out := wireSnapshot{
		Version: SchemaVersion,
		Days:    make(map[string]wireDay, len(state.Days)),
		Notes:   state.Notes,
		Settings: wireSettings{
			RemindersEnabled:     state.Settings.RemindersEnabled,
			ReminderTime:         state.Settings.ReminderTime,
			LastReminderSentDate: state.Settings.LastReminderSentDate,
			BestStreak:           state.Settings.BestStreak,
		},
	}
	if out.Notes == nil {
		out.Notes = []json.RawMessage{}
	}
	if state.Settings.LastOpenedDate != "" {
		last := state.Settings.LastOpenedDate
		out.Settings.LastOpenedDate = &last
	}
	for key, day := range state.Days {
		if day == nil {
			continue
		}
		out.Days[key] = encodeDay(*day)
	}
	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return payload, nil
}

func encodeDay(day Day) wireDay {
	tasks := make([]wireTask, 0, len(day.Tasks))
	for _, task := range day.Tasks {
		tasks = append(tasks, wireTask{
			ID:            task.ID,
			Text:          task.Text,
			Context:       string(task.Context),
			MustDo:        task.MustDo,
			Minutes:       task.Minutes,
			Completed:     task.Completed,
			CreatedAt:     formatTimestamp(task.CreatedAt),
			CompletedAt:   formatTimestamp(task.CompletedAt),
			RolledFrom:    task.RolledFrom,
			CarrySourceID: task.CarrySourceID,
			Source:        string(task.Source),
		})
	}
	return wireDay{
		Kickoff:       day.Kickoff,
		Tasks:         tasks,
		Recap:         wireRecap{Summary: day.Recap.Summary, DelayReasons: orderedReasons(day.Recap.DelayReasons)},
		RolledForward: day.RolledForward,
	}
}

// DecodeSnapshot never fails: anything missing or malformed is replaced by
// its default, field by field, so the rest of the planner can trust the shape.
func DecodeSnapshot(raw []byte) *State {
	state := NewState()
	if len(bytes.TrimSpace(raw)) == 0 {
		return state
	}
	top := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &top); err != nil || top == nil {
		return state
	}

	rawDays := map[string]json.RawMessage{}
	if err := json.Unmarshal(top["days"], &rawDays); err == nil {
		for key, value := range rawDays {
			if !calendar.IsValidKey(key) {
				continue
			}
			state.Days[key] = decodeDay(key, value)
		}
	}

	notes := []json.RawMessage{}
	if err := json.Unmarshal(top["notes"], &notes); err == nil && notes != nil {
		state.Notes = notes
	}

	state.Settings = decodeSettings(top["settings"])
	return state
}

func decodeSettings(raw json.RawMessage) Settings {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Settings{}
	}
	settings := Settings{RemindersEnabled: truthy(fields["remindersEnabled"])}
	settings.LastOpenedDate, _ = asString(fields["lastOpenedDate"])
	settings.ReminderTime, _ = asString(fields["reminderTime"])
	settings.LastReminderSentDate, _ = asString(fields["lastReminderSentDate"])
	if streak, ok := asNumber(fields["bestStreak"]); ok && streak > 0 && streak < math.MaxInt32 {
		settings.BestStreak = int(streak)
	}
	return settings
}

func decodeDay(key string, raw json.RawMessage) *Day {
	day := &Day{Tasks: []Task{}, Recap: Recap{DelayReasons: []DelayReason{}}}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return day
	}
	day.Kickoff, _ = asString(fields["kickoff"])
	if err := json.Unmarshal(fields["rolledForward"], &day.RolledForward); err != nil {
		day.RolledForward = false
	}

	items := []json.RawMessage{}
	if err := json.Unmarshal(fields["tasks"], &items); err == nil {
		for i, item := range items {
			if task, ok := decodeTask(key, i, item); ok {
				day.Tasks = append(day.Tasks, task)
			}
		}
	}

	recap := map[string]json.RawMessage{}
	if err := json.Unmarshal(fields["recap"], &recap); err == nil && recap != nil {
		day.Recap.Summary, _ = asString(recap["summary"])
		day.Recap.DelayReasons = decodeDelayReasons(recap["delayReasons"])
	}
	return day
}

func decodeTask(dayKey string, index int, raw json.RawMessage) (Task, bool) {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Task{}, false
	}
	task := Task{
		MustDo:    truthy(fields["mustDo"]),
		Completed: truthy(fields["completed"]),
		Minutes:   decodeMinutes(fields["minutes"]),
	}
	task.ID, _ = asString(fields["id"])
	if strings.TrimSpace(task.ID) == "" {
		task.ID = fmt.Sprintf("t_%s_%d", dayKey, index)
	}
	task.Text, _ = asString(fields["text"])
	contextRaw, _ := asString(fields["context"])
	task.Context = ParseContext(contextRaw)
	sourceRaw, _ := asString(fields["source"])
	task.Source = ParseSource(sourceRaw)
	task.RolledFrom, _ = asString(fields["rolledFrom"])
	task.CarrySourceID, _ = asString(fields["carrySourceId"])
	task.CreatedAt = decodeTimestamp(fields["createdAt"])
	if task.Completed {
		task.CompletedAt = decodeTimestamp(fields["completedAt"])
	}
	return task, true
}

func decodeDelayReasons(raw json.RawMessage) []DelayReason {
	out := []DelayReason{}
	if len(raw) == 0 {
		return out
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return out
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return out
	}
	position := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return out
		}
		taskID, ok := keyTok.(string)
		if !ok {
			return out
		}
		value := json.RawMessage{}
		if err := dec.Decode(&value); err != nil {
			return out
		}
		reason, ok := asString(value)
		if !ok || reason == "" {
			continue
		}
		if idx, seen := position[taskID]; seen {
			out[idx].Reason = reason
			continue
		}
		position[taskID] = len(out)
		out = append(out, DelayReason{TaskID: taskID, Reason: reason})
	}
	return out
}

func decodeMinutes(raw json.RawMessage) int {
	var value any
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return DefaultMinutes
	}
	switch v := value.(type) {
	case float64:
		return NormalizeMinutes(v)
	case nil:
		return NormalizeMinutes(0)
	case bool:
		if v {
			return NormalizeMinutes(1)
		}
		return NormalizeMinutes(0)
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return NormalizeMinutes(0)
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return DefaultMinutes
		}
		return NormalizeMinutes(parsed)
	default:
		return DefaultMinutes
	}
}

func decodeTimestamp(raw json.RawMessage) time.Time {
	value, ok := asString(raw)
	if !ok || value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func asString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", false
	}
	return value, true
}

func asNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, false
	}
	return value, true
}

// truthy follows loose boolean coercion: null, false, 0, "" are false; every
// other present value is true.
func truthy(raw json.RawMessage) bool {
	var value any
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return false
	}
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
