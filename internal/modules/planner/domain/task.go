package domain

import (
	"math"
	"strings"
	"time"
)

const (
	DefaultMinutes = 25
	MinMinutes     = 5
	MaxMinutes     = 300
	MustDoSoftCap  = 3
)

type Context string

const (
	ContextHome    Context = "Home"
	ContextWork    Context = "Work"
	ContextErrands Context = "Errands"
)

// Contexts lists every context in reporting order.
var Contexts = []Context{ContextHome, ContextWork, ContextErrands}

func (c Context) Valid() bool {
	switch c {
	case ContextHome, ContextWork, ContextErrands:
		return true
	default:
		return false
	}
}

// ParseContext falls back to Home for anything unknown.
func ParseContext(raw string) Context {
	c := Context(raw)
	if c.Valid() {
		return c
	}
	for _, known := range Contexts {
		if strings.EqualFold(string(known), strings.TrimSpace(raw)) {
			return known
		}
	}
	return ContextHome
}

type Source string

const (
	SourceTyped    Source = "typed"
	SourceQuick    Source = "quick"
	SourceVoice    Source = "voice"
	SourceRollover Source = "rollover"
)

func ParseSource(raw string) Source {
	switch s := Source(strings.ToLower(strings.TrimSpace(raw))); s {
	case SourceTyped, SourceQuick, SourceVoice, SourceRollover:
		return s
	default:
		return SourceTyped
	}
}

type Task struct {
	ID            string
	Text          string
	Context       Context
	MustDo        bool
	Minutes       int
	Completed     bool
	CreatedAt     time.Time
	CompletedAt   time.Time
	RolledFrom    string
	CarrySourceID string
	Source        Source
}

// CarryID is the identity of the task's carry chain.
func (t Task) CarryID() string {
	if t.CarrySourceID != "" {
		return t.CarrySourceID
	}
	return t.ID
}

// SetCompleted keeps CompletedAt empty whenever the task is pending.
func (t *Task) SetCompleted(completed bool, now time.Time) {
	t.Completed = completed
	if completed {
		t.CompletedAt = now
		return
	}
	t.CompletedAt = time.Time{}
}

func NormalizeMinutes(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return DefaultMinutes
	}
	rounded := math.Floor(value + 0.5)
	if rounded < MinMinutes {
		return MinMinutes
	}
	if rounded > MaxMinutes {
		return MaxMinutes
	}
	return int(rounded)
}

// CleanText trims and collapses inner whitespace runs to single spaces.
func CleanText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
