package service

import (
	"context"
	"fmt"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"compass/internal/modules/planner/domain"
	plannerout "compass/internal/modules/planner/port/out"
	"compass/internal/platform/calendar"
	"compass/internal/platform/clock"
	"compass/internal/platform/id"
)

type PlannerService struct {
	clock   clock.Clock
	idGen   id.Generator
	store   plannerout.SnapshotStore
	journal plannerout.JournalWriter
	logger  hclog.Logger
}

func NewPlannerService(clock clock.Clock, idGen id.Generator, store plannerout.SnapshotStore, journal plannerout.JournalWriter, logger hclog.Logger) *PlannerService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PlannerService{clock: clock, idGen: idGen, store: store, journal: journal, logger: logger.Named("planner")}
}

func (s *PlannerService) Now() time.Time {
	return s.clock.Now()
}

func (s *PlannerService) Today() string {
	return calendar.Key(s.clock.Now())
}

func (s *PlannerService) Stamp() domain.Stamp {
	return domain.Stamp{NewID: s.idGen.New, Now: s.clock.Now()}
}

// Load reads the stored snapshot. A missing, unreadable or malformed blob
// yields a default state; load never fails.
func (s *PlannerService) Load(ctx context.Context) *domain.State {
	if s.store == nil {
		return domain.NewState()
	}
	payload, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("load snapshot failed, starting from defaults", "error", err)
		return domain.NewState()
	}
	state := domain.DecodeSnapshot(payload)
	s.logger.Debug("snapshot loaded", "days", len(state.Days), "bytes", len(payload))
	return state
}

// Persist saves the whole state. A failure is logged and returned as a
// warning; the in-memory state stays authoritative.
func (s *PlannerService) Persist(ctx context.Context, state *domain.State) string {
	if s.store == nil {
		return ""
	}
	payload, err := domain.EncodeSnapshot(state)
	if err == nil {
		err = s.store.Save(ctx, payload)
	}
	if err != nil {
		s.logger.Warn("save snapshot failed", "error", err)
		return fmt.Sprintf("changes kept in memory but not saved: %v", err)
	}
	return ""
}

func (s *PlannerService) Rollover(state *domain.State) domain.RolloverReport {
	report := domain.RunRollover(state, s.Today(), s.Stamp())
	s.logger.Debug("rollover finished",
		"from", report.From,
		"to", report.To,
		"days_walked", report.DaysWalked,
		"tasks_carried", report.TasksCarried,
		"first_run", report.FirstRun,
	)
	return report
}

func (s *PlannerService) CopyPending(state *domain.State, fromKey, toKey string) int {
	carried := domain.CopyPendingTasks(state.Days, fromKey, toKey, s.Stamp())
	s.logger.Debug("pending tasks copied", "from", fromKey, "to", toKey, "carried", carried)
	return carried
}

func (s *PlannerService) NewTask(text string, taskContext domain.Context, minutes float64, mustDo bool, source domain.Source) domain.Task {
	return domain.Task{
		ID:        s.idGen.New(),
		Text:      text,
		Context:   taskContext,
		MustDo:    mustDo,
		Minutes:   domain.NormalizeMinutes(minutes),
		CreatedAt: s.clock.Now(),
		Source:    source,
	}
}

func (s *PlannerService) Export(ctx context.Context, key string, day domain.Day) (string, error) {
	if s.journal == nil {
		return "", fmt.Errorf("journal export is not configured")
	}
	path, err := s.journal.WriteDay(ctx, domain.JournalEntry{Date: key, Day: day, Successful: day.Successful()})
	if err != nil {
		return "", err
	}
	s.logger.Info("day exported", "date", key, "path", path)
	return path, nil
}
