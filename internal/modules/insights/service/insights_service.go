package service

import (
	"context"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	insightsout "compass/internal/modules/insights/port/out"
	"compass/internal/platform/clock"
)

const notificationTitle = "Daily Compass"

type InsightsService struct {
	clock    clock.Clock
	notifier insightsout.Notifier
	logger   hclog.Logger
}

func NewInsightsService(clock clock.Clock, notifier insightsout.Notifier, logger hclog.Logger) *InsightsService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &InsightsService{clock: clock, notifier: notifier, logger: logger.Named("insights")}
}

func (s *InsightsService) Now() time.Time {
	return s.clock.Now()
}

func (s *InsightsService) Logger() hclog.Logger {
	return s.logger
}

// Deliver pushes message through the notifier. Failures are logged and
// reported as false so callers can fall back to showing it themselves.
func (s *InsightsService) Deliver(ctx context.Context, message string) bool {
	if s.notifier == nil {
		return false
	}
	if err := s.notifier.Notify(ctx, notificationTitle, message); err != nil {
		s.logger.Warn("reminder delivery failed", "error", err)
		return false
	}
	return true
}
