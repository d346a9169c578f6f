package out

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	insightsout "compass/internal/modules/insights/port/out"
)

// LogNotifier records reminders in the log instead of raising them.
type LogNotifier struct {
	logger hclog.Logger
}

func NewLogNotifier(logger hclog.Logger) insightsout.Notifier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &LogNotifier{logger: logger.Named("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, title, message string) error {
	n.logger.Info(message, "title", title)
	return nil
}
