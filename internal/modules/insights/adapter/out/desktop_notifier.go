package out

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	insightsout "compass/internal/modules/insights/port/out"
)

type DesktopNotifier struct {
	goos string
}

func NewDesktopNotifier() insightsout.Notifier {
	return &DesktopNotifier{goos: runtime.GOOS}
}

func (n *DesktopNotifier) Notify(ctx context.Context, title, message string) error {
	cmd, err := notifyCommand(ctx, n.goos, title, message)
	if err != nil {
		return err
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("send desktop notification: %w: %s", err, output)
	}
	return nil
}

func notifyCommand(ctx context.Context, goos, title, message string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", strconv.Quote(message), strconv.Quote(title))
		return exec.CommandContext(ctx, "osascript", "-e", script), nil
	case "linux":
		return exec.CommandContext(ctx, "notify-send", "--app-name=compass", title, message), nil
	default:
		return nil, fmt.Errorf("desktop notifications are not supported on %s", goos)
	}
}
