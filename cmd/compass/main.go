package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"compass/internal/bootstrap"
	plannerdto "compass/internal/modules/planner/dto"
	"compass/internal/platform/config"
	insightsview "compass/internal/ui/views/insights"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "compass",
		Short:         "Daily planning with rollover, streaks and reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".", "data directory holding .compass/ and journal/")

	root.AddCommand(newOpenCmd(&dataDir))
	root.AddCommand(newTodayCmd(&dataDir))
	root.AddCommand(newAddCmd(&dataDir))
	root.AddCommand(newDoneCmd(&dataDir))
	root.AddCommand(newEditCmd(&dataDir))
	root.AddCommand(newRemoveCmd(&dataDir))
	root.AddCommand(newKickoffCmd(&dataDir))
	root.AddCommand(newRecapCmd(&dataDir))
	root.AddCommand(newRollCmd(&dataDir))
	root.AddCommand(newPlanCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newWeekCmd(&dataDir))
	root.AddCommand(newRoutineCmd(&dataDir))
	root.AddCommand(newRemindCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

// loadApp builds the application and prints any warning raised while opening
// the store; the planner keeps working in memory in that case.
func loadApp(cmd *cobra.Command, dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, err
	}
	for _, warning := range app.Warnings {
		printWarning(cmd.ErrOrStderr(), warning)
	}
	return app, nil
}

func closeApp(cmd *cobra.Command, app *bootstrap.App) {
	if err := app.Close(); err != nil {
		printWarning(cmd.ErrOrStderr(), "close store: "+err.Error())
	}
}

func printWarning(w io.Writer, warning string) {
	if warning != "" {
		_, _ = fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

func newOpenCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the planner and carry unfinished tasks forward",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out := app.Opened
			w := cmd.OutOrStdout()
			switch {
			case out.Rollover.FirstRun:
				_, _ = fmt.Fprintf(w, "today: %s (first run)\n", out.Today)
			case out.Rollover.DaysWalked > 0:
				_, _ = fmt.Fprintf(w, "today: %s (walked %d day(s) from %s, carried %d task(s))\n",
					out.Today, out.Rollover.DaysWalked, out.Rollover.From, out.Rollover.TasksCarried)
			default:
				_, _ = fmt.Fprintf(w, "today: %s\n", out.Today)
			}
			return nil
		},
	}
}

func newTodayCmd(dataDir *string) *cobra.Command {
	var date, filter string
	today := &cobra.Command{
		Use:   "today",
		Short: "Show the tasks of a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			ctx := context.Background()
			day, err := app.PlannerCLI.Day(ctx, date)
			if err != nil {
				return err
			}
			list, err := app.PlannerCLI.List(ctx, day.Date, filter)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "%s  %d/%d done  filter=%s\n", day.Date, day.CompletedCount, day.TotalCount, list.Filter)
			if day.Kickoff != "" {
				_, _ = fmt.Fprintf(w, "kickoff: %s\n", day.Kickoff)
			}
			if len(list.Tasks) == 0 {
				_, _ = fmt.Fprintln(w, "no tasks")
			}
			for _, task := range list.Tasks {
				_, _ = fmt.Fprintln(w, formatTask(task))
			}
			if day.RecapSummary != "" {
				_, _ = fmt.Fprintf(w, "recap: %s\n", day.RecapSummary)
			}
			return nil
		},
	}
	today.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	today.Flags().StringVar(&filter, "filter", "All", "All|Must-Do|Home|Work|Errands")
	return today
}

func newAddCmd(dataDir *string) *cobra.Command {
	var input plannerdto.AddTaskInput
	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			input.Text = strings.Join(args, " ")
			out, err := app.PlannerCLI.Add(context.Background(), input)
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s to %s\n", out.Task.ID, out.Date)
			return nil
		},
	}
	add.Flags().StringVar(&input.Context, "context", "Work", "Home|Work|Errands")
	add.Flags().Float64Var(&input.Minutes, "minutes", 25, "estimated minutes (5-300)")
	add.Flags().BoolVar(&input.MustDo, "must", false, "mark as must-do")
	add.Flags().StringVar(&input.Date, "date", "", "day key YYYY-MM-DD (default today)")
	add.Flags().StringVar(&input.Source, "source", "typed", "typed|quick|voice")
	return add
}

func newDoneCmd(dataDir *string) *cobra.Command {
	var date string
	var undo bool
	done := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Complete(context.Background(), date, args[0], !undo)
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatTask(out.Task))
			return nil
		},
	}
	done.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	done.Flags().BoolVar(&undo, "undo", false, "mark the task pending again")
	return done
}

func newEditCmd(dataDir *string) *cobra.Command {
	var date string
	edit := &cobra.Command{
		Use:   "edit <task-id> <text>",
		Short: "Rename a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Edit(context.Background(), date, args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatTask(out.Task))
			return nil
		},
	}
	edit.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	return edit
}

func newRemoveCmd(dataDir *string) *cobra.Command {
	var date string
	rm := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Delete(context.Background(), date, args[0])
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s from %s\n", out.TaskID, out.Date)
			return nil
		},
	}
	rm.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	return rm
}

func newKickoffCmd(dataDir *string) *cobra.Command {
	var date string
	kickoff := &cobra.Command{
		Use:   "kickoff <text>",
		Short: "Set the day's kickoff note",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Kickoff(context.Background(), date, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kickoff for %s: %s\n", out.Date, out.Kickoff)
			return nil
		},
	}
	kickoff.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	return kickoff
}

func newRecapCmd(dataDir *string) *cobra.Command {
	var date, summary string
	var delays []string
	recap := &cobra.Command{
		Use:   "recap",
		Short: "Record the evening recap and delay reasons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("summary") && len(delays) == 0 {
				return fmt.Errorf("--summary or --delay is required")
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			ctx := context.Background()
			var last plannerdto.DayOutput
			if cmd.Flags().Changed("summary") {
				if last, err = app.PlannerCLI.RecapSummary(ctx, date, summary); err != nil {
					return err
				}
				printWarning(cmd.ErrOrStderr(), last.Warning)
			}
			for _, raw := range delays {
				taskID, reason, ok := strings.Cut(raw, "=")
				if !ok || strings.TrimSpace(taskID) == "" {
					return fmt.Errorf("--delay expects <task-id>=<reason>, got %q", raw)
				}
				if last, err = app.PlannerCLI.DelayReason(ctx, date, strings.TrimSpace(taskID), reason); err != nil {
					return err
				}
				printWarning(cmd.ErrOrStderr(), last.Warning)
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "recap for %s saved\n", last.Date)
			for _, delay := range last.DelayReasons {
				_, _ = fmt.Fprintf(w, "  %s: %s\n", delay.TaskID, delay.Reason)
			}
			return nil
		},
	}
	recap.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	recap.Flags().StringVar(&summary, "summary", "", "recap summary")
	recap.Flags().StringArrayVar(&delays, "delay", nil, "delay reason as <task-id>=<reason>; empty reason clears it")
	return recap
}

func newRollCmd(dataDir *string) *cobra.Command {
	var from, to string
	roll := &cobra.Command{
		Use:   "roll",
		Short: "Copy pending tasks from one day to another",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Roll(context.Background(), from, to)
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "carried %d task(s) from %s to %s\n", out.Carried, out.From, out.To)
			return nil
		},
	}
	roll.Flags().StringVar(&from, "from", "", "source day (default today)")
	roll.Flags().StringVar(&to, "to", "", "target day (default the day after --from)")
	return roll
}

func newPlanCmd(dataDir *string) *cobra.Command {
	var date string
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Show the Monday-first week around a day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Week(context.Background(), date)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, day := range out.Days {
				marker := " "
				switch {
				case day.IsToday:
					marker = "*"
				case day.Selected:
					marker = ">"
				}
				_, _ = fmt.Fprintf(w, "%s %s %s  %d/%d\n", marker, day.Weekday.String()[:3], day.Date, day.Completed, day.Planned)
			}
			return nil
		},
	}
	plan.Flags().StringVar(&date, "date", "", "any day of the week (default today)")
	return plan
}

func newStatsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streak, consistency and today's progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.InsightsCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "streak: %d (best %d)\nconsistency: %d%%\ntoday: %d/%d\n",
				out.Streak, out.BestStreak, out.Consistency, out.TodayCompleted, out.TodayTotal)
			return nil
		},
	}
}

func newWeekCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the weekly review",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			ctx := context.Background()
			stats, err := app.InsightsCLI.Stats(ctx)
			if err != nil {
				return err
			}
			weekly, err := app.InsightsCLI.Weekly(ctx)
			if err != nil {
				return err
			}
			routine, err := app.InsightsCLI.Routine(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), insightsview.Render(stats, weekly, routine))
			return nil
		},
	}
}

func newRoutineCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "routine",
		Short: "Suggest a reminder time from recent completions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.InsightsCLI.Routine(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", out.Time, out.Message)
			return nil
		},
	}
}

func newRemindCmd(dataDir *string) *cobra.Command {
	remind := &cobra.Command{Use: "remind", Short: "Daily reminder commands"}

	remind.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Send today's reminder if it is due",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.InsightsCLI.CheckReminder(context.Background())
			if err != nil {
				return err
			}
			printReminder(cmd, out.Due, out.Message, out.Warning)
			return nil
		},
	})

	var interval time.Duration
	watch := &cobra.Command{
		Use:   "watch",
		Short: "Check the reminder periodically until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				// Open again so a watcher running past midnight rolls over.
				opened, err := app.PlannerCLI.Open(ctx)
				if err != nil {
					return err
				}
				printWarning(cmd.ErrOrStderr(), opened.Warning)
				out, err := app.InsightsCLI.CheckReminder(ctx)
				if err != nil {
					return err
				}
				if out.Due {
					printReminder(cmd, out.Due, out.Message, out.Warning)
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}
	watch.Flags().DurationVar(&interval, "interval", time.Minute, "check interval")

	var enable, disable bool
	var at string
	set := &cobra.Command{
		Use:   "set",
		Short: "Configure the daily reminder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if enable && disable {
				return fmt.Errorf("--on and --off are mutually exclusive")
			}
			var enabled *bool
			switch {
			case enable:
				enabled = &enable
			case disable:
				off := false
				enabled = &off
			}
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.SetReminder(context.Background(), enabled, at)
			if err != nil {
				return err
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reminders enabled=%t at %s\n", out.RemindersEnabled, out.ReminderTime)
			return nil
		},
	}
	set.Flags().BoolVar(&enable, "on", false, "enable reminders")
	set.Flags().BoolVar(&disable, "off", false, "disable reminders")
	set.Flags().StringVar(&at, "time", "", "reminder time HH:MM")

	remind.AddCommand(watch, set)
	return remind
}

func printReminder(cmd *cobra.Command, due bool, message, warning string) {
	printWarning(cmd.ErrOrStderr(), warning)
	if !due {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no reminder due")
		return
	}
	if message == "" {
		message = "nothing pending today"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s reminder: %s\n", time.Now().Format("15:04"), message)
}

func newExportCmd(dataDir *string) *cobra.Command {
	var date string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write a day to the markdown journal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			out, err := app.PlannerCLI.Export(context.Background(), date)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", out.Date, out.Path)
			return nil
		},
	}
	export.Flags().StringVar(&date, "date", "", "day key YYYY-MM-DD (default today)")
	return export
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the compass terminal dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir)
			if err != nil {
				return err
			}
			defer closeApp(cmd, app)
			return bootstrap.RunTUI(app)
		},
	}
}

func formatTask(task plannerdto.TaskOutput) string {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	flags := []string{task.Context, fmt.Sprintf("%d min", task.Minutes)}
	if task.MustDo {
		flags = append(flags, "must-do")
	}
	if task.RolledFrom != "" {
		flags = append(flags, "from "+task.RolledFrom)
	}
	line := fmt.Sprintf("%s %s  %s  (%s)", box, task.ID, task.Text, strings.Join(flags, ", "))
	if task.DelayReason != "" {
		line += "  delay: " + task.DelayReason
	}
	return line
}
