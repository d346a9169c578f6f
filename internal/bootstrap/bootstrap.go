package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	insightsinadapter "compass/internal/modules/insights/adapter/in"
	insightsoutadapter "compass/internal/modules/insights/adapter/out"
	insightsout "compass/internal/modules/insights/port/out"
	insightsservice "compass/internal/modules/insights/service"
	insightsusecase "compass/internal/modules/insights/usecase"
	plannerinadapter "compass/internal/modules/planner/adapter/in"
	planneroutadapter "compass/internal/modules/planner/adapter/out"
	plannerdto "compass/internal/modules/planner/dto"
	plannerout "compass/internal/modules/planner/port/out"
	plannerservice "compass/internal/modules/planner/service"
	plannerusecase "compass/internal/modules/planner/usecase"
	"compass/internal/platform/clock"
	"compass/internal/platform/config"
	"compass/internal/platform/id"
	"compass/internal/platform/logging"
	uiapp "compass/internal/ui/app"
)

type App struct {
	PlannerCLI  plannerinadapter.CLIHandler
	InsightsCLI insightsinadapter.CLIHandler
	Logger      hclog.Logger
	// Opened is the rollover report produced while building the app.
	Opened plannerdto.OpenOutput
	// Warnings collects non-fatal problems hit while opening the store.
	Warnings []string

	closers []io.Closer
}

func New(cfg config.Config) (*App, error) {
	logger := logging.New(cfg.LogLevel, nil)
	clk := clock.SystemClock{Location: cfg.Location}

	store, storeErr := newSnapshotStore(cfg)
	if storeErr != nil {
		logger.Warn("snapshot store unavailable, running on defaults", "store", cfg.Store, "error", storeErr)
		store = planneroutadapter.NewUnavailableSnapshotStore(storeErr)
	}
	plannerUC := plannerusecase.NewInteractor(plannerservice.NewPlannerService(
		clk,
		id.TaskIDs{},
		store,
		planneroutadapter.NewVaultJournalWriter(cfg.JournalDir),
		logger,
	))
	insightsUC := insightsusecase.NewInteractor(
		insightsservice.NewInsightsService(clk, newNotifier(cfg, logger), logger),
		insightsoutadapter.NewPlannerStateAdapter(plannerUC),
	)

	app := &App{
		PlannerCLI:  plannerinadapter.NewCLIHandler(plannerUC),
		InsightsCLI: insightsinadapter.NewCLIHandler(insightsUC),
		Logger:      logger,
	}
	if closer, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	if storeErr != nil {
		app.addWarning(fmt.Sprintf("snapshot store unavailable, changes will not be saved: %v", storeErr))
	}

	ctx := context.Background()
	opened, err := app.PlannerCLI.Open(ctx)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("open planner: %w", err)
	}
	app.Opened = opened
	app.addWarning(opened.Warning)
	hydrated, err := app.InsightsCLI.HydrateReminderDefaults(ctx)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("hydrate reminder defaults: %w", err)
	}
	app.addWarning(hydrated.Warning)
	return app, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.PlannerCLI, app.InsightsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// Close releases the store handles opened by New.
func (a *App) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}

func (a *App) addWarning(warning string) {
	if warning != "" {
		a.Warnings = append(a.Warnings, warning)
	}
}

func newSnapshotStore(cfg config.Config) (plannerout.SnapshotStore, error) {
	switch cfg.Store {
	case config.StoreFile:
		return planneroutadapter.NewFileSnapshotStore(cfg.StatePath), nil
	default:
		store, err := planneroutadapter.NewSQLiteSnapshotStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("new snapshot store: %w", err)
		}
		return store, nil
	}
}

func newNotifier(cfg config.Config, logger hclog.Logger) insightsout.Notifier {
	if cfg.Notifier == config.NotifierDesktop {
		return insightsoutadapter.NewDesktopNotifier()
	}
	return insightsoutadapter.NewLogNotifier(logger)
}
