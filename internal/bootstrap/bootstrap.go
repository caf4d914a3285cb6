package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	dashboardinadapter "lumen/internal/modules/dashboard/adapter/in"
	dashboardusecase "lumen/internal/modules/dashboard/usecase"
	focusinadapter "lumen/internal/modules/focus/adapter/in"
	focusoutadapter "lumen/internal/modules/focus/adapter/out"
	"lumen/internal/modules/focus/domain"
	focusservice "lumen/internal/modules/focus/service"
	focususecase "lumen/internal/modules/focus/usecase"
	notesinadapter "lumen/internal/modules/notes/adapter/in"
	notesoutadapter "lumen/internal/modules/notes/adapter/out"
	notesin "lumen/internal/modules/notes/port/in"
	notesusecase "lumen/internal/modules/notes/usecase"
	shortcutdomain "lumen/internal/modules/shortcut/domain"
	shortcutservice "lumen/internal/modules/shortcut/service"
	"lumen/internal/platform/clock"
	"lumen/internal/platform/config"
	"lumen/internal/platform/id"
	"lumen/internal/platform/kvstore"
	uiapp "lumen/internal/ui/app"
	focusview "lumen/internal/ui/views/focus"
)

type App struct {
	Config       config.Config
	Log          *zap.Logger
	FocusCLI     focusinadapter.CLIHandler
	NotesCLI     notesinadapter.CLIHandler
	DashboardCLI dashboardinadapter.CLIHandler
	Controller   *focusservice.Controller
	Dispatcher   *shortcutservice.Dispatcher

	notes   notesin.Usecase
	gateway kvstore.Gateway
	closers []func() error
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	app := &App{Config: cfg, Log: log}
	gateway, err := app.openGateway()
	if err != nil {
		return nil, err
	}
	app.gateway = gateway

	sessionStore := focusoutadapter.NewGatewaySessionStore(gateway)
	focusUC := focususecase.NewInteractor(clk, sessionStore)
	notesUC := notesusecase.NewInteractor(clk, ids, notesoutadapter.NewGatewayNoteStore(gateway), notesoutadapter.NewMarkdownExporter(), log.Named("notes"))
	dashboardUC := dashboardusecase.NewInteractor(clk, focusUC, log.Named("dashboard"))

	ctrl := focusservice.NewController(clk, clock.SystemScheduler{}, ids, sessionStore, log.Named("focus"))
	ctrl.SetBound(cfg.DefaultMinutes)

	platform := shortcutdomain.ParsePlatform(cfg.Platform, runtime.GOOS)

	app.FocusCLI = focusinadapter.NewCLIHandler(focusUC)
	app.NotesCLI = notesinadapter.NewCLIHandler(notesUC)
	app.notes = notesUC
	app.DashboardCLI = dashboardinadapter.NewCLIHandler(dashboardUC)
	app.Controller = ctrl
	app.Dispatcher = shortcutservice.NewDispatcher(shortcutdomain.NewTable(platform), log.Named("shortcut"))
	app.closers = append(app.closers, func() error { ctrl.Close(); return nil })
	return app, nil
}

func (a *App) openGateway() (kvstore.Gateway, error) {
	switch a.Config.Backend {
	case config.BackendFile:
		store, err := kvstore.NewFileStore(a.Config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nil
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), nil
	default:
		store, err := kvstore.NewSQLiteStore(a.Config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	}
}

// Close stops the controller's timers and releases the store.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// RunTUI resumes any open session and runs the terminal UI until the user quits.
func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snap := app.Controller.Restore(ctx)
	if snap.State == domain.StateFocusing {
		app.Log.Info("resumed open session", zap.String("id", snap.SessionID))
	}

	model := uiapp.NewModel(app.Controller, app.notes, app.DashboardCLI, app.Dispatcher, shortcutdomain.PageFocus)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	unsubscribe := app.Controller.Subscribe(func(s domain.Snapshot) {
		program.Send(focusview.SnapshotMsg{Snapshot: s})
	})
	defer unsubscribe()

	if watcher, ok := app.gateway.(kvstore.Watcher); ok {
		changes, err := watcher.Watch(ctx)
		if err != nil {
			app.Log.Warn("store change feed unavailable", zap.Error(err))
		} else {
			go func() {
				for key := range changes {
					program.Send(uiapp.StoreChangedMsg{Key: key})
				}
			}()
		}
	}

	_, err := program.Run()
	app.Controller.Close()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
