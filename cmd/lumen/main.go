package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lumen/internal/bootstrap"
	"lumen/internal/modules/shortcut/domain"
	"lumen/internal/platform/config"
	apperrors "lumen/internal/platform/errors"
	"lumen/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir  string
	backend  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lumen",
		Short:         "Focus timer, notes and focus dashboard for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: sqlite|file|memory (overrides config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config.yaml)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newSessionCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newNoteCmd(opts))
	root.AddCommand(newShortcutsCmd(opts))
	return root
}

// loadApp builds the application. Interactive runs log to the configured
// file because the terminal belongs to the UI.
func loadApp(opts *rootOptions, interactive bool) (*bootstrap.App, error) {
	cfg, err := config.New(opts.dataDir)
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.Backend = opts.backend
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logOpts := logging.Options{Level: cfg.LogLevel}
	if interactive {
		logOpts.File = cfg.LogFile
	} else if opts.logLevel == "" {
		logOpts.Level = "warn"
	}
	log, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return app, nil
}

func closeApp(app *bootstrap.App) {
	if err := app.Close(); err != nil {
		app.Log.Warn("close app", zap.Error(err))
	}
	_ = app.Log.Sync()
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	app, err := loadApp(opts, true)
	if err != nil {
		return err
	}
	defer closeApp(app)
	return bootstrap.RunTUI(ctx, app)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the lumen terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}
}

func newSessionCmd(opts *rootOptions) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Focus session history"}

	session.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List recorded focus sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			sessions, err := app.FocusCLI.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				if s.Open() {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\topen\n", s.ID, s.StartTime.Local().Format(time.DateTime))
					continue
				}
				duration := 0
				if s.DurationSeconds != nil {
					duration = *s.DurationSeconds
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%ds\n", s.ID, s.StartTime.Local().Format(time.DateTime), duration)
			}
			return nil
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Close the open focus session with its elapsed time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.FocusCLI.Stop(cmd.Context())
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no open session")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session stopped: %s duration=%ds\n", out.SessionID, out.DurationSeconds)
			return nil
		},
	})
	return session
}

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show focus hours per day for the last three weeks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			summary, err := app.DashboardCLI.Summary(cmd.Context())
			if err != nil {
				return err
			}
			if summary.Empty {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no focus sessions in the last 21 days")
				return nil
			}
			for _, d := range summary.Days {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2fh\n", d.Date, d.Hours)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %.2fh  daily average %.1fh\n", summary.TotalHours, summary.DailyAverage)
			return nil
		},
	}
}

func newNoteCmd(opts *rootOptions) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Manage notes"}

	note.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			notes, err := app.NotesCLI.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range notes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d lines\n", n.ID, n.Date.Local().Format(time.DateOnly), n.Title, len(n.Content))
			}
			return nil
		},
	})

	var title string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.NotesCLI.New(cmd.Context(), title)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note created: %s %q\n", out.ID, out.Title)
			return nil
		},
	}
	newCmd.Flags().StringVar(&title, "title", "", "note title (optional)")

	note.AddCommand(newCmd)
	note.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.NotesCLI.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n", out.Title, strings.ToUpper(out.Date.Local().Format("January 2, 2006")))
			for _, line := range out.Content {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	})
	note.AddCommand(&cobra.Command{
		Use:   "append <id> [text...]",
		Short: "Append a line to a note; no text adds a blank spacer line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.NotesCLI.Append(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note %s now has %d lines\n", out.ID, len(out.Content))
			return nil
		},
	})
	note.AddCommand(&cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Rename a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			out, err := app.NotesCLI.Rename(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note renamed: %s %q\n", out.ID, out.Title)
			return nil
		},
	})
	note.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			if err := app.NotesCLI.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note deleted: %s\n", args[0])
			return nil
		},
	})

	var exportDir string
	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a note as a Markdown file with YAML frontmatter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			dir := exportDir
			if dir == "" {
				dir = filepath.Join(app.Config.DataDir, "export")
			}
			out, err := app.NotesCLI.Export(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note exported: %s\n", out.Path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "output directory (default <data>/export)")
	note.AddCommand(exportCmd)
	return note
}

func newShortcutsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shortcuts",
		Short: "Print the keyboard shortcuts for this platform",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts, false)
			if err != nil {
				return err
			}
			defer closeApp(app)
			table := app.Dispatcher.Table()
			for _, b := range table.Bindings {
				scope := "everywhere"
				if b.Page != "" {
					scope = b.Page.Title() + " page"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s  %-14s  %-10s  %s\n", b.Group, b.Description, b.Label, scope)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-10s  %-14s  %-10s  %s\n", "General", table.Help.Description, table.Help.Label, "everywhere")
			if table.Platform == domain.PlatformMac {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "⌥ is the Option key")
			}
			return nil
		},
	}
}
