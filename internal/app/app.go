// Package app wires configuration, collection, statistics and rendering
// into one grading session.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/gradecalc/internal/cli"
	"github.com/agbru/gradecalc/internal/collector"
	"github.com/agbru/gradecalc/internal/config"
	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/logging"
	"github.com/agbru/gradecalc/internal/metrics"
	"github.com/agbru/gradecalc/internal/report"
	"github.com/agbru/gradecalc/internal/tui"
	"github.com/agbru/gradecalc/internal/ui"
)

// CancelMessage is written to the error stream when a session is interrupted.
const CancelMessage = "Operación cancelada."

var tracer = otel.Tracer("github.com/agbru/gradecalc/internal/app")

// Application represents one gradecalc run.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	In        io.Reader
	// Source overrides the entry source chosen from Config.
	Source  EntrySource
	Logger  logging.Logger
	Metrics *metrics.Session
	RunID   string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithInput sets the reader answers are read from. Defaults to os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithSource replaces the line collector or form with a custom source.
func WithSource(s EntrySource) AppOption {
	return func(a *Application) { a.Source = s }
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	programName := "gradecalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:    cfg,
		ErrWriter: errWriter,
		In:        os.Stdin,
		RunID:     uuid.NewString(),
	}
	for _, opt := range opts {
		opt(app)
	}

	if app.Logger == nil {
		format, err := logging.ParseFormat(cfg.LogFormat)
		if err != nil {
			return nil, apperrors.NewConfigError("%v", err)
		}
		app.Logger = logging.New(logging.Options{
			Out:       errWriter,
			Format:    format,
			Verbose:   cfg.Verbose,
			Component: "gradecalc",
		})
	}
	app.Logger = app.Logger.With(logging.String("run", app.RunID))

	if cfg.Metrics {
		app.Metrics = metrics.NewSession()
	}
	return app, nil
}

// Run executes one session and returns the process exit code.
//
// Entries collected before the input ends are still summarized and
// rendered; the exit code then reports the early end.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.Theme, a.Config.NoColor, out)

	ctx, span := tracer.Start(ctx, "session")
	defer span.End()

	a.Logger.Debug("session started",
		logging.Float64("threshold", a.Config.Threshold),
		logging.Bool("tui", a.Config.TUI))

	if err := report.Banner(out); err != nil {
		return a.fail(span, err)
	}

	entries, collectErr := a.collect(ctx, out)
	if collectErr != nil {
		if apperrors.IsContextError(collectErr) {
			fmt.Fprintln(a.ErrWriter)
			fmt.Fprintln(a.ErrWriter, CancelMessage)
			a.Logger.Warn("session canceled", logging.Int("entries", len(entries)), logging.Err(collectErr))
			return a.fail(span, collectErr)
		}
		if !errors.Is(collectErr, apperrors.ErrInputClosed) {
			return a.fail(span, collectErr)
		}
		a.Logger.Warn("input ended before the session finished",
			logging.Int("entries", len(entries)), logging.Err(collectErr))
	}

	summary := a.summarize(ctx, entries)
	if err := a.render(ctx, out, entries, summary); err != nil {
		return a.fail(span, err)
	}

	if a.Config.Metrics {
		if err := a.Metrics.WriteText(a.ErrWriter); err != nil {
			a.Logger.Error("writing metrics", err)
		}
	}

	if collectErr != nil {
		return a.fail(span, collectErr)
	}
	a.Logger.Debug("session finished", logging.Int("entries", len(entries)))
	return apperrors.ExitSuccess
}

// collect runs the configured entry source.
func (a *Application) collect(ctx context.Context, out io.Writer) (grades.Entries, error) {
	ctx, span := tracer.Start(ctx, "collect")
	defer span.End()

	source := a.Source
	if source == nil {
		if a.Config.TUI {
			var stop context.CancelFunc
			ctx, stop = signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			source = tui.Form{
				In:        a.In,
				Out:       out,
				Threshold: a.Config.Threshold,
				NameWidth: a.Config.NameWidth,
				Metrics:   a.Metrics,
				Logger:    a.Logger,
			}
		} else {
			source = collector.New(a.In, out,
				collector.WithLogger(a.Logger),
				collector.WithMetrics(a.Metrics))
		}
	}

	entries, err := source.Collect(ctx)
	span.SetAttributes(attribute.Int("entries", len(entries)))
	if err != nil {
		span.RecordError(err)
	}
	return entries, err
}

// summarize computes the statistics, falling back to the empty summary
// when nothing was collected.
func (a *Application) summarize(ctx context.Context, entries grades.Entries) grades.Summary {
	_, span := tracer.Start(ctx, "summarize")
	defer span.End()

	if len(entries) == 0 {
		return grades.EmptySummary(a.Config.Threshold)
	}
	summary := grades.Summarize(entries, a.Config.Threshold)
	a.Metrics.ObserveSummary(summary)
	span.SetAttributes(
		attribute.Float64("mean", summary.Mean),
		attribute.Int("passing", len(summary.Passing)),
		attribute.Int("failing", len(summary.Failing)))
	a.Logger.Debug("summary computed",
		logging.Float64("mean", summary.Mean),
		logging.Int("passing", len(summary.Passing)),
		logging.Int("failing", len(summary.Failing)))
	return summary
}

func (a *Application) render(ctx context.Context, out io.Writer, entries grades.Entries, summary grades.Summary) error {
	_, span := tracer.Start(ctx, "render")
	defer span.End()
	return report.Render(out, entries, summary, a.reportOptions())
}

func (a *Application) reportOptions() report.Options {
	return report.Options{NameWidth: a.Config.NameWidth}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// fail records err on the span and maps it to an exit code.
func (a *Application) fail(span trace.Span, err error) int {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	code := apperrors.ExitCodeFor(err)
	if code == apperrors.ExitErrorGeneric {
		a.Logger.Error("session failed", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	return code
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
