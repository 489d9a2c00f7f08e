// Package config parses the command line and environment into an AppConfig.
//
// Resolution order (highest priority first):
//  1. CLI flags
//  2. Environment variables prefixed with GRADECALC_
//  3. Defaults, which reproduce the classic interactive behavior
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/agbru/gradecalc/internal/errors"
	"github.com/agbru/gradecalc/internal/grades"
	"github.com/agbru/gradecalc/internal/logging"
	"github.com/agbru/gradecalc/internal/report"
	"github.com/agbru/gradecalc/internal/ui"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "GRADECALC_"

// AppConfig holds every setting of a run.
type AppConfig struct {
	// Threshold is the inclusive pass mark.
	Threshold float64 `flag:"threshold" validate:"gte=0,lte=10"`
	// NameWidth is the subject column width of the report.
	NameWidth int `flag:"name-width" validate:"gte=4,lte=80"`
	// Theme selects the color theme.
	Theme string `flag:"theme" validate:"oneof=dark light orange none"`
	// NoColor disables colors regardless of theme.
	NoColor bool `flag:"no-color"`
	// TUI collects entries with the full-screen form instead of line prompts.
	TUI bool `flag:"tui"`
	// Verbose enables debug logs on stderr.
	Verbose bool `flag:"verbose"`
	// LogFormat is "console" or "json".
	LogFormat string `flag:"log-format" validate:"oneof=console json"`
	// Metrics dumps session metrics on stderr at exit.
	Metrics bool `flag:"metrics"`
	// Completion prints a shell completion script instead of running a session.
	Completion string `flag:"completion" validate:"omitempty,oneof=bash zsh fish powershell ps"`
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Threshold: grades.DefaultThreshold,
		NameWidth: report.DefaultNameWidth,
		Theme:     "dark",
		LogFormat: string(logging.FormatConsole),
	}
}

// ParseConfig parses args (without the program name) and applies
// environment overrides for flags that were not given.
//
// flag.ErrHelp is returned unchanged when -h or --help is used; every other
// failure is an apperrors.ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n\n", programName)
		fmt.Fprintln(errWriter, "Collects subjects and grades interactively and prints a summary.")
		fmt.Fprintln(errWriter)
		fs.PrintDefaults()
	}

	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "Minimum grade (inclusive) counted as passing.")
	fs.IntVar(&cfg.NameWidth, "name-width", cfg.NameWidth, "Column width of subject names in the report.")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Color theme: "+strings.Join(ui.ThemeNames, ", ")+".")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Use the full-screen entry form.")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Write debug logs to stderr.")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Shorthand for --verbose.")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log encoding: console or json.")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "Print session metrics to stderr at exit.")
	fs.StringVar(&cfg.Completion, "completion", cfg.Completion, "Print a completion script for bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&cfg, fs)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("flag")
	})
	return v
}

// Validate checks every field against its constraints and reports the
// first violation as a ConfigError naming the flag.
func (c AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperrors.NewConfigError("invalid value %v for --%s: %s", fe.Value(), fe.Field(), describe(fe))
	}
	return apperrors.NewConfigError("invalid configuration: %v", err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "failed " + fe.Tag()
}
