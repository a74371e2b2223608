// Package logging builds the zerolog logger used for eaglebom's operational
// messages (file discovery, stage timings, record counts).
//
// The BOM diagnostics ("WARNING: ..." lines) are report output and do not go
// through this logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level to output
	Level string

	// Format is the output format (auto, console, json)
	Format string

	// Output is where to write logs (stderr, stdout, discard or a file path)
	Output string

	// NoColor disables color output in console mode
	NoColor bool

	// Fields are default fields to include in all logs
	Fields map[string]string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Level:   "warn",
		Format:  "auto",
		Output:  "stderr",
		NoColor: os.Getenv("NO_COLOR") != "",
		Fields:  map[string]string{},
	}
}

// New creates a logger from cfg. A nil cfg means DefaultConfig.
//
// The returned Closer releases the log file when Output is a path. It is a
// no-op for the standard streams. Failing to open the log file is an error.
func New(cfg *Config) (zerolog.Logger, io.Closer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := ParseLevel(cfg.Level)

	w, closer, err := writer(cfg)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	if len(cfg.Fields) > 0 {
		ctx := logger.With()
		for k, v := range cfg.Fields {
			ctx = ctx.Str(k, v)
		}
		logger = ctx.Logger()
	}

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ResolveLevel picks the effective level.
// Precedence: explicit --log-level, --verbose, --quiet, configured, "warn".
func ResolveLevel(explicit string, verbose, quiet bool, configured string) (string, error) {
	if explicit != "" {
		if !validLevel(explicit) {
			return "", fmt.Errorf("invalid log level %q", explicit)
		}
		return strings.ToLower(explicit), nil
	}
	if verbose && quiet {
		return "", fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	if verbose {
		return "debug", nil
	}
	if quiet {
		return "error", nil
	}
	if configured != "" && validLevel(configured) {
		return strings.ToLower(configured), nil
	}
	return "warn", nil
}

// ParseLevel parses a log level string, falling back to warn.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

func validLevel(level string) bool {
	switch strings.ToLower(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "none", "off":
		return true
	}
	return false
}

// writer creates the output writer based on configuration
func writer(cfg *Config) (io.Writer, io.Closer, error) {
	var file *os.File
	var closer io.Closer = nopCloser{}

	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		file = os.Stderr
	case "stdout":
		file = os.Stdout
	case "discard", "none":
		return io.Discard, closer, nil
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, pkgerrors.NewFileError("log", cfg.Output, err)
		}
		file = f
		closer = f
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		if isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd()) {
			format = "console"
		} else {
			format = "json"
		}
	}

	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}, closer, nil
	}
	return file, closer, nil
}
