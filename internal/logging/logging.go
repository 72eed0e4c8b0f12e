// Package logging builds the zerolog logger shared by commands and services.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when neither a flag nor the config sets a level.
const DefaultLevel = "warn"

// Options controls where and how much is logged.
type Options struct {
	// Level is a zerolog level name ("debug", "info", "warn", "error",
	// "disabled"). Empty means DefaultLevel.
	Level string

	// File, when set, appends plain JSON lines to this path instead of
	// writing to Stderr. Used while a TUI owns the terminal.
	File string

	// Stderr receives console output when File is empty. Defaults to os.Stderr.
	Stderr io.Writer
}

// ParseLevel resolves a level name, case-insensitively.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: unknown level %q", name)
	}
	return lvl, nil
}

// New returns a logger configured from opts. The returned close function
// releases the log file, if one was opened, and is always safe to call.
func New(opts Options) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }

	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("logging: failed to create directory for %s: %w", opts.File, err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("logging: failed to open %s: %w", opts.File, err)
		}
		logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
		return logger, f.Close, nil
	}

	out := opts.Stderr
	if out == nil {
		out = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger(), noop, nil
}
