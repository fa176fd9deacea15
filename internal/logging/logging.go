// Package logging builds the application logger. The terminal belongs to the
// TUI, so output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	Path            string
	Level           string
	ReportTimestamp bool
	Prefix          string
}

func DefaultOptions() Options {
	return Options{
		Level:           "info",
		ReportTimestamp: true,
		Prefix:          "weekly",
	}
}

// New returns the logger and a close func for the underlying file. With an
// empty path everything is discarded.
func New(opts Options) (*log.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	var (
		w       io.Writer = io.Discard
		closeFn           = func() error { return nil }
	)
	if path := strings.TrimSpace(opts.Path); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open %s: %w", path, err)
		}
		w = f
		closeFn = f.Close
	}
	return NewWithWriter(w, level, opts), closeFn, nil
}

func NewWithWriter(w io.Writer, level log.Level, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// Discard is a logger that drops everything; models built in tests use it.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func ParseLevel(raw string) (log.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(raw)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}
