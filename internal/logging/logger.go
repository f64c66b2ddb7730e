// Package logging builds the structured loggers used by the fable CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the CLI logger. It writes to stderr so rendered blueprint
// output on stdout stays pipeable.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New with an explicit sink.
// Every record carries an "app" attribute, and the "error" key is
// normalized to "err" to match the library's own log statements.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
	return slog.New(handler).With("app", "fable")
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
