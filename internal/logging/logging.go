// Package logging builds the structured logger shared by the commands.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

const appName = "tuist-lint"

// Options select the handler and level.
type Options struct {
	Verbose bool
	Quiet   bool
	// JSON switches the handler to one JSON object per line.
	JSON bool
}

// Level maps the verbosity flags to a slog level. Verbose wins over quiet.
func Level(opts Options) slog.Level {
	switch {
	case opts.Verbose:
		return slog.LevelDebug
	case opts.Quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: Level(opts)}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler).With("app", appName)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Paths summarizes a path list for log attributes.
func Paths(paths []string) slog.Attr {
	const limit = 5
	if len(paths) <= limit {
		return slog.String("paths", strings.Join(paths, ","))
	}
	return slog.Group("paths",
		slog.Int("count", len(paths)),
		slog.String("head", strings.Join(paths[:limit], ",")),
	)
}
