package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/offlinefirst/sideswipe/pkg/config"
)

// Options describe how to configure a logger instance.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New creates a structured logger backed by Go's slog package. The returned
// LevelVar stays live: setting it changes the logger's verbosity in place.
func New(opts Options) (*slog.Logger, *slog.LevelVar, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	format, err := config.NormalizeFormat(opts.Format)
	if err != nil {
		return nil, nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceTimeAttr,
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(out, &handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, &handlerOpts)
	}
	return slog.New(handler).With("app", "sideswipe"), level, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) (*slog.LevelVar, error) {
	if _, err := config.NormalizeLogLevel(level); err != nil {
		return nil, err
	}
	var levelVar slog.LevelVar
	levelVar.Set(config.LoggingConfig{Level: level}.SlogLevel())
	return &levelVar, nil
}

func replaceTimeAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.TimeKey && attr.Value.Kind() == slog.KindTime {
		attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
	}
	return attr
}
