package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	slogmulti "github.com/samber/slog-multi"

	"github.com/couchcryptid/asteroid-impact-service/internal/config"
)

// NewLogger builds the service logger from LOG_LEVEL and LOG_FORMAT using the
// shared stdout logger. When LOG_FILE is set, records are also written as
// JSON to that file at the same level. The returned cleanup closes the file.
func NewLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	console := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if cfg.LogFile == "" {
		return console, func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: handlerLevel(console.Handler())})

	logger := slog.New(slogmulti.Fanout(console.Handler(), file))
	slog.SetDefault(logger)
	return logger, f.Close, nil
}

// NewTextLogger writes text records to w at the level the shared logger
// resolves for level. The CLI uses it to keep stdout free for results.
func NewTextLogger(w io.Writer, level string) *slog.Logger {
	lvl := handlerLevel(sharedobs.NewLogger(level, "text").Handler())
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// handlerLevel reports the lowest standard level h accepts.
func handlerLevel(h slog.Handler) slog.Level {
	for _, l := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if h.Enabled(context.Background(), l) {
			return l
		}
	}
	return slog.LevelError
}
