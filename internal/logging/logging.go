package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelVerbose sits below slog.LevelDebug and carries the chattiest
// messages, such as hints dropped while power save is active.
const LevelVerbose = slog.Level(-8)

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "verbose":
		return LevelVerbose, nil
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// Setup installs a text handler on w as the default logger.
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == LevelVerbose {
					a.Value = slog.StringValue("VERBOSE")
				}
			}
			return a
		},
	})).With("tag", "power@1.0-exynos7904")
	slog.SetDefault(logger)
	return logger
}

// Verbose logs msg at LevelVerbose on the default logger.
func Verbose(msg string, args ...any) {
	slog.Default().Log(context.Background(), LevelVerbose, msg, args...)
}
