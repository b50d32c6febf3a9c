package logging

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a tint-backed logger writing to w
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
		NoColor:    noColor,
	})
	return slog.New(handler)
}

// InitLogger installs a logger as the slog default and returns it
func InitLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	logger := New(w, level, noColor)
	slog.SetDefault(logger)
	return logger
}
