package logger

import (
	"log/slog"
	"os"
)

var Logger *slog.Logger

// Init configures the process-wide slog logger. Debug mode lowers the
// level so per-feed fetch details become visible.
func Init(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(Logger)
}

func get() *slog.Logger {
	if Logger == nil {
		return slog.Default()
	}
	return Logger
}

func Info(msg string, args ...any) {
	get().Info(msg, args...)
}

func Error(msg string, args ...any) {
	get().Error(msg, args...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, args...)
}
