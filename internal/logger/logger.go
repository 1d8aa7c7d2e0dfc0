package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the process-wide logger. It falls back to slog's default until Init runs.
var Logger = slog.Default()

// Init installs a text logger on stdout. Debug output is enabled when debug is true.
func Init(debug bool) {
	InitWithWriter(os.Stdout, debug)
}

func InitWithWriter(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(w, opts))
	slog.SetDefault(Logger)
}

// With returns a child logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
