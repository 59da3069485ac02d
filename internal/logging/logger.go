// v1
// internal/logging/logger.go

package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds the process logger. Output goes to stdout and, when the log file
// can be opened, to LOG_PATH as well. A file open failure is not fatal.
func New(defaultPath string) *slog.Logger {
	logPath := os.Getenv("LOG_PATH")
	if logPath == "" {
		logPath = defaultPath
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		l := slog.New(handler)
		l.Error("failed to open log file", "path", logPath, "err", err)
		return l
	}
	mw := io.MultiWriter(os.Stdout, f)
	handler := slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})
	l := slog.New(handler)
	l.Info("logger initialized", "file", logPath)
	return l
}
