package logging

import (
	"io"
	"log/slog"
)

// New возвращает JSON-логгер с уровнем из строки конфигурации.
// Неизвестный уровень трактуется как info.
func New(level string, w io.Writer) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}

// Discard логгер для тестов и мест, где логирование не сконфигурировано.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
