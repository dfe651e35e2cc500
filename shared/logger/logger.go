// фабрика структурированного логгера (log/slog)
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config - уровень и формат логов
type Config struct {
	Level  slog.Level
	Format string // "json" или "text"
}

// конфиг логгера по умолчанию
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: "json",
	}
}

// ConfigFromEnv читает LOG_LEVEL и LOG_FORMAT, неизвестные значения заменяются дефолтными
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		cfg.Level = slog.LevelDebug
	case "warn", "warning":
		cfg.Level = slog.LevelWarn
	case "error":
		cfg.Level = slog.LevelError
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "text" {
		cfg.Format = "text"
	}
	return cfg
}

// New создаёт логгер и делает его логгером по умолчанию
func New(cfg Config) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter - то же самое с произвольным выводом (тесты, файлы)
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
