package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/humanbelnik/catalog/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup builds the process logger and installs it as slog's default.
// When cfg.File is set records go both to stdout and to a rotated file.
func Setup(cfg config.Log) *slog.Logger {
	l := New(cfg, os.Stdout)
	slog.SetDefault(l)
	return l
}

func New(cfg config.Log, stdout io.Writer) *slog.Logger {
	var w io.Writer = stdout
	if cfg.File != "" {
		w = io.MultiWriter(stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
