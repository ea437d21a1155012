package config

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the process logger: JSON by default, text when LOG_FORMAT=text.
func NewLogger(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("env", cfg.AppEnv))
}
