package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"

	FormatText = "text"
	FormatJSON = "json"
)

// Options selects and tunes a backend. Zero values mean slog, info, text, stderr.
type Options struct {
	Backend string
	Level   string
	Format  string
	Writer  io.Writer
}

// New builds a Logger from opts.
func New(opts Options) (Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	lvl := strings.ToLower(strings.TrimSpace(opts.Level))
	if lvl == "" {
		lvl = "info"
	}

	switch strings.ToLower(opts.Backend) {
	case "", BackendSlog:
		var sl slog.Level
		if err := sl.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		return newSlog(w, sl, opts.Format), nil

	case BackendZap:
		zl, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
		return newZap(w, zl, opts.Format), nil

	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return newSlog(io.Discard, slog.LevelError+1, FormatText)
}
