// Package logging builds the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/1broseidon/xrwm/internal/runtimepath"
)

const (
	maxLogBytes = 10 * 1024 * 1024
	maxLogFiles = 3
)

// ParseLevel converts a config level name to a slog level. Unknown names
// map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger at level. With an explicit file, or when stderr
// is not a terminal (a window manager started from .xinitrc), output goes to
// a rotating file; otherwise it goes to stderr. The returned closer must be
// closed on exit.
func New(level, file string) (*slog.Logger, io.Closer, error) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if file == "" && !term.IsTerminal(int(os.Stderr.Fd())) {
		path, err := runtimepath.LogPath()
		if err != nil {
			return nil, nil, err
		}
		file = path
	}
	if file != "" {
		rf, err := OpenRotatingFile(file, maxLogBytes, maxLogFiles)
		if err != nil {
			return nil, nil, err
		}
		out, closer = rf, rf
	}
	return NewWithWriter(out, level), closer, nil
}

// NewWithWriter returns a text logger writing to w.
func NewWithWriter(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
