// Package logging builds the slog logger the CLI hands to the storage
// engine and gateway. Logs go to stderr so they never mix with command
// output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level names accepted in config and on the command line.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelOff   = "off"
)

// ParseLevel maps a level name to a slog level. The empty string means
// LevelOff. The bool is false for LevelOff.
func ParseLevel(s string) (slog.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LevelDebug:
		return slog.LevelDebug, true, nil
	case LevelInfo:
		return slog.LevelInfo, true, nil
	case LevelWarn, "warning":
		return slog.LevelWarn, true, nil
	case LevelError:
		return slog.LevelError, true, nil
	case LevelOff, "":
		return 0, false, nil
	default:
		return 0, false, fmt.Errorf("unknown log level %q (want debug, info, warn, error or off)", s)
	}
}

// New returns a text logger writing to w at the named level. LevelOff
// discards everything.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, on, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if !on {
		return slog.New(slog.DiscardHandler), nil
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
