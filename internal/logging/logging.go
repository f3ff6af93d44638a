// Package logging configures the zerolog logger used for diagnostics. User
// facing prompts and status lines go through the prompt package instead.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel keeps interactive sessions free of diagnostics.
const DefaultLevel = zerolog.WarnLevel

// ParseLevel parses a level name, falling back to DefaultLevel for an empty
// string.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(level)
	if level == "" {
		return DefaultLevel, nil
	}
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return DefaultLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return parsed, nil
}

// New builds a human-readable console logger writing to w. An invalid level
// is reported through the logger itself and replaced by DefaultLevel.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := ParseLevel(level)

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    false,
		TimeFormat: time.Kitchen,
	}).Level(lvl).With().Timestamp().Logger()

	if err != nil {
		logger.Warn().Str("invalid_level", level).Msg("Invalid log level, using default 'warn'")
	}
	return logger
}
