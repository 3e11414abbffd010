package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger according to configuration
func SetupLogger(format, levelStr string) {
	if strings.ToLower(format) == "json" {
		SetupJSONLogger(levelStr, os.Stderr)
	} else {
		SetupDefaultLogger(levelStr)
	}
}

// SetupJSONLogger emits one json object per line to w
func SetupJSONLogger(levelStr string, w io.Writer) {
	zerolog.MessageFieldName = "message"
	zerolog.LevelFieldName = "level"

	var tsHook timestampHook
	log.Logger = zerolog.New(w).
		Hook(&tsHook).
		Level(GetLogLevelOrInfo(levelStr))
}

// SetupDefaultLogger emits human-readable log lines to stderr
func SetupDefaultLogger(levelStr string) {
	zerolog.MessageFieldName = "message"
	zerolog.LevelFieldName = "level"

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(GetLogLevelOrInfo(levelStr)).
		With().
		Timestamp().
		Logger()
}

// GetLogLevelOrInfo parses a log level name, defaulting to info
func GetLogLevelOrInfo(levelStr string) zerolog.Level {
	levelStr = strings.ToLower(levelStr)
	if levelStr == "" {
		return zerolog.InfoLevel
	}
	if levelStr == "warning" {
		levelStr = "warn"
	}

	var level zerolog.Level

	err := level.UnmarshalText([]byte(levelStr))
	if err == nil {
		return level
	}

	log.Warn().Msgf("Unknown log level '%s', defaulting to info", levelStr)
	return zerolog.InfoLevel
}

type timestampHook struct{}

func (h *timestampHook) Run(e *zerolog.Event, l zerolog.Level, msg string) {
	t := time.Now()
	ts := t.Format(time.RFC3339)
	e.Str("time", ts)
}
