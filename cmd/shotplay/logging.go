package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/shotplay/config"
)

const logFileName = "shotplay.log"

// setupLogging opens the session log. The terminal owns stdout, so logs only
// go to a file. Logging is off (Nop logger, nil file) unless enabled in the
// config or forced by debug. A previous log larger than MaxSize is moved to
// <name>.old first.
func setupLogging(cfg config.LogConfig, debug bool) (zerolog.Logger, *os.File, error) {
	if !cfg.Enabled && !debug {
		return zerolog.Nop(), nil, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(cfg.Dir, logFileName)
	if info, err := os.Stat(logPath); err == nil && cfg.MaxSize > 0 && info.Size() > cfg.MaxSize {
		if err := os.Rename(logPath, logPath+".old"); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}

	level := parseLevel(cfg.Level)
	if debug && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        file,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(level).With().Timestamp().Logger()

	logger.Info().Str("level", level.String()).Str("path", logPath).Msg("logging set up")
	return logger, file, nil
}

// parseLevel maps a config level name to zerolog, defaulting to info
func parseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
