package retro

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLogLevel    = "GORETRO_LOG"
	EnvStrictFlags = "GORETRO_STRICT_FLAGS"
)

// Config controls binding behaviour that is not negotiated with the host.
type Config struct {
	// StrictFlags rejects unknown bits in host flag values instead of
	// passing them through.
	StrictFlags bool

	LogLevel slog.Level

	// LogTarget prefixes every log line. Empty means the core's library
	// name.
	LogTarget string

	// Stderr receives log output while the host provides no log interface.
	// Nil discards it.
	Stderr io.Writer
}

// DefaultConfig logs at info level to standard error.
func DefaultConfig() Config {
	return Config{
		LogLevel: slog.LevelInfo,
		Stderr:   os.Stderr,
	}
}

// ConfigFromEnv applies GORETRO_LOG and GORETRO_STRICT_FLAGS on top of base.
// Unparseable values are ignored.
func ConfigFromEnv(base Config) Config {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		if l, ok := parseLogLevel(v); ok {
			base.LogLevel = l
		}
	}
	if v, ok := os.LookupEnv(EnvStrictFlags); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			base.StrictFlags = b
		}
	}
	return base
}

func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return 0, false
}
