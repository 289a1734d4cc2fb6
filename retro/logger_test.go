package retro

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogHandlerStderr(t *testing.T) {
	var out bytes.Buffer
	sink := &logSink{stderr: &out}
	log := slog.New(newLogHandler(sink, slog.LevelInfo, "core"))

	log.Debug("hidden")
	log.Info("loaded", "size", 1024)
	log.With("port", 1).WithGroup("pad").Warn("unplugged", "id", 3)
	log.Error("bad", "target", "vfs")

	assert.Equal(t,
		"[libretro INFO] [core] loaded size=1024\n"+
			"[libretro WARN] [core] unplugged port=1 pad.id=3\n"+
			"[libretro ERROR] [vfs] bad\n",
		out.String())
}

func TestLogLevelMapping(t *testing.T) {
	testCases := []struct {
		level slog.Level
		host  LogLevel
		name  string
	}{
		{LevelTrace, LogLevelDebug, "DEBUG"},
		{slog.LevelDebug, LogLevelDebug, "DEBUG"},
		{slog.LevelInfo, LogLevelInfo, "INFO"},
		{slog.LevelWarn, LogLevelWarn, "WARN"},
		{slog.LevelError, LogLevelError, "ERROR"},
	}
	for _, tc := range testCases {
		t.Run(tc.level.String(), func(t *testing.T) {
			assert.Equal(t, tc.host, hostLogLevel(tc.level))
			assert.Equal(t, tc.name, levelName(tc.level))
		})
	}
}

// TestLogSinkStripsNul verifies messages handed to the host stay one C
// string.
func TestLogSinkStripsNul(t *testing.T) {
	var got string
	sink := &logSink{}
	sink.setHost(func(fn uintptr, level int32, msg *byte) { got = goStringUnchecked(msg) }, 1)
	require.True(t, sink.hasHost())

	sink.write(slog.LevelInfo, "t", "a\x00b")
	assert.Equal(t, "[t] ab\n", got)

	sink.setHost(nil, 1)
	assert.False(t, sink.hasHost())
}

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"trace", LevelTrace, true},
		{"DEBUG", slog.LevelDebug, true},
		{" info ", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseLogLevel(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvStrictFlags, "true")
	cfg := ConfigFromEnv(DefaultConfig())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.StrictFlags)

	t.Setenv(EnvLogLevel, "nonsense")
	t.Setenv(EnvStrictFlags, "maybe")
	cfg = ConfigFromEnv(DefaultConfig())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.StrictFlags)
}
