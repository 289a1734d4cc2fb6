package retro

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
)

// LevelTrace is below slog.LevelDebug and is used for entry point tracing.
const LevelTrace = slog.Level(-8)

// LogPrintfFunc calls a host retro_log_printf_t with a single preformatted
// message.
type LogPrintfFunc func(fn uintptr, level int32, msg *byte)

// logSink is where records end up. It is shared by every handler derived
// from the same root so switching to the host logger affects them all.
type logSink struct {
	mu     sync.Mutex
	printf LogPrintfFunc
	fn     uintptr
	stderr io.Writer
}

func (s *logSink) setHost(printf LogPrintfFunc, fn uintptr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if printf == nil || fn == 0 {
		s.printf, s.fn = nil, 0
		return
	}
	s.printf, s.fn = printf, fn
}

func (s *logSink) hasHost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fn != 0
}

func (s *logSink) write(level slog.Level, target, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fn != 0 {
		msg := cstringOrEmpty(strings.ReplaceAll("["+target+"] "+line+"\n", "\x00", ""))
		var pin runtime.Pinner
		pin.Pin(msg)
		s.printf(s.fn, int32(hostLogLevel(level)), msg)
		pin.Unpin()
		return
	}
	if s.stderr != nil {
		fmt.Fprintf(s.stderr, "[libretro %s] [%s] %s\n", levelName(level), target, line)
	}
}

func hostLogLevel(l slog.Level) LogLevel {
	switch {
	case l >= slog.LevelError:
		return LogLevelError
	case l >= slog.LevelWarn:
		return LogLevelWarn
	case l >= slog.LevelInfo:
		return LogLevelInfo
	}
	return LogLevelDebug
}

func levelName(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

// logHandler formats records as "msg key=value ..." and hands them to the
// sink. A "target" attribute replaces the default target.
type logHandler struct {
	sink   *logSink
	level  slog.Leveler
	target string
	prefix string
	attrs  []slog.Attr
}

func newLogHandler(sink *logSink, level slog.Leveler, target string) *logHandler {
	return &logHandler{sink: sink, level: level, target: target}
}

func (h *logHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *logHandler) Handle(_ context.Context, r slog.Record) error {
	target := h.target
	var b strings.Builder
	b.WriteString(r.Message)

	add := func(a slog.Attr) {
		a.Value = a.Value.Resolve()
		if a.Equal(slog.Attr{}) {
			return
		}
		if a.Key == "target" {
			target = a.Value.String()
			return
		}
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Any())
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		add(a)
		return true
	})

	h.sink.write(r.Level, target, b.String())
	return nil
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	n.attrs = append(n.attrs, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}
		n.attrs = append(n.attrs, a)
	}
	return &n
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	n := *h
	n.prefix = h.prefix + name + "."
	return &n
}
