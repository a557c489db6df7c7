// Package log builds the process slog.Logger.
//
// Console output goes to stdout, except errors which go to stderr. When a
// log file is configured, records are also written there as text, with the
// file rotated by size.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelTrace is below Debug and used for per-event output.
const LevelTrace slog.Level = -8

// ParseLevel maps trace, debug, info, warn and error to a level. Anything
// else is Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
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

// FileOptions controls rotation of the log file.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// Setup installs and returns the default logger. The returned closer flushes
// and closes the log file, if any.
func Setup(level string, file FileOptions) (*slog.Logger, io.Closer, error) {
	return setup(ParseLevel(level), os.Stdout, os.Stderr, file)
}

func setup(level slog.Level, stdout, stderr io.Writer, file FileOptions) (*slog.Logger, io.Closer, error) {
	handlers := []slog.Handler{
		levelRange{max: slog.LevelError, h: newConsoleHandler(stdout, level)},
		newConsoleHandler(stderr, max(level, slog.LevelError)),
	}

	var closer io.Closer = nopCloser{}
	if file.Path != "" {
		f, err := os.OpenFile(file.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		_ = f.Close()

		lj := &lumberjack.Logger{
			Filename:   file.Path,
			MaxSize:    file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			Compress:   file.Compress,
		}
		closer = lj
		handlers = append(handlers, slog.NewTextHandler(lj, &slog.HandlerOptions{Level: level, ReplaceAttr: levelNames}))
	}

	logger := slog.New(fanout(handlers))
	slog.SetDefault(logger)
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func levelNames(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok && l <= LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// fanout sends every record to each handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// levelRange passes only records below max.
type levelRange struct {
	max slog.Level
	h   slog.Handler
}

func (l levelRange) Enabled(ctx context.Context, level slog.Level) bool {
	return level < l.max && l.h.Enabled(ctx, level)
}

func (l levelRange) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= l.max {
		return nil
	}
	return l.h.Handle(ctx, r)
}

func (l levelRange) WithAttrs(attrs []slog.Attr) slog.Handler {
	return levelRange{max: l.max, h: l.h.WithAttrs(attrs)}
}

func (l levelRange) WithGroup(name string) slog.Handler {
	return levelRange{max: l.max, h: l.h.WithGroup(name)}
}

// consoleHandler writes one coloured line per record.
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
}

func newConsoleHandler(w io.Writer, level slog.Level) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString("\033[90m")
	b.WriteString(r.Time.Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteString("\033[0m ")
	b.WriteString(levelColor(r.Level))
	fmt.Fprintf(&b, "%5s", levelLabel(r.Level))
	b.WriteString("\033[0m ")
	b.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		b.WriteString(" ")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &c
}

// Groups are flattened on the console.
func (h *consoleHandler) WithGroup(string) slog.Handler {
	return h
}

func levelLabel(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "\033[31m"
	case l >= slog.LevelWarn:
		return "\033[33m"
	case l >= slog.LevelInfo:
		return "\033[32m"
	case l >= slog.LevelDebug:
		return "\033[34m"
	default:
		return "\033[35m"
	}
}
