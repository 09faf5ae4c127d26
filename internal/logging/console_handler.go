package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const timestampLayout = "15:04:05"

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
	ansiDim    = "\x1b[2m"
)

// consoleHandler renders records as timestamped single-line console output:
//
//	[14:03:22] INFO   Installing binary path=/home/u/.local/bin/cherrypie
type consoleHandler struct {
	mu       sync.Mutex
	writer   io.Writer
	level    *slog.LevelVar
	colorize bool
	// attrs hold bound attributes with their group prefix already applied.
	attrs  []kv
	groups []string
}

type kv struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, colorize bool) slog.Handler {
	return &consoleHandler{writer: w, level: lvl, colorize: colorize}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	timestamp := record.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var buf bytes.Buffer
	buf.Grow(128)

	buf.WriteByte('[')
	buf.WriteString(timestamp.In(time.Local).Format(timestampLayout))
	buf.WriteString("] ")
	h.writeLevel(&buf, record.Level)
	buf.WriteByte(' ')
	buf.WriteString(strings.TrimSpace(record.Message))

	writeKV := func(pair kv) {
		buf.WriteByte(' ')
		if h.colorize {
			buf.WriteString(ansiDim)
		}
		buf.WriteString(pair.key)
		buf.WriteByte('=')
		buf.WriteString(pair.value.String())
		if h.colorize {
			buf.WriteString(ansiReset)
		}
	}
	for _, pair := range h.attrs {
		writeKV(pair)
	}
	record.Attrs(func(attr slog.Attr) bool {
		for _, pair := range flatten(h.groups, attr) {
			writeKV(pair)
		}
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) writeLevel(buf *bytes.Buffer, level slog.Level) {
	label := levelLabel(level)
	padded := label + strings.Repeat(" ", 5-len(label))
	if !h.colorize {
		buf.WriteString(padded)
		return
	}
	switch {
	case level >= slog.LevelError:
		buf.WriteString(ansiRed)
	case level >= slog.LevelWarn:
		buf.WriteString(ansiYellow)
	case level < slog.LevelInfo:
		buf.WriteString(ansiDim)
	default:
		buf.WriteString(ansiCyan)
	}
	buf.WriteString(padded)
	buf.WriteString(ansiReset)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, flatten(h.groups, attr)...)
	}
	return clone
}

// flatten resolves an attribute into key/value pairs with group-qualified
// keys, expanding nested slog groups.
func flatten(groups []string, attr slog.Attr) []kv {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return nil
	}
	if attr.Value.Kind() == slog.KindGroup {
		next := groups
		if attr.Key != "" {
			next = append(append([]string{}, groups...), attr.Key)
		}
		var pairs []kv
		for _, member := range attr.Value.Group() {
			pairs = append(pairs, flatten(next, member)...)
		}
		return pairs
	}
	key := attr.Key
	if len(groups) > 0 {
		key = strings.Join(append(append([]string{}, groups...), key), ".")
	}
	return []kv{{key: key, value: attr.Value}}
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	clone.groups = append(clone.groups, name)
	return clone
}

func (h *consoleHandler) clone() *consoleHandler {
	clone := &consoleHandler{
		writer:   h.writer,
		level:    h.level,
		colorize: h.colorize,
	}
	if len(h.attrs) > 0 {
		clone.attrs = make([]kv, len(h.attrs))
		copy(clone.attrs, h.attrs)
	}
	if len(h.groups) > 0 {
		clone.groups = make([]string, len(h.groups))
		copy(clone.groups, h.groups)
	}
	return clone
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
