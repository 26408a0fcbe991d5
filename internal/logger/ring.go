package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one retained log record, with structured fields flattened into
// a plain map for JSON retrieval.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// RingBuffer retains the most recent log entries in memory, evicting the
// oldest once the capacity is reached. It plugs into a zap logger through
// Core().
type RingBuffer struct {
	mu      sync.Mutex
	entries []Entry
	cap     int
}

// NewRingBuffer creates a buffer holding at most capacity entries
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{cap: capacity}
}

func (b *RingBuffer) append(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, e)
	if len(b.entries) > b.cap {
		b.entries = b.entries[len(b.entries)-b.cap:]
	}
}

// Entries returns retained entries, oldest first. A non-empty level
// restricts the result to that level.
func (b *RingBuffer) Entries(level string) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		if level == "" || e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of retained entries
func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Clear drops all retained entries
func (b *RingBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
}

// Core returns a zapcore.Core that records every enabled entry into the
// buffer
func (b *RingBuffer) Core(enab zapcore.LevelEnabler) zapcore.Core {
	return &bufferCore{buf: b, LevelEnabler: enab}
}

type bufferCore struct {
	zapcore.LevelEnabler
	buf    *RingBuffer
	fields []zapcore.Field
}

func (c *bufferCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &bufferCore{
		LevelEnabler: c.LevelEnabler,
		buf:          c.buf,
		fields:       make([]zapcore.Field, 0, len(c.fields)+len(fields)),
	}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *bufferCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *bufferCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var ctx map[string]any
	if len(enc.Fields) > 0 {
		ctx = enc.Fields
	}

	c.buf.append(Entry{
		Timestamp: ent.Time,
		Level:     ent.Level.String(),
		Message:   ent.Message,
		Fields:    ctx,
	})
	return nil
}

func (c *bufferCore) Sync() error {
	return nil
}
