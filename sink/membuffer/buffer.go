package membuffer

import (
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/formatter"
	"github.com/philipp01105/logfacade/sink"
)

// DefaultMaxSize is the capacity used when Config.MaxSize is not set
const DefaultMaxSize = 1000

// Config holds configuration for the buffer
type Config struct {
	// MaxSize is the number of records kept (default: 1000)
	MaxSize int
	// Diagnostics receives internal failures (default: discard)
	Diagnostics *zap.Logger
}

// applyBufferDefaults fills in zero-value fields with defaults.
func applyBufferDefaults(cfg *Config) {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = zap.NewNop()
	}
}

// Buffer is a bounded in-memory record store. Once full, each insertion
// evicts the oldest records so that only the newest MaxSize remain.
//
// Changing the capacity never trims by itself; the next insertion applies
// it. Buffer is safe for concurrent use.
type Buffer struct {
	mu      sync.Mutex
	records []core.Record
	maxSize int
	diag    *zap.Logger
}

// New creates a new buffer
func New(cfg Config) *Buffer {
	applyBufferDefaults(&cfg)
	return &Buffer{
		maxSize: cfg.MaxSize,
		diag:    cfg.Diagnostics,
	}
}

// SetDiagnostics replaces the diagnostics logger; nil discards
func (b *Buffer) SetDiagnostics(diag *zap.Logger) {
	if diag == nil {
		diag = zap.NewNop()
	}
	b.mu.Lock()
	b.diag = diag
	b.mu.Unlock()
}

// Insert appends a record, serializing its data first, and evicts the
// oldest records beyond capacity. It never panics.
func (b *Buffer) Insert(rec core.Record) {
	defer func() {
		if r := recover(); r != nil {
			b.diag.Warn("buffer insert failed",
				zap.Stringer("level", rec.Level),
				zap.Any("panic", r))
		}
	}()

	if rec.Data != nil {
		rec.Data = formatter.Serialize(rec.Data)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, rec)
	if excess := len(b.records) - b.maxSize; excess > 0 {
		n := copy(b.records, b.records[excess:])
		clear(b.records[n:])
		b.records = b.records[:n]
	}
}

// Handle normalizes a raw entry and inserts it
func (b *Buffer) Handle(entry *core.Entry) error {
	b.Insert(core.Normalize(*entry))
	return nil
}

// SetCapacity changes the capacity for future insertions. Values below one
// are clamped to one.
func (b *Buffer) SetCapacity(n int) {
	if n < 1 {
		n = 1
	}
	b.mu.Lock()
	b.maxSize = n
	b.mu.Unlock()
}

// Capacity returns the current capacity
func (b *Buffer) Capacity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxSize
}

// Len returns the number of stored records
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.records)
}

// Query returns a copy of the stored records in insertion order. When levels
// are given, only records at one of those levels are returned.
func (b *Buffer) Query(levels ...core.Level) []core.Record {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(levels) == 0 {
		out := make([]core.Record, len(b.records))
		copy(out, b.records)
		return out
	}

	out := make([]core.Record, 0, len(b.records))
	for _, rec := range b.records {
		for _, lvl := range levels {
			if rec.Level == lvl {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Clear drops all records. Capacity is unchanged.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.records = nil
	b.mu.Unlock()
}

// Kind returns sink.KindMemory
func (b *Buffer) Kind() sink.Kind {
	return sink.KindMemory
}

// Close implements sink.Sink. Records stay readable.
func (b *Buffer) Close() error {
	return nil
}
