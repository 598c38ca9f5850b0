package storagesink

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/formatter"
	"github.com/philipp01105/logfacade/sink"
)

// DefaultMaxStored is the default number of records kept in the store
const DefaultMaxStored = 100

// ErrCorrupt is wrapped by Load when the persisted value is not a record array
var ErrCorrupt = errors.New("corrupt persisted records")

// Key returns the storage key records of an application are persisted under
func Key(applicationName string) string {
	return applicationName + "-logs"
}

// Config holds configuration for the storage sink
type Config struct {
	// Store to persist into (required)
	Store Store
	// Key to persist under (default: Key("application"))
	Key string
	// MaxStored caps the persisted array (default: DefaultMaxStored)
	MaxStored int
	// Diagnostics receives store failures (default: no-op)
	Diagnostics *zap.Logger
}

// applyStorageDefaults fills in zero-value fields with defaults.
func applyStorageDefaults(cfg *Config) {
	if cfg.Key == "" {
		cfg.Key = Key("application")
	}
	if cfg.MaxStored <= 0 {
		cfg.MaxStored = DefaultMaxStored
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = zap.NewNop()
	}
}

// Sink appends every log call to a JSON array in a Store, keeping at most
// MaxStored records. Store failures are logged and never returned, so a
// broken store does not count as a failed sink. A corrupt persisted array is
// logged and replaced by a fresh one holding the new record.
type Sink struct {
	mu        sync.Mutex
	store     Store
	key       string
	maxStored int
	diag      *zap.Logger
}

// New creates a new storage sink
func New(cfg Config) *Sink {
	applyStorageDefaults(&cfg)
	return &Sink{
		store:     cfg.Store,
		key:       cfg.Key,
		maxStored: cfg.MaxStored,
		diag:      cfg.Diagnostics,
	}
}

// Handle normalizes the entry and appends it to the persisted array
func (s *Sink) Handle(entry *core.Entry) error {
	rec := core.Normalize(*entry)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.append(rec); err != nil {
		s.diag.Warn("storage sink failed",
			zap.String("key", s.key),
			zap.Stringer("level", rec.Level),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Sink) append(rec core.Record) error {
	records, err := Load(s.store, s.key)
	if errors.Is(err, ErrCorrupt) {
		s.diag.Warn("discarding corrupt persisted records", zap.String("key", s.key), zap.Error(err))
		records = nil
	} else if err != nil {
		return err
	}
	records = append(records, rec)
	if n := len(records) - s.maxStored; n > 0 {
		records = records[n:]
	}

	b, err := formatter.EncodeRecords(records)
	if err != nil {
		return err
	}
	return s.store.Set(s.key, string(b))
}

// Key returns the key this sink persists under
func (s *Sink) Key() string {
	return s.key
}

// Clear removes the persisted array
func (s *Sink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(s.key)
}

// Kind returns sink.KindStorage
func (s *Sink) Kind() sink.Kind {
	return sink.KindStorage
}

// Close closes the sink. The store is owned by the caller and left open.
func (s *Sink) Close() error {
	return nil
}

// Load reads the records persisted under key, oldest first. A missing or
// empty key yields no records.
func Load(store Store, key string) ([]core.Record, error) {
	raw, ok, err := store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}
	records, err := formatter.DecodeRecords([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w: %w", key, ErrCorrupt, err)
	}
	return records, nil
}
