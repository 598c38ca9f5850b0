package storagesink

import (
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store is a string key/value store that persists across sessions
type Store interface {
	// Get returns the value for key and whether it exists
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// MemoryStore is an in-process Store. It does not survive restarts and is
// mainly useful for tests and for hosts without a writable disk.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// DefaultBucket is the bbolt bucket BoltStore keeps its values in
const DefaultBucket = "logs"

// BoltConfig holds configuration for BoltStore
type BoltConfig struct {
	// Path of the database file
	Path string
	// Bucket name (default: DefaultBucket)
	Bucket string
	// Timeout waiting for the file lock (default: 1s)
	Timeout time.Duration
	// ReadOnly opens the database without write access
	ReadOnly bool
}

// BoltStore is a Store backed by a bbolt database file
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

// OpenBolt opens (creating if needed) the database at cfg.Path
func OpenBolt(cfg BoltConfig) (*BoltStore, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: cfg.Timeout, ReadOnly: cfg.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Path, err)
	}

	s := &BoltStore{db: db, bucket: []byte(cfg.Bucket)}
	if cfg.ReadOnly {
		return s, nil
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
	}
	return s, nil
}

func (s *BoltStore) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, found, nil
}

func (s *BoltStore) Set(key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *BoltStore) Remove(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Keys lists every key in the bucket, in byte order
func (s *BoltStore) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

// Close closes the database file
func (s *BoltStore) Close() error {
	return s.db.Close()
}
