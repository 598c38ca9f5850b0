package sink

import (
	"sync/atomic"
)

// Stats tracks dispatcher statistics
type Stats struct {
	// Separate atomic counters per sink kind
	FailedCustom  uint64
	FailedConsole uint64
	FailedStorage uint64
	FailedMemory  uint64
	// DeliveredTotal counts successful sink invocations
	DeliveredTotal uint64
	// RecordedTotal counts records written to the canonical buffer
	RecordedTotal uint64
}

// NewStats creates a new Stats instance
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) counter(kind Kind) *uint64 {
	switch kind {
	case KindConsole:
		return &s.FailedConsole
	case KindStorage:
		return &s.FailedStorage
	case KindMemory:
		return &s.FailedMemory
	default:
		return &s.FailedCustom
	}
}

// IncrementFailed atomically increments the failure counter for a kind
func (s *Stats) IncrementFailed(kind Kind) {
	atomic.AddUint64(s.counter(kind), 1)
}

// IncrementDelivered atomically increments the delivered counter
func (s *Stats) IncrementDelivered() {
	atomic.AddUint64(&s.DeliveredTotal, 1)
}

// IncrementRecorded atomically increments the recorded counter
func (s *Stats) IncrementRecorded() {
	atomic.AddUint64(&s.RecordedTotal, 1)
}

// GetFailed returns the failure count for a kind
func (s *Stats) GetFailed(kind Kind) uint64 {
	return atomic.LoadUint64(s.counter(kind))
}

// GetTotalFailed returns the total failures across all kinds
func (s *Stats) GetTotalFailed() uint64 {
	return atomic.LoadUint64(&s.FailedCustom) +
		atomic.LoadUint64(&s.FailedConsole) +
		atomic.LoadUint64(&s.FailedStorage) +
		atomic.LoadUint64(&s.FailedMemory)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.FailedCustom, 0)
	atomic.StoreUint64(&s.FailedConsole, 0)
	atomic.StoreUint64(&s.FailedStorage, 0)
	atomic.StoreUint64(&s.FailedMemory, 0)
	atomic.StoreUint64(&s.DeliveredTotal, 0)
	atomic.StoreUint64(&s.RecordedTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Failed    map[Kind]uint64
	Delivered uint64
	Recorded  uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Failed: map[Kind]uint64{
			KindCustom:  s.GetFailed(KindCustom),
			KindConsole: s.GetFailed(KindConsole),
			KindStorage: s.GetFailed(KindStorage),
			KindMemory:  s.GetFailed(KindMemory),
		},
		Delivered: atomic.LoadUint64(&s.DeliveredTotal),
		Recorded:  atomic.LoadUint64(&s.RecordedTotal),
	}
}
