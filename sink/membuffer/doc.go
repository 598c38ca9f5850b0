// Package membuffer provides the bounded in-memory record store that acts
// as the canonical source of truth for reading logs back.
//
// Buffer is both a sink.Recorder (the dispatcher inserts normalized records
// directly) and a sink.Sink. Payloads are serialized on insertion, so every
// stored record is JSON-safe. Retention is pure FIFO: with capacity 5,
// inserting m0..m6 leaves m2..m6.
package membuffer
