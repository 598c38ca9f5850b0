// Package sink provides the Sink interface and the Dispatcher that fans a
// log call out to every registered sink.
//
// A Sink receives the raw core.Entry of each log call and normalizes or
// serializes it as it needs. Sinks may carry a Kind tag (console, storage,
// memory); untagged sinks count as custom.
//
// The Dispatcher always writes the normalized record to its canonical
// Recorder first, using the caller's source or, when none was given, the
// call site. Every other sink then receives the entry with the caller's
// original source only, so call-site names never leak into persisted or
// displayed output unless the caller asked for attribution.
//
// Each sink call is isolated. Errors and panics are captured as a Result,
// logged as a warning on the diagnostics zap.Logger and counted in Stats;
// delivery continues with the next sink.
//
// Built-in sinks live in subpackages:
//
//   - membuffer keeps a bounded, queryable history (the canonical recorder).
//   - consolesink writes formatted lines to a leveled console facility.
//   - storagesink persists a capped JSON array in a key-value store.
package sink
