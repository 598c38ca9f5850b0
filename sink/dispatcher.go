package sink

import (
	"fmt"
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/philipp01105/logfacade/core"
)

// Result is the outcome of delivering one entry to one sink
type Result struct {
	Sink Sink
	Kind Kind
	Err  error
}

// Combine merges the errors of a broadcast into one error, or nil
func Combine(results []Result) error {
	var err error
	for _, r := range results {
		err = multierr.Append(err, r.Err)
	}
	return err
}

// Dispatcher fans each log call out to an ordered set of sinks, after
// first writing it to the canonical recorder. A failing sink never stops
// delivery to the others and never reaches the caller.
//
// Dispatcher is not safe for concurrent use; the owner serializes access.
type Dispatcher struct {
	canonical Recorder
	sinks     []Sink
	diag      *zap.Logger
	stats     *Stats
}

// NewDispatcher creates a dispatcher writing to canonical first. A nil
// diagnostics logger discards diagnostics.
func NewDispatcher(canonical Recorder, diag *zap.Logger, sinks ...Sink) *Dispatcher {
	if diag == nil {
		diag = zap.NewNop()
	}
	d := &Dispatcher{
		canonical: canonical,
		diag:      diag,
		stats:     NewStats(),
	}
	for _, s := range sinks {
		d.Register(s)
	}
	return d
}

// SetDiagnostics replaces the diagnostics logger
func (d *Dispatcher) SetDiagnostics(diag *zap.Logger) {
	if diag == nil {
		diag = zap.NewNop()
	}
	d.diag = diag
}

// Register appends a sink. It reports false and does nothing when the sink
// is nil, already registered, or is the canonical recorder itself.
func (d *Dispatcher) Register(s Sink) bool {
	if s == nil {
		return false
	}
	if c, ok := d.canonical.(Sink); ok && sameSink(c, s) {
		return false
	}
	for _, existing := range d.sinks {
		if sameSink(existing, s) {
			return false
		}
	}
	d.sinks = append(d.sinks, s)
	return true
}

// Replace swaps the whole registration set and returns the previous one
func (d *Dispatcher) Replace(sinks ...Sink) []Sink {
	prev := d.sinks
	d.sinks = nil
	for _, s := range sinks {
		d.Register(s)
	}
	return prev
}

// Sinks returns a copy of the registered sinks in order
func (d *Dispatcher) Sinks() []Sink {
	out := make([]Sink, len(d.sinks))
	copy(out, d.sinks)
	return out
}

// Has reports whether a sink of the given kind is registered
func (d *Dispatcher) Has(kind Kind) bool {
	for _, s := range d.sinks {
		if KindOf(s) == kind {
			return true
		}
	}
	return false
}

// Broadcast delivers one log call. The source is resolved once: the
// caller-supplied one if present, otherwise the call site. The resolved
// source is only ever seen by the canonical recorder; every other sink gets
// the entry exactly as the caller made it.
func (d *Dispatcher) Broadcast(entry core.Entry, caller core.CallerInfo) []Result {
	resolved := entry
	if resolved.Source == "" {
		resolved.Source = caller.Source()
	}
	d.record(resolved)

	if len(d.sinks) == 0 {
		return nil
	}

	results := make([]Result, 0, len(d.sinks))
	for _, s := range d.sinks {
		kind := KindOf(s)
		e := entry
		err := safeHandle(s, &e)
		results = append(results, Result{Sink: s, Kind: kind, Err: err})
		if err != nil {
			d.stats.IncrementFailed(kind)
			d.diag.Warn("sink failed",
				zap.Stringer("sink", kind),
				zap.Stringer("level", entry.Level),
				zap.Error(err))
			continue
		}
		d.stats.IncrementDelivered()
	}
	return results
}

func (d *Dispatcher) record(entry core.Entry) {
	if d.canonical == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.stats.IncrementFailed(KindMemory)
			d.diag.Warn("canonical buffer failed",
				zap.Stringer("level", entry.Level),
				zap.Any("panic", r))
		}
	}()
	d.canonical.Insert(core.Normalize(entry))
	d.stats.IncrementRecorded()
}

// safeHandle calls the sink and converts a panic into an error
func safeHandle(s Sink, e *core.Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return s.Handle(e)
}

// Stats returns a snapshot of the current statistics
func (d *Dispatcher) Stats() Snapshot {
	return d.stats.GetSnapshot()
}

// Close closes all registered sinks
func (d *Dispatcher) Close() error {
	var err error
	for _, s := range d.sinks {
		err = multierr.Append(err, s.Close())
	}
	return err
}

// sameSink compares sinks by identity. Values holding non-comparable data
// (maps, slices, funcs, also inside interface fields) are never equal to
// another value; map, slice and func sinks compare by underlying pointer.
func sameSink(a, b Sink) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func:
		return va.Pointer() == vb.Pointer()
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return false
}
