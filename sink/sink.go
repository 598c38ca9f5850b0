package sink

import (
	"github.com/philipp01105/logfacade/core"
)

// Sink defines the interface for log sinks
type Sink interface {
	// Handle receives a raw log call. The entry must not be retained or
	// modified after Handle returns.
	Handle(entry *core.Entry) error

	// Close closes the sink and releases resources
	Close() error
}

// Kind tags a sink with the role it plays, so configuration can be
// inspected without type assertions on concrete sink types.
type Kind uint8

const (
	// KindCustom is any caller-supplied sink
	KindCustom Kind = iota
	// KindConsole writes to a console facility
	KindConsole
	// KindStorage persists to a key-value store
	KindStorage
	// KindMemory keeps records in memory and can be read back
	KindMemory
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindConsole:
		return "console"
	case KindStorage:
		return "storage"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// Kinded is an optional interface for sinks that carry a Kind tag
type Kinded interface {
	Kind() Kind
}

// KindOf returns the sink's tag, or KindCustom when it has none
func KindOf(s Sink) Kind {
	if k, ok := s.(Kinded); ok {
		return k.Kind()
	}
	return KindCustom
}

// Recorder is the canonical retention store the dispatcher always writes to
// before any other sink.
type Recorder interface {
	Insert(rec core.Record)
}

// Func adapts a function into a Sink. Each call returns a distinct sink, so
// registering the same Func value twice is deduplicated while two Func
// wrappers around one function are not.
func Func(fn func(entry *core.Entry) error) Sink {
	return &funcSink{fn: fn}
}

type funcSink struct {
	fn func(entry *core.Entry) error
}

func (f *funcSink) Handle(entry *core.Entry) error {
	if f.fn == nil {
		return nil
	}
	return f.fn(entry)
}

func (f *funcSink) Close() error { return nil }
