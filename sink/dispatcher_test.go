package sink

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/logfacade/core"
)

// recorder is a minimal canonical Recorder for tests
type recorder struct {
	records []core.Record
}

func (r *recorder) Insert(rec core.Record) { r.records = append(r.records, rec) }

type capture struct {
	entries []core.Entry
	kind    Kind
}

func (c *capture) Handle(e *core.Entry) error {
	c.entries = append(c.entries, *e)
	return nil
}

func (c *capture) Close() error { return nil }

func (c *capture) Kind() Kind { return c.kind }

type failing struct{ err error }

func (f failing) Handle(*core.Entry) error { return f.err }
func (f failing) Close() error             { return f.err }

type panicking struct{}

func (*panicking) Handle(*core.Entry) error { panic("sink exploded") }
func (*panicking) Close() error             { return nil }

func entry(msg string) core.Entry {
	return core.Entry{Level: core.InfoLevel, Input: core.Text(msg)}
}

var testCaller = core.CallerInfo{Function: "github.com/acme/app.(*Cart).Add", Defined: true}

func TestDispatcher_CanonicalFirst(t *testing.T) {
	var order []string
	rec := &orderRecorder{order: &order}
	s := Func(func(e *core.Entry) error {
		order = append(order, "sink")
		return nil
	})

	d := NewDispatcher(rec, nil, s)
	d.Broadcast(entry("hello"), testCaller)

	if len(order) != 2 || order[0] != "canonical" || order[1] != "sink" {
		t.Errorf("order = %v, want [canonical sink]", order)
	}
}

type orderRecorder struct{ order *[]string }

func (o *orderRecorder) Insert(core.Record) { *o.order = append(*o.order, "canonical") }

func TestDispatcher_DerivedSourceStaysCanonical(t *testing.T) {
	rec := &recorder{}
	c := &capture{}
	d := NewDispatcher(rec, nil, c)

	d.Broadcast(entry("no source"), testCaller)

	if got := rec.records[0].Source; got != "Cart.Add" {
		t.Errorf("canonical source = %q, want Cart.Add", got)
	}
	if got := c.entries[0].Source; got != "" {
		t.Errorf("forwarded source = %q, want empty", got)
	}
}

func TestDispatcher_ExplicitSourceEverywhere(t *testing.T) {
	rec := &recorder{}
	c := &capture{}
	d := NewDispatcher(rec, nil, c)

	e := entry("with source")
	e.Source = "Checkout"
	d.Broadcast(e, testCaller)

	if rec.records[0].Source != "Checkout" || c.entries[0].Source != "Checkout" {
		t.Errorf("canonical = %q, forwarded = %q", rec.records[0].Source, c.entries[0].Source)
	}
}

func TestDispatcher_UnknownCaller(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec, nil)
	d.Broadcast(entry("x"), core.CallerInfo{})
	if rec.records[0].Source != core.UnknownSource {
		t.Errorf("source = %q", rec.records[0].Source)
	}
}

func TestDispatcher_IsolatesFailures(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	rec := &recorder{}
	before := &capture{}
	after := &capture{kind: KindConsole}
	boom := errors.New("quota exceeded")

	d := NewDispatcher(rec, zap.New(obs), before, failing{boom}, &panicking{}, after)
	results := d.Broadcast(entry("survive"), testCaller)

	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("results[1].Err = %v", results[1].Err)
	}
	if results[2].Err == nil {
		t.Error("panic was not captured as an error")
	}
	if len(before.entries) != 1 || len(after.entries) != 1 {
		t.Errorf("healthy sinks got %d and %d entries", len(before.entries), len(after.entries))
	}
	if len(rec.records) != 1 {
		t.Errorf("canonical got %d records", len(rec.records))
	}
	if logs.FilterMessage("sink failed").Len() != 2 {
		t.Errorf("expected 2 warnings, got %v", logs.All())
	}
	if err := Combine(results); err == nil {
		t.Error("Combine() = nil")
	}

	snap := d.Stats()
	if snap.Failed[KindCustom] != 2 || snap.Delivered != 2 || snap.Recorded != 1 {
		t.Errorf("stats = %+v", snap)
	}
}

type explodingRecorder struct{}

func (explodingRecorder) Insert(core.Record) { panic("disk on fire") }

func TestDispatcher_CanonicalPanicIsContained(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	c := &capture{}
	d := NewDispatcher(explodingRecorder{}, zap.New(obs), c)

	d.Broadcast(entry("x"), testCaller)

	if len(c.entries) != 1 {
		t.Error("sinks were skipped after canonical failure")
	}
	if logs.FilterMessage("canonical buffer failed").Len() != 1 {
		t.Errorf("logs = %v", logs.All())
	}
}

func TestDispatcher_RegisterDeduplicates(t *testing.T) {
	rec := &recorder{}
	c := &capture{}
	fn := Func(func(*core.Entry) error { return nil })
	d := NewDispatcher(rec, nil)

	if !d.Register(c) {
		t.Error("first Register returned false")
	}
	if d.Register(c) {
		t.Error("second Register of the same sink returned true")
	}
	d.Register(fn)
	d.Register(fn)
	d.Register(nil)

	if got := len(d.Sinks()); got != 2 {
		t.Errorf("len(Sinks()) = %d, want 2", got)
	}

	d.Broadcast(entry("once"), testCaller)
	if len(c.entries) != 1 {
		t.Errorf("duplicate registration delivered %d times", len(c.entries))
	}
}

type taggedSink struct{ tag any }

func (taggedSink) Handle(*core.Entry) error { return nil }
func (taggedSink) Close() error             { return nil }

func TestDispatcher_RegisterValueSinkWithUncomparableField(t *testing.T) {
	d := NewDispatcher(&recorder{}, nil)

	if !d.Register(taggedSink{tag: []int{1}}) {
		t.Error("first Register returned false")
	}
	if !d.Register(taggedSink{tag: []int{2}}) {
		t.Error("second Register returned false")
	}
	if !d.Register(taggedSink{tag: "plain"}) {
		t.Error("Register of comparable value returned false")
	}
	if d.Register(taggedSink{tag: "plain"}) {
		t.Error("equal comparable value registered twice")
	}
	if got := len(d.Sinks()); got != 3 {
		t.Errorf("len(Sinks()) = %d, want 3", got)
	}
}

type canonicalSink struct {
	recorder
	handled int
}

func (c *canonicalSink) Handle(*core.Entry) error { c.handled++; return nil }
func (c *canonicalSink) Close() error             { return nil }

func TestDispatcher_CanonicalNotRegistered(t *testing.T) {
	cs := &canonicalSink{}
	d := NewDispatcher(cs, nil, cs)
	if len(d.Sinks()) != 0 {
		t.Fatal("canonical recorder was registered as a sink")
	}
	d.Broadcast(entry("x"), testCaller)
	if cs.handled != 0 || len(cs.records) != 1 {
		t.Errorf("handled = %d, records = %d", cs.handled, len(cs.records))
	}
}

func TestDispatcher_ReplaceAndHas(t *testing.T) {
	rec := &recorder{}
	console := &capture{kind: KindConsole}
	custom := &capture{}
	d := NewDispatcher(rec, nil, console)

	if !d.Has(KindConsole) {
		t.Error("Has(console) = false")
	}

	prev := d.Replace(custom)
	if len(prev) != 1 || prev[0] != Sink(console) {
		t.Errorf("Replace returned %v", prev)
	}
	if d.Has(KindConsole) || !d.Has(KindCustom) {
		t.Error("Replace did not swap registrations")
	}

	d.Broadcast(entry("after"), testCaller)
	if len(console.entries) != 0 || len(custom.entries) != 1 {
		t.Errorf("console = %d, custom = %d", len(console.entries), len(custom.entries))
	}
}

func TestDispatcher_Close(t *testing.T) {
	d := NewDispatcher(&recorder{}, nil, failing{errors.New("a")}, &capture{}, failing{errors.New("b")})
	err := d.Close()
	if err == nil || err.Error() != "a; b" {
		t.Errorf("Close() = %v, want combined error", err)
	}
}

func TestKind_String(t *testing.T) {
	tests := map[Kind]string{
		KindCustom:  "custom",
		KindConsole: "console",
		KindStorage: "storage",
		KindMemory:  "memory",
		Kind(99):    "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
