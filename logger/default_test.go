package logger

import (
	"strings"
	"testing"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/sink"
)

func withTestDefault(t *testing.T, opts ...Option) *countingConsole {
	t.Helper()
	l, c := newTestLogger(opts...)
	SetDefault(l)
	t.Cleanup(func() { _ = ResetDefault() })
	return c
}

type cart struct{}

//go:noinline
func (cart) add() {
	Info("item added")
}

func TestDefault_LazySingleton(t *testing.T) {
	_ = ResetDefault()
	t.Cleanup(func() { _ = ResetDefault() })

	// keep the default console off stdout
	Configure(WithConsole(&countingConsole{}))

	a, b := Default(), Default()
	if a != b {
		t.Error("Default() returned different instances")
	}
	if a.Settings().ApplicationName != DefaultApplicationName {
		t.Errorf("settings = %+v", a.Settings())
	}

	if err := ResetDefault(); err != nil {
		t.Fatal(err)
	}
	c := Default()
	if c == a {
		t.Error("ResetDefault did not drop the instance")
	}
	c.Configure(WithConsole(&countingConsole{}))
}

func TestDefault_PackageFunctions(t *testing.T) {
	c := withTestDefault(t)

	Trace("t")
	Debug("d")
	Info("i")
	Success("s")
	Warn("w")
	Warning("w2")
	Error("e")
	Fatal("f")
	Log(InfoLevel, "generic")

	if got := len(Records()); got != 9 {
		t.Errorf("len(Records()) = %d, want 9", got)
	}
	if c.count() != 9 {
		t.Errorf("console lines = %d", c.count())
	}
	if got := len(Records(WarnLevel)); got != 2 {
		t.Errorf("len(Records(warn)) = %d", got)
	}
	if !HasSink(sink.KindConsole) || CurrentSettings().MaxLogs != DefaultMaxLogs {
		t.Error("package-level accessors disagree with the default logger")
	}
	if !strings.Contains(RenderText(core.FatalLevel), "[FATAL] f") {
		t.Errorf("RenderText(fatal) = %q", RenderText(core.FatalLevel))
	}

	if err := Clear(); err != nil {
		t.Fatal(err)
	}
	if len(Records()) != 0 {
		t.Error("Clear() left records")
	}
}

func TestDefault_PackageFunctionSource(t *testing.T) {
	withTestDefault(t)
	cart{}.add()

	if got := Records()[0].Source; got != "cart.add" {
		t.Errorf("Source = %q, want cart.add", got)
	}
}
