package core

import (
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// UnknownSource is the source recorded when no call site can be resolved
const UnknownSource = "unknown"

// Payload is the optional data attached to a log call. Set distinguishes
// "no data" from an explicit nil.
type Payload struct {
	Value any
	Set   bool
}

// With returns a payload carrying v
func With(v any) Payload {
	return Payload{Value: v, Set: true}
}

// Entry is a single raw log call as handed to sinks. Source is whatever the
// caller supplied, possibly empty.
type Entry struct {
	Time   time.Time
	Level  Level
	Input  Input
	Data   Payload
	Source string
}

// Record is the canonical, normalized unit of logging. A Record is treated as
// immutable once built; sinks must not modify Data.
type Record struct {
	Time    time.Time
	Level   Level
	Message string
	Data    any
	Source  string
}

// HasData reports whether the record carries a payload
func (r Record) HasData() bool {
	return r.Data != nil
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}
	return callerInfo(pc, file, line)
}

// CallerAt resolves caller information for a program counter, as carried by
// slog.Record.PC. A zero pc yields an undefined CallerInfo.
func CallerAt(pc uintptr) CallerInfo {
	if pc == 0 {
		return CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.Function == "" && frame.File == "" {
		return CallerInfo{}
	}
	return CallerInfo{
		File:      frame.File,
		ShortFile: filepath.Base(frame.File),
		Line:      frame.Line,
		Function:  frame.Function,
		Defined:   true,
	}
}

func callerInfo(pc uintptr, file string, line int) CallerInfo {
	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}

// Source derives a short "Type.method" or "function" name from the caller's
// fully qualified function name, or UnknownSource when none is available.
func (c CallerInfo) Source() string {
	if !c.Defined || c.Function == "" {
		return UnknownSource
	}
	return ShortFunction(c.Function)
}

// ShortFunction trims the import path and package qualifier from a Go
// function name:
//
//	github.com/acme/app/billing.(*Invoice).Send -> Invoice.Send
//	github.com/acme/app/billing.Charge          -> Charge
//	main.main.func1                              -> main.func1
func ShortFunction(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	// drop the package name
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("(", "", ")", "", "*", "").Replace(name)
	if name == "" {
		return UnknownSource
	}
	return name
}
