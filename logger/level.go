package logger

import "github.com/philipp01105/logfacade/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel   = core.TraceLevel
	DebugLevel   = core.DebugLevel
	InfoLevel    = core.InfoLevel
	SuccessLevel = core.SuccessLevel
	WarnLevel    = core.WarnLevel
	ErrorLevel   = core.ErrorLevel
	FatalLevel   = core.FatalLevel
)

// ParseLevel converts a string to a Level. Unknown names yield InfoLevel.
func ParseLevel(s string) Level {
	return core.ParseLevel(s)
}
