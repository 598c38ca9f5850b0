package core

import (
	"fmt"
	"strings"
)

// Level represents the severity level of a log record
type Level int8

const (
	// TraceLevel for very fine-grained diagnostic output
	TraceLevel Level = iota
	// DebugLevel for detailed debugging information
	DebugLevel
	// InfoLevel for general informational messages (default)
	InfoLevel
	// SuccessLevel signals a positive outcome; it is not a severity
	SuccessLevel
	// WarnLevel for warning messages
	WarnLevel
	// ErrorLevel for error messages
	ErrorLevel
	// FatalLevel for unrecoverable failures. It never exits the process.
	FatalLevel
)

var levelNames = [...]string{
	TraceLevel:   "trace",
	DebugLevel:   "debug",
	InfoLevel:    "info",
	SuccessLevel: "success",
	WarnLevel:    "warn",
	ErrorLevel:   "error",
	FatalLevel:   "fatal",
}

var levelUpper = [...]string{
	TraceLevel:   "TRACE",
	DebugLevel:   "DEBUG",
	InfoLevel:    "INFO",
	SuccessLevel: "SUCCESS",
	WarnLevel:    "WARN",
	ErrorLevel:   "ERROR",
	FatalLevel:   "FATAL",
}

// Levels returns every level in severity order
func Levels() []Level {
	return []Level{TraceLevel, DebugLevel, InfoLevel, SuccessLevel, WarnLevel, ErrorLevel, FatalLevel}
}

// Valid reports whether l is one of the defined levels
func (l Level) Valid() bool {
	return l >= TraceLevel && l <= FatalLevel
}

// String returns the lower-case name of the level
func (l Level) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return levelNames[l]
}

// Upper returns the upper-case name used in rendered lines
func (l Level) Upper() string {
	if !l.Valid() {
		return "UNKNOWN"
	}
	return levelUpper[l]
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid level %d", l)
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unlike ParseLevel it
// rejects unknown names.
func (l *Level) UnmarshalText(text []byte) error {
	lvl, ok := lookupLevel(string(text))
	if !ok {
		return fmt.Errorf("unknown level %q", text)
	}
	*l = lvl
	return nil
}

// ParseLevel converts a string to a Level. Unknown names map to InfoLevel.
func ParseLevel(s string) Level {
	if lvl, ok := lookupLevel(s); ok {
		return lvl
	}
	return InfoLevel
}

func lookupLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, true
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "success":
		return SuccessLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	case "fatal":
		return FatalLevel, true
	default:
		return InfoLevel, false
	}
}
