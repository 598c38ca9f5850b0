package logger

import (
	"sync"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/sink"
)

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// Default returns the process-wide Logger, creating it with default
// settings on first use.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New()
	}
	return defaultLogger
}

// SetDefault sets the default logger
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// ResetDefault closes and drops the default logger so the next Default call
// starts from scratch. Meant for tests.
func ResetDefault() error {
	defaultMu.Lock()
	l := defaultLogger
	defaultLogger = nil
	defaultMu.Unlock()

	if l == nil {
		return nil
	}
	return l.Close()
}

// Package-level convenience functions using the default logger. They call
// Default().log directly so caller lookup sees the same depth as methods.

// Configure applies options to the default logger
func Configure(opts ...Option) {
	Default().Configure(opts...)
}

// Log logs input at the given level using the default logger
func Log(level Level, in any, extras ...Extra) {
	Default().log(level, in, extras)
}

// Trace logs a trace message using the default logger
func Trace(in any, extras ...Extra) {
	Default().log(core.TraceLevel, in, extras)
}

// Debug logs a debug message using the default logger
func Debug(in any, extras ...Extra) {
	Default().log(core.DebugLevel, in, extras)
}

// Info logs an info message using the default logger
func Info(in any, extras ...Extra) {
	Default().log(core.InfoLevel, in, extras)
}

// Success logs a success message using the default logger
func Success(in any, extras ...Extra) {
	Default().log(core.SuccessLevel, in, extras)
}

// Warn logs a warning message using the default logger
func Warn(in any, extras ...Extra) {
	Default().log(core.WarnLevel, in, extras)
}

// Warning is an alias for Warn
func Warning(in any, extras ...Extra) {
	Default().log(core.WarnLevel, in, extras)
}

// Error logs an error message using the default logger
func Error(in any, extras ...Extra) {
	Default().log(core.ErrorLevel, in, extras)
}

// Fatal logs a fatal message using the default logger. The process keeps
// running.
func Fatal(in any, extras ...Extra) {
	Default().log(core.FatalLevel, in, extras)
}

// Records returns the default logger's buffered records
func Records(levels ...Level) []core.Record {
	return Default().Records(levels...)
}

// Clear empties the default logger's buffer and persisted records
func Clear() error {
	return Default().Clear()
}

// RenderText formats the default logger's buffered records
func RenderText(levels ...Level) string {
	return Default().RenderText(levels...)
}

// ExportToFile exports the default logger's records
func ExportToFile(filename string) error {
	return Default().ExportToFile(filename)
}

// CurrentSettings returns the default logger's settings
func CurrentSettings() Settings {
	return Default().Settings()
}

// HasSink reports whether the default logger has a sink of the given kind
func HasSink(kind sink.Kind) bool {
	return Default().HasSink(kind)
}
