package logger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/export"
	"github.com/philipp01105/logfacade/formatter"
	"github.com/philipp01105/logfacade/sink"
	"github.com/philipp01105/logfacade/sink/consolesink"
	"github.com/philipp01105/logfacade/sink/membuffer"
	"github.com/philipp01105/logfacade/sink/storagesink"
)

// Default settings applied by New before any option
const (
	DefaultApplicationName = "application"
	DefaultMaxLogs         = membuffer.DefaultMaxSize
	DefaultMaxStored       = storagesink.DefaultMaxStored
)

// Settings is a snapshot of a Logger's configuration
type Settings struct {
	ApplicationName   string
	MaxLogs           int
	EnableConsoleSink bool
	EnableStorageSink bool
	MaxStored         int
	// Sinks are the additional caller-supplied sinks
	Sinks []sink.Sink
}

// Logger is the coordination point for logging. Every call is written to
// the canonical in-memory buffer first and then fanned out to the console,
// storage and any additional sinks.
//
// A single mutex serializes log calls, configuration and reads; sinks must
// not call back into the Logger that invokes them.
type Logger struct {
	mu         sync.Mutex
	settings   Settings
	buffer     *membuffer.Buffer
	dispatcher *sink.Dispatcher

	store      storagesink.Store
	console    consolesink.Console
	downloader export.Downloader
	diag       *zap.Logger
	now        func() time.Time

	// storage keys whose persisted records were already loaded
	loaded     map[string]bool
	callerSkip int
}

// New creates a Logger with default settings and applies opts
func New(opts ...Option) *Logger {
	diag := newDiagnostics()
	buffer := membuffer.New(membuffer.Config{MaxSize: DefaultMaxLogs, Diagnostics: diag})

	l := &Logger{
		settings: Settings{
			ApplicationName:   DefaultApplicationName,
			MaxLogs:           DefaultMaxLogs,
			EnableConsoleSink: true,
			EnableStorageSink: true,
			MaxStored:         DefaultMaxStored,
		},
		buffer:     buffer,
		dispatcher: sink.NewDispatcher(buffer, diag),
		store:      storagesink.NewMemoryStore(),
		console:    consolesink.NewWriterConsole(consolesink.WriterConfig{}),
		downloader: export.DirDownloader{},
		diag:       diag,
		now:        time.Now,
		loaded:     make(map[string]bool),
		callerSkip: 3, // GetCaller <- log <- Info <- caller
	}
	l.Configure(opts...)
	return l
}

// Configure applies opts on top of the current settings and rebuilds the
// sink registry. Records already in the buffer are kept; only its capacity
// changes. Persisted records for the application's storage key are loaded
// into the buffer once per key.
func (l *Logger) Configure(opts ...Option) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, opt := range opts {
		opt(l)
	}

	l.dispatcher.SetDiagnostics(l.diag)
	l.buffer.SetDiagnostics(l.diag)
	l.buffer.SetCapacity(l.settings.MaxLogs)

	key := l.storageKey()
	if l.settings.EnableStorageSink && !l.loaded[key] {
		l.loadPersisted(key)
	}

	var sinks []sink.Sink
	if l.settings.EnableConsoleSink {
		sinks = append(sinks, consolesink.New(consolesink.Config{Console: l.console}))
	}
	if l.settings.EnableStorageSink {
		sinks = append(sinks, storagesink.New(storagesink.Config{
			Store:       l.store,
			Key:         key,
			MaxStored:   l.settings.MaxStored,
			Diagnostics: l.diag,
		}))
	}
	sinks = append(sinks, l.settings.Sinks...)
	l.dispatcher.Replace(sinks...)
}

func (l *Logger) loadPersisted(key string) {
	l.loaded[key] = true
	records, err := storagesink.Load(l.store, key)
	if err != nil {
		l.diag.Warn("load persisted records failed", zap.String("key", key), zap.Error(err))
		return
	}
	for _, rec := range records {
		l.buffer.Insert(rec)
	}
}

func (l *Logger) storageKey() string {
	return storagesink.Key(l.settings.ApplicationName)
}

// log is the internal logging method. It must be called directly from an
// exported method so the caller lookup lands on the application frame.
func (l *Logger) log(level core.Level, in any, extras []Extra) {
	caller := core.GetCaller(l.callerSkip)

	entry := core.Entry{Level: level, Input: core.AsInput(in)}
	for _, x := range extras {
		if x != nil {
			x(&entry)
		}
	}
	l.dispatch(entry, caller)
}

func (l *Logger) dispatch(entry core.Entry, caller core.CallerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Time.IsZero() {
		entry.Time = l.now()
	}
	l.dispatcher.Broadcast(entry, caller)
}

// Log logs input at the given level
func (l *Logger) Log(level core.Level, in any, extras ...Extra) {
	l.log(level, in, extras)
}

// Trace logs a trace message
func (l *Logger) Trace(in any, extras ...Extra) {
	l.log(core.TraceLevel, in, extras)
}

// Debug logs a debug message
func (l *Logger) Debug(in any, extras ...Extra) {
	l.log(core.DebugLevel, in, extras)
}

// Info logs an info message
func (l *Logger) Info(in any, extras ...Extra) {
	l.log(core.InfoLevel, in, extras)
}

// Success logs a success message
func (l *Logger) Success(in any, extras ...Extra) {
	l.log(core.SuccessLevel, in, extras)
}

// Warn logs a warning message
func (l *Logger) Warn(in any, extras ...Extra) {
	l.log(core.WarnLevel, in, extras)
}

// Warning is an alias for Warn
func (l *Logger) Warning(in any, extras ...Extra) {
	l.log(core.WarnLevel, in, extras)
}

// Error logs an error message
func (l *Logger) Error(in any, extras ...Extra) {
	l.log(core.ErrorLevel, in, extras)
}

// Fatal logs a fatal message. The process keeps running.
func (l *Logger) Fatal(in any, extras ...Extra) {
	l.log(core.FatalLevel, in, extras)
}

// Tracef logs a trace message with formatting
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.log(core.TraceLevel, fmt.Sprintf(format, args...), nil)
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(core.DebugLevel, fmt.Sprintf(format, args...), nil)
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(core.InfoLevel, fmt.Sprintf(format, args...), nil)
}

// Successf logs a success message with formatting
func (l *Logger) Successf(format string, args ...interface{}) {
	l.log(core.SuccessLevel, fmt.Sprintf(format, args...), nil)
}

// Warnf logs a warning message with formatting
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(core.WarnLevel, fmt.Sprintf(format, args...), nil)
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...), nil)
}

// Fatalf logs a fatal message with formatting. The process keeps running.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(core.FatalLevel, fmt.Sprintf(format, args...), nil)
}

// Records returns the buffered records in insertion order, restricted to
// the given levels when any are passed.
func (l *Logger) Records(levels ...core.Level) []core.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buffer.Query(levels...)
}

// Clear empties the buffer and removes the persisted records. The buffer is
// cleared even when the store fails.
func (l *Logger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.buffer.Clear()
	key := l.storageKey()
	if err := l.store.Remove(key); err != nil {
		l.diag.Warn("remove persisted records failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("clear logs: %w", err)
	}
	return nil
}

// RenderText formats the buffered records one per line
func (l *Logger) RenderText(levels ...core.Level) string {
	records := l.Records(levels...)
	return formatter.NewTextFormatter(formatter.Config{}).Render(records)
}

// fileSafe replaces path separators in default export names
var fileSafe = strings.NewReplacer("/", "_", "\\", "_")

// ExportToFile renders every buffered record and hands the text to the
// downloader. An empty filename means "<applicationName>-logs-<YYYY-MM-DD>.txt".
func (l *Logger) ExportToFile(filename string) error {
	l.mu.Lock()
	records := l.buffer.Query()
	downloader := l.downloader
	if filename == "" {
		filename = fmt.Sprintf("%s-logs-%s.txt", fileSafe.Replace(l.settings.ApplicationName), l.now().Format(time.DateOnly))
	}
	l.mu.Unlock()

	text := formatter.NewTextFormatter(formatter.Config{}).Render(records)
	if err := downloader.Download(filename, []byte(text)); err != nil {
		return fmt.Errorf("export logs to %s: %w", filename, err)
	}
	return nil
}

// Settings returns a copy of the current settings
func (l *Logger) Settings() Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.settings
	s.Sinks = append([]sink.Sink(nil), l.settings.Sinks...)
	return s
}

// HasSink reports whether a sink of the given kind is registered
func (l *Logger) HasSink(kind sink.Kind) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dispatcher.Has(kind)
}

// Stats returns the dispatcher statistics
func (l *Logger) Stats() sink.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dispatcher.Stats()
}

// Close closes every registered sink. The buffer keeps its records.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dispatcher.Close()
}
