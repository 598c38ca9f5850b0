package consolesink

import (
	"bytes"
	"fmt"

	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/formatter"
	"github.com/philipp01105/logfacade/sink"
)

// Config holds configuration for the console sink
type Config struct {
	// Console to print to (default: WriterConsole on stdout/stderr)
	Console Console
	// Formatter renders each record (default: TextFormatter)
	Formatter formatter.Formatter
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *Config) {
	if cfg.Console == nil {
		cfg.Console = NewWriterConsole(WriterConfig{})
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// Sink prints every log call as one line on the matching console method
type Sink struct {
	console   Console
	formatter formatter.Formatter
	stats     *sink.Stats
}

// New creates a new console sink
func New(cfg Config) *Sink {
	applyConsoleDefaults(&cfg)
	return &Sink{
		console:   cfg.Console,
		formatter: cfg.Formatter,
		stats:     sink.NewStats(),
	}
}

// Handle normalizes the entry and prints it
func (s *Sink) Handle(entry *core.Entry) error {
	rec := core.Normalize(*entry)
	b, err := s.formatter.Format(&rec)
	if err != nil {
		return fmt.Errorf("format record: %w", err)
	}
	line := string(bytes.TrimRight(b, "\n"))

	switch rec.Level {
	case core.FatalLevel, core.ErrorLevel:
		s.console.Error(line)
	case core.WarnLevel:
		s.console.Warn(line)
	case core.SuccessLevel:
		s.console.Log(line, StyleSuccess)
	case core.InfoLevel:
		s.console.Info(line)
	case core.DebugLevel:
		s.console.Debug(line)
	case core.TraceLevel:
		s.console.Trace(line)
	default:
		s.console.Log(line)
	}
	s.stats.IncrementDelivered()
	return nil
}

// Stats returns a snapshot of the current statistics
func (s *Sink) Stats() sink.Snapshot {
	return s.stats.GetSnapshot()
}

// Kind returns sink.KindConsole
func (s *Sink) Kind() sink.Kind {
	return sink.KindConsole
}

// Close closes the sink. The console itself is left open.
func (s *Sink) Close() error {
	return nil
}
