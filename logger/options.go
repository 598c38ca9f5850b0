package logger

import (
	"time"

	"go.uber.org/zap"

	"github.com/philipp01105/logfacade/export"
	"github.com/philipp01105/logfacade/sink"
	"github.com/philipp01105/logfacade/sink/consolesink"
	"github.com/philipp01105/logfacade/sink/storagesink"
)

// Option changes one setting of a Logger. Settings without an option in a
// Configure call keep their current value.
type Option func(*Logger)

// WithApplicationName sets the name the storage key is derived from
func WithApplicationName(name string) Option {
	return func(l *Logger) {
		if name != "" {
			l.settings.ApplicationName = name
		}
	}
}

// WithMaxLogs sets the capacity of the canonical buffer
func WithMaxLogs(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.settings.MaxLogs = n
		}
	}
}

// WithConsoleSink enables or disables the console sink
func WithConsoleSink(enabled bool) Option {
	return func(l *Logger) {
		l.settings.EnableConsoleSink = enabled
	}
}

// WithStorageSink enables or disables the storage sink
func WithStorageSink(enabled bool) Option {
	return func(l *Logger) {
		l.settings.EnableStorageSink = enabled
	}
}

// WithMaxStored sets how many records the storage sink keeps
func WithMaxStored(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.settings.MaxStored = n
		}
	}
}

// WithSinks sets the additional sinks, replacing any set before
func WithSinks(sinks ...sink.Sink) Option {
	return func(l *Logger) {
		l.settings.Sinks = append([]sink.Sink(nil), sinks...)
	}
}

// WithStore sets the store used by the storage sink. Persisted records are
// loaded again from the new store.
func WithStore(store storagesink.Store) Option {
	return func(l *Logger) {
		if store == nil {
			return
		}
		l.store = store
		clear(l.loaded)
	}
}

// WithConsole sets the console the console sink prints to
func WithConsole(c consolesink.Console) Option {
	return func(l *Logger) {
		if c != nil {
			l.console = c
		}
	}
}

// WithDownloader sets the collaborator used by ExportToFile
func WithDownloader(d export.Downloader) Option {
	return func(l *Logger) {
		if d != nil {
			l.downloader = d
		}
	}
}

// WithDiagnostics sets the logger that receives internal failures. nil
// discards them.
func WithDiagnostics(diag *zap.Logger) Option {
	return func(l *Logger) {
		if diag == nil {
			diag = zap.NewNop()
		}
		l.diag = diag
	}
}

// WithClock sets the time source used to stamp records
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		if now != nil {
			l.now = now
		}
	}
}
