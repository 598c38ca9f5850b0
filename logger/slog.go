package logger

import (
	"context"
	"log/slog"

	"github.com/philipp01105/logfacade/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a Logger.
// Attributes become the record data, groups become dotted keys and the
// record's program counter supplies the derived source.
type SlogHandler struct {
	logger *Logger
	level  core.Level
	attrs  map[string]any
	group  string
}

// NewSlogHandler creates a new slog.Handler adapter feeding l. Records
// below minLevel are dropped.
func NewSlogHandler(l *Logger, minLevel core.Level) *SlogHandler {
	return &SlogHandler{
		logger: l,
		level:  minLevel,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevelToCore(level) >= s.level
}

// Handle converts a slog.Record into an entry and logs it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.Entry{
		Time:  record.Time,
		Level: slogLevelToCore(record.Level),
		Input: core.Text(record.Message),
	}

	if len(s.attrs) > 0 || record.NumAttrs() > 0 {
		data := make(map[string]any, len(s.attrs)+record.NumAttrs())
		for k, v := range s.attrs {
			data[k] = v
		}
		record.Attrs(func(a slog.Attr) bool {
			addAttr(data, s.group, a)
			return true
		})
		entry.Data = core.With(data)
	}

	s.logger.dispatch(entry, core.CallerAt(record.PC))
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make(map[string]any, len(s.attrs)+len(attrs))
	for k, v := range s.attrs {
		newAttrs[k] = v
	}
	for _, a := range attrs {
		addAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		level:  s.level,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		level:  s.level,
		attrs:  s.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.FatalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// addAttr stores a into data, prefixing the key with the group. Group
// attributes are flattened into dotted keys.
func addAttr(data map[string]any, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addAttr(data, key, ga)
		}
		return
	}
	data[key] = a.Value.Any()
}
