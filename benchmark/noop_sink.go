package benchmark

import (
	"github.com/philipp01105/logfacade/core"
	"github.com/philipp01105/logfacade/sink"
)

// noopSink accepts entries and drops them
type noopSink struct{}

func newNoopSink() sink.Sink {
	return &noopSink{}
}

func (s *noopSink) Handle(e *core.Entry) error {
	_ = e.Level
	return nil
}

func (s *noopSink) Close() error {
	return nil
}
