package logger

import "github.com/philipp01105/logfacade/core"

// Extra attaches optional information to a single log call
type Extra func(*core.Entry)

// Data attaches a payload. An explicit nil is kept as a payload, which
// matters for event inputs.
func Data(v any) Extra {
	return func(e *core.Entry) {
		e.Data = core.With(v)
	}
}

// Source names the call site. Without it the source is derived from the
// calling function, for the buffer only.
func Source(s string) Extra {
	return func(e *core.Entry) {
		e.Source = s
	}
}
