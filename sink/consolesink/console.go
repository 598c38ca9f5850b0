package consolesink

import (
	"io"
	"os"
	"strings"
	"sync"
)

// StyleSuccess is the style annotation passed along with success lines
const StyleSuccess = "color: #28a745; font-weight: bold"

// Console is a leveled print facility. Each method prints one formatted line;
// style is an optional presentation hint the console may ignore.
type Console interface {
	Error(line string, style ...string)
	Warn(line string, style ...string)
	Info(line string, style ...string)
	Debug(line string, style ...string)
	Trace(line string, style ...string)
	Log(line string, style ...string)
}

// ANSI escape sequences used when colors are enabled
const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiGreen  = "\x1b[32m"
	ansiGray   = "\x1b[90m"
)

// WriterConsole is a Console that prints to io.Writers. Error and Warn lines
// go to Err, everything else to Out.
type WriterConsole struct {
	mu    sync.Mutex
	out   io.Writer
	err   io.Writer
	color bool
}

// WriterConfig holds configuration for WriterConsole
type WriterConfig struct {
	// Out receives info/debug/trace/log lines (default: os.Stdout)
	Out io.Writer
	// Err receives error/warn lines (default: os.Stderr)
	Err io.Writer
	// Color wraps lines in ANSI colors
	Color bool
}

// NewWriterConsole creates a new writer-backed console
func NewWriterConsole(cfg WriterConfig) *WriterConsole {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Err == nil {
		cfg.Err = os.Stderr
	}
	return &WriterConsole{out: cfg.Out, err: cfg.Err, color: cfg.Color}
}

func (c *WriterConsole) Error(line string, style ...string) { c.print(c.err, ansiRed, line, style) }
func (c *WriterConsole) Warn(line string, style ...string)  { c.print(c.err, ansiYellow, line, style) }
func (c *WriterConsole) Info(line string, style ...string)  { c.print(c.out, "", line, style) }
func (c *WriterConsole) Debug(line string, style ...string) { c.print(c.out, ansiGray, line, style) }
func (c *WriterConsole) Trace(line string, style ...string) { c.print(c.out, ansiGray, line, style) }
func (c *WriterConsole) Log(line string, style ...string)   { c.print(c.out, "", line, style) }

func (c *WriterConsole) print(w io.Writer, color, line string, style []string) {
	if c.color && color == "" && len(style) > 0 && strings.Contains(style[0], "#28a745") {
		color = ansiGreen
	}

	var sb strings.Builder
	sb.Grow(len(line) + 16)
	if c.color && color != "" {
		sb.WriteString(color)
		sb.WriteString(line)
		sb.WriteString(ansiReset)
	} else {
		sb.WriteString(line)
	}
	sb.WriteByte('\n')

	c.mu.Lock()
	_, _ = io.WriteString(w, sb.String())
	c.mu.Unlock()
}
