package formatter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/philipp01105/logfacade/core"
)

// TextFormatter formats records as human-readable lines:
//
//	[2024-05-01T12:00:00.000Z] [INFO] message | Data: {"k":"v"} | Source: Cart.add
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = TimestampFormat
	}
	return &TextFormatter{Config: cfg}
}

// Format formats a record as a single line terminated by '\n'
func (f *TextFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)
	buf.WriteByte('\n')

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record and writes it directly to the writer
func (f *TextFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(rec, buf)
	buf.WriteByte('\n')

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// Line formats a record without the trailing newline
func (f *TextFormatter) Line(rec *core.Record) string {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(rec, buf)
	return buf.String()
}

// Render formats records one per line, joined with '\n' and without a
// trailing newline.
func (f *TextFormatter) Render(records []core.Record) string {
	var sb strings.Builder
	buf := getBuffer()
	defer putBuffer(buf)

	for i := range records {
		if i > 0 {
			sb.WriteByte('\n')
		}
		buf.Reset()
		f.formatToBuffer(&records[i], buf)
		sb.Write(buf.Bytes())
	}
	return sb.String()
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = [...]string{
	core.TraceLevel:   "] [TRACE] ",
	core.DebugLevel:   "] [DEBUG] ",
	core.InfoLevel:    "] [INFO] ",
	core.SuccessLevel: "] [SUCCESS] ",
	core.WarnLevel:    "] [WARN] ",
	core.ErrorLevel:   "] [ERROR] ",
	core.FatalLevel:   "] [FATAL] ",
}

// formatToBuffer writes the formatted record into the given buffer
func (f *TextFormatter) formatToBuffer(rec *core.Record, buf *bytes.Buffer) {
	buf.WriteByte('[')
	buf.Write(rec.Time.UTC().AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))

	if rec.Level.Valid() {
		buf.WriteString(levelBrackets[rec.Level])
	} else {
		buf.WriteString("] [UNKNOWN] ")
	}

	buf.WriteString(rec.Message)

	if rec.HasData() {
		buf.WriteString(" | Data: ")
		appendDataJSON(buf, rec.Data)
	}

	if rec.Source != "" && rec.Source != core.UnknownSource {
		buf.WriteString(" | Source: ")
		buf.WriteString(rec.Source)
	}
}

// appendDataJSON serializes data and writes its JSON encoding. Serialize is
// idempotent, so already-serialized buffer records pass through unchanged.
func appendDataJSON(buf *bytes.Buffer, data any) {
	b, err := json.Marshal(Serialize(data))
	if err != nil {
		fmt.Fprintf(buf, "%q", standIn(data))
		return
	}
	buf.Write(b)
}
