package formatter

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/philipp01105/logfacade/core"
)

// JSONFormatter formats records as one JSON object per line, in the same
// shape the storage sink persists:
//
//	{"timestamp":"...","level":"info","message":"...","data":{...},"source":"..."}
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = TimestampFormat
	}
	return &JSONFormatter{Config: cfg}
}

// Format formats a record as JSON
func (f *JSONFormatter) Format(rec *core.Record) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatJSONToBuffer(rec, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats a record as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(rec *core.Record, w io.Writer) error {
	buf := getBuffer()

	f.formatJSONToBuffer(rec, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatJSONToBuffer builds the envelope by hand and encodes only the data
// payload through the JSON library.
func (f *JSONFormatter) formatJSONToBuffer(rec *core.Record, buf *bytes.Buffer) {
	buf.WriteString(`{"timestamp":"`)
	buf.Write(rec.Time.UTC().AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
	buf.WriteByte('"')

	buf.WriteString(`,"level":"`)
	buf.WriteString(rec.Level.String())
	buf.WriteByte('"')

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, rec.Message)
	buf.WriteByte('"')

	if rec.HasData() {
		buf.WriteString(`,"data":`)
		appendDataJSON(buf, rec.Data)
	}

	if rec.Source != "" {
		buf.WriteString(`,"source":"`)
		appendJSONString(buf, rec.Source)
		buf.WriteByte('"')
	}

	buf.WriteString("}\n")
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// storedRecord is the persisted shape of a record
type storedRecord struct {
	Timestamp string     `json:"timestamp"`
	Level     core.Level `json:"level"`
	Message   string     `json:"message"`
	Data      any        `json:"data,omitempty"`
	Source    string     `json:"source,omitempty"`
}

// EncodeRecords encodes records as a JSON array, oldest first. Data is
// serialized on the way out.
func EncodeRecords(records []core.Record) ([]byte, error) {
	out := make([]storedRecord, len(records))
	for i, rec := range records {
		out[i] = storedRecord{
			Timestamp: rec.Time.UTC().Format(TimestampFormat),
			Level:     rec.Level,
			Message:   rec.Message,
			Data:      Serialize(rec.Data),
			Source:    rec.Source,
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return b, nil
}

// DecodeRecords decodes a JSON array produced by EncodeRecords
func DecodeRecords(b []byte) ([]core.Record, error) {
	var in []storedRecord
	if err := json.Unmarshal(b, &in); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	out := make([]core.Record, 0, len(in))
	for i, s := range in {
		ts, err := time.Parse(time.RFC3339Nano, s.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("decode records: entry %d: %w", i, err)
		}
		out = append(out, core.Record{
			Time:    ts,
			Level:   s.Level,
			Message: s.Message,
			Data:    s.Data,
			Source:  s.Source,
		})
	}
	return out, nil
}
