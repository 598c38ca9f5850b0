package core

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Normalize builds the canonical Record for a raw log call. Data is left in
// its raw form; serialization happens at the sink boundary. The entry's
// Source is used verbatim.
func Normalize(e Entry) Record {
	rec := Record{
		Time:   e.Time,
		Level:  e.Level,
		Source: e.Source,
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}

	switch in := e.Input.(type) {
	case ErrorEvent:
		rec.Message = in.Message + " (" + in.Filename + ":" + strconv.Itoa(in.Lineno) + ")"
		rec.Data = mergePayload(errorEventFields(in), e.Data)
	case Event:
		rec.Message = eventMessage(in)
		rec.Data = mergePayload(eventFields(in), e.Data)
	case Text:
		rec.Message = string(in)
		if e.Data.Set {
			rec.Data = e.Data.Value
		}
	default:
		if in != nil {
			rec.Message = fmt.Sprint(in)
		}
		if e.Data.Set {
			rec.Data = e.Data.Value
		}
	}
	return rec
}

func eventMessage(ev Event) string {
	var b strings.Builder
	b.WriteString(ev.Type)
	b.WriteString(" event on ")
	if name := TargetName(ev.Target); name != "" {
		b.WriteString(name)
	} else {
		b.WriteString("unknown target")
	}
	return b.String()
}

func eventFields(ev Event) map[string]any {
	fields := map[string]any{"type": ev.Type}
	if name := TargetName(ev.Target); name != "" {
		fields["target"] = name
	}
	if ev.TimeStamp != nil {
		fields["timeStamp"] = *ev.TimeStamp
	}
	if ev.Request != nil {
		if ev.Request.URL != "" {
			fields["url"] = ev.Request.URL
		}
		if ev.Request.Method != "" {
			fields["method"] = ev.Request.Method
		}
	}
	return fields
}

func errorEventFields(ev ErrorEvent) map[string]any {
	fields := map[string]any{
		"filename": ev.Filename,
		"lineno":   ev.Lineno,
	}
	if ev.Colno != 0 {
		fields["colno"] = ev.Colno
	}
	if ev.Error != nil {
		fields["error"] = errorDetail(ev.Error)
	}
	return fields
}

// errorDetail prefers the verbose "%+v" rendering of an error (stack traces
// from wrapping libraries) and falls back to the error value itself.
func errorDetail(v any) any {
	err, ok := v.(error)
	if !ok {
		return v
	}
	if verbose := fmt.Sprintf("%+v", err); verbose != err.Error() {
		return verbose
	}
	return err
}

// mergePayload lays caller data over the extracted event fields. Keyed data is
// spread with caller keys winning; anything else lands under additionalData.
func mergePayload(extracted map[string]any, p Payload) any {
	if !p.Set {
		if len(extracted) == 0 {
			return nil
		}
		return extracted
	}
	if keyed, ok := keyedFields(p.Value); ok {
		for k, v := range keyed {
			extracted[k] = v
		}
		return extracted
	}
	extracted["additionalData"] = p.Value
	return extracted
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// keyedFields reports whether v is a keyed structure (string-keyed map or
// struct) and returns its top-level fields.
func keyedFields(v any) (map[string]any, bool) {
	if v == nil {
		return nil, false
	}
	if m, ok := v.(map[string]any); ok {
		return m, true
	}

	rv := reflect.ValueOf(v)
	if rv.Type().Implements(errorType) {
		return nil, false
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		if rv.Type() == timeType {
			return nil, false
		}
		out := make(map[string]any, rv.NumField())
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := f.Name
			if tag := f.Tag.Get("json"); tag != "" {
				tagName, _, _ := strings.Cut(tag, ",")
				if tagName == "-" {
					continue
				}
				if tagName != "" {
					name = tagName
				}
			}
			out[name] = rv.Field(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
