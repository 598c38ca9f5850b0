package formatter

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// CircularMarker replaces a value that refers back to one of its ancestors
const CircularMarker = "[Circular]"

// MapEntry is one key/value pair of an ordered Map
type MapEntry struct {
	Key   any
	Value any
}

// Map is an insertion-ordered map whose keys need not be strings. It
// serializes as {"__type":"Map","value":[[key,value],...]}.
type Map []MapEntry

// Set is an ordered collection of unique values. It serializes as
// {"__type":"Set","value":[...]}.
type Set []any

// Serialize converts an arbitrary value into a JSON-safe value built only
// from nil, bool, numbers, string, []any and map[string]any. It never panics:
// when conversion fails the whole value is replaced by a text stand-in.
func Serialize(v any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = standIn(v)
		}
	}()
	s := serializer{path: make(map[visitKey]struct{})}
	return s.any(v)
}

// standIn renders a best-effort text for a value that could not be
// serialized. It only trusts Error and String, since %v on a cyclic value
// does not terminate.
func standIn(v any) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("[Unserializable %T]", v)
		}
	}()
	switch x := v.(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	case string:
		return x
	}
	return fmt.Sprintf("[Unserializable %T]", v)
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
	n   int
}

// serializer tracks the containers on the current recursion path only, so
// shared but acyclic references are serialized at every occurrence.
type serializer struct {
	path map[visitKey]struct{}
}

func (s *serializer) enter(k visitKey) bool {
	if _, ok := s.path[k]; ok {
		return false
	}
	s.path[k] = struct{}{}
	return true
}

func (s *serializer) leave(k visitKey) {
	delete(s.path, k)
}

func (s *serializer) any(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}

	switch x := v.(type) {
	case string, bool:
		return x
	case time.Time:
		return dateValue(x)
	case *time.Time:
		return dateValue(*x)
	case *regexp.Regexp:
		return map[string]any{"__type": "RegExp", "value": "/" + x.String() + "/"}
	case Map:
		return s.orderedMap(x)
	case Set:
		return s.set(x)
	case error:
		return errorValue(x)
	case json.Marshaler:
		return marshalerValue(x)
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return standIn(v)
		}
		return string(text)
	}
	return s.reflect(rv)
}

func dateValue(t time.Time) map[string]any {
	return map[string]any{"__type": "Date", "value": t.UTC().Format(TimestampFormat)}
}

func errorValue(err error) map[string]any {
	out := map[string]any{
		"name":    errorName(err),
		"message": err.Error(),
	}
	if verbose := fmt.Sprintf("%+v", err); verbose != err.Error() {
		out["stack"] = verbose
	}
	return out
}

func errorName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "Error"
	}
	return t.Name()
}

func marshalerValue(m json.Marshaler) any {
	b, err := m.MarshalJSON()
	if err != nil {
		return standIn(m)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return string(b)
	}
	return out
}

func (s *serializer) orderedMap(m Map) any {
	k := visitKey{ptr: reflect.ValueOf(m).Pointer(), typ: reflect.TypeOf(m), n: len(m)}
	if !s.enter(k) {
		return CircularMarker
	}
	defer s.leave(k)

	pairs := make([]any, 0, len(m))
	for _, e := range m {
		pairs = append(pairs, []any{s.any(e.Key), s.any(e.Value)})
	}
	return map[string]any{"__type": "Map", "value": pairs}
}

func (s *serializer) set(set Set) any {
	k := visitKey{ptr: reflect.ValueOf(set).Pointer(), typ: reflect.TypeOf(set), n: len(set)}
	if !s.enter(k) {
		return CircularMarker
	}
	defer s.leave(k)

	values := make([]any, 0, len(set))
	for _, v := range set {
		values = append(values, s.any(v))
	}
	return map[string]any{"__type": "Set", "value": values}
}

func (s *serializer) reflect(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Type().PkgPath() == "" {
			return rv.Interface()
		}
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Type().PkgPath() == "" {
			return rv.Interface()
		}
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		if rv.Type().PkgPath() == "" {
			return rv.Interface()
		}
		return f
	case reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(rv.Complex())
	case reflect.String:
		return rv.String()
	case reflect.Pointer:
		k := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
		if !s.enter(k) {
			return CircularMarker
		}
		defer s.leave(k)
		return s.any(rv.Elem().Interface())
	case reflect.Interface:
		return s.any(rv.Elem().Interface())
	case reflect.Map:
		return s.goMap(rv)
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(rv.Bytes())
		}
		k := visitKey{ptr: rv.Pointer(), typ: rv.Type(), n: rv.Len()}
		if !s.enter(k) {
			return CircularMarker
		}
		defer s.leave(k)
		return s.list(rv)
	case reflect.Array:
		return s.list(rv)
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		s.structFields(rv, out)
		return out
	case reflect.Func:
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			return "func " + fn.Name()
		}
		return rv.Type().String()
	default:
		// chan, unsafe.Pointer
		return rv.Type().String()
	}
}

func (s *serializer) list(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = s.any(rv.Index(i).Interface())
	}
	return out
}

var emptyStruct = reflect.TypeOf(struct{}{})

func (s *serializer) goMap(rv reflect.Value) any {
	k := visitKey{ptr: rv.Pointer(), typ: rv.Type()}
	if !s.enter(k) {
		return CircularMarker
	}
	defer s.leave(k)

	keys := rv.MapKeys()
	// Go maps have no order; sort by the key's text for stable output
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	if rv.Type().Elem() == emptyStruct {
		values := make([]any, 0, len(keys))
		for _, key := range keys {
			values = append(values, s.any(key.Interface()))
		}
		return map[string]any{"__type": "Set", "value": values}
	}

	if rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, len(keys))
		for _, key := range keys {
			out[key.String()] = s.any(rv.MapIndex(key).Interface())
		}
		return out
	}

	pairs := make([]any, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, []any{s.any(key.Interface()), s.any(rv.MapIndex(key).Interface())})
	}
	return map[string]any{"__type": "Map", "value": pairs}
}

// structFields copies exported fields into out using encoding/json naming:
// json tag names, "-" to skip, omitempty, and flattened embedded structs.
func (s *serializer) structFields(rv reflect.Value, out map[string]any) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := rv.Field(i)

		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" && opts == "" {
			continue
		}

		if f.Anonymous && name == "" && f.IsExported() {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						continue
					}
					k := visitKey{ptr: fv.Pointer(), typ: fv.Type()}
					if !s.enter(k) {
						out[ft.Name()] = CircularMarker
						continue
					}
					s.structFields(fv.Elem(), out)
					s.leave(k)
					continue
				}
				s.structFields(fv, out)
				continue
			}
		}

		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if strings.Contains(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		out[name] = s.any(fv.Interface())
	}
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
