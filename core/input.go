package core

import (
	"fmt"
	"reflect"
)

// Input is what a log call carries in place of a message: plain Text, an
// ErrorEvent or a generic Event. The set is closed.
type Input interface {
	isInput()
}

// Text is a plain text message
type Text string

// ErrorEvent describes an uncaught error reported by a runtime, with the
// location it was raised at. Colno is optional; zero means absent.
type ErrorEvent struct {
	Message  string
	Filename string
	Lineno   int
	Colno    int
	Error    any
}

// Event describes a generic event. Target is the object the event fired on
// and may be nil; its type name is reported, never the value itself.
type Event struct {
	Type      string
	Target    any
	TimeStamp *float64
	Request   *Request
}

// Request is the request an event refers to, if any
type Request struct {
	URL    string
	Method string
}

func (Text) isInput()       {}
func (ErrorEvent) isInput() {}
func (Event) isInput()      {}

// TypeNamer lets a target report its own type name
type TypeNamer interface {
	TypeName() string
}

// AsInput converts an arbitrary message argument into an Input. Inputs pass
// through, strings become Text, errors become their message and anything else
// is formatted with fmt.Sprint.
func AsInput(v any) Input {
	switch m := v.(type) {
	case *ErrorEvent:
		if m == nil {
			return Text("")
		}
		return *m
	case *Event:
		if m == nil {
			return Text("")
		}
		return *m
	case *Text:
		if m == nil {
			return Text("")
		}
		return *m
	case Input:
		return m
	case string:
		return Text(m)
	case error:
		return Text(m.Error())
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprint(m))
	}
}

// TargetName returns the type name of an event target, or "" for nil
func TargetName(target any) string {
	if target == nil {
		return ""
	}
	if n, ok := target.(TypeNamer); ok {
		return n.TypeName()
	}
	t := reflect.TypeOf(target)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
