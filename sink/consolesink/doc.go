// Package consolesink provides a sink that prints formatted records to a
// leveled console facility.
//
// Console is the facility interface, one print method per level family.
// Fatal and error lines go to Error, success lines go to Log together with
// the StyleSuccess annotation. WriterConsole is the built-in Console: it
// writes to stdout/stderr (or any io.Writer) and optionally colors lines
// with ANSI escapes.
package consolesink
