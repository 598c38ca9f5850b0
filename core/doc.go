// Package core defines the shared types used across the logging facade.
//
// It provides the Level type, the Input union a log call carries in place
// of a message, the raw Entry handed to sinks and the normalized Record kept
// by the retention buffer.
//
// Input is a closed set of three variants: Text, ErrorEvent and Event.
// Normalize turns an Entry into a Record with an exhaustive type switch:
//
//	Text        -> message is the text, data passes through untouched
//	ErrorEvent  -> "Script error (script.js:42)" plus filename/lineno/colno/error
//	Event       -> "click event on HTMLButtonElement" plus type/target/timeStamp
//
// For the two event variants, keyed caller data (string-keyed maps and
// structs) is spread over the extracted fields with caller keys winning.
// Any other caller data, including an explicit nil, is kept under the
// "additionalData" key instead.
//
// Normalize never serializes data and never derives a source; both happen
// further down the pipeline so that each sink sees the form it needs.
package core
