// Package formatter turns records and their payloads into bytes.
//
// Serialize converts any Go value into a JSON-safe value. It understands
// errors, time.Time, *regexp.Regexp, the ordered Map and Set types of this
// package, Go maps, structs (with encoding/json field naming), slices and
// json.Marshaler implementations. Containers already on the current recursion
// path are replaced by "[Circular]", so self-referential graphs terminate.
// Serialize never panics; a value it cannot represent is replaced by a text
// stand-in.
//
// TextFormatter renders the human-readable line used by the console sink and
// by text export. JSONFormatter renders one persisted-shape object per line.
// EncodeRecords and DecodeRecords handle the JSON array kept by the storage
// sink.
//
// Formatters use a pooled bytes.Buffer internally. Buffers larger than
// 64 KiB are not returned to the pool to prevent a single large record from
// permanently inflating memory usage.
package formatter
