// Package storagesink persists recent records to a key/value Store.
//
// Records of one application live under a single key (see Key) as a JSON
// array, oldest first:
//
//	[{"timestamp":"2024-05-01T12:00:00.000Z","level":"info","message":"hi"}]
//
// The sink rewrites the whole array on every call and trims it to MaxStored.
// Two stores ship with the package: MemoryStore and BoltStore, a bbolt file.
package storagesink
