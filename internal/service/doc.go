// Package service contains the tracker's use cases: the record store over an
// injected store.KeyValueStore, and the target score.
//
// The record collection is persisted as one JSON array under a single key and
// rewritten whole on every change. Reads fail closed: a value that cannot be
// decoded is treated as an empty collection and logged. Writes that do not
// reach storage are returned to the caller wrapping store.ErrWriteFailed.
//
// Delivery mechanisms (cmd/server, cmd/pulse) depend on the RecordService
// interface, never on a concrete backend.
package service
