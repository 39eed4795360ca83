// Package store defines the persistence boundary of the tracker: a small
// key-value interface that the record service writes through, plus the
// sentinel errors shared by every backend. Concrete backends (memory,
// filesystem, sqlite, postgres) live under internal/platform.
package store
