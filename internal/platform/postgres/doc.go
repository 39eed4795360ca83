// Package postgres opens a PostgreSQL database through the pgx stdlib driver
// as a store.Backend, applying the kv_entries migrations on connect. It also
// maps PostgreSQL error codes onto the store sentinels.
package postgres
