// Package postgres contains the PostgreSQL implementations of the store
// interfaces, with hand-written SQL and explicit mapping between rows and
// domain entities.
package postgres
