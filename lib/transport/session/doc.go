// Package session ties the wire stack to one connection: identification exchange, then
// typed messages carried in binary packets. A Session is used from one goroutine; only
// Close may be called concurrently, to abort blocked I/O.
package session
