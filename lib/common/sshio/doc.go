// Package sshio provides the byte-level plumbing beneath the SSH binary packet layer.
//
// A Reader pulls from a blocking io.Reader into a growable FIFO buffer and serves
// delimiter-based reads (identification lines ending in CR LF) and exact-length reads
// (packet fields). A Writer enforces the write-all contract on the sink.
//
// All errors returned by the wire stack belong to one of the kinds declared in errors.go:
//
//	ErrIO                 underlying source or sink failure
//	ErrUnexpectedEOF      stream ended in the middle of a required read
//	ErrProtocolViolation  malformed framing or limits exceeded
//	ErrUnknownMessageTag  message number with no decoder
//	ErrUnsupported        operation not implemented for a type or algorithm
//	ErrTimeout            deadline reached or context cancelled
//
// Nothing in this package retries; that is the caller's decision.
package sshio
