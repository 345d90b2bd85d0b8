// Package data implements the RFC 4251 data type representations used by SSH messages.
//
// Every wire type implements Item: it knows how to write itself, how to read itself from a
// Source and how many bytes it occupies on the wire. Structured records are ordered lists
// of Items walked by ReadRecord and WriteRecord.
package data

import (
	"io"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
)

var log = logger.GetGoI2PLogger()

// Source supplies exact-length byte runs. *sshio.Reader and *SliceSource implement it.
type Source interface {
	ReadExact(n int) ([]byte, error)
}

// Strictness is optionally implemented by a Source to turn protocol anomalies that are
// tolerated by default into errors.
type Strictness interface {
	StrictBooleans() bool
}

// Item is a value with an SSH wire representation.
type Item interface {
	// MarshalSSH writes the wire form of the item to w.
	MarshalSSH(w io.Writer) error
	// UnmarshalSSH replaces the item with the next value read from src.
	UnmarshalSSH(src Source) error
	// SSHSize returns the length of the wire form in bytes.
	SSHSize() int
}

var _ Source = (*sshio.Reader)(nil)

// writeAll writes p to w and treats a short write as a failure.
func writeAll(w io.Writer, p []byte) error {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return sshio.WrapIO(err, "write item")
}

func strictBooleans(src Source) bool {
	s, ok := src.(Strictness)
	return ok && s.StrictBooleans()
}
