package data

import (
	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
)

// SliceSource reads Items out of an in-memory payload, typically one decoded packet.
type SliceSource struct {
	data []byte
	off  int

	// Strict rejects non-canonical booleans instead of logging them.
	Strict bool
}

// NewSliceSource returns a Source positioned at the start of b.
func NewSliceSource(b []byte) *SliceSource {
	return &SliceSource{data: b}
}

// ReadExact returns the next n bytes. Running past the end of the payload is
// ErrUnexpectedEOF; nothing is allocated for lengths the payload cannot hold.
func (s *SliceSource) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, sshio.Violationf("negative read length %d", n)
	}
	if n > s.Remaining() {
		log.WithFields(logger.Fields{
			"at":        "(SliceSource) ReadExact",
			"needed":    n,
			"remaining": s.Remaining(),
		}).Debug("payload_too_short")
		return nil, sshio.WrapIO(errShortPayload{need: n, have: s.Remaining()}, "read payload")
	}
	out := make([]byte, n)
	copy(out, s.data[s.off:s.off+n])
	s.off += n
	return out, nil
}

// Remaining returns the number of unread bytes.
func (s *SliceSource) Remaining() int {
	return len(s.data) - s.off
}

// StrictBooleans implements Strictness.
func (s *SliceSource) StrictBooleans() bool {
	return s.Strict
}
