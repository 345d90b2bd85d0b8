package data

import (
	"fmt"
	"io"
)

// errShortPayload reports a field that runs past the end of an in-memory payload.
// It unwraps to io.ErrUnexpectedEOF so it classifies as sshio.ErrUnexpectedEOF.
type errShortPayload struct {
	need, have int
}

func (e errShortPayload) Error() string {
	return fmt.Sprintf("need %d bytes, %d remaining", e.need, e.have)
}

func (e errShortPayload) Unwrap() error {
	return io.ErrUnexpectedEOF
}
