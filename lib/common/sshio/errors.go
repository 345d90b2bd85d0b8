package sshio

import (
	"errors"
	"io"
	"net"

	"github.com/samber/oops"
)

// Error kinds shared by every layer of the wire stack. Callers match them with errors.Is;
// the concrete errors returned carry additional context around one of these.
var (
	ErrIO                = errors.New("ssh wire: i/o failure")
	ErrUnexpectedEOF     = errors.New("ssh wire: unexpected end of stream")
	ErrProtocolViolation = errors.New("ssh wire: protocol violation")
	ErrUnknownMessageTag = errors.New("ssh wire: unknown message tag")
	ErrUnsupported       = errors.New("ssh wire: unsupported operation")
	ErrTimeout           = errors.New("ssh wire: i/o timeout")
)

// Kind classifies an error returned from this module.
type Kind int

const (
	KindNone Kind = iota
	KindIO
	KindUnexpectedEOF
	KindProtocolViolation
	KindUnknownMessageTag
	KindUnsupported
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindIO:
		return "io_failure"
	case KindUnexpectedEOF:
		return "unexpected_eof"
	case KindProtocolViolation:
		return "protocol_violation"
	case KindUnknownMessageTag:
		return "unknown_message_tag"
	case KindUnsupported:
		return "unsupported_operation"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// KindOf reports which kind err belongs to. Errors that did not originate here are KindIO.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTimeout):
		return KindTimeout
	case errors.Is(err, ErrUnexpectedEOF):
		return KindUnexpectedEOF
	case errors.Is(err, ErrProtocolViolation):
		return KindProtocolViolation
	case errors.Is(err, ErrUnknownMessageTag):
		return KindUnknownMessageTag
	case errors.Is(err, ErrUnsupported):
		return KindUnsupported
	default:
		return KindIO
	}
}

// Violationf returns an ErrProtocolViolation carrying a formatted description.
func Violationf(format string, args ...interface{}) error {
	return oops.Errorf("%w: "+format, append([]interface{}{ErrProtocolViolation}, args...)...)
}

// Unsupportedf returns an ErrUnsupported carrying a formatted description.
func Unsupportedf(format string, args ...interface{}) error {
	return oops.Errorf("%w: "+format, append([]interface{}{ErrUnsupported}, args...)...)
}

// WrapIO classifies an error from the underlying byte source or sink. End of stream becomes
// ErrUnexpectedEOF, net timeouts become ErrTimeout and everything else ErrIO. The original
// error stays reachable through errors.Is/As.
func WrapIO(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrIO) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnexpectedEOF) {
		return err
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return oops.Errorf("%w: %s: %w", ErrUnexpectedEOF, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return oops.Errorf("%w: %s: %w", ErrTimeout, op, err)
	}
	return oops.Errorf("%w: %s: %w", ErrIO, op, err)
}
