package sshio

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

const (
	// DefaultChunkSize is how much ReadToBuf asks the source for in one call.
	DefaultChunkSize = 1024

	// maxEmptyReads bounds consecutive (0, nil) reads from a misbehaving source.
	maxEmptyReads = 100
)

var crlf = []byte{'\r', '\n'}

// Reader accumulates bytes from a blocking source and hands them out in FIFO order,
// either delimited by CR LF or in exact-length pieces. It is not safe for concurrent use.
type Reader struct {
	src       io.Reader
	buf       []byte
	chunk     []byte
	chunkSize int

	// buf[:scanned] is known to hold no CR LF starting at any of its offsets.
	scanned int
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithChunkSize sets how many bytes a single refill requests from the source.
func WithChunkSize(n int) ReaderOption {
	return func(r *Reader) {
		if n > 0 {
			r.chunkSize = n
		}
	}
}

// NewReader returns a Reader with an empty buffer pulling from src.
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		src:       src,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.chunk = make([]byte, r.chunkSize)
	return r
}

// Buffered returns the number of bytes pulled from the source but not yet consumed.
func (r *Reader) Buffered() int {
	return len(r.buf)
}

// ReadToBuf performs one read of up to the chunk size and appends what arrived to the
// buffer. It returns (0, io.EOF) at end of stream and leaves the decision to the caller.
func (r *Reader) ReadToBuf() (int, error) {
	for empty := 0; empty < maxEmptyReads; empty++ {
		n, err := r.src.Read(r.chunk)
		if n > 0 {
			r.buf = append(r.buf, r.chunk[:n]...)
			log.WithFields(logger.Fields{
				"at":       "(Reader) ReadToBuf",
				"received": n,
				"buffered": len(r.buf),
			}).Debug("read_to_buf")
			// Data and error together: report the data now, the error comes back on the next call.
			return n, nil
		}
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		if err != nil {
			return 0, WrapIO(err, "read from source")
		}
	}
	return 0, WrapIO(io.ErrNoProgress, "read from source")
}

// fill refills until at least n bytes are buffered.
func (r *Reader) fill(n int, op string) error {
	for len(r.buf) < n {
		if _, err := r.ReadToBuf(); err != nil {
			if errors.Is(err, io.EOF) {
				log.WithFields(logger.Fields{
					"at":       op,
					"needed":   n,
					"buffered": len(r.buf),
				}).Debug("end_of_stream_before_complete_read")
				return WrapIO(io.ErrUnexpectedEOF, op)
			}
			return err
		}
	}
	return nil
}

// consume removes and returns an owned copy of the first n buffered bytes.
func (r *Reader) consume(n int) []byte {
	out := make([]byte, n)
	copy(out, r.buf[:n])
	r.buf = r.buf[:copy(r.buf, r.buf[n:])]
	r.scanned -= n
	if r.scanned < 0 {
		r.scanned = 0
	}
	return out
}

// ReadExact returns exactly n bytes, refilling from the source only when the buffer is short.
// Nothing is consumed unless all n bytes arrive.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, Violationf("negative read length %d", n)
	}
	if err := r.fill(n, "(Reader) ReadExact"); err != nil {
		return nil, err
	}
	return r.consume(n), nil
}

// Peek returns the first n buffered bytes without consuming them, refilling when the buffer
// is short. The slice is only valid until the next read. A failed Peek keeps every byte
// received so far buffered.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 {
		return nil, Violationf("negative peek length %d", n)
	}
	if err := r.fill(n, "(Reader) Peek"); err != nil {
		return nil, err
	}
	return r.buf[:n:n], nil
}

// ReadLine returns the next line including its CR LF terminator.
func (r *Reader) ReadLine() ([]byte, error) {
	return r.ReadLineLimit(0)
}

// ReadLineLimit is ReadLine with an upper bound on the line length, terminator included.
// A max of zero or less means no bound. A line that cannot end within max bytes is a
// protocol violation.
func (r *Reader) ReadLineLimit(max int) ([]byte, error) {
	for {
		if i := bytes.Index(r.buf[r.scanned:], crlf); i >= 0 {
			end := r.scanned + i + len(crlf)
			if max > 0 && end > max {
				return nil, Violationf("line of %d bytes exceeds limit of %d", end, max)
			}
			line := r.consume(end)
			r.scanned = 0
			return line, nil
		}
		// The last byte may be a CR whose LF has not arrived yet.
		if len(r.buf) > 0 {
			r.scanned = len(r.buf) - 1
		}
		if max > 0 && len(r.buf) >= max {
			return nil, Violationf("no line terminator within %d bytes", max)
		}
		if _, err := r.ReadToBuf(); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, WrapIO(io.ErrUnexpectedEOF, "read line")
			}
			return nil, err
		}
	}
}
