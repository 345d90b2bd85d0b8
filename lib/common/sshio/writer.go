package sshio

import (
	"io"

	"github.com/go-i2p/logger"
)

// Writer is the sink half of a connection. Every write either delivers all bytes or fails.
type Writer struct {
	dst     io.Writer
	written uint64
}

// NewWriter wraps dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteAll writes p completely. A short write without an error from the sink is reported
// as ErrIO wrapping io.ErrShortWrite.
func (w *Writer) WriteAll(p []byte) error {
	n, err := w.dst.Write(p)
	w.written += uint64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		log.WithFields(logger.Fields{
			"at":      "(Writer) WriteAll",
			"length":  len(p),
			"written": n,
		}).WithError(err).Debug("write_all_failed")
		return WrapIO(err, "write to sink")
	}
	log.WithFields(logger.Fields{
		"at":     "(Writer) WriteAll",
		"length": len(p),
	}).Debug("write_all")
	return nil
}

// Write implements io.Writer on top of WriteAll.
func (w *Writer) Write(p []byte) (int, error) {
	if err := w.WriteAll(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Written returns the total number of bytes accepted by the sink.
func (w *Writer) Written() uint64 {
	return w.written
}
