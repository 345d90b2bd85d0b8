package data

import (
	"io"

	"github.com/go-i2p/logger"
)

// Record is a structured value made of Items in a fixed wire order. Fields must return
// pointers into the receiver so that ReadRecord can fill them in place.
type Record interface {
	Fields() []Item
}

// ReadRecord reads every field of rec from src in declaration order.
func ReadRecord(src Source, rec Record) error {
	for i, f := range rec.Fields() {
		if err := f.UnmarshalSSH(src); err != nil {
			log.WithFields(logger.Fields{
				"at":    "data.ReadRecord",
				"field": i,
			}).WithError(err).Debug("record_field_read_failed")
			return err
		}
	}
	return nil
}

// WriteRecord writes every field of rec to w in declaration order.
func WriteRecord(w io.Writer, rec Record) error {
	for i, f := range rec.Fields() {
		if err := f.MarshalSSH(w); err != nil {
			log.WithFields(logger.Fields{
				"at":    "data.WriteRecord",
				"field": i,
			}).WithError(err).Debug("record_field_write_failed")
			return err
		}
	}
	return nil
}

// RecordSize returns the wire length of rec.
func RecordSize(rec Record) int {
	size := 0
	for _, f := range rec.Fields() {
		size += f.SSHSize()
	}
	return size
}
