package messages

import (
	"bytes"
	"io"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/data"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Message is a typed SSH message: a record preceded on the wire by its message number.
type Message interface {
	data.Record
	MessageType() uint8
}

// catalog maps each known message number to a constructor for its record.
var catalog = map[uint8]func() Message{
	MsgDisconnect:     func() Message { return new(Disconnect) },
	MsgIgnore:         func() Message { return new(Ignore) },
	MsgUnimplemented:  func() Message { return new(Unimplemented) },
	MsgDebug:          func() Message { return new(Debug) },
	MsgServiceRequest: func() Message { return new(ServiceRequest) },
	MsgServiceAccept:  func() Message { return new(ServiceAccept) },
	MsgKexInit:        func() Message { return new(KexInit) },
	MsgNewKeys:        func() Message { return new(NewKeys) },
}

// Known reports whether t has a decoder.
func Known(t uint8) bool {
	_, ok := catalog[t]
	return ok
}

// DecodeOption configures Decode.
type DecodeOption func(*data.SliceSource)

// WithStrictBooleans rejects boolean fields holding anything but 0 or 1.
func WithStrictBooleans(strict bool) DecodeOption {
	return func(s *data.SliceSource) { s.Strict = strict }
}

// Decode parses one packet payload into a Message. Bytes left over after the record are
// logged and ignored.
func Decode(payload []byte, opts ...DecodeOption) (Message, error) {
	src := data.NewSliceSource(payload)
	for _, opt := range opts {
		opt(src)
	}
	msg, err := ReadMessage(src)
	if err != nil {
		return nil, err
	}
	if rest := src.Remaining(); rest > 0 {
		log.WithFields(logger.Fields{
			"at":       "messages.Decode",
			"msg_type": MessageTypeName(msg.MessageType()),
			"trailing": rest,
		}).Warn("trailing_bytes_after_message")
	}
	return msg, nil
}

// ReadMessage reads a message number from src and then the body of the matching record.
// An unknown number fails with ErrUnknownMessageTag before any body byte is read.
func ReadMessage(src data.Source) (Message, error) {
	var tag data.Uint8
	if err := tag.UnmarshalSSH(src); err != nil {
		return nil, err
	}
	newMsg, ok := catalog[uint8(tag)]
	if !ok {
		log.WithFields(logger.Fields{
			"at":     "messages.ReadMessage",
			"msg_id": uint8(tag),
		}).Debug("unknown_message_tag")
		return nil, oops.Errorf("%w: %d", sshio.ErrUnknownMessageTag, uint8(tag))
	}
	msg := newMsg()
	if err := data.ReadRecord(src, msg); err != nil {
		return nil, oops.Wrapf(err, "decoding %s", MessageTypeName(uint8(tag)))
	}
	log.WithFields(logger.Fields{
		"at":       "messages.ReadMessage",
		"msg_type": MessageTypeName(uint8(tag)),
	}).Debug("message_decoded")
	return msg, nil
}

// WriteMessage writes the message number of msg followed by its record.
func WriteMessage(w io.Writer, msg Message) error {
	if msg == nil {
		return sshio.Unsupportedf("cannot encode a nil message")
	}
	t := msg.MessageType()
	if !Known(t) {
		return sshio.Unsupportedf("no encoder for message type %d", t)
	}
	if err := data.Uint8(t).MarshalSSH(w); err != nil {
		return err
	}
	return data.WriteRecord(w, msg)
}

// Encode returns the packet payload for msg.
func Encode(msg Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Size returns the payload length of msg.
func Size(msg Message) int {
	return 1 + data.RecordSize(msg)
}
