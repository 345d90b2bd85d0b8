package packet

import (
	"encoding/binary"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
)

// Reader decodes binary packets from a buffered stream.
type Reader struct {
	r            *sshio.Reader
	mac          MAC
	maxPacketLen uint32
	seq          uint32
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithMaxPacketLength bounds accepted packet_length values. Zero disables the bound.
func WithMaxPacketLength(n uint32) ReaderOption {
	return func(p *Reader) { p.maxPacketLen = n }
}

// WithReadMAC sets the MAC verified after each packet.
func WithReadMAC(m MAC) ReaderOption {
	return func(p *Reader) {
		if m != nil {
			p.mac = m
		}
	}
}

// NewReader returns a packet Reader consuming r.
func NewReader(r *sshio.Reader, opts ...ReaderOption) *Reader {
	p := &Reader{
		r:            r,
		mac:          NoneMAC{},
		maxPacketLen: DefaultMaxPacketLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SequenceNumber returns the sequence number the next packet will be read with.
func (p *Reader) SequenceNumber() uint32 {
	return p.seq
}

// ReadPacket reads one packet and returns its payload. A header that breaks the framing
// invariants fails with ErrProtocolViolation after consuming only the 5 header bytes.
// Otherwise the packet is consumed as a whole: when the stream fails or the deadline
// passes before the packet is complete, every byte stays buffered and the next call
// resumes at the same header.
func (p *Reader) ReadPacket() ([]byte, error) {
	header, err := p.r.Peek(HeaderSize)
	if err != nil {
		return nil, err
	}
	packetLen := binary.BigEndian.Uint32(header[:4])
	paddingLen := header[4]

	if err := validateHeader(packetLen, paddingLen, p.maxPacketLen); err != nil {
		log.WithFields(logger.Fields{
			"at":          "(Reader) ReadPacket",
			"packet_len":  packetLen,
			"padding_len": paddingLen,
			"seq":         p.seq,
		}).WithError(err).Warn("malformed_packet_header")
		if _, derr := p.r.ReadExact(HeaderSize); derr != nil {
			return nil, derr
		}
		return nil, err
	}

	macSize := p.mac.Size()
	raw, err := p.r.ReadExact(lengthFieldSize + int(packetLen) + macSize)
	if err != nil {
		log.WithFields(logger.Fields{
			"at":         "(Reader) ReadPacket",
			"packet_len": packetLen,
			"buffered":   p.r.Buffered(),
			"seq":        p.seq,
		}).WithError(err).Debug("packet_incomplete")
		return nil, err
	}
	payloadLen := int(packetLen) - int(paddingLen) - 1
	body, tag := raw[:len(raw)-macSize], raw[len(raw)-macSize:]
	if err := p.verifyMAC(body, tag); err != nil {
		return nil, err
	}

	log.WithFields(logger.Fields{
		"at":          "(Reader) ReadPacket",
		"packet_len":  packetLen,
		"padding_len": paddingLen,
		"payload_len": payloadLen,
		"seq":         p.seq,
	}).Debug("packet_read")
	p.seq++
	return body[HeaderSize : HeaderSize+payloadLen], nil
}

func (p *Reader) verifyMAC(packet, tag []byte) error {
	if len(tag) == 0 {
		return nil
	}
	if err := p.mac.Verify(p.seq, packet, tag); err != nil {
		log.WithFields(logger.Fields{
			"at":  "(Reader) verifyMAC",
			"mac": p.mac.Name(),
			"seq": p.seq,
		}).WithError(err).Warn("mac_verification_failed")
		return err
	}
	return nil
}
