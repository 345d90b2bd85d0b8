package packet

import (
	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/go-i2p/sshwire/lib/transport/padding"
)

// Writer encodes payloads into binary packets on a write-all sink.
type Writer struct {
	w        *sshio.Writer
	strategy padding.Strategy
	mac      MAC
	seq      uint32
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPadding sets the padding strategy.
func WithPadding(s padding.Strategy) WriterOption {
	return func(p *Writer) {
		if s != nil {
			p.strategy = s
		}
	}
}

// WithWriteMAC sets the MAC appended to each packet.
func WithWriteMAC(m MAC) WriterOption {
	return func(p *Writer) {
		if m != nil {
			p.mac = m
		}
	}
}

// NewWriter returns a packet Writer emitting to w.
func NewWriter(w *sshio.Writer, opts ...WriterOption) *Writer {
	p := &Writer{
		w:        w,
		strategy: padding.Default(),
		mac:      NoneMAC{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SequenceNumber returns the sequence number the next packet will be written with.
func (p *Writer) SequenceNumber() uint32 {
	return p.seq
}

// WritePacket frames payload and writes the whole packet, MAC included, in one call.
func (p *Writer) WritePacket(payload []byte) error {
	paddingLen, err := p.strategy.Length(len(payload))
	if err != nil {
		return err
	}
	raw, err := Marshal(payload, paddingLen)
	if err != nil {
		return err
	}
	raw = append(raw, p.mac.Compute(p.seq, raw)...)
	if err := p.w.WriteAll(raw); err != nil {
		return err
	}
	log.WithFields(logger.Fields{
		"at":          "(Writer) WritePacket",
		"payload_len": len(payload),
		"padding_len": paddingLen,
		"seq":         p.seq,
	}).Debug("packet_written")
	p.seq++
	return nil
}
