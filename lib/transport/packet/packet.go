package packet

import (
	"encoding/binary"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/go-i2p/sshwire/lib/transport/padding"
)

var log = logger.GetGoI2PLogger()

const (
	// HeaderSize is packet_length plus padding_length.
	HeaderSize = 5

	// lengthFieldSize is the packet_length field, the only bytes packet_length does not count.
	lengthFieldSize = 4

	// DefaultMaxPacketLength bounds packet_length on read. RFC 4253 requires at least
	// 35000; OpenSSH accepts up to 256 KiB.
	DefaultMaxPacketLength = 256 * 1024
)

// validateHeader checks the decoded header fields before any payload is read.
func validateHeader(packetLen uint32, paddingLen uint8, maxPacketLen uint32) error {
	if paddingLen < padding.MinLength {
		return sshio.Violationf("padding length %d below minimum %d", paddingLen, padding.MinLength)
	}
	if packetLen <= uint32(paddingLen) {
		return sshio.Violationf("packet length %d not greater than padding length %d", packetLen, paddingLen)
	}
	if maxPacketLen > 0 && packetLen > maxPacketLen {
		return sshio.Violationf("packet length %d exceeds maximum %d", packetLen, maxPacketLen)
	}
	return nil
}

// Marshal builds a complete binary packet around payload with paddingLen random padding
// bytes and no MAC.
func Marshal(payload []byte, paddingLen int) ([]byte, error) {
	if paddingLen < padding.MinLength || paddingLen > padding.MaxLength {
		return nil, sshio.Violationf("padding length %d outside [%d, %d]", paddingLen, padding.MinLength, padding.MaxLength)
	}
	pad, err := padding.Fill(paddingLen)
	if err != nil {
		return nil, err
	}
	return assemble(payload, pad)
}

func assemble(payload, pad []byte) ([]byte, error) {
	packetLen := uint64(1 + len(payload) + len(pad))
	if packetLen > uint64(^uint32(0)) {
		return nil, sshio.Violationf("payload of %d bytes does not fit a packet", len(payload))
	}
	out := make([]byte, 0, 4+int(packetLen))
	out = binary.BigEndian.AppendUint32(out, uint32(packetLen))
	out = append(out, byte(len(pad)))
	out = append(out, payload...)
	out = append(out, pad...)
	return out, nil
}
