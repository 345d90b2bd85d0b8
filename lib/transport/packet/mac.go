package packet

import (
	"github.com/go-i2p/sshwire/lib/common/sshio"
)

// MAC computes and checks the integrity trailer of each packet. seq is the implicit
// packet sequence number and packet is the unencrypted packet from packet_length through
// the padding.
type MAC interface {
	Name() string
	Size() int
	Compute(seq uint32, packet []byte) []byte
	Verify(seq uint32, packet, tag []byte) error
}

// MACNone is the algorithm name for the empty MAC.
const MACNone = "none"

// NoneMAC is the "none" algorithm: no trailer, no integrity.
type NoneMAC struct{}

func (NoneMAC) Name() string                        { return MACNone }
func (NoneMAC) Size() int                           { return 0 }
func (NoneMAC) Compute(uint32, []byte) []byte       { return nil }
func (NoneMAC) Verify(uint32, []byte, []byte) error { return nil }

// MACByName returns the MAC implementation for an algorithm name.
func MACByName(name string) (MAC, error) {
	switch name {
	case MACNone, "":
		return NoneMAC{}, nil
	default:
		return nil, sshio.Unsupportedf("mac algorithm %q is not implemented", name)
	}
}
