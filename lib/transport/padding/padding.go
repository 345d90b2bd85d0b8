// Package padding chooses the random padding appended to SSH binary packets.
package padding

import (
	"github.com/go-i2p/crypto/rand"
	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

const (
	// MinLength is the smallest padding RFC 4253 allows.
	MinLength = 4
	// MaxLength is the largest padding the one byte padding_length field can carry.
	MaxLength = 255
	// MinBlockSize is the alignment used while no cipher is active.
	MinBlockSize = 8

	// headerSize is packet_length (4) plus padding_length (1).
	headerSize = 5
)

// Strategy decides how many padding bytes follow a payload of a given length.
type Strategy interface {
	Length(payloadLen int) (int, error)
}

// Fixed always pads by the same number of bytes, with no alignment. It exists for
// peers and tests that need a deterministic layout.
type Fixed int

// Length implements Strategy.
func (f Fixed) Length(int) (int, error) {
	return int(f), nil
}

// BlockAligned pads to a multiple of BlockSize with at least MinLength bytes, then adds up
// to MaxExtraBlocks further blocks chosen at random to blur payload lengths. Extra blocks
// never push the padding past MaxLength.
type BlockAligned struct {
	BlockSize      int
	MaxExtraBlocks int
}

// Default returns the strategy used while no cipher is negotiated.
func Default() BlockAligned {
	return BlockAligned{BlockSize: MinBlockSize}
}

// Length implements Strategy.
func (b BlockAligned) Length(payloadLen int) (int, error) {
	block := b.BlockSize
	if block < MinBlockSize {
		block = MinBlockSize
	}
	n := QuantAdjustment(headerSize+payloadLen, block)
	if n < MinLength {
		n += block
	}
	if n > MaxLength {
		return 0, sshio.Violationf("padding of %d bytes for block size %d exceeds %d", n, block, MaxLength)
	}
	if b.MaxExtraBlocks > 0 {
		room := (MaxLength - n) / block
		if room > b.MaxExtraBlocks {
			room = b.MaxExtraBlocks
		}
		extra, err := randomBelow(room + 1)
		if err != nil {
			return 0, err
		}
		n += extra * block
	}
	log.WithFields(logger.Fields{
		"at":          "(BlockAligned) Length",
		"payload_len": payloadLen,
		"block_size":  block,
		"padding_len": n,
	}).Debug("padding_selected")
	return n, nil
}

// Fill returns n random padding bytes.
func Fill(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, oops.Wrapf(err, "failed to generate %d padding bytes", n)
	}
	return buf, nil
}

// randomBelow returns a uniformly distributed value in [0, n) for n <= 256.
func randomBelow(n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	var b [1]byte
	limit := 256 - 256%n
	for {
		if _, err := rand.Read(b[:]); err != nil {
			return 0, oops.Wrapf(err, "failed to generate random padding length")
		}
		if int(b[0]) < limit {
			return int(b[0]) % n, nil
		}
	}
}
