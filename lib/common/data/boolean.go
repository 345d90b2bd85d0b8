package data

import (
	"io"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
)

// Bool is a single byte. Zero is false; RFC 4251 says every non-zero value is true but
// that only 1 should be sent.
type Bool bool

func (b Bool) MarshalSSH(w io.Writer) error {
	if b {
		return writeAll(w, []byte{1})
	}
	return writeAll(w, []byte{0})
}

func (b Bool) SSHSize() int { return 1 }

// UnmarshalSSH accepts any non-zero byte as true. Values other than 0 and 1 are logged,
// or rejected with ErrProtocolViolation when src reports strict booleans.
func (b *Bool) UnmarshalSSH(src Source) error {
	raw, err := src.ReadExact(1)
	if err != nil {
		return err
	}
	v := raw[0]
	if v > 1 {
		if strictBooleans(src) {
			return sshio.Violationf("non-canonical boolean value %d", v)
		}
		log.WithFields(logger.Fields{
			"at":    "(Bool) UnmarshalSSH",
			"value": v,
		}).Warn("non_canonical_boolean")
	}
	*b = v != 0
	return nil
}
