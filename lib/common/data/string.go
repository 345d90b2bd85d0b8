package data

/*
SSH string
https://www.rfc-editor.org/rfc/rfc4251#section-5

Arbitrary length binary string: uint32 length followed by that many bytes, no terminator.
*/

import (
	"io"
	"math"

	"github.com/go-i2p/sshwire/lib/common/sshio"
)

// String is an RFC 4251 string. It may hold arbitrary binary data.
type String []byte

func (s String) MarshalSSH(w io.Writer) error {
	if uint64(len(s)) > math.MaxUint32 {
		return sshio.Violationf("string of %d bytes does not fit a uint32 length", len(s))
	}
	if err := Uint32(len(s)).MarshalSSH(w); err != nil {
		return err
	}
	return writeAll(w, s)
}

func (s String) SSHSize() int { return 4 + len(s) }

func (s *String) UnmarshalSSH(src Source) error {
	var length Uint32
	if err := length.UnmarshalSSH(src); err != nil {
		return err
	}
	b, err := readLength(src, length)
	if err != nil {
		return err
	}
	*s = b
	return nil
}

// readLength reads a length-prefixed body, refusing lengths that do not fit in an int.
func readLength(src Source, length Uint32) ([]byte, error) {
	if uint64(length) > uint64(math.MaxInt32) {
		return nil, sshio.Violationf("length %d too large", length)
	}
	return src.ReadExact(int(length))
}
