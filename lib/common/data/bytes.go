package data

import "io"

// CookieSize is the length of the random cookie opening SSH_MSG_KEXINIT.
const CookieSize = 16

// Cookie is a fixed-size 16 byte block copied verbatim.
type Cookie [CookieSize]byte

func (c Cookie) MarshalSSH(w io.Writer) error { return writeAll(w, c[:]) }
func (c Cookie) SSHSize() int                 { return CookieSize }

func (c *Cookie) UnmarshalSSH(src Source) error {
	b, err := src.ReadExact(CookieSize)
	if err != nil {
		return err
	}
	copy(c[:], b)
	return nil
}
