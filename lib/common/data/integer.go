package data

/*
SSH integer types
https://www.rfc-editor.org/rfc/rfc4251#section-5

byte, uint32 and uint64 are stored in network byte order (big endian), most significant
byte first. uint16 is not named by RFC 4251 but follows the same rule.
*/

import (
	"encoding/binary"
	"io"
)

// Uint8 is a single byte.
type Uint8 uint8

// Uint16 is a 2 byte big-endian integer.
type Uint16 uint16

// Uint32 is a 4 byte big-endian integer.
type Uint32 uint32

// Uint64 is an 8 byte big-endian integer.
type Uint64 uint64

func (i Uint8) MarshalSSH(w io.Writer) error { return writeAll(w, []byte{byte(i)}) }
func (i Uint8) SSHSize() int                 { return 1 }

func (i *Uint8) UnmarshalSSH(src Source) error {
	b, err := src.ReadExact(1)
	if err != nil {
		return err
	}
	*i = Uint8(b[0])
	return nil
}

func (i Uint16) MarshalSSH(w io.Writer) error {
	return writeAll(w, binary.BigEndian.AppendUint16(nil, uint16(i)))
}
func (i Uint16) SSHSize() int { return 2 }

func (i *Uint16) UnmarshalSSH(src Source) error {
	b, err := src.ReadExact(2)
	if err != nil {
		return err
	}
	*i = Uint16(binary.BigEndian.Uint16(b))
	return nil
}

func (i Uint32) MarshalSSH(w io.Writer) error {
	return writeAll(w, binary.BigEndian.AppendUint32(nil, uint32(i)))
}
func (i Uint32) SSHSize() int { return 4 }

func (i *Uint32) UnmarshalSSH(src Source) error {
	b, err := src.ReadExact(4)
	if err != nil {
		return err
	}
	*i = Uint32(binary.BigEndian.Uint32(b))
	return nil
}

func (i Uint64) MarshalSSH(w io.Writer) error {
	return writeAll(w, binary.BigEndian.AppendUint64(nil, uint64(i)))
}
func (i Uint64) SSHSize() int { return 8 }

func (i *Uint64) UnmarshalSSH(src Source) error {
	b, err := src.ReadExact(8)
	if err != nil {
		return err
	}
	*i = Uint64(binary.BigEndian.Uint64(b))
	return nil
}
