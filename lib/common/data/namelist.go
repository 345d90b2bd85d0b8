package data

/*
SSH name-list
https://www.rfc-editor.org/rfc/rfc4251#section-5

+----+----+----+----+----+----+----+----+
|   length (uint32)  | names joined by ','  ...
+----+----+----+----+----+----+----+----+

length is the byte length of the joined names. There is no trailing comma.
*/

import (
	"bytes"
	"io"
	"strings"

	"github.com/go-i2p/sshwire/lib/common/sshio"
)

// NameList is an ordered list of algorithm or language names.
//
// Decoding splits strictly on the comma byte, so an empty blob yields one empty name.
// Encoding the empty list and encoding NameList{""} both produce an empty blob.
type NameList []string

// NewNameList returns a NameList holding names in order.
func NewNameList(names ...string) NameList {
	return NameList(names)
}

// String returns the comma-joined wire text.
func (l NameList) String() string {
	return strings.Join(l, ",")
}

// Contains reports whether name appears in the list.
func (l NameList) Contains(name string) bool {
	for _, n := range l {
		if n == name {
			return true
		}
	}
	return false
}

func (l NameList) MarshalSSH(w io.Writer) error {
	for i, n := range l {
		if strings.IndexByte(n, ',') >= 0 {
			return sshio.Violationf("name %d (%q) contains a comma", i, n)
		}
	}
	return String(l.String()).MarshalSSH(w)
}

func (l NameList) SSHSize() int {
	size := 4
	for i, n := range l {
		if i > 0 {
			size++
		}
		size += len(n)
	}
	return size
}

func (l *NameList) UnmarshalSSH(src Source) error {
	var blob String
	if err := blob.UnmarshalSSH(src); err != nil {
		return err
	}
	parts := bytes.Split(blob, []byte{','})
	names := make(NameList, len(parts))
	for i, p := range parts {
		names[i] = string(p)
	}
	*l = names
	return nil
}
