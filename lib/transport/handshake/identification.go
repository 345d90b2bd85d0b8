package handshake

import (
	"strings"

	"github.com/go-i2p/sshwire/lib/common/sshio"
)

/*
Identification string
https://www.rfc-editor.org/rfc/rfc4253#section-4.2

	SSH-protoversion-softwareversion SP comments CR LF

protoversion is "2.0", or "1.99" for servers that also speak version 1.
softwareversion is printable ASCII without spaces or minus signs. The comments
part and the space before it are optional.
*/

const (
	// ProtoVersion is the protocol version this package speaks.
	ProtoVersion = "2.0"

	// compatProtoVersion is announced by servers that accept both major versions.
	compatProtoVersion = "1.99"

	identPrefix = "SSH-"
)

// Identification is one side's identification line.
type Identification struct {
	ProtoVersion    string
	SoftwareVersion string
	Comments        string

	// Raw holds the line exactly as received, without CR LF. It is empty for
	// locally built values.
	Raw string
}

// NewIdentification returns a protocol 2.0 identification for software and comments.
func NewIdentification(software, comments string) Identification {
	return Identification{
		ProtoVersion:    ProtoVersion,
		SoftwareVersion: software,
		Comments:        comments,
	}
}

// String renders the line without its terminator. A received identification renders as
// it arrived.
func (id Identification) String() string {
	if id.Raw != "" {
		return id.Raw
	}
	s := identPrefix + id.ProtoVersion + "-" + id.SoftwareVersion
	if id.Comments != "" {
		s += " " + id.Comments
	}
	return s
}

// Validate checks that id can be sent as an identification line.
func (id Identification) Validate() error {
	if id.ProtoVersion == "" || strings.ContainsAny(id.ProtoVersion, "- \r\n") {
		return sshio.Violationf("invalid protocol version %q", id.ProtoVersion)
	}
	if id.SoftwareVersion == "" {
		return sshio.Violationf("empty software version")
	}
	for _, c := range id.SoftwareVersion {
		if c <= ' ' || c > '~' || c == '-' {
			return sshio.Violationf("software version %q contains %q", id.SoftwareVersion, c)
		}
	}
	if strings.ContainsAny(id.Comments, "\r\n") {
		return sshio.Violationf("comments contain a line break")
	}
	return nil
}

// Compatible reports whether the announced protocol version can be spoken with.
func (id Identification) Compatible() bool {
	return id.ProtoVersion == ProtoVersion || id.ProtoVersion == compatProtoVersion
}

// ParseIdentification splits an identification line. A trailing CR LF is removed if
// present. Parsing is lenient: a missing software version or comments part is left empty,
// only the "SSH-" prefix is mandatory.
func ParseIdentification(line string) (Identification, error) {
	line = strings.TrimSuffix(line, "\r\n")
	if !strings.HasPrefix(line, identPrefix) {
		return Identification{}, sshio.Violationf("identification %q does not start with %q", line, identPrefix)
	}
	id := Identification{Raw: line}

	rest := strings.TrimPrefix(line, identPrefix)
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		id.Comments = rest[i+1:]
		rest = rest[:i]
	}
	id.ProtoVersion, id.SoftwareVersion, _ = strings.Cut(rest, "-")
	return id, nil
}
