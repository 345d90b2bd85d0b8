package handshake

import (
	"bytes"
	"io"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

const (
	// DefaultMaxPreambleLines bounds the lines a peer may send before its identification.
	DefaultMaxPreambleLines = 1024

	// DefaultMaxLineLength bounds every line read during the exchange, CR LF included.
	DefaultMaxLineLength = 1024
)

var crlf = []byte("\r\n")

// Limits bounds the work done while waiting for the peer identification line.
// Zero fields take the defaults.
type Limits struct {
	MaxPreambleLines int
	MaxLineLength    int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		MaxPreambleLines: DefaultMaxPreambleLines,
		MaxLineLength:    DefaultMaxLineLength,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxPreambleLines <= 0 {
		l.MaxPreambleLines = DefaultMaxPreambleLines
	}
	if l.MaxLineLength <= 0 {
		l.MaxLineLength = DefaultMaxLineLength
	}
	return l
}

// SendIdentification writes local followed by CR LF.
func SendIdentification(w io.Writer, local Identification) error {
	if err := local.Validate(); err != nil {
		return oops.Wrapf(err, "local identification")
	}
	line := local.String() + string(crlf)
	if err := sshio.NewWriter(w).WriteAll([]byte(line)); err != nil {
		return err
	}
	log.WithFields(logger.Fields{
		"at":             "handshake.SendIdentification",
		"identification": local.String(),
	}).Debug("identification_sent")
	return nil
}

// ReceiveIdentification reads lines from r until one begins with "SSH" and parses it.
// Earlier lines are discarded. More than limits.MaxPreambleLines discarded lines, a line
// longer than limits.MaxLineLength or a protocol version other than 2.0 or 1.99 is a
// protocol violation.
func ReceiveIdentification(r *sshio.Reader, limits Limits) (Identification, error) {
	limits = limits.withDefaults()
	for discarded := 0; ; discarded++ {
		line, err := r.ReadLineLimit(limits.MaxLineLength)
		if err != nil {
			return Identification{}, err
		}
		if !bytes.HasPrefix(line, []byte("SSH")) {
			if discarded >= limits.MaxPreambleLines {
				return Identification{}, sshio.Violationf("more than %d lines before identification", limits.MaxPreambleLines)
			}
			log.WithFields(logger.Fields{
				"at":   "handshake.ReceiveIdentification",
				"line": string(bytes.TrimSuffix(line, crlf)),
			}).Warn("discarding_preamble_line")
			continue
		}

		peer, err := ParseIdentification(string(line))
		if err != nil {
			return Identification{}, err
		}
		if !peer.Compatible() {
			return Identification{}, sshio.Violationf("unsupported protocol version %q", peer.ProtoVersion)
		}
		log.WithFields(logger.Fields{
			"at":             "handshake.ReceiveIdentification",
			"identification": peer.Raw,
			"discarded":      discarded,
		}).Debug("identification_received")
		return peer, nil
	}
}

// Exchange sends local and then waits for the peer identification.
func Exchange(r *sshio.Reader, w io.Writer, local Identification, limits Limits) (Identification, error) {
	if err := SendIdentification(w, local); err != nil {
		return Identification{}, err
	}
	return ReceiveIdentification(r, limits)
}
