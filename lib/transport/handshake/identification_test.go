package handshake

import (
	"testing"

	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentification_String(t *testing.T) {
	assert.Equal(t, "SSH-2.0-sshwire_0.1", NewIdentification("sshwire_0.1", "").String())
	assert.Equal(t, "SSH-2.0-sshwire_0.1 probe", NewIdentification("sshwire_0.1", "probe").String())
}

func TestParseIdentification(t *testing.T) {
	tests := []struct {
		line     string
		proto    string
		software string
		comments string
	}{
		{"SSH-2.0-OpenSSH_1.0", "2.0", "OpenSSH_1.0", ""},
		{"SSH-2.0-OpenSSH_9.6p1 Ubuntu-3ubuntu13\r\n", "2.0", "OpenSSH_9.6p1", "Ubuntu-3ubuntu13"},
		{"SSH-1.99-Cisco-1.25", "1.99", "Cisco-1.25", ""},
		{"SSH-2.0", "2.0", "", ""},
		{"SSH-2.0-dropbear a b c", "2.0", "dropbear", "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			id, err := ParseIdentification(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.proto, id.ProtoVersion)
			assert.Equal(t, tt.software, id.SoftwareVersion)
			assert.Equal(t, tt.comments, id.Comments)
			assert.NotContains(t, id.Raw, "\r\n")
			assert.Equal(t, id.Raw, id.String())
		})
	}
}

func TestParseIdentification_BadPrefix(t *testing.T) {
	for _, line := range []string{"", "SSH", "SSH2.0-x", "garbage"} {
		_, err := ParseIdentification(line)
		assert.ErrorIs(t, err, sshio.ErrProtocolViolation, line)
	}
}

func TestIdentification_Validate(t *testing.T) {
	assert.NoError(t, NewIdentification("sshwire_0.1", "with comments").Validate())
	assert.ErrorIs(t, NewIdentification("", "").Validate(), sshio.ErrProtocolViolation)
	assert.ErrorIs(t, NewIdentification("has-dash", "").Validate(), sshio.ErrProtocolViolation)
	assert.ErrorIs(t, NewIdentification("has space", "").Validate(), sshio.ErrProtocolViolation)
	assert.ErrorIs(t, NewIdentification("ok", "line\r\nbreak").Validate(), sshio.ErrProtocolViolation)
}

func TestIdentification_Compatible(t *testing.T) {
	for proto, want := range map[string]bool{"2.0": true, "1.99": true, "1.5": false, "3.0": false} {
		assert.Equal(t, want, Identification{ProtoVersion: proto}.Compatible(), proto)
	}
}

func TestState_Sequence(t *testing.T) {
	s := StateStart
	var seen []string
	for !s.PacketsAllowed() {
		seen = append(seen, s.String())
		s = s.Next()
	}
	assert.Equal(t, []string{"start", "version_sent", "version_received"}, seen)
	assert.Equal(t, StatePacketExchange, s.Next())
	assert.Equal(t, StateClosed, StateClosed.Next())
	assert.False(t, StateClosed.PacketsAllowed())
	assert.Equal(t, "invalid", State(42).String())
}
