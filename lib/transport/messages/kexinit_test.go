package messages

import (
	"bytes"
	"testing"

	"github.com/go-i2p/sshwire/lib/common/data"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// wireKexInit mirrors SSH_MSG_KEXINIT for golang.org/x/crypto/ssh's reflection codec.
type wireKexInit struct {
	Cookie                  [16]byte `sshtype:"20"`
	KexAlgos                []string
	ServerHostKeyAlgos      []string
	CiphersClientServer     []string
	CiphersServerClient     []string
	MACsClientServer        []string
	MACsServerClient        []string
	CompressionClientServer []string
	CompressionServerClient []string
	LanguagesClientServer   []string
	LanguagesServerClient   []string
	FirstKexFollows         bool
	Reserved                uint32
}

func testPreferences() Preferences {
	prefs := DefaultPreferences()
	prefs.Languages = []string{"en-US", "de"}
	return prefs
}

func TestKexInit_RoundTrip(t *testing.T) {
	k, err := NewKexInit(testPreferences())
	require.NoError(t, err)
	k.FirstKexPacketFollows = true

	payload, err := Encode(k)
	require.NoError(t, err)
	assert.Equal(t, MsgKexInit, payload[0])
	assert.Equal(t, k.Cookie[:], payload[1:17])

	decoded, err := Decode(payload)
	require.NoError(t, err)
	if diff := cmp.Diff(Message(k), decoded); diff != "" {
		t.Errorf("kexinit mismatch (-want +got):\n%s", diff)
	}
}

func TestKexInit_MatchesReferenceEncoding(t *testing.T) {
	k, err := NewKexInit(testPreferences())
	require.NoError(t, err)

	ref := wireKexInit{
		Cookie:                  k.Cookie,
		KexAlgos:                k.KexAlgorithms,
		ServerHostKeyAlgos:      k.ServerHostKeyAlgorithms,
		CiphersClientServer:     k.EncryptionAlgorithmsClientToServer,
		CiphersServerClient:     k.EncryptionAlgorithmsServerToClient,
		MACsClientServer:        k.MACAlgorithmsClientToServer,
		MACsServerClient:        k.MACAlgorithmsServerToClient,
		CompressionClientServer: k.CompressionAlgorithmsClientToServer,
		CompressionServerClient: k.CompressionAlgorithmsServerToClient,
		LanguagesClientServer:   k.LanguagesClientToServer,
		LanguagesServerClient:   k.LanguagesServerToClient,
	}

	ours, err := Encode(k)
	require.NoError(t, err)
	assert.Equal(t, ssh.Marshal(&ref), ours)

	var parsed wireKexInit
	require.NoError(t, ssh.Unmarshal(ours, &parsed))
	assert.Equal(t, []string(k.KexAlgorithms), parsed.KexAlgos)
	assert.Equal(t, []string{"en-US", "de"}, parsed.LanguagesServerClient)
}

func TestKexInit_DecodeReferencePayload(t *testing.T) {
	ref := wireKexInit{
		KexAlgos:                []string{"curve25519-sha256"},
		ServerHostKeyAlgos:      []string{"ssh-ed25519"},
		CiphersClientServer:     []string{"aes128-ctr"},
		CiphersServerClient:     []string{"aes256-ctr", "aes128-ctr"},
		MACsClientServer:        []string{"hmac-sha2-256"},
		MACsServerClient:        []string{"hmac-sha2-256"},
		CompressionClientServer: []string{"none"},
		CompressionServerClient: []string{"none", "zlib@openssh.com"},
		FirstKexFollows:         true,
	}
	for i := range ref.Cookie {
		ref.Cookie[i] = byte(0xF0 + i)
	}

	msg, err := Decode(ssh.Marshal(&ref))
	require.NoError(t, err)
	k, ok := msg.(*KexInit)
	require.True(t, ok)

	assert.Equal(t, data.Cookie(ref.Cookie), k.Cookie)
	assert.Equal(t, data.NameList{"aes256-ctr", "aes128-ctr"}, k.EncryptionAlgorithmsServerToClient)
	assert.Equal(t, data.NameList{"none", "zlib@openssh.com"}, k.CompressionAlgorithmsServerToClient)
	// An empty name-list on the wire decodes as one empty name.
	assert.Equal(t, data.NameList{""}, k.LanguagesClientToServer)
	assert.Equal(t, data.Bool(true), k.FirstKexPacketFollows)
	assert.Equal(t, data.Uint32(0), k.Reserved)
}

func TestKexInit_FieldOrder(t *testing.T) {
	k := &KexInit{}
	for i, l := range []*data.NameList{
		&k.KexAlgorithms, &k.ServerHostKeyAlgorithms,
		&k.EncryptionAlgorithmsClientToServer, &k.EncryptionAlgorithmsServerToClient,
		&k.MACAlgorithmsClientToServer, &k.MACAlgorithmsServerToClient,
		&k.CompressionAlgorithmsClientToServer, &k.CompressionAlgorithmsServerToClient,
		&k.LanguagesClientToServer, &k.LanguagesServerToClient,
	} {
		*l = data.NameList{string(rune('a' + i))}
	}
	k.Reserved = 0x01020304

	payload, err := Encode(k)
	require.NoError(t, err)

	want := []byte{MsgKexInit}
	want = append(want, make([]byte, 16)...)
	for i := 0; i < 10; i++ {
		want = append(want, 0, 0, 0, 1, byte('a'+i))
	}
	want = append(want, 0, 1, 2, 3, 4)
	assert.Equal(t, want, payload)
}

func TestKexInit_StrictBoolean(t *testing.T) {
	k, err := NewKexInit(testPreferences())
	require.NoError(t, err)
	payload, err := Encode(k)
	require.NoError(t, err)

	// first_kex_packet_follows sits just before the trailing reserved uint32.
	payload[len(payload)-5] = 2

	msg, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, data.Bool(true), msg.(*KexInit).FirstKexPacketFollows)

	_, err = Decode(payload, WithStrictBooleans(true))
	assert.ErrorIs(t, err, sshio.ErrProtocolViolation)
}

func TestKexInit_Truncated(t *testing.T) {
	k, err := NewKexInit(testPreferences())
	require.NoError(t, err)
	payload, err := Encode(k)
	require.NoError(t, err)

	for _, cut := range []int{1, 10, 17, 30, len(payload) - 1} {
		_, err := Decode(payload[:cut])
		assert.ErrorIs(t, err, sshio.ErrUnexpectedEOF, "cut at %d", cut)
	}
}

func TestNewKexInit_RandomCookie(t *testing.T) {
	a, err := NewKexInit(DefaultPreferences())
	require.NoError(t, err)
	b, err := NewKexInit(DefaultPreferences())
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Cookie[:], b.Cookie[:]))
	assert.Equal(t, data.NameList{""}, a.LanguagesClientToServer)
	assert.Equal(t, data.NameList{"none"}, a.CompressionAlgorithmsServerToClient)
}
