package messages

import (
	"github.com/go-i2p/crypto/rand"
	"github.com/go-i2p/sshwire/lib/common/data"
	"github.com/samber/oops"
)

/**
SSH_MSG_KEXINIT
---------------

Sent by both sides right after the identification exchange to announce the
algorithms each is willing to use, most preferred first.
https://www.rfc-editor.org/rfc/rfc4253#section-7.1

+----+----+----+----+----+----+----+----+
| 20 |            cookie                |
+----+        (16 random bytes)         +
|                                       |
+    +----+----+----+----+----+----+----+
|    | kex_algorithms             name-list
+----+----+----+----+----+----+----+----+
| server_host_key_algorithms      name-list
| encryption_algorithms_client_to_server
| encryption_algorithms_server_to_client
| mac_algorithms_client_to_server
| mac_algorithms_server_to_client
| compression_algorithms_client_to_server
| compression_algorithms_server_to_client
| languages_client_to_server
| languages_server_to_client
+----+----+----+----+----+----+----+----+
|bool| reserved (uint32, 0)  |
+----+----+----+----+----+----+

bool :: first_kex_packet_follows

The field order is part of the wire format.
*/

// KexInit is SSH_MSG_KEXINIT.
type KexInit struct {
	Cookie                              data.Cookie
	KexAlgorithms                       data.NameList
	ServerHostKeyAlgorithms             data.NameList
	EncryptionAlgorithmsClientToServer  data.NameList
	EncryptionAlgorithmsServerToClient  data.NameList
	MACAlgorithmsClientToServer         data.NameList
	MACAlgorithmsServerToClient         data.NameList
	CompressionAlgorithmsClientToServer data.NameList
	CompressionAlgorithmsServerToClient data.NameList
	LanguagesClientToServer             data.NameList
	LanguagesServerToClient             data.NameList
	FirstKexPacketFollows               data.Bool
	Reserved                            data.Uint32
}

// MessageType implements Message.
func (k *KexInit) MessageType() uint8 { return MsgKexInit }

// Fields implements data.Record in wire order.
func (k *KexInit) Fields() []data.Item {
	return []data.Item{
		&k.Cookie,
		&k.KexAlgorithms,
		&k.ServerHostKeyAlgorithms,
		&k.EncryptionAlgorithmsClientToServer,
		&k.EncryptionAlgorithmsServerToClient,
		&k.MACAlgorithmsClientToServer,
		&k.MACAlgorithmsServerToClient,
		&k.CompressionAlgorithmsClientToServer,
		&k.CompressionAlgorithmsServerToClient,
		&k.LanguagesClientToServer,
		&k.LanguagesServerToClient,
		&k.FirstKexPacketFollows,
		&k.Reserved,
	}
}

// Preferences lists the algorithms announced in a KexInit. Ciphers, MACs and compression
// apply to both directions.
type Preferences struct {
	KexAlgorithms           []string
	ServerHostKeyAlgorithms []string
	Ciphers                 []string
	MACs                    []string
	Compression             []string
	Languages               []string
}

// DefaultPreferences returns a conventional modern algorithm set.
func DefaultPreferences() Preferences {
	return Preferences{
		KexAlgorithms:           []string{"curve25519-sha256", "curve25519-sha256@libssh.org", "ecdh-sha2-nistp256", "diffie-hellman-group14-sha256"},
		ServerHostKeyAlgorithms: []string{"ssh-ed25519", "ecdsa-sha2-nistp256", "rsa-sha2-512", "rsa-sha2-256"},
		Ciphers:                 []string{"chacha20-poly1305@openssh.com", "aes128-gcm@openssh.com", "aes256-gcm@openssh.com", "aes128-ctr"},
		MACs:                    []string{"hmac-sha2-256-etm@openssh.com", "hmac-sha2-256"},
		Compression:             []string{"none"},
		Languages:               []string{""},
	}
}

// NewKexInit builds a KexInit announcing prefs with a fresh random cookie.
func NewKexInit(prefs Preferences) (*KexInit, error) {
	k := &KexInit{
		KexAlgorithms:                       data.NewNameList(prefs.KexAlgorithms...),
		ServerHostKeyAlgorithms:             data.NewNameList(prefs.ServerHostKeyAlgorithms...),
		EncryptionAlgorithmsClientToServer:  data.NewNameList(prefs.Ciphers...),
		EncryptionAlgorithmsServerToClient:  data.NewNameList(prefs.Ciphers...),
		MACAlgorithmsClientToServer:         data.NewNameList(prefs.MACs...),
		MACAlgorithmsServerToClient:         data.NewNameList(prefs.MACs...),
		CompressionAlgorithmsClientToServer: data.NewNameList(prefs.Compression...),
		CompressionAlgorithmsServerToClient: data.NewNameList(prefs.Compression...),
		LanguagesClientToServer:             data.NewNameList(prefs.Languages...),
		LanguagesServerToClient:             data.NewNameList(prefs.Languages...),
	}
	if _, err := rand.Read(k.Cookie[:]); err != nil {
		return nil, oops.Wrapf(err, "failed to generate kexinit cookie")
	}
	return k, nil
}
