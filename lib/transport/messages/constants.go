// Package messages defines the typed SSH transport-layer messages and the table that maps
// a payload's leading message number to the record decoder for it.
package messages

import "fmt"

// Message numbers as assigned in RFC 4250 section 4.1.2.
const (
	// Transport layer generic
	MsgDisconnect     uint8 = 1
	MsgIgnore         uint8 = 2
	MsgUnimplemented  uint8 = 3
	MsgDebug          uint8 = 4
	MsgServiceRequest uint8 = 5
	MsgServiceAccept  uint8 = 6

	// Algorithm negotiation
	MsgKexInit uint8 = 20
	MsgNewKeys uint8 = 21
)

// Disconnect reason codes from RFC 4253 section 11.1.
const (
	DisconnectHostNotAllowedToConnect     uint32 = 1
	DisconnectProtocolError               uint32 = 2
	DisconnectKeyExchangeFailed           uint32 = 3
	DisconnectReserved                    uint32 = 4
	DisconnectMACError                    uint32 = 5
	DisconnectCompressionError            uint32 = 6
	DisconnectServiceNotAvailable         uint32 = 7
	DisconnectProtocolVersionNotSupported uint32 = 8
	DisconnectHostKeyNotVerifiable        uint32 = 9
	DisconnectConnectionLost              uint32 = 10
	DisconnectByApplication               uint32 = 11
	DisconnectTooManyConnections          uint32 = 12
	DisconnectAuthCancelledByUser         uint32 = 13
	DisconnectNoMoreAuthMethodsAvailable  uint32 = 14
	DisconnectIllegalUserName             uint32 = 15
)

// MessageTypeName returns the RFC name of a message number.
func MessageTypeName(t uint8) string {
	switch t {
	case MsgDisconnect:
		return "SSH_MSG_DISCONNECT"
	case MsgIgnore:
		return "SSH_MSG_IGNORE"
	case MsgUnimplemented:
		return "SSH_MSG_UNIMPLEMENTED"
	case MsgDebug:
		return "SSH_MSG_DEBUG"
	case MsgServiceRequest:
		return "SSH_MSG_SERVICE_REQUEST"
	case MsgServiceAccept:
		return "SSH_MSG_SERVICE_ACCEPT"
	case MsgKexInit:
		return "SSH_MSG_KEXINIT"
	case MsgNewKeys:
		return "SSH_MSG_NEWKEYS"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

var disconnectReasons = map[uint32]string{
	DisconnectHostNotAllowedToConnect:     "host not allowed to connect",
	DisconnectProtocolError:               "protocol error",
	DisconnectKeyExchangeFailed:           "key exchange failed",
	DisconnectReserved:                    "reserved",
	DisconnectMACError:                    "mac error",
	DisconnectCompressionError:            "compression error",
	DisconnectServiceNotAvailable:         "service not available",
	DisconnectProtocolVersionNotSupported: "protocol version not supported",
	DisconnectHostKeyNotVerifiable:        "host key not verifiable",
	DisconnectConnectionLost:              "connection lost",
	DisconnectByApplication:               "by application",
	DisconnectTooManyConnections:          "too many connections",
	DisconnectAuthCancelledByUser:         "auth cancelled by user",
	DisconnectNoMoreAuthMethodsAvailable:  "no more auth methods available",
	DisconnectIllegalUserName:             "illegal user name",
}

// DisconnectReasonString describes a disconnect reason code.
func DisconnectReasonString(code uint32) string {
	if s, ok := disconnectReasons[code]; ok {
		return s
	}
	return fmt.Sprintf("unknown reason %d", code)
}
