// Package packet implements the SSH Binary Packet Protocol (RFC 4253 section 6).
//
//	uint32    packet_length
//	byte      padding_length
//	byte[n1]  payload; n1 = packet_length - padding_length - 1
//	byte[n2]  random padding; n2 = padding_length
//	byte[m]   mac; m = mac_length
//
// No cipher is applied. The MAC slot is served by a MAC implementation; the only one
// provided is NoneMAC, which reserves zero bytes and verifies nothing, so packets read
// through this package are unauthenticated.
package packet
