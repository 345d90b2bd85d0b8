// Package handshake implements the part of the SSH transport handshake that precedes
// packet exchange: the identification line format, the bounded version exchange and the
// connection state sequence.
//
// https://www.rfc-editor.org/rfc/rfc4253#section-4.2
package handshake
