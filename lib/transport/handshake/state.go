package handshake

// State is the position of a connection in the handshake sequence.
type State int

const (
	StateStart           State = iota // nothing sent or received
	StateVersionSent                  // our identification line was written
	StateVersionReceived              // the peer identification line was accepted
	StatePacketExchange               // binary packets may flow in both directions
	StateClosed                       // the connection was closed or disconnected
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateVersionSent:
		return "version_sent"
	case StateVersionReceived:
		return "version_received"
	case StatePacketExchange:
		return "packet_exchange"
	case StateClosed:
		return "closed"
	default:
		return "invalid"
	}
}

// Next returns the state that follows s in the handshake sequence. StatePacketExchange
// and StateClosed have no successor and return themselves.
func (s State) Next() State {
	switch s {
	case StateStart:
		return StateVersionSent
	case StateVersionSent:
		return StateVersionReceived
	case StateVersionReceived:
		return StatePacketExchange
	default:
		return s
	}
}

// PacketsAllowed reports whether binary packets may be read or written in state s.
func (s State) PacketsAllowed() bool {
	return s == StatePacketExchange
}
