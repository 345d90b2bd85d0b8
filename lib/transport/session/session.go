package session

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/go-i2p/sshwire/lib/config"
	"github.com/go-i2p/sshwire/lib/transport/handshake"
	"github.com/go-i2p/sshwire/lib/transport/messages"
	"github.com/go-i2p/sshwire/lib/transport/packet"
	"github.com/go-i2p/sshwire/lib/transport/padding"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// Session is the client side of one SSH transport connection up to key exchange.
type Session struct {
	conn io.ReadWriter
	cfg  config.Config

	local handshake.Identification
	peer  handshake.Identification

	in      *sshio.Reader
	out     *sshio.Writer
	packets *packet.Reader
	framer  *packet.Writer

	mu    sync.Mutex
	state handshake.State
}

// New wraps an established connection. Nothing is sent until Handshake.
func New(rw io.ReadWriter, cfg config.Config) (*Session, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, oops.Wrapf(err, "session config")
	}
	mac, err := packet.MACByName(cfg.Wire.MAC)
	if err != nil {
		return nil, err
	}
	local := handshake.NewIdentification(cfg.SSH.SoftwareVersion, cfg.SSH.Comments)
	if err := local.Validate(); err != nil {
		return nil, err
	}

	in := sshio.NewReader(rw, sshio.WithChunkSize(cfg.Wire.ReadChunkSize))
	out := sshio.NewWriter(rw)
	s := &Session{
		conn:  rw,
		cfg:   cfg,
		local: local,
		in:    in,
		out:   out,
		packets: packet.NewReader(in,
			packet.WithMaxPacketLength(uint32(cfg.Wire.MaxPacketLength)),
			packet.WithReadMAC(mac),
		),
		framer: packet.NewWriter(out,
			packet.WithPadding(padding.BlockAligned{
				BlockSize:      cfg.Wire.PaddingBlockSize,
				MaxExtraBlocks: cfg.Wire.MaxExtraPaddingBlocks,
			}),
			packet.WithWriteMAC(mac),
		),
		state: handshake.StateStart,
	}
	return s, nil
}

// Dial connects to addr over TCP and wraps the connection. The returned Session owns
// the connection; Close releases it.
func Dial(ctx context.Context, addr string, cfg config.Config) (*Session, error) {
	d := net.Dialer{Timeout: cfg.Network.DialTimeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		log.WithFields(logger.Fields{
			"at":   "session.Dial",
			"addr": addr,
		}).WithError(err).Debug("dial_failed")
		return nil, sshio.ContextError(ctx, sshio.WrapIO(err, "dial "+addr))
	}
	s, err := New(conn, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	log.WithFields(logger.Fields{
		"at":     "session.Dial",
		"addr":   addr,
		"remote": conn.RemoteAddr().String(),
	}).Debug("connected")
	return s, nil
}

// State returns the current handshake state.
func (s *Session) State() handshake.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st handshake.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == handshake.StateClosed {
		return
	}
	log.WithFields(logger.Fields{
		"at":   "(Session) setState",
		"from": s.state.String(),
		"to":   st.String(),
	}).Debug("state_transition")
	s.state = st
}

// LocalIdentification returns the identification this side sends.
func (s *Session) LocalIdentification() handshake.Identification {
	return s.local
}

// PeerIdentification returns the identification received from the peer. It is the zero
// value before the version exchange completes.
func (s *Session) PeerIdentification() handshake.Identification {
	return s.peer
}

// begin applies the context to the connection for one operation. The returned function
// must be called when the operation ends.
func (s *Session) begin(ctx context.Context) (context.Context, func(), error) {
	cancel := func() {}
	if _, has := ctx.Deadline(); !has && s.cfg.Network.IOTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Network.IOTimeout)
	}
	if err := ctx.Err(); err != nil {
		cancel()
		return ctx, nil, sshio.ContextError(ctx, err)
	}
	stop := sshio.WatchContext(ctx, s.conn)
	return ctx, func() {
		stop()
		cancel()
	}, nil
}

// Handshake performs the identification exchange. On success the session is ready for
// packet exchange.
func (s *Session) Handshake(ctx context.Context) error {
	if st := s.State(); st != handshake.StateStart {
		return sshio.Violationf("handshake in state %s", st)
	}
	ctx, end, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer end()

	if err := handshake.SendIdentification(s.out, s.local); err != nil {
		return sshio.ContextError(ctx, err)
	}
	s.setState(handshake.StateVersionSent)

	peer, err := handshake.ReceiveIdentification(s.in, handshake.Limits{
		MaxPreambleLines: s.cfg.SSH.MaxPreambleLines,
		MaxLineLength:    s.cfg.SSH.MaxLineLength,
	})
	if err != nil {
		return sshio.ContextError(ctx, err)
	}
	s.peer = peer
	s.setState(handshake.StateVersionReceived)

	log.WithFields(logger.Fields{
		"at":    "(Session) Handshake",
		"local": s.local.String(),
		"peer":  peer.Raw,
	}).Debug("version_exchange_complete")
	s.setState(handshake.StatePacketExchange)
	return nil
}

func (s *Session) requirePackets() error {
	if st := s.State(); !st.PacketsAllowed() {
		return sshio.Violationf("packet exchange not allowed in state %s", st)
	}
	return nil
}

// ReadPacket returns the payload of the next binary packet. A read that times out before
// the packet is complete leaves the stream where it was, so the call can be retried.
func (s *Session) ReadPacket(ctx context.Context) ([]byte, error) {
	if err := s.requirePackets(); err != nil {
		return nil, err
	}
	ctx, end, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer end()

	payload, err := s.packets.ReadPacket()
	if err != nil {
		return nil, sshio.ContextError(ctx, err)
	}
	return payload, nil
}

// ReadMessage reads the next packet and decodes it.
func (s *Session) ReadMessage(ctx context.Context) (messages.Message, error) {
	payload, err := s.ReadPacket(ctx)
	if err != nil {
		return nil, err
	}
	return messages.Decode(payload, messages.WithStrictBooleans(s.cfg.Wire.StrictBooleans))
}

// WritePacket frames payload into one binary packet.
func (s *Session) WritePacket(ctx context.Context, payload []byte) error {
	if err := s.requirePackets(); err != nil {
		return err
	}
	ctx, end, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer end()

	if err := s.framer.WritePacket(payload); err != nil {
		return sshio.ContextError(ctx, err)
	}
	return nil
}

// WriteMessage encodes msg and sends it in one packet.
func (s *Session) WriteMessage(ctx context.Context, msg messages.Message) error {
	payload, err := messages.Encode(msg)
	if err != nil {
		return err
	}
	if err := s.WritePacket(ctx, payload); err != nil {
		return err
	}
	log.WithFields(logger.Fields{
		"at":       "(Session) WriteMessage",
		"msg_type": messages.MessageTypeName(msg.MessageType()),
	}).Debug("message_sent")
	return nil
}

// Disconnect sends SSH_MSG_DISCONNECT and closes the session. The session is closed even
// when sending fails.
func (s *Session) Disconnect(ctx context.Context, reason uint32, description string) error {
	err := s.WriteMessage(ctx, messages.NewDisconnect(reason, description))
	if cerr := s.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close closes the underlying connection if it is an io.Closer. Calling Close more than
// once is harmless.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == handshake.StateClosed {
		s.mu.Unlock()
		return nil
	}
	s.state = handshake.StateClosed
	s.mu.Unlock()

	if c, ok := s.conn.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return sshio.WrapIO(err, "close")
		}
	}
	return nil
}
