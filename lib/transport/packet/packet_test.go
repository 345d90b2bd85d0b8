package packet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/go-i2p/sshwire/lib/transport/padding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFor(b []byte, opts ...ReaderOption) (*Reader, *sshio.Reader) {
	buffered := sshio.NewReader(bytes.NewReader(b))
	return NewReader(buffered, opts...), buffered
}

func TestReadPacket_KnownVector(t *testing.T) {
	// packet_length 13 = padding_length byte + 8 payload bytes + 4 padding bytes.
	stream := []byte("\x00\x00\x00\x0d\x04AAAAAAAA\x00\x00\x00\x00")
	p, buffered := readerFor(stream)

	payload, err := p.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, []byte("AAAAAAAA"), payload)
	assert.Equal(t, 0, buffered.Buffered())
	assert.Equal(t, uint32(1), p.SequenceNumber())
}

func TestReadPacket_LengthExcludingPaddingByte(t *testing.T) {
	// packet_length 12 leaves 12 - 4 - 1 = 7 payload bytes; the last zero stays unread.
	stream := []byte("\x00\x00\x00\x0c\x04AAAAAAAA\x00\x00\x00\x00")
	p, buffered := readerFor(stream)

	payload, err := p.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, []byte("AAAAAAA"), payload)
	assert.Equal(t, 1, buffered.Buffered())
}

func TestReadPacket_ShortPadding(t *testing.T) {
	// padding_length 3, followed by bytes that must stay unread.
	stream := []byte("\x00\x00\x00\x0c\x03AAAAAAAAA\x00\x00\x00")
	p, buffered := readerFor(stream)

	_, err := p.ReadPacket()
	require.Error(t, err)
	assert.ErrorIs(t, err, sshio.ErrProtocolViolation)

	rest, err := buffered.ReadExact(len(stream) - HeaderSize)
	require.NoError(t, err)
	assert.Equal(t, stream[HeaderSize:], rest)
}

func TestReadPacket_LengthNotAbovePadding(t *testing.T) {
	tests := []struct {
		name      string
		packetLen uint32
		padLen    byte
	}{
		{"equal", 4, 4},
		{"smaller", 3, 8},
		{"zero", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream := binary.BigEndian.AppendUint32(nil, tt.packetLen)
			stream = append(stream, tt.padLen)
			stream = append(stream, bytes.Repeat([]byte{0}, 16)...)
			p, buffered := readerFor(stream)

			_, err := p.ReadPacket()
			assert.ErrorIs(t, err, sshio.ErrProtocolViolation)
			assert.Equal(t, sshio.KindProtocolViolation, sshio.KindOf(err))
			assert.Equal(t, 16, buffered.Buffered())
		})
	}
}

func TestReadPacket_MaxLength(t *testing.T) {
	stream := binary.BigEndian.AppendUint32(nil, 1<<20)
	stream = append(stream, 4)
	p, _ := readerFor(stream)

	_, err := p.ReadPacket()
	assert.ErrorIs(t, err, sshio.ErrProtocolViolation)

	// Without a bound the header is accepted and the missing body is reported instead.
	p, _ = readerFor(stream, WithMaxPacketLength(0))
	_, err = p.ReadPacket()
	assert.ErrorIs(t, err, sshio.ErrUnexpectedEOF)
}

func TestReadPacket_Truncated(t *testing.T) {
	tests := map[string][]byte{
		"header":  {0x00, 0x00, 0x00},
		"payload": []byte("\x00\x00\x00\x0c\x04AAA"),
		"padding": []byte("\x00\x00\x00\x0c\x04AAAAAAAA\x00"),
	}
	for name, stream := range tests {
		t.Run(name, func(t *testing.T) {
			p, _ := readerFor(stream)
			_, err := p.ReadPacket()
			assert.ErrorIs(t, err, sshio.ErrUnexpectedEOF)
		})
	}
}

func TestReadPacket_EmptyPayload(t *testing.T) {
	stream := []byte{0, 0, 0, 5, 4, 9, 9, 9, 9}
	p, _ := readerFor(stream)

	payload, err := p.ReadPacket()
	require.NoError(t, err)
	assert.Empty(t, payload)
}

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{20},
		[]byte("AAAAAAAA"),
		bytes.Repeat([]byte{0xA5}, 1000),
		bytes.Repeat([]byte{0x01}, 35000),
	}
	for _, padLen := range []int{4, 5, 17, 255} {
		var wire bytes.Buffer
		w := NewWriter(sshio.NewWriter(&wire), WithPadding(padding.Fixed(padLen)))
		for _, payload := range payloads {
			require.NoError(t, w.WritePacket(payload))
		}

		p, _ := readerFor(wire.Bytes())
		for _, want := range payloads {
			got, err := p.ReadPacket()
			require.NoError(t, err, "padding %d", padLen)
			assert.Equal(t, want, got)
		}
		assert.Equal(t, w.SequenceNumber(), p.SequenceNumber())
	}
}

func TestRoundTrip_DefaultPaddingAligned(t *testing.T) {
	var wire bytes.Buffer
	w := NewWriter(sshio.NewWriter(&wire))
	for n := 0; n < 64; n++ {
		wire.Reset()
		payload := bytes.Repeat([]byte{byte(n)}, n)
		require.NoError(t, w.WritePacket(payload))
		assert.Zero(t, wire.Len()%padding.MinBlockSize, "payload %d", n)

		p, _ := readerFor(wire.Bytes())
		got, err := p.ReadPacket()
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	}
}

func TestWritePacket_InvalidPadding(t *testing.T) {
	var wire bytes.Buffer
	for _, n := range []int{0, 3, 256} {
		w := NewWriter(sshio.NewWriter(&wire), WithPadding(padding.Fixed(n)))
		err := w.WritePacket([]byte("x"))
		assert.ErrorIs(t, err, sshio.ErrProtocolViolation, "padding %d", n)
	}
	assert.Zero(t, wire.Len())
}

func TestWritePacket_Layout(t *testing.T) {
	var wire bytes.Buffer
	w := NewWriter(sshio.NewWriter(&wire), WithPadding(padding.Fixed(4)))
	require.NoError(t, w.WritePacket([]byte("AAAAAAAA")))

	b := wire.Bytes()
	require.Len(t, b, 17)
	assert.Equal(t, []byte{0, 0, 0, 13, 4}, b[:5])
	assert.Equal(t, []byte("AAAAAAAA"), b[5:13])
}

type failingSink struct{}

func (failingSink) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWritePacket_SinkFailure(t *testing.T) {
	w := NewWriter(sshio.NewWriter(failingSink{}))
	err := w.WritePacket([]byte("x"))
	assert.ErrorIs(t, err, sshio.ErrIO)
	assert.Equal(t, uint32(0), w.SequenceNumber())
}

// stallingSource returns each step in turn: data, or an error standing in for a deadline.
type stallingSource struct {
	steps []interface{}
}

func (s *stallingSource) Read(p []byte) (int, error) {
	if len(s.steps) == 0 {
		return 0, io.EOF
	}
	step := s.steps[0]
	s.steps = s.steps[1:]
	if err, ok := step.(error); ok {
		return 0, err
	}
	return copy(p, step.([]byte)), nil
}

func TestReadPacket_ResumesAfterStall(t *testing.T) {
	stall := errors.New("deadline exceeded")
	second := []byte{0, 0, 0, 5, 4, 0, 0, 0, 0}
	src := &stallingSource{steps: []interface{}{
		[]byte("\x00\x00\x00\x0d\x04AAA"),
		stall,
		append([]byte("AAAAA\x00\x00\x00\x00"), second...),
	}}
	buffered := sshio.NewReader(src)
	p := NewReader(buffered)

	_, err := p.ReadPacket()
	require.Error(t, err)
	assert.ErrorIs(t, err, stall)
	assert.Equal(t, 8, buffered.Buffered(), "a partial packet stays buffered")
	assert.Equal(t, uint32(0), p.SequenceNumber())

	payload, err := p.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, []byte("AAAAAAAA"), payload)

	payload, err = p.ReadPacket()
	require.NoError(t, err)
	assert.Empty(t, payload)
	assert.Equal(t, uint32(2), p.SequenceNumber())
	assert.Equal(t, 0, buffered.Buffered())
}

func TestReadPacket_TruncatedKeepsBytes(t *testing.T) {
	stream := []byte("\x00\x00\x00\x0c\x04AAA")
	p, buffered := readerFor(stream)

	_, err := p.ReadPacket()
	assert.ErrorIs(t, err, sshio.ErrUnexpectedEOF)
	assert.Equal(t, len(stream), buffered.Buffered())
}
