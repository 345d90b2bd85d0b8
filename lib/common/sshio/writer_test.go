package sshio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriter_WriteAll(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteAll([]byte("SSH-2.0-test\r\n")))
	n, err := w.Write([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "SSH-2.0-test\r\nmore", buf.String())
	assert.Equal(t, uint64(18), w.Written())
}

func TestWriter_ShortWrite(t *testing.T) {
	w := NewWriter(shortWriter{})

	err := w.WriteAll([]byte("abcdef"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestWriter_SinkError(t *testing.T) {
	boom := errors.New("broken pipe")
	w := NewWriter(failingWriter{boom})

	_, err := w.Write([]byte("x"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, KindIO, KindOf(err))
}
