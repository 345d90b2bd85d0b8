package data

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-i2p/sshwire/lib/common/sshio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRecord struct {
	Flag  Bool
	Count Uint32
	Names NameList
	Note  String
}

func (r *sampleRecord) Fields() []Item {
	return []Item{&r.Flag, &r.Count, &r.Names, &r.Note}
}

func TestRecordRoundTrip(t *testing.T) {
	in := &sampleRecord{
		Flag:  true,
		Count: 42,
		Names: NewNameList("one", "two"),
		Note:  String("hello"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecord(&buf, in))
	assert.Equal(t, RecordSize(in), buf.Len())

	out := &sampleRecord{}
	require.NoError(t, ReadRecord(NewSliceSource(buf.Bytes()), out))
	assert.Equal(t, in, out)
}

func TestRecordFieldOrder(t *testing.T) {
	in := &sampleRecord{Flag: true, Count: 0x01020304, Names: NameList{"x"}, Note: String{}}

	var buf bytes.Buffer
	require.NoError(t, WriteRecord(&buf, in))
	assert.Equal(t, []byte{
		1,
		1, 2, 3, 4,
		0, 0, 0, 1, 'x',
		0, 0, 0, 0,
	}, buf.Bytes())
}

func TestReadRecord_StopsAtFirstError(t *testing.T) {
	out := &sampleRecord{}
	err := ReadRecord(NewSliceSource([]byte{1, 0, 0}), out)
	assert.ErrorIs(t, err, sshio.ErrUnexpectedEOF)
	assert.Equal(t, Bool(true), out.Flag)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("sink gone") }

func TestWriteRecord_SinkError(t *testing.T) {
	err := WriteRecord(brokenWriter{}, &sampleRecord{})
	assert.ErrorIs(t, err, sshio.ErrIO)
}
