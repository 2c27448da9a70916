package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndexCodec struct {
	encoded []byte
	decoded []uint32
	err     error
}

func (f fakeIndexCodec) Name() string { return "fake" }

func (f fakeIndexCodec) EncodeIndexes([]uint32) ([]byte, error) { return f.encoded, f.err }

func (f fakeIndexCodec) DecodeIndexes([]byte, int) ([]uint32, error) { return f.decoded, f.err }

type fakeValueCodec struct {
	encoded []byte
	decoded []float32
	err     error
}

func (f fakeValueCodec) Name() string { return "fake" }

func (f fakeValueCodec) EncodeValues([]float32, int) ([]byte, error) { return f.encoded, f.err }

func (f fakeValueCodec) DecodeValues([]byte, int) ([]float32, error) { return f.decoded, f.err }

func TestEncodeIndexes_EmptyOutput(t *testing.T) {
	_, err := EncodeIndexes(fakeIndexCodec{}, []uint32{1})
	require.ErrorIs(t, err, ErrEmptyOutput)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, StreamIndexes, ce.Stream)
	assert.Equal(t, "encode", ce.Op)
	assert.Equal(t, "fake", ce.Codec)

	out, err := EncodeIndexes(fakeIndexCodec{}, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestEncodeIndexes_CodecError(t *testing.T) {
	boom := errors.New("boom")
	_, err := EncodeIndexes(fakeIndexCodec{err: boom}, []uint32{1})
	assert.ErrorIs(t, err, boom)
}

func TestDecodeIndexes_CountMismatch(t *testing.T) {
	_, err := DecodeIndexes(fakeIndexCodec{decoded: []uint32{1}}, []byte{1}, 2)
	assert.ErrorIs(t, err, ErrShortDecode)

	_, err = DecodeIndexes(fakeIndexCodec{}, nil, 3)
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = DecodeIndexes(fakeIndexCodec{}, nil, -1)
	assert.ErrorIs(t, err, ErrShortDecode)

	got, err := DecodeIndexes(fakeIndexCodec{decoded: []uint32{4, 9}}, []byte{1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{4, 9}, got)
}

func TestEncodeValues(t *testing.T) {
	_, err := EncodeValues(fakeValueCodec{}, []float32{1}, 0)
	require.ErrorIs(t, err, ErrEmptyOutput)

	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, StreamValues, ce.Stream)

	out, err := EncodeValues(fakeValueCodec{encoded: []byte{1, 2}}, []float32{1}, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, out)
}

func TestDecodeValues(t *testing.T) {
	_, err := DecodeValues(fakeValueCodec{decoded: []float32{1, 2, 3}}, []byte{1}, 2)
	assert.ErrorIs(t, err, ErrShortDecode)

	_, err = DecodeValues(fakeValueCodec{err: ErrCorrupt}, []byte{1}, 1)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Contains(t, err.Error(), "decode values")
}
