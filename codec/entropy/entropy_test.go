package entropy

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"
	"testing"

	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/codec/fpz"
	"github.com/hupe1980/sparsepack/codec/streamvbyte"
	"github.com/hupe1980/sparsepack/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_RoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("sparse"), 500)
	random := make([]byte, 256)
	for i := range random {
		random[i] = byte(testutil.NewRNG(int64(i)).Intn(256))
	}

	for _, kind := range []Kind{None, LZ4, ZSTD} {
		for name, data := range map[string][]byte{"empty": {}, "compressible": compressible, "random": random} {
			t.Run(kind.String()+"/"+name, func(t *testing.T) {
				framed, err := Compress(kind, data)
				require.NoError(t, err)

				got, err := Decompress(kind, framed)
				require.NoError(t, err)
				assert.Equal(t, len(data), len(got))
				assert.True(t, bytes.Equal(data, got))
			})
		}
	}
}

func TestCompress_ShrinksRepetitiveInput(t *testing.T) {
	data := bytes.Repeat([]byte{1, 2, 3, 4}, 1024)
	for _, kind := range []Kind{LZ4, ZSTD} {
		framed, err := Compress(kind, data)
		require.NoError(t, err)
		assert.Less(t, len(framed), len(data)/4, kind.String())
	}

	framed, err := Compress(None, data)
	require.NoError(t, err)
	assert.Equal(t, len(data)+headerSize, len(framed))
}

func TestCompress_UnknownKind(t *testing.T) {
	_, err := Compress(Kind(9), []byte{1})
	assert.Error(t, err)
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestDecompress_Corrupt(t *testing.T) {
	_, err := Decompress(ZSTD, []byte{1, 2})
	assert.ErrorIs(t, err, codec.ErrCorrupt)

	framed, err := Compress(ZSTD, bytes.Repeat([]byte{7}, 4096))
	require.NoError(t, err)
	_, err = Decompress(ZSTD, framed[:len(framed)-1])
	assert.ErrorIs(t, err, codec.ErrCorrupt)

	// A compressed frame cannot be read as None.
	_, err = Decompress(None, framed)
	assert.ErrorIs(t, err, codec.ErrCorrupt)
}

func TestDecompress_ForgedSizeHeader(t *testing.T) {
	forged := make([]byte, headerSize+1)
	binary.LittleEndian.PutUint32(forged[0:], math.MaxUint32)
	binary.LittleEndian.PutUint32(forged[4:], 1)

	// Warm the decoder pool so only the decode itself is measured.
	warm, err := Compress(ZSTD, bytes.Repeat([]byte{1}, 1024))
	require.NoError(t, err)
	_, err = Decompress(ZSTD, warm)
	require.NoError(t, err)

	for _, kind := range []Kind{LZ4, ZSTD} {
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)

		_, err := Decompress(kind, forged)

		runtime.ReadMemStats(&after)
		assert.ErrorIs(t, err, codec.ErrCorrupt, kind.String())
		assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(64<<20), kind.String())
	}
}

func TestDecompress_HighlyCompressible(t *testing.T) {
	zeros := make([]byte, 1<<20)
	for _, kind := range []Kind{LZ4, ZSTD} {
		framed, err := Compress(kind, zeros)
		require.NoError(t, err)
		require.Less(t, len(framed), len(zeros)/100, kind.String())

		got, err := Decompress(kind, framed)
		require.NoError(t, err)
		assert.Equal(t, zeros, got, kind.String())
	}
}

func TestWrapIndex(t *testing.T) {
	in := make([]uint32, 4096)
	for i := range in {
		in[i] = uint32(i * 2)
	}

	for _, kind := range []Kind{None, LZ4, ZSTD} {
		c := WrapIndex(streamvbyte.New(), kind)
		assert.Equal(t, "streamvbyte-delta+"+kind.String(), c.Name())

		data, err := codec.EncodeIndexes(c, in)
		require.NoError(t, err)

		got, err := codec.DecodeIndexes(c, data, len(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}
}

func TestWrapValue(t *testing.T) {
	in := testutil.NewRNG(3).UniformRange(1024)

	for _, kind := range []Kind{None, LZ4, ZSTD} {
		c := WrapValue(fpz.New(), kind)

		data, err := codec.EncodeValues(c, in, fpz.Lossless)
		require.NoError(t, err)

		got, err := codec.DecodeValues(c, data, len(in))
		require.NoError(t, err)
		assert.Equal(t, in, got)
	}

	_, err := WrapValue(fpz.New(), ZSTD).EncodeValues(in, 99)
	assert.ErrorIs(t, err, codec.ErrPrecision)
}
