package fpz

import (
	"math"
	"testing"

	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitsOf(v []float32) []uint32 {
	out := make([]uint32, len(v))
	for i, x := range v {
		out[i] = math.Float32bits(x)
	}
	return out
}

func TestCodec_LosslessIsBitExact(t *testing.T) {
	in := []float32{
		1, -1, 0.1, -2.5e-3,
		math.MaxFloat32, -math.MaxFloat32,
		math.SmallestNonzeroFloat32,
		float32(math.Inf(1)), float32(math.Inf(-1)),
		float32(math.NaN()),
		math.Float32frombits(0x7fc00123), // NaN with payload
		float32(math.Copysign(0, -1)),
		0,
	}

	for _, precision := range []int{Lossless, MaxPrecision} {
		data, err := New().EncodeValues(in, precision)
		require.NoError(t, err)

		got, err := New().DecodeValues(data, len(in))
		require.NoError(t, err)
		assert.Equal(t, bitsOf(in), bitsOf(got), "precision %d", precision)
	}
}

func TestCodec_Empty(t *testing.T) {
	data, err := New().EncodeValues(nil, Lossless)
	require.NoError(t, err)
	assert.NotEmpty(t, data) // header only

	got, err := New().DecodeValues(data, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCodec_BoundedLossyError(t *testing.T) {
	in := testutil.NewRNG(42).UniformRange(4096)

	maxErr := func(precision int) float64 {
		data, err := New().EncodeValues(in, precision)
		require.NoError(t, err)
		got, err := New().DecodeValues(data, len(in))
		require.NoError(t, err)

		var worst float64
		for i := range in {
			worst = math.Max(worst, math.Abs(float64(in[i])-float64(got[i])))
		}
		return worst
	}

	e16 := maxErr(16)
	e20 := maxErr(20)
	e24 := maxErr(24)

	// 16 bits keep 7 mantissa bits: relative error < 2^-7 and |x| < 1.
	assert.LessOrEqual(t, e16, 1.0/128)
	assert.LessOrEqual(t, e20, 1.0/2048)
	assert.LessOrEqual(t, e24, 1.0/32768)
	assert.LessOrEqual(t, e20, e16)
	assert.LessOrEqual(t, e24, e20)
	assert.Zero(t, maxErr(Lossless))
}

func TestCodec_LowerPrecisionIsSmaller(t *testing.T) {
	in := testutil.NewRNG(1).UniformRange(2048)

	full, err := New().EncodeValues(in, Lossless)
	require.NoError(t, err)
	lossy, err := New().EncodeValues(in, 12)
	require.NoError(t, err)

	assert.Less(t, len(lossy), len(full))
	assert.LessOrEqual(t, len(full), MaxCompressedBytes(len(in)))
}

func TestCodec_TruncatesTowardZero(t *testing.T) {
	in := []float32{1.999, -1.999, float32(math.Inf(1)), float32(math.Inf(-1))}
	data, err := New().EncodeValues(in, 9)
	require.NoError(t, err)

	got, err := New().DecodeValues(data, len(in))
	require.NoError(t, err)
	assert.Equal(t, []float32{1, -1}, got[:2])
	assert.True(t, math.IsInf(float64(got[2]), 1))
	assert.True(t, math.IsInf(float64(got[3]), -1))
}

func TestCodec_KeepsNaN(t *testing.T) {
	in := []float32{
		math.Float32frombits(0x7f800001), // signaling, payload in the lowest bit
		math.Float32frombits(0x7fc00000), // quiet
		math.Float32frombits(0xffa00000), // negative signaling
		float32(math.Inf(1)),
	}

	for _, p := range []int{10, 16, 24, 31} {
		data, err := New().EncodeValues(in, p)
		require.NoError(t, err)

		got, err := New().DecodeValues(data, len(in))
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			assert.True(t, math.IsNaN(float64(got[i])), "precision %d value %d: %08x", p, i, math.Float32bits(got[i]))
		}
		assert.True(t, math.IsInf(float64(got[3]), 1), "precision %d", p)
	}

	// Lossless keeps the exact payload.
	data, err := New().EncodeValues(in, Lossless)
	require.NoError(t, err)
	got, err := New().DecodeValues(data, len(in))
	require.NoError(t, err)
	assert.Equal(t, bitsOf(in), bitsOf(got))

	// Without mantissa bits a NaN cannot be told from an infinity.
	data, err = New().EncodeValues(in[:1], 9)
	require.NoError(t, err)
	got, err = New().DecodeValues(data, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got[0]), 1))
}

func TestCodec_InvalidPrecision(t *testing.T) {
	for _, p := range []int{-1, 33, 64} {
		_, err := New().EncodeValues([]float32{1}, p)
		assert.ErrorIs(t, err, codec.ErrPrecision)
	}
}

func TestCodec_DecodeCorrupt(t *testing.T) {
	c := New()
	data, err := c.EncodeValues([]float32{1, 2, 3}, Lossless)
	require.NoError(t, err)

	cases := map[string][]byte{
		"empty":     nil,
		"bad magic": append([]byte("XYZ"), data[3:]...),
		"bad type":  append(append([]byte{}, data[:3]...), append([]byte{9}, data[4:]...)...),
		"truncated": data[:len(data)-1],
		"trailing":  append(append([]byte{}, data...), 0),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := c.DecodeValues(in, 3)
			assert.ErrorIs(t, err, codec.ErrCorrupt)
		})
	}

	_, err = c.DecodeValues(data, 2)
	assert.ErrorIs(t, err, codec.ErrCorrupt)
}

func TestCodec_Adapter(t *testing.T) {
	data, err := codec.EncodeValues(New(), []float32{0.25}, Lossless)
	require.NoError(t, err)

	got, err := codec.DecodeValues(New(), data, 1)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25}, got)

	_, err = codec.EncodeValues(New(), []float32{1}, 40)
	var ce *codec.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, Name, ce.Codec)
}
