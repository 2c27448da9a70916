// Package fpz implements a precision-bounded float32 codec, the default value
// codec of sparsepack.
//
// Precision is the number of leading bits kept of each float's IEEE-754 bit
// pattern (sign, exponent, then mantissa). 0 and 32 keep every bit and are
// lossless; 9 keeps sign and exponent only. Truncation is toward zero, so
// infinities survive every precision of 9 or more.
//
// A NaN whose payload lies only in the dropped bits is encoded with the quiet
// bit set, so it decodes as a quiet NaN at precision 10 and above. Precision
// 1 to 9 keeps no mantissa bit and NaNs decode as infinities.
//
// Stream layout:
//
//	"FPZ" | type (1 = float32) | precision | uvarint count | residuals...
//
// Each truncated pattern is mapped to an order-preserving key and predicted by
// its predecessor; the wrapped difference is zigzag-encoded as a uvarint.
package fpz

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/internal/buffer"
)

const (
	// Name is the stable codec name.
	Name = "fpz"

	// Lossless is the precision sentinel that reproduces input bit-exactly.
	Lossless = 0

	// MaxPrecision is the largest meaningful precision for float32.
	MaxPrecision = 32

	// HeaderSlack is the fixed allowance for the stream header.
	HeaderSlack = 1024

	typeFloat32 byte = 1
)

var magic = [3]byte{'F', 'P', 'Z'}

// Codec is the fpz value codec. The zero value is ready to use.
type Codec struct{}

var _ codec.ValueCodec = Codec{}

// New returns a Codec.
func New() Codec { return Codec{} }

// Name implements codec.ValueCodec.
func (Codec) Name() string { return Name }

// MaxCompressedBytes is the worst-case encoded size for n values.
func MaxCompressedBytes(n int) int {
	return n*binary.MaxVarintLen32 + HeaderSlack
}

// EncodeValues implements codec.ValueCodec.
func (Codec) EncodeValues(values []float32, precision int) ([]byte, error) {
	bits, err := effectiveBits(precision)
	if err != nil {
		return nil, err
	}
	buf := buffer.New(MaxCompressedBytes(len(values)))
	if _, err := buf.Write(magic[:]); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(typeFloat32); err != nil {
		return nil, err
	}
	if err := buf.WriteByte(byte(precision)); err != nil {
		return nil, err
	}
	if err := buf.WriteUvarint(uint64(len(values))); err != nil {
		return nil, err
	}

	q := newQuantizer(bits)
	var prev uint64
	for _, v := range values {
		key := q.key(q.keepNaN(math.Float32bits(v)))
		if err := buf.WriteUvarint(q.zigzag(key, prev)); err != nil {
			return nil, err
		}
		prev = key
	}
	return buf.Bytes(), nil
}

// DecodeValues implements codec.ValueCodec.
func (Codec) DecodeValues(data []byte, count int) ([]float32, error) {
	if len(data) < len(magic)+2 || [3]byte(data[:3]) != magic {
		return nil, fmt.Errorf("%w: missing fpz header", codec.ErrCorrupt)
	}
	if data[3] != typeFloat32 {
		return nil, fmt.Errorf("%w: unsupported element type %d", codec.ErrCorrupt, data[3])
	}
	bits, err := effectiveBits(int(data[4]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrCorrupt, err)
	}
	pos := len(magic) + 2

	n, k := binary.Uvarint(data[pos:])
	if k <= 0 {
		return nil, fmt.Errorf("%w: bad element count", codec.ErrCorrupt)
	}
	pos += k
	if n != uint64(count) { //nolint:gosec // count validated non-negative by caller
		return nil, fmt.Errorf("%w: stream holds %d values, want %d", codec.ErrCorrupt, n, count)
	}

	q := newQuantizer(bits)
	out := make([]float32, count)
	var prev uint64
	for i := range out {
		zz, k := binary.Uvarint(data[pos:])
		if k <= 0 {
			return nil, fmt.Errorf("%w: truncated at value %d", codec.ErrCorrupt, i)
		}
		if zz > q.mask {
			return nil, fmt.Errorf("%w: residual out of range at value %d", codec.ErrCorrupt, i)
		}
		pos += k
		key := q.unzigzag(zz, prev)
		out[i] = math.Float32frombits(q.pattern(key))
		prev = key
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", codec.ErrCorrupt, len(data)-pos)
	}
	return out, nil
}

func effectiveBits(precision int) (uint, error) {
	if precision < 0 || precision > MaxPrecision {
		return 0, fmt.Errorf("%w: %d (want 0..%d)", codec.ErrPrecision, precision, MaxPrecision)
	}
	if precision == Lossless {
		return MaxPrecision, nil
	}
	return uint(precision), nil
}

// quantizer maps float32 bit patterns to p-bit order-preserving keys.
type quantizer struct {
	bits  uint
	shift uint
	mask  uint64
	sign  uint64
}

func newQuantizer(bits uint) quantizer {
	return quantizer{
		bits:  bits,
		shift: MaxPrecision - bits,
		mask:  1<<bits - 1,
		sign:  1 << (bits - 1),
	}
}

const (
	expMask  = 0x7f800000
	mantMask = 0x007fffff
	quietNaN = 0x00400000
)

// keepNaN sets the quiet bit of a NaN so truncation cannot turn it into an
// infinity. Lossless encoding and precisions that drop the quiet bit leave u
// unchanged.
func (q quantizer) keepNaN(u uint32) uint32 {
	if q.bits < MaxPrecision && q.bits >= 10 && u&expMask == expMask && u&mantMask != 0 {
		return u | quietNaN
	}
	return u
}

// key truncates u to its leading bits and flips it into an order-preserving
// unsigned key (negatives below positives).
func (q quantizer) key(u uint32) uint64 {
	t := uint64(u >> q.shift)
	if t&q.sign != 0 {
		return ^t & q.mask
	}
	return t | q.sign
}

// pattern inverts key and restores the dropped low bits as zero.
func (q quantizer) pattern(key uint64) uint32 {
	var t uint64
	if key&q.sign != 0 {
		t = key &^ q.sign
	} else {
		t = ^key & q.mask
	}
	return uint32(t) << q.shift //nolint:gosec // t < 2^bits <= 2^32
}

func (q quantizer) zigzag(key, prev uint64) uint64 {
	s := int64((key - prev) & q.mask) //nolint:gosec // masked to <= 32 bits
	if uint64(s) >= q.sign {
		s -= int64(q.mask) + 1 //nolint:gosec // mask <= 2^32-1
	}
	return uint64((s << 1) ^ (s >> 63)) //nolint:gosec // zigzag
}

func (q quantizer) unzigzag(zz, prev uint64) uint64 {
	s := int64(zz>>1) ^ -int64(zz&1) //nolint:gosec // zigzag
	return (prev + uint64(s)) & q.mask
}
