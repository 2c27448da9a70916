// Package streamvbyte implements the Stream VByte integer codec with delta
// coding, the default index codec of sparsepack.
//
// Layout: ceil(n/4) control bytes followed by the data bytes. Each control
// byte holds four 2-bit codes (low bits first) giving the byte length minus
// one of the corresponding little-endian delta. Deltas are taken against the
// previous value, starting from zero, with uint32 wraparound.
package streamvbyte

import (
	"fmt"

	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/internal/buffer"
)

// Name is the stable codec name.
const Name = "streamvbyte-delta"

// Codec is the Stream VByte delta codec. The zero value is ready to use.
type Codec struct{}

var _ codec.IndexCodec = Codec{}

// New returns a Codec.
func New() Codec { return Codec{} }

// Name implements codec.IndexCodec.
func (Codec) Name() string { return Name }

// MaxCompressedBytes is the worst-case encoded size for n integers.
func MaxCompressedBytes(n int) int {
	return controlBytes(n) + 4*n
}

func controlBytes(n int) int { return (n + 3) / 4 }

// EncodeIndexes implements codec.IndexCodec.
func (Codec) EncodeIndexes(in []uint32) ([]byte, error) {
	buf := buffer.New(MaxCompressedBytes(len(in)))

	ctrl, err := buf.Reserve(controlBytes(len(in)))
	if err != nil {
		return nil, err
	}
	var prev uint32
	for i, v := range in {
		ctrl[i>>2] |= byte(byteLen(v-prev)-1) << (2 * (i & 3))
		prev = v
	}

	var tmp [4]byte
	prev = 0
	for _, v := range in {
		d := v - prev
		prev = v
		n := byteLen(d)
		for j := 0; j < n; j++ {
			tmp[j] = byte(d >> (8 * j))
		}
		if _, err := buf.Write(tmp[:n]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeIndexes implements codec.IndexCodec.
func (Codec) DecodeIndexes(data []byte, count int) ([]uint32, error) {
	nc := controlBytes(count)
	if len(data) < nc {
		return nil, fmt.Errorf("%w: %d bytes cannot hold %d control bytes", codec.ErrCorrupt, len(data), nc)
	}

	out := make([]uint32, count)
	pos := nc
	var prev uint32
	for i := 0; i < count; i++ {
		n := int(data[i>>2]>>(2*(i&3))&3) + 1
		if pos+n > len(data) {
			return nil, fmt.Errorf("%w: truncated at element %d", codec.ErrCorrupt, i)
		}
		var d uint32
		for j := 0; j < n; j++ {
			d |= uint32(data[pos+j]) << (8 * j)
		}
		pos += n
		prev += d
		out[i] = prev
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", codec.ErrCorrupt, len(data)-pos)
	}
	return out, nil
}

func byteLen(v uint32) int {
	switch {
	case v < 1<<8:
		return 1
	case v < 1<<16:
		return 2
	case v < 1<<24:
		return 3
	default:
		return 4
	}
}
