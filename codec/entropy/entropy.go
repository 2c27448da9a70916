// Package entropy adds a general-purpose compression stage on top of any
// index or value codec.
//
// The wrapped codec's output is framed as
//
//	[UncompressedSize uint32][CompressedSize uint32][Data...]
//
// with CompressedSize == 0 marking a block stored raw because compression
// did not pay off.
package entropy

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/hupe1980/sparsepack/codec"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind selects the compression algorithm.
type Kind uint8

const (
	// None passes blocks through with only the frame header.
	None Kind = 0
	// LZ4 is fast block compression.
	LZ4 Kind = 1
	// ZSTD trades speed for ratio.
	ZSTD Kind = 2
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

const headerSize = 8

// maxRatio is the compressed/raw size above which a block is stored raw.
const maxRatio = 0.9

// An LZ4 block never expands beyond 255 bytes of output per input byte, plus
// the trailing literals.
const (
	lz4MaxExpansion = 255
	lz4Slack        = 64
)

// zstdPrealloc caps the output buffer reserved up front from the size header
// at this multiple of the compressed body. Larger frames grow as they decode.
const zstdPrealloc = 64

var errUnknownKind = errors.New("entropy: unknown compression kind")

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(math.MaxUint32))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Compress frames data, compressing it with kind when that shrinks it below
// maxRatio of its size.
func Compress(kind Kind, data []byte) ([]byte, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("entropy: block of %d bytes too large", len(data))
	}

	var compressed []byte
	var err error

	switch kind {
	case None:
	case LZ4:
		compressed, err = compressLZ4(data)
	case ZSTD:
		compressed, err = compressZSTD(data)
	default:
		return nil, fmt.Errorf("%w: %d", errUnknownKind, kind)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*maxRatio {
		result := make([]byte, headerSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data))) //nolint:gosec // checked above
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[headerSize:], data)
		return result, nil
	}

	result := make([]byte, headerSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))       //nolint:gosec // checked above
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed))) //nolint:gosec // smaller than data
	copy(result[headerSize:], compressed)
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress reverses Compress.
func Decompress(kind Kind, data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: block too small for header", codec.ErrCorrupt)
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])
	body := data[headerSize:]

	if compressedSize == 0 {
		if uint64(len(body)) != uint64(uncompressedSize) {
			return nil, fmt.Errorf("%w: raw block size mismatch", codec.ErrCorrupt)
		}
		return body, nil
	}
	if uint64(len(body)) != uint64(compressedSize) {
		return nil, fmt.Errorf("%w: compressed block size mismatch", codec.ErrCorrupt)
	}

	switch kind {
	case LZ4:
		if uint64(uncompressedSize) > uint64(len(body))*lz4MaxExpansion+lz4Slack {
			return nil, fmt.Errorf("%w: size header %d exceeds lz4 expansion of %d bytes", codec.ErrCorrupt, uncompressedSize, len(body))
		}
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", codec.ErrCorrupt, err)
		}
		if uint32(n) != uncompressedSize { //nolint:gosec // n <= len(result)
			return nil, fmt.Errorf("%w: decompressed size mismatch", codec.ErrCorrupt)
		}
		return result, nil

	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		prealloc := min(uint64(uncompressedSize), uint64(len(body))*zstdPrealloc)
		decoded, err := dec.DecodeAll(body, make([]byte, 0, prealloc))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", codec.ErrCorrupt, err)
		}
		if uint64(len(decoded)) != uint64(uncompressedSize) {
			return nil, fmt.Errorf("%w: decompressed size mismatch", codec.ErrCorrupt)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %s block marked compressed", codec.ErrCorrupt, kind)
	}
}
