// Package codec defines the byte-level codecs used by sparsepack.
//
// Two families live here:
//
//   - IndexCodec and ValueCodec encode the sparse index stream and the value
//     stream of an archive. Concrete implementations live in subpackages
//     (streamvbyte, roaring, fpz, entropy). EncodeIndexes, DecodeIndexes,
//     EncodeValues and DecodeValues wrap any implementation and enforce the
//     shared failure policy.
//   - Codec serializes whole archive records (JSON, go-json).
//
// Changing a stream codec is a breaking change: archives do not record which
// codec produced their bytes, so the decompressing side must be configured
// with the same codecs.
package codec

import "fmt"

// Codec marshals archive records.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in record codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
