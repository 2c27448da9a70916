package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is returned by stream codecs when input bytes cannot be
	// decoded into the requested number of elements.
	ErrCorrupt = errors.New("codec: corrupt stream")

	// ErrPrecision is returned by value codecs for an unsupported precision.
	ErrPrecision = errors.New("codec: unsupported precision")

	// ErrEmptyOutput is returned when a codec wrote nothing for nonempty input.
	ErrEmptyOutput = errors.New("codec: no bytes written")

	// ErrShortDecode is returned when a codec produced fewer elements than
	// requested.
	ErrShortDecode = errors.New("codec: decoded count mismatch")
)

// IndexCodec encodes ascending uint32 sequences.
//
// DecodeIndexes needs the exact element count; the byte stream does not
// describe its own length.
type IndexCodec interface {
	Name() string
	EncodeIndexes(indexes []uint32) ([]byte, error)
	DecodeIndexes(data []byte, count int) ([]uint32, error)
}

// ValueCodec encodes float32 sequences at a codec-defined precision.
// Precision 0 must reproduce the input bit-exactly.
type ValueCodec interface {
	Name() string
	EncodeValues(values []float32, precision int) ([]byte, error)
	DecodeValues(data []byte, count int) ([]float32, error)
}

// Stream names the archive stream a codec error belongs to.
type Stream string

const (
	// StreamIndexes is the sparse index stream.
	StreamIndexes Stream = "indexes"
	// StreamValues is the value stream.
	StreamValues Stream = "values"
)

// Error describes a failed codec call.
//
// The underlying codec error (if any) can be accessed via errors.Unwrap.
type Error struct {
	Stream Stream
	Codec  string
	Op     string
	cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec %s: %s %s: %v", e.Codec, e.Op, e.Stream, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(s Stream, name, op string, cause error) *Error {
	return &Error{Stream: s, Codec: name, Op: op, cause: cause}
}

// EncodeIndexes runs c and enforces the index stream contract.
func EncodeIndexes(c IndexCodec, indexes []uint32) ([]byte, error) {
	out, err := c.EncodeIndexes(indexes)
	if err != nil {
		return nil, newError(StreamIndexes, c.Name(), "encode", err)
	}
	if len(out) == 0 && len(indexes) > 0 {
		return nil, newError(StreamIndexes, c.Name(), "encode", ErrEmptyOutput)
	}
	return out, nil
}

// DecodeIndexes runs c and verifies exactly count indexes came back.
func DecodeIndexes(c IndexCodec, data []byte, count int) ([]uint32, error) {
	if count < 0 {
		return nil, newError(StreamIndexes, c.Name(), "decode", fmt.Errorf("%w: negative count %d", ErrShortDecode, count))
	}
	if count > 0 && len(data) == 0 {
		return nil, newError(StreamIndexes, c.Name(), "decode", fmt.Errorf("%w: empty input for %d elements", ErrCorrupt, count))
	}
	out, err := c.DecodeIndexes(data, count)
	if err != nil {
		return nil, newError(StreamIndexes, c.Name(), "decode", err)
	}
	if len(out) != count {
		return nil, newError(StreamIndexes, c.Name(), "decode", fmt.Errorf("%w: got %d, want %d", ErrShortDecode, len(out), count))
	}
	return out, nil
}

// EncodeValues runs c and enforces the value stream contract.
func EncodeValues(c ValueCodec, values []float32, precision int) ([]byte, error) {
	out, err := c.EncodeValues(values, precision)
	if err != nil {
		return nil, newError(StreamValues, c.Name(), "encode", err)
	}
	if len(out) == 0 && len(values) > 0 {
		return nil, newError(StreamValues, c.Name(), "encode", ErrEmptyOutput)
	}
	return out, nil
}

// DecodeValues runs c and verifies exactly count values came back.
func DecodeValues(c ValueCodec, data []byte, count int) ([]float32, error) {
	if count < 0 {
		return nil, newError(StreamValues, c.Name(), "decode", fmt.Errorf("%w: negative count %d", ErrShortDecode, count))
	}
	if count > 0 && len(data) == 0 {
		return nil, newError(StreamValues, c.Name(), "decode", fmt.Errorf("%w: empty input for %d elements", ErrCorrupt, count))
	}
	out, err := c.DecodeValues(data, count)
	if err != nil {
		return nil, newError(StreamValues, c.Name(), "decode", err)
	}
	if len(out) != count {
		return nil, newError(StreamValues, c.Name(), "decode", fmt.Errorf("%w: got %d, want %d", ErrShortDecode, len(out), count))
	}
	return out, nil
}
