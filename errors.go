package sparsepack

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sparsepack/archive"
	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/internal/conv"
	"github.com/hupe1980/sparsepack/sparse"
)

var (
	// ErrInvalidArgument is returned for inputs the compressor cannot accept:
	// zero-dimension matrices, invalid matrix archives, index spaces larger
	// than 2^32 elements and archives whose fields contradict each other.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCodec is returned when an index or value codec fails.
	ErrCodec = errors.New("codec failure")

	// ErrResourceExhausted is returned when the configured memory budget
	// cannot cover a call's working set.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// CodecError describes a failed codec call.
//
// It satisfies errors.Is(err, ErrCodec). The original underlying error can be
// accessed via errors.Unwrap.
type CodecError struct {
	Stream codec.Stream
	Codec  string
	Op     string
	cause  error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: %s %s with %s: %v", ErrCodec, e.Op, e.Stream, e.Codec, e.cause)
}

func (e *CodecError) Unwrap() error { return e.cause }

// Is reports whether target is ErrCodec.
func (e *CodecError) Is(target error) bool { return target == ErrCodec }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Already public.
	if errors.Is(err, ErrInvalidArgument) || errors.Is(err, ErrCodec) || errors.Is(err, ErrResourceExhausted) {
		return err
	}

	var ce *codec.Error
	if errors.As(err, &ce) {
		return &CodecError{Stream: ce.Stream, Codec: ce.Codec, Op: ce.Op, cause: err}
	}

	// Decoded indexes that do not fit the archive shape.
	if errors.Is(err, sparse.ErrIndexOutOfRange) ||
		errors.Is(err, sparse.ErrNotAscending) ||
		errors.Is(err, sparse.ErrLengthMismatch) {
		return fmt.Errorf("%w: %w", ErrCodec, err)
	}

	if errors.Is(err, sparse.ErrInvalidDimension) ||
		errors.Is(err, sparse.ErrIndexOverflow) ||
		errors.Is(err, archive.ErrInvariant) ||
		errors.Is(err, conv.ErrOverflow) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
