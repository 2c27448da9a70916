package archive

import (
	"errors"
	"fmt"

	"github.com/hupe1980/sparsepack/internal/conv"
)

var (
	// ErrInvariant is returned when a valid archive's fields contradict each
	// other.
	ErrInvariant = errors.New("archive: invariant violated")

	// ErrMalformed is returned when binary input is not a well-formed archive.
	ErrMalformed = errors.New("archive: malformed binary record")
)

// Vector is a compressed dense vector.
type Vector struct {
	Valid        bool   `json:"is_valid"`
	NonzeroCount uint64 `json:"nonzero_count"`
	Length       uint64 `json:"original_length"`
	Indexes      []byte `json:"compressed_indexes"`
	Values       []byte `json:"compressed_values"`
}

// InvalidVector returns the sentinel archive for empty or all-zero vectors.
func InvalidVector() Vector { return Vector{} }

// NewVector assembles a valid vector archive.
func NewVector(nonzeroCount, length uint64, indexes, values []byte) (Vector, error) {
	a := Vector{
		Valid:        true,
		NonzeroCount: nonzeroCount,
		Length:       length,
		Indexes:      indexes,
		Values:       values,
	}
	if err := a.Validate(); err != nil {
		return Vector{}, err
	}
	return a, nil
}

// Validate checks the record invariants. Invalid archives always pass.
func (a Vector) Validate() error {
	if !a.Valid {
		return nil
	}
	if a.NonzeroCount > a.Length {
		return fmt.Errorf("%w: nonzero count %d exceeds length %d", ErrInvariant, a.NonzeroCount, a.Length)
	}
	if _, err := conv.ArchiveSpace(a.Length, 1); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	return nil
}

// CompressedSize returns the total size of both streams.
func (a Vector) CompressedSize() int { return len(a.Indexes) + len(a.Values) }

// Matrix is a compressed dense matrix.
type Matrix struct {
	Valid        bool   `json:"is_valid"`
	NonzeroCount uint64 `json:"nonzero_count"`
	Rows         uint64 `json:"row_count"`
	Cols         uint64 `json:"col_count"`
	Indexes      []byte `json:"compressed_indexes"`
	Values       []byte `json:"compressed_values"`
}

// NewMatrix assembles a valid matrix archive.
func NewMatrix(nonzeroCount, rows, cols uint64, indexes, values []byte) (Matrix, error) {
	a := Matrix{
		Valid:        true,
		NonzeroCount: nonzeroCount,
		Rows:         rows,
		Cols:         cols,
		Indexes:      indexes,
		Values:       values,
	}
	if err := a.Validate(); err != nil {
		return Matrix{}, err
	}
	return a, nil
}

// Validate checks the record invariants. Invalid archives always pass.
func (a Matrix) Validate() error {
	if !a.Valid {
		return nil
	}
	if a.Rows == 0 || a.Cols == 0 {
		return fmt.Errorf("%w: zero dimension %dx%d", ErrInvariant, a.Rows, a.Cols)
	}
	size, err := conv.ArchiveSpace(a.Rows, a.Cols)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	if a.NonzeroCount > uint64(size) {
		return fmt.Errorf("%w: nonzero count %d exceeds %d elements", ErrInvariant, a.NonzeroCount, size)
	}
	return nil
}

// CompressedSize returns the total size of both streams.
func (a Matrix) CompressedSize() int { return len(a.Indexes) + len(a.Values) }
