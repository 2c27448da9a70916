package sparse

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/sparsepack/dense"
	"github.com/hupe1980/sparsepack/internal/conv"
)

var (
	// ErrInvalidDimension is returned for a matrix with zero rows or columns.
	ErrInvalidDimension = errors.New("sparse: matrix has a zero dimension")

	// ErrIndexOverflow is returned when the index space does not fit uint32.
	ErrIndexOverflow = errors.New("sparse: index space exceeds uint32")

	// ErrIndexOutOfRange is returned by the scatter functions for an index
	// beyond the target size.
	ErrIndexOutOfRange = errors.New("sparse: index out of range")

	// ErrNotAscending is returned by the scatter functions when indices are
	// not strictly ascending.
	ErrNotAscending = errors.New("sparse: indices not strictly ascending")

	// ErrLengthMismatch is returned when index and value slices differ in length.
	ErrLengthMismatch = errors.New("sparse: index/value length mismatch")
)

// Pairs holds parallel index and value sequences.
type Pairs struct {
	Indexes []uint32
	Values  []float32
}

// Len returns the number of pairs.
func (p Pairs) Len() int { return len(p.Indexes) }

// FromVector extracts the nonzero entries of v. A zero-length or all-zero
// vector yields empty pairs.
func FromVector(v dense.Vector) (Pairs, error) {
	if _, err := conv.IndexSpace(len(v), 1); err != nil {
		return Pairs{}, fmt.Errorf("%w: %w", ErrIndexOverflow, err)
	}
	return extract(v), nil
}

// FromMatrix extracts the nonzero entries of m in row-major order.
func FromMatrix(m *dense.Matrix) (Pairs, error) {
	if m == nil || m.Rows() == 0 || m.Cols() == 0 {
		rows, cols := 0, 0
		if m != nil {
			rows, cols = m.Rows(), m.Cols()
		}
		return Pairs{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	if _, err := conv.IndexSpace(m.Rows(), m.Cols()); err != nil {
		return Pairs{}, fmt.Errorf("%w: %w", ErrIndexOverflow, err)
	}
	// Raw is row-major, so its offsets are already row*cols+col.
	return extract(m.Raw()), nil
}

func extract(data []float32) Pairs {
	nnz := dense.Vector(data).NonZeros()
	p := Pairs{
		Indexes: make([]uint32, 0, nnz),
		Values:  make([]float32, 0, nnz),
	}
	for i, x := range data {
		if math.Float32bits(x) != 0 {
			p.Indexes = append(p.Indexes, uint32(i)) //nolint:gosec // bounded by IndexSpace
			p.Values = append(p.Values, x)
		}
	}
	return p
}

// ScatterVector writes p into a new zero vector of the given length.
func ScatterVector(p Pairs, length int) (dense.Vector, error) {
	space, err := conv.IndexSpace(length, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexOverflow, err)
	}
	if err := check(p, space); err != nil {
		return nil, err
	}
	v := make(dense.Vector, length)
	for i, idx := range p.Indexes {
		v[idx] = p.Values[i]
	}
	return v, nil
}

// ScatterMatrix writes p into a new zero rows x cols matrix, mapping each
// index to (idx / cols, idx % cols).
func ScatterMatrix(p Pairs, rows, cols int) (*dense.Matrix, error) {
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	space, err := conv.IndexSpace(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexOverflow, err)
	}
	if err := check(p, space); err != nil {
		return nil, err
	}
	m, err := dense.NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	c := uint64(cols)
	for i, idx := range p.Indexes {
		m.Set(int(uint64(idx)/c), int(uint64(idx)%c), p.Values[i])
	}
	return m, nil
}

func check(p Pairs, space uint64) error {
	if len(p.Indexes) != len(p.Values) {
		return fmt.Errorf("%w: %d indexes, %d values", ErrLengthMismatch, len(p.Indexes), len(p.Values))
	}
	for i, idx := range p.Indexes {
		if uint64(idx) >= space {
			return fmt.Errorf("%w: %d >= %d", ErrIndexOutOfRange, idx, space)
		}
		if i > 0 && idx <= p.Indexes[i-1] {
			return fmt.Errorf("%w: %d after %d at position %d", ErrNotAscending, idx, p.Indexes[i-1], i)
		}
	}
	return nil
}
