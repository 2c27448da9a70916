package dense

import (
	"errors"
	"fmt"
	"math"
)

// ErrShape is returned when input rows have inconsistent lengths or a
// dimension is negative.
var ErrShape = errors.New("dense: invalid shape")

// Vector is a dense float32 vector.
type Vector []float32

// NonZeros returns the number of elements whose bit pattern is not all-zero.
func (v Vector) NonZeros() int {
	n := 0
	for _, x := range v {
		if math.Float32bits(x) != 0 {
			n++
		}
	}
	return n
}

// Equal reports whether v and o have the same length and bit-identical
// elements. NaN payloads compare equal to themselves.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if math.Float32bits(v[i]) != math.Float32bits(o[i]) {
			return false
		}
	}
	return true
}

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix returns a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrShape, rows, cols)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}, nil
}

// FromRows builds a matrix by copying rectangular row slices.
func FromRows(rows [][]float32) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := NewMatrix(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(r), cols)
		}
		copy(m.data[i*cols:], r)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at (i, j). It panics if out of range.
func (m *Matrix) At(i, j int) float32 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set assigns the element at (i, j). It panics if out of range.
func (m *Matrix) Set(i, j int, v float32) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

// Raw returns the row-major backing slice. Mutations are visible in m.
func (m *Matrix) Raw() []float32 { return m.data }

// Row returns row i as a slice of the backing storage.
func (m *Matrix) Row(i int) []float32 {
	m.check(i, 0)
	return m.data[i*m.cols : (i+1)*m.cols]
}

// NonZeros returns the number of elements whose bit pattern is not all-zero.
func (m *Matrix) NonZeros() int { return Vector(m.data).NonZeros() }

// Equal reports whether m and o have the same shape and bit-identical elements.
func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.rows == o.rows && m.cols == o.cols && Vector(m.data).Equal(o.data)
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || (m.cols > 0 && j >= m.cols) {
		panic(fmt.Sprintf("dense: index (%d,%d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}
