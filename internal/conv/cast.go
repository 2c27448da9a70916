package conv

import (
	"errors"
	"fmt"
	"math"
)

// MaxIndexSpace is the largest number of addressable elements a uint32 linear
// index can cover (indices 0 .. 2^32-1).
const MaxIndexSpace uint64 = math.MaxUint32 + 1

// ErrOverflow is returned when a value does not fit the target width.
var ErrOverflow = errors.New("integer overflow")

// Uint64ToInt converts v to int.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d does not fit int", ErrOverflow, v)
	}
	return int(v), nil
}

// IndexSpace returns rows*cols as a uint64 and verifies that every linear
// index row*cols+col in that space fits a uint32.
func IndexSpace(rows, cols int) (uint64, error) {
	if rows < 0 || cols < 0 {
		return 0, fmt.Errorf("%w: negative dimension %dx%d", ErrOverflow, rows, cols)
	}
	r, c := uint64(rows), uint64(cols)
	if c != 0 && r > MaxIndexSpace/c {
		return 0, fmt.Errorf("%w: %dx%d exceeds uint32 index space", ErrOverflow, rows, cols)
	}
	return r * c, nil
}

// ArchiveSpace is IndexSpace for persisted uint64 dimensions. It additionally
// guarantees the result is addressable as an int.
func ArchiveSpace(rows, cols uint64) (int, error) {
	if cols != 0 && rows > MaxIndexSpace/cols {
		return 0, fmt.Errorf("%w: %dx%d exceeds uint32 index space", ErrOverflow, rows, cols)
	}
	return Uint64ToInt(rows * cols)
}
