package buffer

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOverflow is returned when a write would exceed the buffer's limit.
var ErrOverflow = errors.New("buffer: write exceeds capacity bound")

// Bounded is an append-only byte buffer with a fixed capacity bound.
// The zero value has a limit of zero and rejects every write.
type Bounded struct {
	buf   []byte
	limit int
}

// New allocates a Bounded buffer that accepts at most limit bytes.
func New(limit int) *Bounded {
	if limit < 0 {
		limit = 0
	}
	return &Bounded{
		buf:   make([]byte, 0, limit),
		limit: limit,
	}
}

// Limit returns the capacity bound.
func (b *Bounded) Limit() int { return b.limit }

// Len returns the number of bytes written so far.
func (b *Bounded) Len() int { return len(b.buf) }

// Remaining returns how many more bytes can be written.
func (b *Bounded) Remaining() int { return b.limit - len(b.buf) }

// Write appends p. It implements io.Writer.
func (b *Bounded) Write(p []byte) (int, error) {
	if len(p) > b.Remaining() {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrOverflow, len(p), b.Remaining())
	}
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte appends a single byte.
func (b *Bounded) WriteByte(c byte) error {
	if b.Remaining() < 1 {
		return ErrOverflow
	}
	b.buf = append(b.buf, c)
	return nil
}

// WriteUvarint appends v in unsigned varint encoding.
func (b *Bounded) WriteUvarint(v uint64) error {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	_, err := b.Write(tmp[:n])
	return err
}

// Reserve extends the written length by n zero bytes and returns that window
// for in-place writes. The window is only valid until the next write.
func (b *Bounded) Reserve(n int) ([]byte, error) {
	if n < 0 || n > b.Remaining() {
		return nil, fmt.Errorf("%w: reserve %d, have %d", ErrOverflow, n, b.Remaining())
	}
	start := len(b.buf)
	b.buf = b.buf[:start+n]
	clear(b.buf[start:])
	return b.buf[start : start+n : start+n], nil
}

// Bytes returns the written prefix. Its capacity is clipped to its length so
// appends by the caller never touch the unused tail.
func (b *Bounded) Bytes() []byte {
	return b.buf[:len(b.buf):len(b.buf)]
}
