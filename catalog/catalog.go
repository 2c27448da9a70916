// Package catalog records metadata about stored archives so callers can
// inspect an archive without downloading it.
package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/opencontainers/go-digest"
)

// ErrNotFound is returned when no entry exists for a digest.
var ErrNotFound = errors.New("catalog: entry not found")

// Kind is the archive kind of an entry.
type Kind string

const (
	// KindVector marks a vector archive.
	KindVector Kind = "vector"
	// KindMatrix marks a matrix archive.
	KindMatrix Kind = "matrix"
)

// Entry describes one stored archive.
type Entry struct {
	Digest       digest.Digest `json:"digest"`
	Kind         Kind          `json:"kind"`
	Name         string        `json:"name"`
	Size         int64         `json:"size"`
	Valid        bool          `json:"is_valid"`
	NonzeroCount uint64        `json:"nonzero_count"`
	// Shape is [length] for vectors and [rows, cols] for matrices.
	Shape     []uint64  `json:"shape"`
	Encoding  string    `json:"encoding"`
	CreatedAt time.Time `json:"created_at"`
}

// Catalog stores entries keyed by digest.
type Catalog interface {
	// Record stores e, replacing any entry with the same digest.
	Record(ctx context.Context, e Entry) error
	// Lookup returns the entry for d or ErrNotFound.
	Lookup(ctx context.Context, d digest.Digest) (Entry, error)
	// Remove deletes the entry for d. Removing a missing entry is not an error.
	Remove(ctx context.Context, d digest.Digest) error
}

// Memory is an in-process Catalog.
type Memory struct {
	mu      sync.RWMutex
	entries map[digest.Digest]Entry
}

var _ Catalog = (*Memory)(nil)

// NewMemory returns an empty Memory catalog.
func NewMemory() *Memory {
	return &Memory{entries: make(map[digest.Digest]Entry)}
}

// Record implements Catalog.
func (m *Memory) Record(_ context.Context, e Entry) error {
	if err := e.Digest.Validate(); err != nil {
		return err
	}
	e.Shape = append([]uint64(nil), e.Shape...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Digest] = e
	return nil
}

// Lookup implements Catalog.
func (m *Memory) Lookup(_ context.Context, d digest.Digest) (Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[d]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e.Shape = append([]uint64(nil), e.Shape...)
	return e, nil
}

// Remove implements Catalog.
func (m *Memory) Remove(_ context.Context, d digest.Digest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, d)
	return nil
}
