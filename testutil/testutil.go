package testutil

import (
	"math/rand"
	"sort"
	"sync"

	"github.com/hupe1980/sparsepack/dense"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// FillUniformRange fills dst with random values in range [minVal, maxVal).
func (r *RNG) FillUniformRange(dst []float32, minVal, maxVal float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + r.rand.Float32()*span
	}
}

// UniformRange returns n values in [-1, 1). Exact zeros are replaced so every
// value survives sparse extraction.
func (r *RNG) UniformRange(n int) []float32 {
	out := make([]float32, n)
	r.FillUniformRange(out, -1, 1)
	for i, v := range out {
		if v == 0 {
			out[i] = 0.5
		}
	}
	return out
}

// SparseVector returns a vector of length n where each element is nonzero
// with the given probability. Nonzero values lie in [-1, 1).
func (r *RNG) SparseVector(n int, density float64) dense.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := make(dense.Vector, n)
	r.fillSparse(v, density)
	return v
}

// SparseMatrix returns a rows x cols matrix with the given nonzero density.
func (r *RNG) SparseMatrix(rows, cols int, density float64) *dense.Matrix {
	m, err := dense.NewMatrix(rows, cols)
	if err != nil {
		panic(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fillSparse(m.Raw(), density)
	return m
}

func (r *RNG) fillSparse(dst []float32, density float64) {
	for i := range dst {
		if r.rand.Float64() >= density {
			continue
		}
		v := r.rand.Float32()*2 - 1
		if v == 0 {
			v = 1
		}
		dst[i] = v
	}
}

// AscendingIndexes returns n distinct strictly ascending indexes in [0, limit).
// It panics if n > limit.
func (r *RNG) AscendingIndexes(n int, limit uint32) []uint32 {
	if uint64(n) > uint64(limit) {
		panic("testutil: more indexes requested than fit below limit")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[uint32]struct{}, n)
	out := make([]uint32, 0, n)
	for len(out) < n {
		v := uint32(r.rand.Int63n(int64(limit))) //nolint:gosec // bounded by limit
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
