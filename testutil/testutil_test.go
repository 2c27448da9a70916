package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparseVector(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.SparseVector(10000, 0.1)

	assert.Len(t, v, 10000)
	nnz := v.NonZeros()
	assert.Greater(t, nnz, 800)
	assert.Less(t, nnz, 1200)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, float32(-1))
		assert.Less(t, x, float32(1))
	}
}

func TestSparseVector_Deterministic(t *testing.T) {
	a := NewRNG(1).SparseVector(256, 0.2)
	b := NewRNG(1).SparseVector(256, 0.2)
	assert.True(t, a.Equal(b))
}

func TestSparseMatrix(t *testing.T) {
	m := NewRNG(3).SparseMatrix(8, 16, 1)
	assert.Equal(t, 8, m.Rows())
	assert.Equal(t, 16, m.Cols())
	assert.Equal(t, 128, m.NonZeros())
}

func TestAscendingIndexes(t *testing.T) {
	idx := NewRNG(9).AscendingIndexes(500, 1000)
	assert.Len(t, idx, 500)
	for i := 1; i < len(idx); i++ {
		assert.Less(t, idx[i-1], idx[i])
	}
	assert.Less(t, idx[len(idx)-1], uint32(1000))

	assert.Panics(t, func() { NewRNG(9).AscendingIndexes(3, 2) })
}

func TestUniformRange(t *testing.T) {
	rng := NewRNG(5)
	v := rng.UniformRange(1000)
	for _, x := range v {
		assert.NotZero(t, x)
	}
	rng.Reset()
	assert.Equal(t, v, rng.UniformRange(1000))
	assert.Equal(t, int64(5), rng.Seed())
}
