// Package testutil provides testing utilities for sparsepack.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	v := rng.SparseVector(4096, 0.05)     // ~5% nonzero, values in [-1, 1)
//	m := rng.SparseMatrix(64, 64, 0.1)
//	idx := rng.AscendingIndexes(100, 1<<20)
package testutil
