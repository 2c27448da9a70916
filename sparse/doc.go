// Package sparse converts between dense containers and (index, value) pairs.
//
// Extraction scans in row-major order and keeps every element whose IEEE-754
// bit pattern is not all-zero, so subnormals, NaNs and negative zero survive
// and only +0 is dropped. Indices are linear offsets (row*cols + col) and are
// strictly ascending.
package sparse
