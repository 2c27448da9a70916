// Package dense provides the row-major float32 containers that sparsepack
// compresses and reconstructs.
//
// Vector is a plain float32 slice. Matrix stores rows*cols elements in a
// single row-major backing slice.
package dense
