// Package archive defines the immutable compressed records produced by
// sparsepack and their binary layout.
//
// An archive carries the nonzero count next to the two opaque codec streams
// because neither stream describes its own length. Vector and Matrix differ
// only in how the dense shape is recorded.
//
// Archives encode to FlatBuffers tables (see archive.fbs) with
// MarshalBinary/UnmarshalBinary, and to JSON through the field tags.
package archive
