// Package buffer provides a capacity-bounded byte buffer for codec output.
//
// Codecs size a Bounded buffer with their worst-case output formula, write
// into it, and hand out only the written prefix. The unused tail is never
// visible to callers.
package buffer
