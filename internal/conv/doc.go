// Package conv provides checked integer conversions for archive headers and
// linear index spaces.
//
// Archive fields are persisted as uint64 while dense containers are indexed
// with int and sparse streams with uint32. Every crossing between these
// widths goes through this package so overflow surfaces as an error instead
// of silently wrapping.
package conv
