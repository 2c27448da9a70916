// Package blobstore provides storage abstraction for compressed archive blobs.
//
// BlobStore is the interface for reading and writing named, immutable blobs.
// Names are slash-separated ("vectors/<digest>"). Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: In-process map, for tests and caches
//   - LocalStore: Local filesystem with atomic temp-file + rename writes
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error           // Atomic write
//	    Get(ctx, name) ([]byte, error)       // Whole-blob read
//	    Delete(ctx, name) error              // Idempotent
//	    List(ctx, prefix) ([]string, error)  // Sorted names
//	}
package blobstore
