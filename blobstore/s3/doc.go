// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	blobs, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("archives/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	st := store.New(blobs)
//	d, err := st.PutVector(ctx, a)
//
// # Features
//
//   - Multipart uploads for large archives
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - Custom endpoints for S3-compatible services
package s3
