// Package sparsepack compresses dense float32 vectors and matrices that are
// mostly zero.
//
// Only nonzero elements are kept. Their positions form an ascending index
// stream encoded with a delta integer codec, their values form a value stream
// encoded with a precision-bounded float codec. Both streams, the nonzero
// count and the original shape make up an archive that decompresses back to
// the dense form.
//
// # Quick Start
//
//	a, _ := sparsepack.CompressVector(v, sparsepack.LosslessPrecision)
//	back, _ := sparsepack.DecompressVector(a)
//
//	am, _ := sparsepack.CompressMatrix(m, 16) // keep 16 bits per value
//	mback, _ := sparsepack.DecompressMatrix(am)
//
// # Archives
//
// An empty or all-zero vector compresses to an invalid sentinel archive,
// which decompresses to an empty vector without error. Matrix archives are
// always valid; decompressing an invalid matrix archive returns
// ErrInvalidArgument.
//
// Archives marshal to FlatBuffers records (archive.Vector.MarshalBinary) or
// JSON (package codec), and can be persisted content-addressed through
// package store into any blobstore.BlobStore (memory, local files, S3,
// MinIO).
//
// # Codecs
//
// The index codec defaults to stream-vbyte delta coding and the value codec
// to fpz. Both can be replaced:
//
//	c := sparsepack.New(
//	    sparsepack.WithIndexCodec(roaring.New()),
//	    sparsepack.WithValueCodec(entropy.WrapValue(fpz.New(), entropy.ZSTD)),
//	)
//
// # Precision
//
// Precision counts the leading bits kept of each value's order-preserving
// 32-bit key: 0 or 32 is lossless, smaller values truncate toward zero.
// Precision outside 0..32 fails with ErrCodec.
package sparsepack
