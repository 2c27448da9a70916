// Package store persists compressed archives content-addressed in a
// blobstore.BlobStore.
//
// Every archive is encoded (FlatBuffers by default, or a codec.Codec such as
// JSON), named after the digest of its encoded bytes and written to
// "vectors/<hex>" or "matrices/<hex>". Reads verify the digest before
// decoding. An optional catalog.Catalog records archive metadata so Stat can
// answer without downloading the blob.
//
//	blobs := blobstore.NewLocalStore("./archives")
//	st := store.New(blobs, store.WithCatalog(catalog.NewMemory()))
//
//	d, _ := st.PutVector(ctx, a)
//	back, _ := st.GetVector(ctx, d)
package store
