// Package minio stores archive blobs in MinIO or any other S3-compatible
// server (Ceph, Garage, SeaweedFS) through the MinIO Go client, without
// pulling in the AWS SDK.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	blobs := minioblob.NewStore(client, "my-bucket", "archives/")
//	st := store.New(blobs, store.WithCatalog(catalog.NewMemory()))
//
// Blob names are joined to the root prefix as object keys. Missing objects
// surface as blobstore.ErrNotFound, and List strips the root prefix again.
// The bucket must exist.
package minio
