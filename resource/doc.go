// Package resource bounds the memory, transfer concurrency and IO bandwidth
// shared by compressors, caches and archive stores.
//
// A single Controller is typically created per process and handed to every
// component:
//
//	rc := resource.NewController(resource.Config{
//		MemoryLimitBytes:   256 << 20,
//		MaxConcurrentIO:    8,
//		IOLimitBytesPerSec: 100 << 20,
//	})
//
//	c := sparsepack.New(sparsepack.WithResourceController(rc))
//	st := store.New(blobs, store.WithResourceController(rc))
//
// Compression never blocks on memory: when a call's scratch estimate does not
// fit, it fails with sparsepack.ErrResourceExhausted.
package resource
