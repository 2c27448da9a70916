package blobstore

import (
	"context"

	"github.com/hupe1980/sparsepack/internal/cache"
	"github.com/hupe1980/sparsepack/resource"
)

// CachingStore wraps a BlobStore with an in-memory LRU read cache.
//
// Puts write through and populate the cache, deletes invalidate it. The cache
// assumes blobs are not modified behind its back, which holds for
// content-addressed archive names.
type CachingStore struct {
	inner BlobStore
	cache *cache.LRU
}

var _ BlobStore = (*CachingStore)(nil)

// NewCachingStore caches up to capacity bytes of inner's blobs. If rc is not
// nil, cached bytes are charged to its memory budget.
func NewCachingStore(inner BlobStore, capacity int64, rc *resource.Controller) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewLRU(capacity, rc),
	}
}

// Put writes through to the inner store.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.inner.Put(ctx, name, data); err != nil {
		s.cache.Remove(name)
		return err
	}
	s.cache.Set(name, clone(data))
	return nil
}

// Get serves from the cache, falling back to the inner store.
func (s *CachingStore) Get(ctx context.Context, name string) ([]byte, error) {
	if data, ok := s.cache.Get(name); ok {
		return clone(data), nil
	}
	data, err := s.inner.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, clone(data))
	return data, nil
}

// Delete removes the blob from the inner store and the cache.
func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.cache.Remove(name)
	return s.inner.Delete(ctx, name)
}

// List is always answered by the inner store.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hit and miss counts.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
