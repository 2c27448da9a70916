// Package blobstoretest provides a conformance suite for blobstore.BlobStore
// implementations.
package blobstoretest

import (
	"context"
	"testing"

	"github.com/hupe1980/sparsepack/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the BlobStore contract against an empty store.
func Run(t *testing.T, store blobstore.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "vectors/missing")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		data := []byte("sparse archive payload")
		require.NoError(t, store.Put(ctx, "vectors/a", data))

		got, err := store.Get(ctx, "vectors/a")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		// Stored bytes are independent of the caller's slice.
		data[0] = 'X'
		got, err = store.Get(ctx, "vectors/a")
		require.NoError(t, err)
		assert.Equal(t, byte('s'), got[0])
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "vectors/b", []byte("one")))
		require.NoError(t, store.Put(ctx, "vectors/b", []byte("two")))

		got, err := store.Get(ctx, "vectors/b")
		require.NoError(t, err)
		assert.Equal(t, "two", string(got))
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "matrices/empty", nil))

		got, err := store.Get(ctx, "matrices/empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "matrices/m1", []byte("m")))

		names, err := store.List(ctx, "vectors/")
		require.NoError(t, err)
		assert.Equal(t, []string{"vectors/a", "vectors/b"}, names)

		names, err = store.List(ctx, "matrices/")
		require.NoError(t, err)
		assert.Equal(t, []string{"matrices/empty", "matrices/m1"}, names)

		names, err = store.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, names, 4)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "vectors/a"))
		_, err := store.Get(ctx, "vectors/a")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)

		// Idempotent.
		require.NoError(t, store.Delete(ctx, "vectors/a"))
	})
}
