package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	d := digest.FromString("archive")

	_, err := c.Lookup(ctx, d)
	assert.ErrorIs(t, err, ErrNotFound)

	shape := []uint64{4, 4}
	e := Entry{
		Digest:       d,
		Kind:         KindMatrix,
		Name:         "matrices/" + d.Encoded(),
		Size:         42,
		Valid:        true,
		NonzeroCount: 5,
		Shape:        shape,
		Encoding:     "flatbuffers",
		CreatedAt:    time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, c.Record(ctx, e))

	// The catalog keeps its own copy of the shape.
	shape[0] = 99

	got, err := c.Lookup(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, []uint64{4, 4}, got.Shape)
	assert.Equal(t, KindMatrix, got.Kind)
	assert.Equal(t, uint64(5), got.NonzeroCount)

	require.NoError(t, c.Remove(ctx, d))
	require.NoError(t, c.Remove(ctx, d))
	_, err = c.Lookup(ctx, d)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_RejectsInvalidDigest(t *testing.T) {
	err := NewMemory().Record(context.Background(), Entry{Digest: "not-a-digest"})
	assert.Error(t, err)
}
