package store

import (
	"context"
	_ "crypto/sha256" // registers digest.Canonical
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/sparsepack/archive"
	"github.com/hupe1980/sparsepack/blobstore"
	"github.com/hupe1980/sparsepack/catalog"
	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/resource"
	"github.com/opencontainers/go-digest"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotFound is returned when no archive is stored under a digest.
	ErrNotFound = errors.New("store: archive not found")

	// ErrDigestMismatch is returned when a blob's content does not hash to
	// the digest it is stored under.
	ErrDigestMismatch = errors.New("store: digest mismatch")

	// ErrInvalidDigest is returned for malformed or unsupported digests.
	ErrInvalidDigest = errors.New("store: invalid digest")

	// ErrNoCatalog is returned by Stat when the store has no catalog.
	ErrNoCatalog = errors.New("store: no catalog configured")
)

// EncodingFlatBuffers names the default binary record encoding.
const EncodingFlatBuffers = "flatbuffers"

const (
	vectorPrefix = "vectors/"
	matrixPrefix = "matrices/"
)

// Store persists archives in a BlobStore.
// It is safe for concurrent use if the BlobStore and Catalog are.
type Store struct {
	blobs   blobstore.BlobStore
	codec   codec.Codec
	catalog catalog.Catalog
	rc      *resource.Controller
	now     func() time.Time
}

// New creates a Store on top of blobs.
func New(blobs blobstore.BlobStore, optFns ...Option) *Store {
	o := applyOptions(optFns)
	return &Store{
		blobs:   blobs,
		codec:   o.codec,
		catalog: o.catalog,
		rc:      o.resourceController,
		now:     o.now,
	}
}

type record interface {
	MarshalBinary() ([]byte, error)
	Validate() error
}

// PutVector stores a and returns its digest.
func (s *Store) PutVector(ctx context.Context, a archive.Vector) (digest.Digest, error) {
	return s.put(ctx, catalog.KindVector, a, catalog.Entry{
		Valid:        a.Valid,
		NonzeroCount: a.NonzeroCount,
		Shape:        []uint64{a.Length},
	})
}

// PutMatrix stores a and returns its digest.
func (s *Store) PutMatrix(ctx context.Context, a archive.Matrix) (digest.Digest, error) {
	return s.put(ctx, catalog.KindMatrix, a, catalog.Entry{
		Valid:        a.Valid,
		NonzeroCount: a.NonzeroCount,
		Shape:        []uint64{a.Rows, a.Cols},
	})
}

// GetVector loads the vector archive stored under d.
func (s *Store) GetVector(ctx context.Context, d digest.Digest) (archive.Vector, error) {
	data, err := s.get(ctx, catalog.KindVector, d)
	if err != nil {
		return archive.Vector{}, err
	}

	var a archive.Vector
	switch {
	case archive.IsVectorRecord(data):
		err = a.UnmarshalBinary(data)
	default:
		var c codec.Codec
		if c, err = s.recordCodec(ctx, d); err == nil {
			err = c.Unmarshal(data, &a)
		}
	}
	if err != nil {
		return archive.Vector{}, fmt.Errorf("decode %s: %w", d, err)
	}
	if err := a.Validate(); err != nil {
		return archive.Vector{}, err
	}
	return a, nil
}

// GetMatrix loads the matrix archive stored under d.
func (s *Store) GetMatrix(ctx context.Context, d digest.Digest) (archive.Matrix, error) {
	data, err := s.get(ctx, catalog.KindMatrix, d)
	if err != nil {
		return archive.Matrix{}, err
	}

	var a archive.Matrix
	switch {
	case archive.IsMatrixRecord(data):
		err = a.UnmarshalBinary(data)
	default:
		var c codec.Codec
		if c, err = s.recordCodec(ctx, d); err == nil {
			err = c.Unmarshal(data, &a)
		}
	}
	if err != nil {
		return archive.Matrix{}, fmt.Errorf("decode %s: %w", d, err)
	}
	if err := a.Validate(); err != nil {
		return archive.Matrix{}, err
	}
	return a, nil
}

// Delete removes the archive stored under d, whatever its kind. Deleting a
// missing archive is not an error.
func (s *Store) Delete(ctx context.Context, d digest.Digest) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDigest, err)
	}
	for _, kind := range []catalog.Kind{catalog.KindVector, catalog.KindMatrix} {
		if err := s.blobs.Delete(ctx, blobName(kind, d)); err != nil {
			return err
		}
	}
	if s.catalog != nil {
		return s.catalog.Remove(ctx, d)
	}
	return nil
}

// List returns the digests of all stored archives of the given kind. Blobs
// whose names are not digests are skipped.
func (s *Store) List(ctx context.Context, kind catalog.Kind) ([]digest.Digest, error) {
	prefix := kindPrefix(kind)
	names, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]digest.Digest, 0, len(names))
	for _, name := range names {
		d := digest.NewDigestFromEncoded(digest.Canonical, strings.TrimPrefix(name, prefix))
		if d.Validate() != nil {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Stat returns the catalog entry for d.
func (s *Store) Stat(ctx context.Context, d digest.Digest) (catalog.Entry, error) {
	if s.catalog == nil {
		return catalog.Entry{}, ErrNoCatalog
	}
	e, err := s.catalog.Lookup(ctx, d)
	if errors.Is(err, catalog.ErrNotFound) {
		return catalog.Entry{}, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return e, err
}

// PutVectors stores archives concurrently and returns their digests in input
// order. Concurrency is bounded by the resource controller's transfer slots.
func (s *Store) PutVectors(ctx context.Context, archives []archive.Vector) ([]digest.Digest, error) {
	out := make([]digest.Digest, len(archives))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(s.rc.Config().MaxConcurrentIO))

	for i := range archives {
		g.Go(func() error {
			if err := s.rc.AcquireTransfer(gctx); err != nil {
				return err
			}
			defer s.rc.ReleaseTransfer()

			d, err := s.PutVector(gctx, archives[i])
			if err != nil {
				return fmt.Errorf("archive %d: %w", i, err)
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVectors loads archives concurrently in input order.
func (s *Store) GetVectors(ctx context.Context, digests []digest.Digest) ([]archive.Vector, error) {
	out := make([]archive.Vector, len(digests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(s.rc.Config().MaxConcurrentIO))

	for i, d := range digests {
		g.Go(func() error {
			if err := s.rc.AcquireTransfer(gctx); err != nil {
				return err
			}
			defer s.rc.ReleaseTransfer()

			a, err := s.GetVector(gctx, d)
			if err != nil {
				return err
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) put(ctx context.Context, kind catalog.Kind, a record, e catalog.Entry) (digest.Digest, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}

	data, encoding, err := s.encode(a)
	if err != nil {
		return "", err
	}

	d := digest.FromBytes(data)
	name := blobName(kind, d)

	if err := s.blobs.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("put %s: %w", name, err)
	}

	if s.catalog != nil {
		e.Digest = d
		e.Kind = kind
		e.Name = name
		e.Size = int64(len(data))
		e.Encoding = encoding
		e.CreatedAt = s.now().UTC()
		if err := s.catalog.Record(ctx, e); err != nil {
			return "", err
		}
	}
	return d, nil
}

func (s *Store) encode(a record) ([]byte, string, error) {
	if s.codec != nil {
		data, err := s.codec.Marshal(a)
		return data, s.codec.Name(), err
	}
	data, err := a.MarshalBinary()
	return data, EncodingFlatBuffers, err
}

// recordCodec picks the codec for a blob that is not a flatbuffers record:
// the configured codec, else the one the catalog recorded at write time.
func (s *Store) recordCodec(ctx context.Context, d digest.Digest) (codec.Codec, error) {
	if s.codec != nil {
		return s.codec, nil
	}
	if s.catalog != nil {
		e, err := s.catalog.Lookup(ctx, d)
		if err == nil {
			if c, ok := codec.ByName(e.Encoding); ok {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: unknown record encoding", archive.ErrMalformed)
}

func (s *Store) get(ctx context.Context, kind catalog.Kind, d digest.Digest) ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDigest, err)
	}

	name := blobName(kind, d)
	data, err := s.blobs.Get(ctx, name)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	if got := d.Algorithm().FromBytes(data); got != d {
		return nil, fmt.Errorf("%w: %s holds %s", ErrDigestMismatch, name, got)
	}
	return data, nil
}

func kindPrefix(kind catalog.Kind) string {
	if kind == catalog.KindMatrix {
		return matrixPrefix
	}
	return vectorPrefix
}

func blobName(kind catalog.Kind, d digest.Digest) string {
	return kindPrefix(kind) + d.Encoded()
}
