package sparsepack

import (
	"fmt"
	"time"

	"github.com/hupe1980/sparsepack/archive"
	"github.com/hupe1980/sparsepack/codec"
	"github.com/hupe1980/sparsepack/codec/fpz"
	"github.com/hupe1980/sparsepack/dense"
	"github.com/hupe1980/sparsepack/internal/conv"
	"github.com/hupe1980/sparsepack/resource"
	"github.com/hupe1980/sparsepack/sparse"
)

// LosslessPrecision makes the default value codec reproduce every float32
// bit pattern exactly.
const LosslessPrecision = fpz.Lossless

// Scratch estimate per dense element: index/value pairs plus worst-case
// index and value streams.
const (
	scratchPerElement = 18
	scratchSlack      = 1024
)

// Compressor turns dense vectors and matrices into archives and back.
//
// A Compressor holds no mutable state of its own and is safe for concurrent
// use. Every call owns its buffers.
type Compressor struct {
	indexCodec codec.IndexCodec
	valueCodec codec.ValueCodec
	metrics    MetricsCollector
	loggers    map[Kind]*Logger
	rc         *resource.Controller
}

// New creates a Compressor.
func New(optFns ...Option) *Compressor {
	o := applyOptions(optFns)
	logger := o.logger.WithCodecs(o.indexCodec.Name(), o.valueCodec.Name())
	return &Compressor{
		indexCodec: o.indexCodec,
		valueCodec: o.valueCodec,
		metrics:    o.metricsCollector,
		loggers: map[Kind]*Logger{
			KindVector: logger.WithKind(KindVector),
			KindMatrix: logger.WithKind(KindMatrix),
		},
		rc: o.resourceController,
	}
}

// IndexCodec returns the configured index codec.
func (c *Compressor) IndexCodec() codec.IndexCodec { return c.indexCodec }

// ValueCodec returns the configured value codec.
func (c *Compressor) ValueCodec() codec.ValueCodec { return c.valueCodec }

// CompressVector compresses v, keeping precision leading bits of every
// nonzero value (0 is lossless).
//
// An empty or all-zero vector yields the invalid sentinel archive and no
// error.
func (c *Compressor) CompressVector(v dense.Vector, precision int) (archive.Vector, error) {
	start := time.Now()
	a, err := c.compressVector(v, precision)
	err = translateError(err)
	c.observeCompress(KindVector, start, len(v), a.NonzeroCount, a.CompressedSize(), err)
	if err != nil {
		return archive.Vector{}, err
	}
	return a, nil
}

func (c *Compressor) compressVector(v dense.Vector, precision int) (archive.Vector, error) {
	// Empty and all-zero input needs no scratch memory.
	if v.NonZeros() == 0 {
		return archive.InvalidVector(), nil
	}

	release, err := c.reserve(compressScratch(uint64(len(v))))
	if err != nil {
		return archive.Vector{}, err
	}
	defer release()

	pairs, err := sparse.FromVector(v)
	if err != nil {
		return archive.Vector{}, err
	}

	idx, vals, err := c.encode(pairs, precision)
	if err != nil {
		return archive.Vector{}, err
	}
	return archive.NewVector(uint64(pairs.Len()), uint64(len(v)), idx, vals)
}

// DecompressVector restores the dense vector held by a.
//
// An invalid archive decompresses to an empty vector and no error.
func (c *Compressor) DecompressVector(a archive.Vector) (dense.Vector, error) {
	start := time.Now()
	v, err := c.decompressVector(a)
	err = translateError(err)
	c.observeDecompress(KindVector, start, len(v), err)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (c *Compressor) decompressVector(a archive.Vector) (dense.Vector, error) {
	if !a.Valid {
		return dense.Vector{}, nil
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	length, err := conv.Uint64ToInt(a.Length)
	if err != nil {
		return nil, err
	}
	nnz, err := conv.Uint64ToInt(a.NonzeroCount)
	if err != nil {
		return nil, err
	}

	release, err := c.reserve(decompressScratch(a.Length, a.NonzeroCount))
	if err != nil {
		return nil, err
	}
	defer release()

	pairs, err := c.decode(a.Indexes, a.Values, nnz)
	if err != nil {
		return nil, err
	}
	return sparse.ScatterVector(pairs, length)
}

// CompressMatrix compresses m, keeping precision leading bits of every
// nonzero value (0 is lossless).
//
// The result is always a valid archive, also for an all-zero matrix. A matrix
// with zero rows or columns fails with ErrInvalidArgument.
func (c *Compressor) CompressMatrix(m *dense.Matrix, precision int) (archive.Matrix, error) {
	start := time.Now()
	a, err := c.compressMatrix(m, precision)
	err = translateError(err)
	elements := 0
	if m != nil {
		elements = len(m.Raw())
	}
	c.observeCompress(KindMatrix, start, elements, a.NonzeroCount, a.CompressedSize(), err)
	if err != nil {
		return archive.Matrix{}, err
	}
	return a, nil
}

func (c *Compressor) compressMatrix(m *dense.Matrix, precision int) (archive.Matrix, error) {
	if m == nil {
		return archive.Matrix{}, fmt.Errorf("%w: nil matrix", ErrInvalidArgument)
	}
	space, err := conv.IndexSpace(m.Rows(), m.Cols())
	if err != nil {
		return archive.Matrix{}, err
	}

	release, err := c.reserve(compressScratch(space))
	if err != nil {
		return archive.Matrix{}, err
	}
	defer release()

	pairs, err := sparse.FromMatrix(m)
	if err != nil {
		return archive.Matrix{}, err
	}

	idx, vals, err := c.encode(pairs, precision)
	if err != nil {
		return archive.Matrix{}, err
	}
	return archive.NewMatrix(uint64(pairs.Len()), uint64(m.Rows()), uint64(m.Cols()), idx, vals)
}

// DecompressMatrix restores the dense matrix held by a.
//
// Unlike DecompressVector, an invalid archive is an error
// (ErrInvalidArgument).
func (c *Compressor) DecompressMatrix(a archive.Matrix) (*dense.Matrix, error) {
	start := time.Now()
	m, err := c.decompressMatrix(a)
	err = translateError(err)
	elements := 0
	if m != nil {
		elements = len(m.Raw())
	}
	c.observeDecompress(KindMatrix, start, elements, err)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (c *Compressor) decompressMatrix(a archive.Matrix) (*dense.Matrix, error) {
	if !a.Valid {
		return nil, fmt.Errorf("%w: matrix archive is not valid", ErrInvalidArgument)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}

	rows, err := conv.Uint64ToInt(a.Rows)
	if err != nil {
		return nil, err
	}
	cols, err := conv.Uint64ToInt(a.Cols)
	if err != nil {
		return nil, err
	}
	nnz, err := conv.Uint64ToInt(a.NonzeroCount)
	if err != nil {
		return nil, err
	}

	release, err := c.reserve(decompressScratch(a.Rows*a.Cols, a.NonzeroCount))
	if err != nil {
		return nil, err
	}
	defer release()

	pairs, err := c.decode(a.Indexes, a.Values, nnz)
	if err != nil {
		return nil, err
	}
	return sparse.ScatterMatrix(pairs, rows, cols)
}

func (c *Compressor) encode(p sparse.Pairs, precision int) ([]byte, []byte, error) {
	idx, err := codec.EncodeIndexes(c.indexCodec, p.Indexes)
	if err != nil {
		return nil, nil, err
	}
	vals, err := codec.EncodeValues(c.valueCodec, p.Values, precision)
	if err != nil {
		return nil, nil, err
	}
	return idx, vals, nil
}

func (c *Compressor) decode(idx, vals []byte, nnz int) (sparse.Pairs, error) {
	indexes, err := codec.DecodeIndexes(c.indexCodec, idx, nnz)
	if err != nil {
		return sparse.Pairs{}, err
	}
	values, err := codec.DecodeValues(c.valueCodec, vals, nnz)
	if err != nil {
		return sparse.Pairs{}, err
	}
	return sparse.Pairs{Indexes: indexes, Values: values}, nil
}

// reserve takes bytes from the memory budget without blocking.
func (c *Compressor) reserve(bytes int64) (func(), error) {
	if !c.rc.TryAcquireMemory(bytes) {
		return nil, fmt.Errorf("%w: %d bytes of scratch memory", ErrResourceExhausted, bytes)
	}
	return func() { c.rc.ReleaseMemory(bytes) }, nil
}

func compressScratch(elements uint64) int64 {
	return int64(elements)*scratchPerElement + scratchSlack //nolint:gosec // elements <= 2^32
}

func decompressScratch(elements, nonzeros uint64) int64 {
	return int64(elements)*4 + int64(nonzeros)*8 + scratchSlack //nolint:gosec // both <= 2^32
}

func (c *Compressor) observeCompress(kind Kind, start time.Time, elements int, nonzeros uint64, size int, err error) {
	c.metrics.RecordCompress(kind, time.Since(start), elements*4, size, err)
	c.loggers[kind].LogCompress(elements, nonzeros, size, err)
}

func (c *Compressor) observeDecompress(kind Kind, start time.Time, elements int, err error) {
	c.metrics.RecordDecompress(kind, time.Since(start), err)
	c.loggers[kind].LogDecompress(elements, err)
}

var defaultCompressor = New()

// CompressVector compresses v with the default codecs.
func CompressVector(v dense.Vector, precision int) (archive.Vector, error) {
	return defaultCompressor.CompressVector(v, precision)
}

// DecompressVector decompresses a with the default codecs.
func DecompressVector(a archive.Vector) (dense.Vector, error) {
	return defaultCompressor.DecompressVector(a)
}

// CompressMatrix compresses m with the default codecs.
func CompressMatrix(m *dense.Matrix, precision int) (archive.Matrix, error) {
	return defaultCompressor.CompressMatrix(m, precision)
}

// DecompressMatrix decompresses a with the default codecs.
func DecompressMatrix(a archive.Matrix) (*dense.Matrix, error) {
	return defaultCompressor.DecompressMatrix(a)
}
