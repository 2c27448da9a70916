package archive

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/hupe1980/sparsepack/archive/internal/fb"
)

// File identifiers distinguishing the two record shapes.
const (
	vectorIdentifier = "SPVA"
	matrixIdentifier = "SPMA"
)

const (
	rootOffsetSize   = 4
	identifierLength = 4
	// minRecordSize is the root offset plus the file identifier.
	minRecordSize = rootOffsetSize + identifierLength
)

// MarshalBinary encodes the archive as a FlatBuffers VectorArchive table.
func (a Vector) MarshalBinary() ([]byte, error) {
	builder := flatbuffers.NewBuilder(64 + a.CompressedSize())

	var indexes, values flatbuffers.UOffsetT
	if len(a.Indexes) > 0 {
		indexes = builder.CreateByteVector(a.Indexes)
	}
	if len(a.Values) > 0 {
		values = builder.CreateByteVector(a.Values)
	}

	fb.VectorArchiveStart(builder)
	fb.VectorArchiveAddIsValid(builder, a.Valid)
	fb.VectorArchiveAddNonzeroCount(builder, a.NonzeroCount)
	fb.VectorArchiveAddOriginalLength(builder, a.Length)
	if indexes != 0 {
		fb.VectorArchiveAddCompressedIndexes(builder, indexes)
	}
	if values != 0 {
		fb.VectorArchiveAddCompressedValues(builder, values)
	}
	root := fb.VectorArchiveEnd(builder)
	builder.FinishWithFileIdentifier(root, []byte(vectorIdentifier))

	return builder.FinishedBytes(), nil
}

// UnmarshalBinary decodes a record written by MarshalBinary. The stream
// slices are copied out of data.
func (a *Vector) UnmarshalBinary(data []byte) (err error) {
	if err := checkRecord(data, vectorIdentifier); err != nil {
		return err
	}
	defer recoverMalformed(&err)

	t := fb.GetRootAsVectorArchive(data, 0)
	*a = Vector{
		Valid:        t.IsValid(),
		NonzeroCount: t.NonzeroCount(),
		Length:       t.OriginalLength(),
		Indexes:      clone(t.CompressedIndexesBytes()),
		Values:       clone(t.CompressedValuesBytes()),
	}
	return nil
}

// MarshalBinary encodes the archive as a FlatBuffers MatrixArchive table.
func (a Matrix) MarshalBinary() ([]byte, error) {
	builder := flatbuffers.NewBuilder(64 + a.CompressedSize())

	var indexes, values flatbuffers.UOffsetT
	if len(a.Indexes) > 0 {
		indexes = builder.CreateByteVector(a.Indexes)
	}
	if len(a.Values) > 0 {
		values = builder.CreateByteVector(a.Values)
	}

	fb.MatrixArchiveStart(builder)
	fb.MatrixArchiveAddIsValid(builder, a.Valid)
	fb.MatrixArchiveAddNonzeroCount(builder, a.NonzeroCount)
	fb.MatrixArchiveAddRowCount(builder, a.Rows)
	fb.MatrixArchiveAddColCount(builder, a.Cols)
	if indexes != 0 {
		fb.MatrixArchiveAddCompressedIndexes(builder, indexes)
	}
	if values != 0 {
		fb.MatrixArchiveAddCompressedValues(builder, values)
	}
	root := fb.MatrixArchiveEnd(builder)
	builder.FinishWithFileIdentifier(root, []byte(matrixIdentifier))

	return builder.FinishedBytes(), nil
}

// UnmarshalBinary decodes a record written by MarshalBinary. The stream
// slices are copied out of data.
func (a *Matrix) UnmarshalBinary(data []byte) (err error) {
	if err := checkRecord(data, matrixIdentifier); err != nil {
		return err
	}
	defer recoverMalformed(&err)

	t := fb.GetRootAsMatrixArchive(data, 0)
	*a = Matrix{
		Valid:        t.IsValid(),
		NonzeroCount: t.NonzeroCount(),
		Rows:         t.RowCount(),
		Cols:         t.ColCount(),
		Indexes:      clone(t.CompressedIndexesBytes()),
		Values:       clone(t.CompressedValuesBytes()),
	}
	return nil
}

// IsVectorRecord reports whether data carries the vector file identifier.
func IsVectorRecord(data []byte) bool { return hasIdentifier(data, vectorIdentifier) }

// IsMatrixRecord reports whether data carries the matrix file identifier.
func IsMatrixRecord(data []byte) bool { return hasIdentifier(data, matrixIdentifier) }

func hasIdentifier(data []byte, id string) bool {
	return len(data) >= minRecordSize && string(data[rootOffsetSize:minRecordSize]) == id
}

func checkRecord(data []byte, id string) error {
	if len(data) < minRecordSize {
		return fmt.Errorf("%w: %d bytes", ErrMalformed, len(data))
	}
	if !hasIdentifier(data, id) {
		return fmt.Errorf("%w: identifier %q, want %q", ErrMalformed, data[rootOffsetSize:minRecordSize], id)
	}
	return nil
}

// recoverMalformed turns out-of-range panics from the table accessors into
// ErrMalformed.
func recoverMalformed(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrMalformed, r)
	}
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
