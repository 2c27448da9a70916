package fb

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

type MatrixArchive struct {
	_tab flatbuffers.Table
}

func GetRootAsMatrixArchive(buf []byte, offset flatbuffers.UOffsetT) *MatrixArchive {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &MatrixArchive{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *MatrixArchive) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *MatrixArchive) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *MatrixArchive) IsValid() bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetBool(o + rcv._tab.Pos)
	}
	return false
}

func (rcv *MatrixArchive) NonzeroCount() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *MatrixArchive) RowCount() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *MatrixArchive) ColCount() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *MatrixArchive) CompressedIndexesBytes() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *MatrixArchive) CompressedValuesBytes() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(14))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func MatrixArchiveStart(builder *flatbuffers.Builder) {
	builder.StartObject(6)
}

func MatrixArchiveAddIsValid(builder *flatbuffers.Builder, isValid bool) {
	builder.PrependBoolSlot(0, isValid, false)
}

func MatrixArchiveAddNonzeroCount(builder *flatbuffers.Builder, nonzeroCount uint64) {
	builder.PrependUint64Slot(1, nonzeroCount, 0)
}

func MatrixArchiveAddRowCount(builder *flatbuffers.Builder, rowCount uint64) {
	builder.PrependUint64Slot(2, rowCount, 0)
}

func MatrixArchiveAddColCount(builder *flatbuffers.Builder, colCount uint64) {
	builder.PrependUint64Slot(3, colCount, 0)
}

func MatrixArchiveAddCompressedIndexes(builder *flatbuffers.Builder, compressedIndexes flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(4, flatbuffers.UOffsetT(compressedIndexes), 0)
}

func MatrixArchiveAddCompressedValues(builder *flatbuffers.Builder, compressedValues flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(5, flatbuffers.UOffsetT(compressedValues), 0)
}

func MatrixArchiveEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
