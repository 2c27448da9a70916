package fb

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

type VectorArchive struct {
	_tab flatbuffers.Table
}

func GetRootAsVectorArchive(buf []byte, offset flatbuffers.UOffsetT) *VectorArchive {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &VectorArchive{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *VectorArchive) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *VectorArchive) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *VectorArchive) IsValid() bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(4))
	if o != 0 {
		return rcv._tab.GetBool(o + rcv._tab.Pos)
	}
	return false
}

func (rcv *VectorArchive) NonzeroCount() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(6))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *VectorArchive) OriginalLength() uint64 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(8))
	if o != 0 {
		return rcv._tab.GetUint64(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *VectorArchive) CompressedIndexesBytes() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(10))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func (rcv *VectorArchive) CompressedValuesBytes() []byte {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(12))
	if o != 0 {
		return rcv._tab.ByteVector(o + rcv._tab.Pos)
	}
	return nil
}

func VectorArchiveStart(builder *flatbuffers.Builder) {
	builder.StartObject(5)
}

func VectorArchiveAddIsValid(builder *flatbuffers.Builder, isValid bool) {
	builder.PrependBoolSlot(0, isValid, false)
}

func VectorArchiveAddNonzeroCount(builder *flatbuffers.Builder, nonzeroCount uint64) {
	builder.PrependUint64Slot(1, nonzeroCount, 0)
}

func VectorArchiveAddOriginalLength(builder *flatbuffers.Builder, originalLength uint64) {
	builder.PrependUint64Slot(2, originalLength, 0)
}

func VectorArchiveAddCompressedIndexes(builder *flatbuffers.Builder, compressedIndexes flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(3, flatbuffers.UOffsetT(compressedIndexes), 0)
}

func VectorArchiveAddCompressedValues(builder *flatbuffers.Builder, compressedValues flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(4, flatbuffers.UOffsetT(compressedValues), 0)
}

func VectorArchiveEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}
