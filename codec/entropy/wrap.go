package entropy

import "github.com/hupe1980/sparsepack/codec"

// IndexCodec compresses the output of an inner index codec.
type IndexCodec struct {
	inner codec.IndexCodec
	kind  Kind
}

var _ codec.IndexCodec = (*IndexCodec)(nil)

// WrapIndex returns inner with a kind compression stage.
func WrapIndex(inner codec.IndexCodec, kind Kind) *IndexCodec {
	return &IndexCodec{inner: inner, kind: kind}
}

// Name implements codec.IndexCodec.
func (c *IndexCodec) Name() string { return c.inner.Name() + "+" + c.kind.String() }

// EncodeIndexes implements codec.IndexCodec.
func (c *IndexCodec) EncodeIndexes(indexes []uint32) ([]byte, error) {
	raw, err := c.inner.EncodeIndexes(indexes)
	if err != nil {
		return nil, err
	}
	return Compress(c.kind, raw)
}

// DecodeIndexes implements codec.IndexCodec.
func (c *IndexCodec) DecodeIndexes(data []byte, count int) ([]uint32, error) {
	raw, err := Decompress(c.kind, data)
	if err != nil {
		return nil, err
	}
	return c.inner.DecodeIndexes(raw, count)
}

// ValueCodec compresses the output of an inner value codec.
type ValueCodec struct {
	inner codec.ValueCodec
	kind  Kind
}

var _ codec.ValueCodec = (*ValueCodec)(nil)

// WrapValue returns inner with a kind compression stage.
func WrapValue(inner codec.ValueCodec, kind Kind) *ValueCodec {
	return &ValueCodec{inner: inner, kind: kind}
}

// Name implements codec.ValueCodec.
func (c *ValueCodec) Name() string { return c.inner.Name() + "+" + c.kind.String() }

// EncodeValues implements codec.ValueCodec.
func (c *ValueCodec) EncodeValues(values []float32, precision int) ([]byte, error) {
	raw, err := c.inner.EncodeValues(values, precision)
	if err != nil {
		return nil, err
	}
	return Compress(c.kind, raw)
}

// DecodeValues implements codec.ValueCodec.
func (c *ValueCodec) DecodeValues(data []byte, count int) ([]float32, error) {
	raw, err := Decompress(c.kind, data)
	if err != nil {
		return nil, err
	}
	return c.inner.DecodeValues(raw, count)
}
