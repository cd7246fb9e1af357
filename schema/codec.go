package schema

import (
	"github.com/arloliu/zerodex/endian"
)

// Codec binds a Schema to a concrete record type T through a decode and an
// encode function. The decode/encode pair must agree with the schema's field
// order and widths; the round-trip property (Append then ReadAt yields the
// original record) is the contract and is what the codec tests assert.
//
// Decode is called only with buffers that already passed Schema.Validate, so
// it may index freely without bounds or domain checks.
type Codec[T any] struct {
	// Schema declares the record layout interpreted by Decode and Encode.
	Schema Schema

	// Decode interprets exactly Schema.Width() bytes as a record.
	Decode func(raw []byte, engine endian.EndianEngine) T

	// Encode writes rec into exactly Schema.Width() bytes in canonical
	// field order. Used only by the offline generation path.
	Encode func(rec T, raw []byte, engine endian.EndianEngine)
}

// Width returns the record width in bytes.
func (c Codec[T]) Width() int {
	return c.Schema.Width()
}

// ReadAt decodes the record at the given index from a validated buffer.
//
// The caller is responsible for bounds checking; sequences built on top of
// this codec (vec.Fixed) expose the bounds-checked accessors.
func (c Codec[T]) ReadAt(data []byte, index int, engine endian.EndianEngine) T {
	w := c.Schema.Width()
	start := index * w

	return c.Decode(data[start:start+w], engine)
}

// Append encodes rec in canonical form and appends the resulting
// Schema.Width() bytes to dst, returning the extended slice.
func (c Codec[T]) Append(dst []byte, rec T, engine endian.EndianEngine) []byte {
	w := c.Schema.Width()
	start := len(dst)
	dst = append(dst, make([]byte, w)...)
	c.Encode(rec, dst[start:start+w], engine)

	return dst
}

// Bytes encodes rec into a freshly allocated canonical byte slice.
func (c Codec[T]) Bytes(rec T, engine endian.EndianEngine) []byte {
	raw := make([]byte, c.Schema.Width())
	c.Encode(rec, raw, engine)

	return raw
}
