// Package schema describes fixed-width binary record layouts and interprets
// raw byte buffers against them.
//
// A record layout is declared once as an ordered list of fields, each with a
// kind, a byte width, and an optional value domain. A single generic codec
// (see Codec) then decodes and encodes typed records against that layout, so
// the binary contract for every record type lives in one testable place
// instead of per-type serialization code.
//
// Validation is a whole-buffer, load-time operation: Schema.Validate walks
// every record and every field exactly once. After a buffer validates, typed
// reads through Codec.ReadAt never fail and never copy the buffer.
//
// Integer fields are stored in the byte order given by the caller's
// endian.EndianEngine; baked zerodex buffers always use little-endian.
package schema

import (
	"fmt"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
)

// Kind identifies the wire representation of a single record field.
type Kind uint8

const (
	// KindUint8 is an unsigned 8-bit integer, 1 byte.
	KindUint8 Kind = iota + 1
	// KindUint16 is an unsigned 16-bit integer, 2 bytes.
	KindUint16
	// KindInt32 is a signed 32-bit two's complement integer, 4 bytes.
	KindInt32
	// KindUint32 is an unsigned 32-bit integer, 4 bytes.
	KindUint32
	// KindBytes is an opaque fixed-length byte field. Width must be set
	// explicitly; the optional Check hook validates its contents.
	KindBytes
	// KindPad is must-be-zero padding. Width must be set explicitly.
	KindPad
)

// width returns the implied byte width for integer kinds, or 0 if the kind
// requires an explicit width.
func (k Kind) width() int {
	switch k {
	case KindUint8:
		return 1
	case KindUint16:
		return 2
	case KindInt32, KindUint32:
		return 4
	default:
		return 0
	}
}

// Field declares one field of a fixed-width record.
type Field struct {
	// Name identifies the field in validation error messages.
	Name string

	// Kind is the field's wire representation.
	Kind Kind

	// Width is the field's byte width. Required for KindBytes and KindPad;
	// ignored for integer kinds, whose widths are implied.
	Width int

	// Min and Max bound the field's legal values, inclusive, for integer
	// kinds. Leaving both zero means the kind's full natural range.
	Min int64
	Max int64

	// Check optionally validates the raw contents of a KindBytes field.
	// It receives exactly Width bytes and returns a descriptive error when
	// the contents are outside the field's domain.
	Check func(b []byte) error
}

// Schema is an immutable, validated record layout: an ordered field list and
// the total record width in bytes.
type Schema struct {
	fields []Field
	width  int
}

// New builds a Schema from the given fields in declaration order.
//
// Returns errs.ErrInvalidSchema if the field list is empty, an integer field
// declares a conflicting width, or a bytes/padding field has no width.
func New(fields ...Field) (Schema, error) {
	if len(fields) == 0 {
		return Schema{}, fmt.Errorf("%w: no fields", errs.ErrInvalidSchema)
	}

	width := 0
	for i, f := range fields {
		fw := f.Kind.width()
		switch {
		case fw > 0:
			if f.Width != 0 && f.Width != fw {
				return Schema{}, fmt.Errorf("%w: field %q declares width %d, kind implies %d",
					errs.ErrInvalidSchema, f.Name, f.Width, fw)
			}
			fields[i].Width = fw
		case f.Kind == KindBytes || f.Kind == KindPad:
			if f.Width <= 0 {
				return Schema{}, fmt.Errorf("%w: field %q requires an explicit positive width",
					errs.ErrInvalidSchema, f.Name)
			}
		default:
			return Schema{}, fmt.Errorf("%w: field %q has unknown kind %d",
				errs.ErrInvalidSchema, f.Name, f.Kind)
		}
		width += fields[i].Width
	}

	return Schema{fields: fields, width: width}, nil
}

// MustNew is like New but panics on error. It is intended for package-level
// schema variables whose field lists are compile-time constants.
func MustNew(fields ...Field) Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}

	return s
}

// Width returns the total record width in bytes.
func (s Schema) Width() int {
	return s.width
}

// NumFields returns the number of declared fields.
func (s Schema) NumFields() int {
	return len(s.fields)
}

// Validate checks that data is a legal sequence of records under this schema:
// the length must be a multiple of the record width and every field of every
// record must lie within its declared domain.
//
// Validate is meant to run once at load time. Returns errs.ErrMisalignedPayload
// or errs.ErrFieldOutOfRange (wrapped with record/field context) on failure.
func (s Schema) Validate(data []byte, engine endian.EndianEngine) error {
	if s.width == 0 {
		return fmt.Errorf("%w: schema has zero width", errs.ErrInvalidSchema)
	}
	if len(data)%s.width != 0 {
		return fmt.Errorf("%w: %d bytes, record width %d", errs.ErrMisalignedPayload, len(data), s.width)
	}

	for recStart := 0; recStart < len(data); recStart += s.width {
		rec := data[recStart : recStart+s.width]
		if err := s.validateRecord(rec, engine); err != nil {
			return fmt.Errorf("record %d: %w", recStart/s.width, err)
		}
	}

	return nil
}

func (s Schema) validateRecord(rec []byte, engine endian.EndianEngine) error {
	off := 0
	for _, f := range s.fields {
		raw := rec[off : off+f.Width]
		off += f.Width

		switch f.Kind {
		case KindUint8, KindUint16, KindInt32, KindUint32:
			val := readInt(f.Kind, raw, engine)
			min, max := f.Min, f.Max
			if min == 0 && max == 0 {
				min, max = naturalRange(f.Kind)
			}
			if val < min || val > max {
				return fmt.Errorf("%w: field %q value %d outside [%d, %d]",
					errs.ErrFieldOutOfRange, f.Name, val, min, max)
			}
		case KindPad:
			for _, b := range raw {
				if b != 0 {
					return fmt.Errorf("%w: field %q padding not zero", errs.ErrFieldOutOfRange, f.Name)
				}
			}
		case KindBytes:
			if f.Check != nil {
				if err := f.Check(raw); err != nil {
					return fmt.Errorf("%w: field %q: %w", errs.ErrFieldOutOfRange, f.Name, err)
				}
			}
		}
	}

	return nil
}

func readInt(kind Kind, raw []byte, engine endian.EndianEngine) int64 {
	switch kind {
	case KindUint8:
		return int64(raw[0])
	case KindUint16:
		return int64(engine.Uint16(raw))
	case KindInt32:
		return int64(int32(engine.Uint32(raw))) //nolint: gosec
	case KindUint32:
		return int64(engine.Uint32(raw))
	default:
		return 0
	}
}

func naturalRange(kind Kind) (int64, int64) {
	switch kind {
	case KindUint8:
		return 0, 0xFF
	case KindUint16:
		return 0, 0xFFFF
	case KindInt32:
		return -1 << 31, 1<<31 - 1
	case KindUint32:
		return 0, 0xFFFFFFFF
	default:
		return 0, 0
	}
}
