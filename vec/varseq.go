package vec

import (
	"fmt"
	"iter"
	"strings"
	"unsafe"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
)

const (
	varCountSize  = 4 // leading uint32 entry count
	varOffsetSize = 4 // uint32 per offset, count+1 offsets
)

// Var is a zero-copy view of a byte buffer as an ordered sequence of
// variable-length UTF-8 byte strings.
//
// Wire layout:
//
//	Count:   uint32                   number of entries (n)
//	Offsets: uint32[n+1]              payload byte offsets, offset[0] = 0
//	Payload: u8[offset[n]]            concatenated entry bytes
//
// Entry i spans payload[offset[i]:offset[i+1]]. Zero-length entries are
// legal (offset[i] == offset[i+1]), as is an empty sequence (n == 0).
type Var struct {
	engine  endian.EndianEngine
	offsets []byte
	payload []byte
	count   int
}

// NewVar wraps data as a variable-length sequence. The whole buffer must be
// consumed exactly: trailing bytes after the payload are a layout error.
//
// The offset table is validated once here (monotonically non-decreasing,
// first offset zero, last offset equal to the payload length); accessors
// never fail afterwards.
func NewVar(engine endian.EndianEngine, data []byte) (Var, error) {
	v, rest, err := parseVar(engine, data)
	if err != nil {
		return Var{}, err
	}
	if len(rest) != 0 {
		return Var{}, fmt.Errorf("%w: %d trailing bytes after payload", errs.ErrInvalidOffsets, len(rest))
	}

	return v, nil
}

// NewSortedVar is NewVar plus a linear scan verifying the entries are sorted
// in ascending byte-wise order. Binary search is only defined on sequences
// constructed this way (or via a map, which enforces a stricter order).
func NewSortedVar(engine endian.EndianEngine, data []byte) (Var, error) {
	v, err := NewVar(engine, data)
	if err != nil {
		return Var{}, err
	}
	for i := 1; i < v.count; i++ {
		if v.at(i-1) > v.at(i) {
			return Var{}, fmt.Errorf("%w: entry %d precedes entry %d", errs.ErrEntriesNotSorted, i, i-1)
		}
	}

	return v, nil
}

// parseVar consumes one variable-length sequence from the front of data and
// returns the remaining bytes. Used directly by the map constructors, whose
// wire layout places a second sequence after the key sequence.
func parseVar(engine endian.EndianEngine, data []byte) (Var, []byte, error) {
	if len(data) < varCountSize {
		return Var{}, nil, fmt.Errorf("%w: %d bytes, need at least %d for entry count",
			errs.ErrBufferTooSmall, len(data), varCountSize)
	}

	count := int(engine.Uint32(data[:varCountSize]))
	offsetsLen := (count + 1) * varOffsetSize
	if len(data)-varCountSize < offsetsLen {
		return Var{}, nil, fmt.Errorf("%w: %d bytes cannot hold %d offsets",
			errs.ErrBufferTooSmall, len(data), count+1)
	}

	offsets := data[varCountSize : varCountSize+offsetsLen]
	rest := data[varCountSize+offsetsLen:]

	first := engine.Uint32(offsets[:varOffsetSize])
	if first != 0 {
		return Var{}, nil, fmt.Errorf("%w: first offset %d, want 0", errs.ErrInvalidOffsets, first)
	}

	prev := uint32(0)
	for i := 1; i <= count; i++ {
		off := engine.Uint32(offsets[i*varOffsetSize:])
		if off < prev {
			return Var{}, nil, fmt.Errorf("%w: offset %d decreases (%d < %d)",
				errs.ErrInvalidOffsets, i, off, prev)
		}
		prev = off
	}
	if int(prev) > len(rest) {
		return Var{}, nil, fmt.Errorf("%w: last offset %d exceeds payload length %d",
			errs.ErrInvalidOffsets, prev, len(rest))
	}

	v := Var{
		engine:  engine,
		offsets: offsets,
		payload: rest[:prev],
		count:   count,
	}

	return v, rest[prev:], nil
}

// Len returns the number of entries in the sequence.
func (v Var) Len() int {
	return v.count
}

// At returns the entry at the given index as a zero-copy string view, or
// false if the index is out of range.
//
// The returned string aliases the backing buffer and is valid for as long as
// the buffer is.
func (v Var) At(index int) (string, bool) {
	if index < 0 || index >= v.count {
		return "", false
	}

	return v.at(index), true
}

func (v Var) at(index int) string {
	start := v.engine.Uint32(v.offsets[index*varOffsetSize:])
	end := v.engine.Uint32(v.offsets[(index+1)*varOffsetSize:])

	return byteString(v.payload[start:end])
}

// BinarySearch locates key by byte-wise comparison against the entries.
//
// On a match it returns (index, true) for the leftmost equal entry. On a
// miss it returns (insertionPoint, false). The sequence must have been
// constructed with NewSortedVar (or as a map key sequence); searching an
// unsorted sequence yields an unspecified index.
func (v Var) BinarySearch(key string) (int, bool) {
	lo, hi := 0, v.count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if strings.Compare(v.at(mid), key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < v.count && v.at(lo) == key {
		return lo, true
	}

	return lo, false
}

// All returns an iterator over (index, entry) pairs in stored order.
// The iterator is lazy and restartable; yielded strings alias the buffer.
func (v Var) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := 0; i < v.count; i++ {
			if !yield(i, v.at(i)) {
				return
			}
		}
	}
}

// isStrictlyAscending reports whether every entry is strictly greater than
// its predecessor. Map key sequences require this (no duplicate keys).
func (v Var) isStrictlyAscending() bool {
	for i := 1; i < v.count; i++ {
		if v.at(i-1) >= v.at(i) {
			return false
		}
	}

	return true
}

// byteString views b as a string without copying. Safe here because every
// backing buffer is immutable after construction.
func byteString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}
