// Package vec provides zero-copy, immutable sequence and map views over
// validated byte buffers.
//
// All types in this package borrow the buffer they are constructed from and
// never copy or modify it. Validation happens once, inside the constructor;
// a constructor error means the buffer must not be used, and a constructed
// value never fails on access. The backing buffer must outlive every view
// constructed from it.
//
// All views are safe for concurrent readers without synchronization: every
// method is a pure read over immutable state.
package vec

import (
	"iter"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/schema"
)

// Fixed is a zero-copy view of a byte buffer as an ordered sequence of
// fixed-width records of type T.
type Fixed[T any] struct {
	codec  schema.Codec[T]
	engine endian.EndianEngine
	data   []byte
	count  int
}

// NewFixed wraps data as a sequence of records decoded by codec.
//
// The buffer is validated once against the codec's schema (length alignment
// and per-field domains); construction fails on any violation and the
// returned sequence never fails on access afterwards.
func NewFixed[T any](codec schema.Codec[T], engine endian.EndianEngine, data []byte) (Fixed[T], error) {
	if err := codec.Schema.Validate(data, engine); err != nil {
		return Fixed[T]{}, err
	}

	return Fixed[T]{
		codec:  codec,
		engine: engine,
		data:   data,
		count:  len(data) / codec.Width(),
	}, nil
}

// Len returns the number of records in the sequence.
func (s Fixed[T]) Len() int {
	return s.count
}

// At returns the record at the given index, or false if the index is out of
// range.
func (s Fixed[T]) At(index int) (T, bool) {
	if index < 0 || index >= s.count {
		var zero T
		return zero, false
	}

	return s.at(index), true
}

// at decodes without bounds checking; callers guarantee the index is valid.
func (s Fixed[T]) at(index int) T {
	return s.codec.ReadAt(s.data, index, s.engine)
}

// BinarySearch locates a record using the given comparison function, which
// must return a negative value when its argument precedes the target, zero
// on a match, and a positive value when it follows the target. The sequence
// must be sorted consistently with cmp.
//
// On a match it returns (index, true) for the leftmost matching record. On a
// miss it returns (insertionPoint, false), the index at which a matching
// record would be inserted to preserve order.
func (s Fixed[T]) BinarySearch(cmp func(T) int) (int, bool) {
	lo, hi := 0, s.count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(s.at(mid)) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < s.count && cmp(s.at(lo)) == 0 {
		return lo, true
	}

	return lo, false
}

// All returns an iterator over (index, record) pairs in stored order.
// The iterator is lazy and restartable.
func (s Fixed[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, s.at(i)) {
				return
			}
		}
	}
}
