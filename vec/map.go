package vec

import (
	"fmt"
	"iter"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/schema"
)

// Map is a sorted associative view pairing a variable-length key sequence
// with a fixed-width value sequence of matching length.
//
// Wire layout: a Var key sequence immediately followed by the value records.
// Keys must be strictly ascending byte-wise (no duplicates); both invariants
// are checked once at construction.
type Map[V any] struct {
	keys   Var
	values Fixed[V]
}

// NewMap wraps data as a sorted map whose values are decoded by codec.
//
// Construction fails with a layout error if the key sequence is malformed,
// the keys are not strictly ascending, the trailing value payload fails the
// codec's schema validation, or the key and value counts differ.
func NewMap[V any](codec schema.Codec[V], engine endian.EndianEngine, data []byte) (Map[V], error) {
	keys, rest, err := parseVar(engine, data)
	if err != nil {
		return Map[V]{}, fmt.Errorf("map keys: %w", err)
	}
	if !keys.isStrictlyAscending() {
		return Map[V]{}, fmt.Errorf("map keys: %w", errs.ErrEntriesNotSorted)
	}

	values, err := NewFixed(codec, engine, rest)
	if err != nil {
		return Map[V]{}, fmt.Errorf("map values: %w", err)
	}
	if keys.Len() != values.Len() {
		return Map[V]{}, fmt.Errorf("%w: %d keys, %d values",
			errs.ErrKeyValueCountMismatch, keys.Len(), values.Len())
	}

	return Map[V]{keys: keys, values: values}, nil
}

// Len returns the number of key/value pairs.
func (m Map[V]) Len() int {
	return m.keys.Len()
}

// Get returns the value associated with key, or false if the key is absent.
// Lookup is a binary search over the key sequence.
func (m Map[V]) Get(key string) (V, bool) {
	idx, found := m.keys.BinarySearch(key)
	if !found {
		var zero V
		return zero, false
	}

	return m.values.at(idx), true
}

// ContainsKey reports whether key is present.
func (m Map[V]) ContainsKey(key string) bool {
	_, found := m.keys.BinarySearch(key)
	return found
}

// All returns an iterator over (key, value) pairs in ascending key order.
// The iterator is lazy and restartable; yielded keys alias the buffer.
func (m Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for i := 0; i < m.keys.Len(); i++ {
			if !yield(m.keys.at(i), m.values.at(i)) {
				return
			}
		}
	}
}

// VarMap is a sorted associative view pairing a variable-length key sequence
// with a variable-length value sequence of matching length.
//
// Wire layout: a Var key sequence immediately followed by a Var value
// sequence. Keys must be strictly ascending byte-wise; values carry no
// ordering requirement.
type VarMap struct {
	keys   Var
	values Var
}

// NewVarMap wraps data as a sorted map with string values.
//
// Construction fails with a layout error if either sequence is malformed,
// the keys are not strictly ascending, the counts differ, or the value
// sequence leaves trailing bytes.
func NewVarMap(engine endian.EndianEngine, data []byte) (VarMap, error) {
	keys, rest, err := parseVar(engine, data)
	if err != nil {
		return VarMap{}, fmt.Errorf("map keys: %w", err)
	}
	if !keys.isStrictlyAscending() {
		return VarMap{}, fmt.Errorf("map keys: %w", errs.ErrEntriesNotSorted)
	}

	values, err := NewVar(engine, rest)
	if err != nil {
		return VarMap{}, fmt.Errorf("map values: %w", err)
	}
	if keys.Len() != values.Len() {
		return VarMap{}, fmt.Errorf("%w: %d keys, %d values",
			errs.ErrKeyValueCountMismatch, keys.Len(), values.Len())
	}

	return VarMap{keys: keys, values: values}, nil
}

// Len returns the number of key/value pairs.
func (m VarMap) Len() int {
	return m.keys.Len()
}

// Get returns the value associated with key as a zero-copy string view, or
// false if the key is absent.
func (m VarMap) Get(key string) (string, bool) {
	idx, found := m.keys.BinarySearch(key)
	if !found {
		return "", false
	}

	return m.values.at(idx), true
}

// ContainsKey reports whether key is present.
func (m VarMap) ContainsKey(key string) bool {
	_, found := m.keys.BinarySearch(key)
	return found
}

// All returns an iterator over (key, value) pairs in ascending key order.
// The iterator is lazy and restartable; yielded strings alias the buffer.
func (m VarMap) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i := 0; i < m.keys.Len(); i++ {
			if !yield(m.keys.at(i), m.values.at(i)) {
				return
			}
		}
	}
}
