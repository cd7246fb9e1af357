// Package locale provides the zero-copy locale parent map and the fallback
// chain walker built on it.
//
// A locale's fallback chain is the ordered sequence of progressively less
// specific identifiers used when exact-locale data is unavailable: the
// locale itself, then its parent, and so on up to the root. Parent links are
// baked offline into a sorted map, sealed in an envelope, and loaded once;
// every query afterwards is an allocation-free read.
package locale

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/envelope"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/format"
	"github.com/arloliu/zerodex/internal/pool"
	"github.com/arloliu/zerodex/vec"
)

// MaxChainSteps bounds the number of parent lookups a single chain walk may
// perform. Acyclic parent data never comes close to this bound; exceeding it
// means the baked map is cyclic, which the walker surfaces as
// errs.ErrFallbackCycle rather than truncating silently.
const MaxChainSteps = 32

// ParentMap is an immutable, zero-copy map from locale identifier to parent
// locale identifier. Locales whose parent is the root are absent from the
// map.
//
// Locale identifiers are treated as opaque, pre-normalized, byte-comparable
// strings; this package performs no parsing or canonicalization.
//
// A ParentMap is safe for concurrent readers; it borrows the buffer it was
// loaded from, which must outlive it.
type ParentMap struct {
	m vec.VarMap
}

// LoadParentMap opens a sealed parent map buffer and validates it.
//
// Validation covers the envelope (magic, flags, checksum) and the map layout
// (offset tables, key/value parity, strictly ascending keys). Cycle-freedom
// of the parent links is a producer invariant and is not verified here; the
// chain walker guards against it at query time instead.
func LoadParentMap(buf []byte) (ParentMap, error) {
	payload, engine, err := envelope.Open(buf, format.PayloadParents)
	if err != nil {
		return ParentMap{}, fmt.Errorf("parent map: %w", err)
	}

	return NewParentMap(payload, engine)
}

// NewParentMap wraps a raw (already unsealed) parent map payload.
func NewParentMap(payload []byte, engine endian.EndianEngine) (ParentMap, error) {
	m, err := vec.NewVarMap(engine, payload)
	if err != nil {
		return ParentMap{}, fmt.Errorf("parent map: %w", err)
	}

	return ParentMap{m: m}, nil
}

// Len returns the number of parent links in the map.
func (p ParentMap) Len() int {
	return p.m.Len()
}

// Parent returns the parent of the given locale, or false if the locale has
// no explicit parent (its parent is the root).
//
// The returned string aliases the backing buffer.
func (p ParentMap) Parent(locale string) (string, bool) {
	return p.m.Get(locale)
}

// ContainsLocale reports whether the locale has an explicit parent link.
func (p ParentMap) ContainsLocale(locale string) bool {
	return p.m.ContainsKey(locale)
}

// All returns an iterator over (locale, parent) pairs in ascending locale
// order. The iterator is lazy and restartable.
func (p ParentMap) All() iter.Seq2[string, string] {
	return p.m.All()
}

// Chain returns an iterator over the fallback chain of the given locale: the
// locale itself first, then each successive parent, ending at the locale
// whose parent is the root.
//
// For a fixed map and starting locale the chain is always identical. If the
// walk exceeds MaxChainSteps the iterator yields a final
// ("", errs.ErrFallbackCycle) pair; every preceding pair carries a nil
// error.
func (p ParentMap) Chain(locale string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if !yield(locale, nil) {
			return
		}

		current := locale
		for step := 0; ; step++ {
			parent, ok := p.m.Get(current)
			if !ok {
				return
			}
			if step >= MaxChainSteps {
				yield("", fmt.Errorf("%w: walked %d steps from %q", errs.ErrFallbackCycle, step, locale))
				return
			}
			if !yield(parent, nil) {
				return
			}
			current = parent
		}
	}
}

// ChainSlice collects the fallback chain into a slice. On a cycle it returns
// the locales walked so far together with errs.ErrFallbackCycle.
func (p ParentMap) ChainSlice(locale string) ([]string, error) {
	chain := make([]string, 0, 4)
	for loc, err := range p.Chain(locale) {
		if err != nil {
			return chain, err
		}
		chain = append(chain, loc)
	}

	return chain, nil
}

// BuildParentMap encodes parent links into a sealed parent map buffer.
//
// This is the companion encoder for the offline generation step. Locales are
// sorted byte-wise; map input guarantees key uniqueness. Cycle-freedom of
// the links is the producer's responsibility and is not checked here.
func BuildParentMap(parents map[string]string, opts ...envelope.Option) ([]byte, error) {
	locales := make([]string, 0, len(parents))
	for locale := range parents {
		locales = append(locales, locale)
	}
	slices.Sort(locales)

	engine := envelope.EngineOf(opts...)
	keyBuilder := vec.NewVarBuilder(engine)
	defer keyBuilder.Release()
	valueBuilder := vec.NewVarBuilder(engine)
	defer valueBuilder.Release()

	for _, locale := range locales {
		keyBuilder.Append(locale)
		valueBuilder.Append(parents[locale])
	}

	buf := pool.GetBakeBuffer()
	defer pool.PutBakeBuffer(buf)

	payload, err := keyBuilder.AppendTo(buf.Bytes())
	if err != nil {
		return nil, err
	}
	payload, err = valueBuilder.AppendTo(payload)
	if err != nil {
		return nil, err
	}

	return envelope.Seal(format.PayloadParents, payload, opts...)
}
