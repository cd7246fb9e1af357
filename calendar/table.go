package calendar

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

// EraTable is an immutable, zero-copy view of a baked era table: era entries
// sorted strictly ascending by start date.
//
// An EraTable is safe for concurrent readers; every method is a pure read.
// It borrows the buffer it was loaded from, which must outlive it.
type EraTable struct {
	entries vec.Fixed[EraEntry]
}

// LoadEraTable opens a sealed era table buffer and validates it.
//
// Validation covers the envelope (magic, flags, checksum), the record layout
// (width alignment, field domains), and the strict ascending order of start
// dates. A table that loads successfully never fails on access.
func LoadEraTable(buf []byte) (EraTable, error) {
	payload, engine, err := envelope.Open(buf, format.PayloadEras)
	if err != nil {
		return EraTable{}, fmt.Errorf("era table: %w", err)
	}

	return NewEraTable(payload, engine)
}

// NewEraTable wraps a raw (already unsealed) era table payload.
func NewEraTable(payload []byte, engine endian.EndianEngine) (EraTable, error) {
	entries, err := vec.NewFixed(EraEntryCodec, engine, payload)
	if err != nil {
		return EraTable{}, fmt.Errorf("era table: %w", err)
	}

	// Duplicate start dates are a producer-side invariant violation, so
	// they are rejected here rather than tie-broken at query time.
	for i := 1; i < entries.Len(); i++ {
		prev, _ := entries.At(i - 1)
		cur, _ := entries.At(i)
		if prev.Start.Compare(cur.Start) >= 0 {
			return EraTable{}, fmt.Errorf("era table: %w: entry %d (%s) not after entry %d (%s)",
				errs.ErrEntriesNotSorted, i, cur.Start, i-1, prev.Start)
		}
	}

	return EraTable{entries: entries}, nil
}

// Len returns the number of eras in the table.
func (t EraTable) Len() int {
	return t.entries.Len()
}

// At returns the era entry at the given index, or false if out of range.
func (t EraTable) At(index int) (EraEntry, bool) {
	return t.entries.At(index)
}

// All returns an iterator over (index, entry) pairs in ascending start-date
// order. The iterator is lazy and restartable.
func (t EraTable) All() iter.Seq2[int, EraEntry] {
	return t.entries.All()
}

// Resolve returns the code of the era active on the given date: the entry
// with the greatest start date not exceeding it. A date exactly equal to an
// entry's start date resolves to that entry (the boundary is inclusive).
//
// Returns errs.ErrNoEraCovers if the date precedes every known era start.
func (t EraTable) Resolve(date EraStartDate) (EraCode, error) {
	idx, found := t.entries.BinarySearch(func(e EraEntry) int {
		return e.Start.Compare(date)
	})
	if found {
		entry, _ := t.entries.At(idx)
		return entry.Code, nil
	}
	if idx == 0 {
		return EraCode{}, fmt.Errorf("%w: %s", errs.ErrNoEraCovers, date)
	}

	entry, _ := t.entries.At(idx - 1)

	return entry.Code, nil
}

// BuildEraTable encodes entries into a sealed era table buffer.
//
// This is the companion encoder for the offline generation step. Entries are
// sorted by start date; duplicate start dates fail with
// errs.ErrDuplicateEntry, and out-of-domain dates or codes fail before
// anything is encoded.
func BuildEraTable(entries []EraEntry, opts ...envelope.Option) ([]byte, error) {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b EraEntry) int {
		return a.Start.Compare(b.Start)
	})

	for i, entry := range sorted {
		if entry.Start.Month < 1 || entry.Start.Month > 12 || entry.Start.Day < 1 || entry.Start.Day > 31 {
			return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEraDate, entry.Start)
		}
		if err := checkEraCode(entry.Code[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", errs.ErrInvalidEraCode, err)
		}
		if i > 0 && sorted[i-1].Start.Compare(entry.Start) == 0 {
			return nil, fmt.Errorf("%w: start date %s", errs.ErrDuplicateEntry, entry.Start)
		}
	}

	engine := envelope.EngineOf(opts...)
	buf := pool.GetBakeBuffer()
	defer pool.PutBakeBuffer(buf)

	buf.Grow(len(sorted) * EraEntrySchema.Width())
	for _, entry := range sorted {
		buf.B = EraEntryCodec.Append(buf.B, entry, engine)
	}

	return envelope.Seal(format.PayloadEras, buf.Bytes(), opts...)
}
