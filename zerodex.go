// Package zerodex provides compact, zero-copy lookup structures for locale
// and calendar metadata that are baked into a binary at build time and
// queried at runtime without allocation or parsing overhead.
//
// Two families of structures are provided:
//
//   - Era tables: sorted (start date, era code) sequences resolved by binary
//     search, answering "which era is active on this date".
//   - Locale maps: sorted string maps for parent-locale fallback chains and
//     per-region week data.
//
// # Data Flow
//
// An offline generation step builds a table with the Build* companion
// encoders and embeds the resulting sealed buffer in the binary. At startup
// the buffer is loaded exactly once — all structural validation (envelope
// checksum, record layout, field domains, sort order) happens there. Every
// query afterwards is a pure, allocation-free read over the shared buffer,
// safe from any number of goroutines without locking.
//
//	sealed, _ := calendar.BuildEraTable([]calendar.EraEntry{
//	    {Start: calendar.EraStartDate{Year: 1989, Month: 1, Day: 8}, Code: calendar.MustEraCode("heisei")},
//	    {Start: calendar.EraStartDate{Year: 2019, Month: 5, Day: 1}, Code: calendar.MustEraCode("reiwa")},
//	})
//
//	table, _ := zerodex.LoadEraTable(sealed)
//	code, _ := table.Resolve(calendar.EraStartDate{Year: 2020, Month: 1, Day: 1})
//	fmt.Println(code) // reiwa
//
// Fallback chains walk the parent map until the root:
//
//	parents, _ := zerodex.LoadParentMap(sealedParents)
//	for loc, err := range parents.Chain("en-US") {
//	    if err != nil {
//	        break // corrupt (cyclic) data
//	    }
//	    fmt.Println(loc) // en-US, then en
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the calendar
// and locale packages. For the underlying building blocks — record schemas,
// zero-copy sequences and maps, the sealed envelope format — use the
// schema, vec, and envelope packages directly.
package zerodex

import (
	"github.com/arloliu/zerodex/calendar"
	"github.com/arloliu/zerodex/locale"
)

// LoadEraTable opens and validates a sealed era table buffer.
// The returned table borrows buf, which must outlive it.
func LoadEraTable(buf []byte) (calendar.EraTable, error) {
	return calendar.LoadEraTable(buf)
}

// LoadParentMap opens and validates a sealed locale parent map buffer.
// The returned map borrows buf, which must outlive it.
func LoadParentMap(buf []byte) (locale.ParentMap, error) {
	return locale.LoadParentMap(buf)
}

// LoadWeekDataMap opens and validates a sealed week data buffer.
// The returned map borrows buf, which must outlive it.
func LoadWeekDataMap(buf []byte) (calendar.WeekDataMap, error) {
	return calendar.LoadWeekDataMap(buf)
}
