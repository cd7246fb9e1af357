// Package calendar provides zero-copy lookup structures for calendar
// metadata: era start-date tables resolved by binary search, and per-region
// week data.
//
// An era applies from its start date, inclusive, until superseded by the
// next era's start date. Era tables are baked offline, sealed in an
// envelope, and loaded once; every query afterwards is an allocation-free
// read over the sealed buffer.
package calendar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/schema"
)

// EraCodeSize is the fixed on-disk size of an era code in bytes.
const EraCodeSize = 16

// EraCode is a short era name (e.g. "heisei") stored as a fixed-capacity,
// NUL-padded byte array. The zero value is not a valid code.
type EraCode [EraCodeSize]byte

// NewEraCode builds an EraCode from s.
//
// Returns errs.ErrEraCodeTooLong if s exceeds EraCodeSize bytes, or
// errs.ErrInvalidEraCode if s is empty or contains a NUL byte.
func NewEraCode(s string) (EraCode, error) {
	if len(s) > EraCodeSize {
		return EraCode{}, fmt.Errorf("%w: %q is %d bytes", errs.ErrEraCodeTooLong, s, len(s))
	}
	if len(s) == 0 || strings.IndexByte(s, 0) >= 0 {
		return EraCode{}, fmt.Errorf("%w: %q", errs.ErrInvalidEraCode, s)
	}

	var code EraCode
	copy(code[:], s)

	return code, nil
}

// MustEraCode is like NewEraCode but panics on error. It is intended for
// code-constant era names in generators and tests.
func MustEraCode(s string) EraCode {
	code, err := NewEraCode(s)
	if err != nil {
		panic(err)
	}

	return code
}

// String returns the era code up to its NUL padding.
func (c EraCode) String() string {
	for i, b := range c {
		if b == 0 {
			return string(c[:i])
		}
	}

	return string(c[:])
}

// checkEraCode is the schema domain check for the on-disk code field: the
// code must be non-empty and NUL bytes may only appear as trailing padding.
func checkEraCode(raw []byte) error {
	if raw[0] == 0 {
		return fmt.Errorf("empty era code")
	}
	padding := false
	for _, b := range raw {
		if b == 0 {
			padding = true
		} else if padding {
			return fmt.Errorf("interior NUL in era code")
		}
	}

	return nil
}

// EraStartDate is the date at which an era starts.
//
// The field order is load-bearing: dates compare by year, then month, then
// day, which is what makes era tables binary-searchable by date.
type EraStartDate struct {
	// Year is the proleptic Gregorian year, negative for BCE.
	Year int32
	// Month is the start month, 1-12.
	Month uint8
	// Day is the start day, 1-31.
	Day uint8
}

// Compare orders dates by year, then month, then day. It returns a negative
// value if d precedes o, zero if equal, positive if d follows o.
func (d EraStartDate) Compare(o EraStartDate) int {
	if d.Year != o.Year {
		if d.Year < o.Year {
			return -1
		}
		return 1
	}
	if d.Month != o.Month {
		if d.Month < o.Month {
			return -1
		}
		return 1
	}
	if d.Day != o.Day {
		if d.Day < o.Day {
			return -1
		}
		return 1
	}

	return 0
}

// String formats the date in the same [-]YYYY-MM-DD form accepted by
// ParseEraStartDate.
func (d EraStartDate) String() string {
	year := int64(d.Year)
	sign := ""
	if year < 0 {
		sign = "-"
		year = -year
	}

	return fmt.Sprintf("%s%04d-%02d-%02d", sign, year, d.Month, d.Day)
}

// ParseEraStartDate parses a date of the form [-]YYYY-MM-DD. A leading '-'
// negates the year. Any missing or non-numeric field fails with
// errs.ErrInvalidEraDate; there are no partial results.
//
// This is the authoring-path parser used when ingesting era boundary
// definitions; it is never reachable from validated binary data.
func ParseEraStartDate(s string) (EraStartDate, error) {
	input := s
	sign := int64(1)
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		s = rest
		sign = -1
	}

	parts := strings.Split(s, "-")
	if len(parts) < 3 {
		return EraStartDate{}, fmt.Errorf("%w: %q", errs.ErrInvalidEraDate, input)
	}

	year, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return EraStartDate{}, fmt.Errorf("%w: year in %q", errs.ErrInvalidEraDate, input)
	}
	month, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return EraStartDate{}, fmt.Errorf("%w: month in %q", errs.ErrInvalidEraDate, input)
	}
	day, err := strconv.ParseUint(parts[2], 10, 8)
	if err != nil {
		return EraStartDate{}, fmt.Errorf("%w: day in %q", errs.ErrInvalidEraDate, input)
	}

	return EraStartDate{
		Year:  int32(sign * year), //nolint: gosec
		Month: uint8(month),
		Day:   uint8(day),
	}, nil
}

// EraEntry pairs an era start date with its code. It is the fixed-width
// record type of the era table.
type EraEntry struct {
	Start EraStartDate
	Code  EraCode
}

// EraEntrySchema declares the 24-byte on-disk era entry layout:
//
//	Year:  int32   offset 0, 4 bytes
//	Month: uint8   offset 4, 1 byte, domain 1-12
//	Day:   uint8   offset 5, 1 byte, domain 1-31
//	Pad:   zeros   offset 6, 2 bytes
//	Code:  bytes   offset 8, 16 bytes, NUL-padded, non-empty
var EraEntrySchema = schema.MustNew(
	schema.Field{Name: "year", Kind: schema.KindInt32},
	schema.Field{Name: "month", Kind: schema.KindUint8, Min: 1, Max: 12},
	schema.Field{Name: "day", Kind: schema.KindUint8, Min: 1, Max: 31},
	schema.Field{Name: "pad", Kind: schema.KindPad, Width: 2},
	schema.Field{Name: "code", Kind: schema.KindBytes, Width: EraCodeSize, Check: checkEraCode},
)

// EraEntryCodec decodes and encodes era entries against EraEntrySchema.
var EraEntryCodec = schema.Codec[EraEntry]{
	Schema: EraEntrySchema,
	Decode: func(raw []byte, engine endian.EndianEngine) EraEntry {
		var entry EraEntry
		entry.Start.Year = int32(engine.Uint32(raw[0:4])) //nolint: gosec
		entry.Start.Month = raw[4]
		entry.Start.Day = raw[5]
		copy(entry.Code[:], raw[8:8+EraCodeSize])

		return entry
	},
	Encode: func(entry EraEntry, raw []byte, engine endian.EndianEngine) {
		engine.PutUint32(raw[0:4], uint32(entry.Start.Year)) //nolint: gosec
		raw[4] = entry.Start.Month
		raw[5] = entry.Start.Day
		raw[6], raw[7] = 0, 0
		copy(raw[8:8+EraCodeSize], entry.Code[:])
	},
}
