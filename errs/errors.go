// Package errs defines the sentinel errors shared across zerodex packages.
//
// Errors are grouped by the phase in which they can occur:
//
//   - Layout errors are returned by Load/New constructors when a buffer
//     fails structural validation. They are never returned by queries on a
//     successfully constructed structure.
//   - Query errors are returned by lookups on valid structures.
//   - Authoring errors are returned by the builder/parsing path used by the
//     offline generation step; they are unreachable from validated binary
//     data.
//
// Packages wrap these sentinels with additional context via fmt.Errorf and
// %w, so callers should match with errors.Is rather than equality.
package errs

import "errors"

// Layout errors, raised only at construction/validation time.
var (
	// ErrBufferTooSmall indicates the buffer is shorter than the minimum
	// required for its declared structure.
	ErrBufferTooSmall = errors.New("buffer too small")

	// ErrInvalidMagicNumber indicates the envelope magic number is wrong.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrInvalidHeaderFlags indicates the envelope flag byte holds an
	// unknown endianness or compression value.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidPayloadType indicates the envelope payload type does not
	// match the type the caller asked to open.
	ErrInvalidPayloadType = errors.New("invalid payload type")

	// ErrInvalidPayloadSize indicates the decompressed payload size does
	// not match the size recorded in the envelope header.
	ErrInvalidPayloadSize = errors.New("invalid payload size")

	// ErrChecksumMismatch indicates the payload checksum does not match
	// the checksum recorded in the envelope header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrMisalignedPayload indicates a fixed-width record payload whose
	// length is not a multiple of the record width.
	ErrMisalignedPayload = errors.New("payload not a multiple of record width")

	// ErrInvalidOffsets indicates a variable-length sequence whose offset
	// table is not monotonically non-decreasing, does not start at zero,
	// or does not end at the payload length.
	ErrInvalidOffsets = errors.New("invalid offset table")

	// ErrEntriesNotSorted indicates a sequence that must be strictly
	// ascending contains an out-of-order or duplicate entry.
	ErrEntriesNotSorted = errors.New("entries not strictly ascending")

	// ErrKeyValueCountMismatch indicates a map whose key and value
	// sequences have different lengths.
	ErrKeyValueCountMismatch = errors.New("key/value count mismatch")

	// ErrFieldOutOfRange indicates a record field whose byte pattern is
	// outside the field's declared domain.
	ErrFieldOutOfRange = errors.New("record field out of range")

	// ErrInvalidSchema indicates a schema definition with no fields or an
	// illegal field width.
	ErrInvalidSchema = errors.New("invalid record schema")
)

// Query errors, returned by lookups on successfully loaded structures.
var (
	// ErrNoEraCovers indicates the query date precedes every known era
	// start date. Recoverable; callers may treat it as "unknown era".
	ErrNoEraCovers = errors.New("date precedes all known eras")

	// ErrFallbackCycle indicates the parent-chain walk exceeded its step
	// bound, which only happens when the parent map data is cyclic.
	ErrFallbackCycle = errors.New("fallback parent chain exceeds step bound")
)

// Authoring errors, returned by the builder and text-parsing path.
var (
	// ErrInvalidEraDate indicates a date string that does not match the
	// [-]YYYY-MM-DD form or holds a non-numeric or out-of-range field.
	ErrInvalidEraDate = errors.New("invalid era date string")

	// ErrEraCodeTooLong indicates an era code longer than 16 bytes.
	ErrEraCodeTooLong = errors.New("era code exceeds 16 bytes")

	// ErrInvalidEraCode indicates an era code that is empty or contains a
	// NUL byte.
	ErrInvalidEraCode = errors.New("invalid era code")

	// ErrDuplicateEntry indicates the builder input contains two entries
	// with the same key or start date.
	ErrDuplicateEntry = errors.New("duplicate entry")
)
