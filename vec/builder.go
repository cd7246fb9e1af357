package vec

import (
	"fmt"
	"math"

	"github.com/arloliu/zerodex/endian"
	"github.com/arloliu/zerodex/errs"
	"github.com/arloliu/zerodex/internal/pool"
)

// VarBuilder accumulates entries and emits the Var wire form
// (count, offset table, payload). It is the companion encoder for the
// offline generation step; the runtime query path never builds sequences.
//
// A builder is single-use: call AppendTo (or Bytes) once, then Release.
type VarBuilder struct {
	engine  endian.EndianEngine
	ends    []uint32
	payload *pool.ByteBuffer
}

// NewVarBuilder creates a builder that encodes with the given engine.
func NewVarBuilder(engine endian.EndianEngine) *VarBuilder {
	return &VarBuilder{
		engine:  engine,
		payload: pool.GetBakeBuffer(),
	}
}

// Append adds one entry in storage order. Entries intended for binary
// search or map keys must be appended in sorted order; the builder does not
// reorder them.
func (b *VarBuilder) Append(entry string) {
	b.payload.MustWrite([]byte(entry))
	b.ends = append(b.ends, uint32(b.payload.Len())) //nolint: gosec
}

// Len returns the number of entries appended so far.
func (b *VarBuilder) Len() int {
	return len(b.ends)
}

// AppendTo encodes the sequence and appends it to dst, returning the
// extended slice. Fails if the entry count or payload size exceeds the
// uint32 wire range.
func (b *VarBuilder) AppendTo(dst []byte) ([]byte, error) {
	if uint64(len(b.ends)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d entries exceed uint32 range", errs.ErrInvalidOffsets, len(b.ends))
	}
	if uint64(b.payload.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload size %d exceeds uint32 range", errs.ErrInvalidOffsets, b.payload.Len())
	}

	dst = b.engine.AppendUint32(dst, uint32(len(b.ends))) //nolint: gosec
	dst = b.engine.AppendUint32(dst, 0)
	for _, end := range b.ends {
		dst = b.engine.AppendUint32(dst, end)
	}
	dst = append(dst, b.payload.Bytes()...)

	return dst, nil
}

// Bytes encodes the sequence into a freshly allocated slice.
func (b *VarBuilder) Bytes() ([]byte, error) {
	size := varCountSize + (len(b.ends)+1)*varOffsetSize + b.payload.Len()
	return b.AppendTo(make([]byte, 0, size))
}

// Release returns the builder's pooled buffer. The builder must not be used
// afterwards.
func (b *VarBuilder) Release() {
	if b.payload != nil {
		pool.PutBakeBuffer(b.payload)
		b.payload = nil
	}
	b.ends = nil
}
