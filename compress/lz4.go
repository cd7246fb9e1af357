package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 block framing bytes. The raw LZ4 block format records neither the
// decompressed size nor whether the block compressed at all
// (lz4.CompressBlock reports incompressible input as a zero-length block),
// so each payload carries a one-byte marker and, for compressed blocks, the
// uncompressed size.
const (
	lz4BlockRaw        = 0x0 // payload stored verbatim
	lz4BlockCompressed = 0x1 // uint32 uncompressed size, then the block
)

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
//
// Uses a pooled lz4.Compressor for better performance. Input that does not
// compress is stored verbatim behind a marker byte, so tiny payloads always
// round-trip.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 5+lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[5:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		// Incompressible input; store it verbatim.
		out := make([]byte, 1+len(data))
		out[0] = lz4BlockRaw
		copy(out[1:], data)

		return out, nil
	}

	dst[0] = lz4BlockCompressed
	size := uint32(len(data)) //nolint: gosec
	dst[1] = byte(size)
	dst[2] = byte(size >> 8)
	dst[3] = byte(size >> 16)
	dst[4] = byte(size >> 24)

	return dst[:5+n], nil
}

// Decompress decompresses the input data using LZ4 block decompression.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4BlockRaw:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])

		return out, nil
	case lz4BlockCompressed:
		if len(data) < 5 {
			return nil, fmt.Errorf("lz4 block truncated: %d bytes", len(data))
		}
		size := uint32(data[1]) | uint32(data[2])<<8 | uint32(data[3])<<16 | uint32(data[4])<<24
		buf := make([]byte, size)
		n, err := lz4.UncompressBlock(data[5:], buf)
		if err != nil {
			return nil, err
		}

		return buf[:n], nil
	default:
		return nil, fmt.Errorf("lz4 block has unknown marker 0x%02X", data[0])
	}
}
