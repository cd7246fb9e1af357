// Package compress provides the compression codecs used by the zerodex
// envelope layer.
//
// Baked locale/calendar payloads are sealed by an offline generation step
// and opened exactly once at load time, so compression trades a one-time
// decompression cost at load for a smaller embedded buffer. The runtime
// query path never touches this package: with CompressionNone the opened
// payload aliases the sealed buffer directly.
package compress

import (
	"fmt"

	"github.com/arloliu/zerodex/format"
)

// Compressor compresses a complete baked payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a compressed baked payload.
//
// Implementations must be safe for concurrent use; the envelope layer may
// open buffers from multiple goroutines during parallel test runs.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// The input data must have been compressed with the same algorithm.
	// Returns an error if the data is corrupted or uses an incompatible
	// format.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
