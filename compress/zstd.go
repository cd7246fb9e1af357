package compress

// ZstdCompressor provides Zstandard compression for baked payloads.
//
// Zstd gives the best compression ratio of the supported codecs and suits
// buffers that are generated once and embedded in a binary. Two backends
// implement the methods, selected at build time:
//
//   - cgo builds use github.com/valyala/gozstd (libzstd bindings)
//   - non-cgo builds use the pure-Go github.com/klauspost/compress/zstd
//
// Both backends produce standard Zstandard frames, so buffers sealed by one
// can be opened by the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
