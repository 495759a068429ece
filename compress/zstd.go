package compress

// ZstdCompressor provides Zstandard compression.
//
// The default build uses the pure-Go klauspost/compress implementation; the
// gozstd build tag switches to the cgo libzstd binding.
//
// Best for archived records, where ratio matters more than speed.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
