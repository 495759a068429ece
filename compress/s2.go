package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression, a faster Snappy extension.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decompresses the input data using S2 decompression.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecompressedSize)
}

// DecompressLimit reads the decoded length from the block header and rejects
// it before allocating when it exceeds limit.
func (c S2Compressor) DecompressLimit(data []byte, limit uint64) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if uint64(n) > limit {
		return nil, errTooLarge("s2", uint64(n), limit)
	}

	return s2.Decode(make([]byte, n), data)
}
