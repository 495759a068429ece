//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data with libzstd at level 3.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses Zstd-compressed data with libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecompressedSize)
}

// DecompressLimit decompresses with libzstd and rejects output over limit.
func (c ZstdCompressor) DecompressLimit(data []byte, limit uint64) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if uint64(len(out)) > limit {
		return nil, errTooLarge("zstd", uint64(len(out)), limit)
	}

	return out, nil
}
