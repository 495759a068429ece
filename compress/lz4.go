package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 block layout:
//
//	[uvarint original size][mode][body]
//
// mode is lz4BlockRaw when the input did not compress, in which case body is
// the input itself.
const (
	lz4BlockRaw        byte = 0
	lz4BlockCompressed byte = 1
)

var errLZ4Corrupt = errors.New("lz4: corrupt block")

// LZ4Compressor provides LZ4 block compression prefixed with the original size,
// so decompression allocates exactly once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 block compression.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := binary.AppendUvarint(nil, uint64(len(data)))
	prefix := len(dst) + 1
	dst = append(dst, lz4BlockCompressed)
	dst = append(dst, make([]byte, lz4.CompressBlockBound(len(data)))...)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, err
	}

	// CompressBlock reports 0 for incompressible input
	if n == 0 || n >= len(data) {
		dst[prefix-1] = lz4BlockRaw
		return append(dst[:prefix], data...), nil
	}

	return dst[:prefix+n], nil
}

// Decompress decompresses data produced by Compress.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecompressedSize)
}

// DecompressLimit checks the size prefix against limit before allocating.
func (c LZ4Compressor) DecompressLimit(data []byte, limit uint64) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, k := binary.Uvarint(data)
	if k <= 0 || k >= len(data) {
		return nil, errLZ4Corrupt
	}
	if size > limit {
		return nil, errTooLarge("lz4", size, limit)
	}

	mode, body := data[k], data[k+1:]
	switch mode {
	case lz4BlockRaw:
		if uint64(len(body)) != size {
			return nil, errLZ4Corrupt
		}

		return append([]byte(nil), body...), nil
	case lz4BlockCompressed:
		if size == 0 {
			return nil, errLZ4Corrupt
		}
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(n) != size {
			return nil, errLZ4Corrupt
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: mode %d", errLZ4Corrupt, mode)
	}
}
