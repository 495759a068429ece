//go:build !(gozstd && cgo)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders; a decoder runs allocation-free once warmed up.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(MaxDecompressedSize),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// zstdEncoderPool pools zstd encoders.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false), // records carry their own checksums
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

// Compress compresses the input data using a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	compressed := encoder.EncodeAll(data, nil)

	return compressed, nil
}

// Decompress decompresses Zstd-compressed data using a pooled decoder.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.DecompressLimit(data, MaxDecompressedSize)
}

// DecompressLimit rejects frames whose declared content size exceeds limit
// before decoding, and checks the decoded length for frames without one.
func (c ZstdCompressor) DecompressLimit(data []byte, limit uint64) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var h zstd.Header
	if err := h.Decode(data); err == nil && h.HasFCS && h.FrameContentSize > limit {
		return nil, errTooLarge("zstd", h.FrameContentSize, limit)
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if uint64(len(decompressed)) > limit {
		return nil, errTooLarge("zstd", uint64(len(decompressed)), limit)
	}

	return decompressed, nil
}
