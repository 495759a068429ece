package compress

import (
	"fmt"

	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
)

// MaxDecompressedSize bounds the output of a single Decompress call. It
// matches the default record size limit of the array decoder.
const MaxDecompressedSize uint64 = 4 << 30

// Compressor compresses a complete encoded vecio record.
//
// Records are dominated by the float payload, which compresses far less than
// text; the dimension index lists, which are usually runs of consecutive
// integers, compress very well.
type Compressor interface {
	// Compress compresses data and returns the result.
	//
	// The returned slice is owned by the caller unless the implementation
	// documents otherwise. The input is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores records produced by the matching Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes, or an error if data is corrupted
	// or was produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)

	// DecompressLimit is Decompress with the output capped at limit bytes.
	// Output over the cap fails with errs.ErrRecordTooLarge, before the full
	// buffer is allocated whenever the format records the original size.
	DecompressLimit(data []byte, limit uint64) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Stats describes the effect of compressing one record.
type Stats struct {
	// Algorithm identifies the compression algorithm used.
	Algorithm format.CompressionType
	// OriginalSize is the size of the encoded record.
	OriginalSize int64
	// CompressedSize is the size after compression.
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
func (s Stats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// CompressWith compresses data with the codec for compressionType and reports sizes.
func CompressWith(compressionType format.CompressionType, data []byte) ([]byte, Stats, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, Stats{}, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%s compression: %w", compressionType, err)
	}

	return out, Stats{
		Algorithm:      compressionType,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}

// DecompressWith decompresses data with the codec for compressionType.
func DecompressWith(compressionType format.CompressionType, data []byte) ([]byte, error) {
	return DecompressWithLimit(compressionType, data, MaxDecompressedSize)
}

// DecompressWithLimit is DecompressWith with the output capped at limit bytes.
func DecompressWithLimit(compressionType format.CompressionType, data []byte, limit uint64) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.DecompressLimit(data, limit)
	if err != nil {
		return nil, fmt.Errorf("%s decompression: %w", compressionType, err)
	}

	return out, nil
}

func errTooLarge(algo string, size, limit uint64) error {
	return fmt.Errorf("%w: %s output of %d bytes exceeds %d", errs.ErrRecordTooLarge, algo, size, limit)
}
