package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

// recordLike builds bytes shaped like an encoded record: a run of
// consecutive uint64 indices followed by a float64 payload.
func recordLike(n int) []byte {
	b := make([]byte, 0, n*16)
	for i := range n {
		b = binary.LittleEndian.AppendUint64(b, uint64(i+8))
	}
	for i := range n {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(math.Sin(float64(i))))
	}

	return b
}

func TestGetCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)
}

func TestStats(t *testing.T) {
	tests := []struct {
		name    string
		stats   Stats
		ratio   float64
		savings float64
	}{
		{name: "empty", stats: Stats{}, ratio: 0, savings: 0},
		{name: "half", stats: Stats{OriginalSize: 100, CompressedSize: 50}, ratio: 0.5, savings: 50},
		{name: "none", stats: Stats{OriginalSize: 100, CompressedSize: 100}, ratio: 1, savings: 0},
		{name: "expanded", stats: Stats{OriginalSize: 100, CompressedSize: 110}, ratio: 1.1, savings: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.ratio, tt.stats.CompressionRatio(), 1e-9)
			require.InDelta(t, tt.savings, tt.stats.SpaceSavings(), 1e-9)
		})
	}
}

func TestCompressWith(t *testing.T) {
	data := recordLike(1000)

	out, stats, err := CompressWith(format.CompressionZstd, data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	require.Equal(t, int64(len(out)), stats.CompressedSize)
	require.Less(t, stats.CompressionRatio(), 1.0)

	back, err := DecompressWith(format.CompressionZstd, out)
	require.NoError(t, err)
	require.Equal(t, data, back)

	_, _, err = CompressWith(format.CompressionType(0), data)
	require.ErrorIs(t, err, errs.ErrUnsupportedCompression)

	_, err = DecompressWith(format.CompressionS2, []byte("not s2"))
	require.Error(t, err)
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Nil(t, compressed)

			decompressed, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Nil(t, decompressed)

			compressed, err = codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err = codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "magic", data: []byte("VECIO\x00\x00\x00")},
		{name: "record_like_small", data: recordLike(10)},
		{name: "record_like_large", data: recordLike(64 * 1024)},
		{
			name: "incompressible",
			data: func() []byte {
				data := make([]byte, 4096)
				x := uint32(2463534242)
				for i := range data {
					x ^= x << 13
					x ^= x >> 17
					x ^= x << 5
					data[i] = byte(x)
				}

				return data
			}(),
		},
		{name: "zeros", data: make([]byte, 1024*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.True(t, bytes.Equal(tc.data, decompressed), "decompressed data must match original")
				})
			}
		})
	}
}

func TestLZ4_IncompressibleStoredRaw(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	compressed, err := NewLZ4Compressor().Compress(data)
	require.NoError(t, err)
	require.Equal(t, []byte{3, lz4BlockRaw, 0x01, 0x02, 0x03}, compressed)

	compressed[0] = 4
	_, err = NewLZ4Compressor().Decompress(compressed)
	require.ErrorIs(t, err, errLZ4Corrupt)
}

func TestAllCodecs_DecompressLimit(t *testing.T) {
	data := recordLike(256)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.DecompressLimit(compressed, uint64(len(data)))
			require.NoError(t, err)
			require.Equal(t, data, out)

			_, err = codec.DecompressLimit(compressed, uint64(len(data))-1)
			require.ErrorIs(t, err, errs.ErrRecordTooLarge)
		})
	}
}

func TestDecompressWithLimit(t *testing.T) {
	data := recordLike(64)
	out, _, err := CompressWith(format.CompressionS2, data)
	require.NoError(t, err)

	_, err = DecompressWithLimit(format.CompressionS2, out, 100)
	require.ErrorIs(t, err, errs.ErrRecordTooLarge)

	back, err := DecompressWith(format.CompressionS2, out)
	require.NoError(t, err)
	require.Equal(t, data, back)

	require.Equal(t, uint64(4<<30), MaxDecompressedSize)
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{name: "random_bytes", data: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{name: "text_as_compressed", data: []byte("this is not compressed data")},
		{name: "corrupted_header", data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	testData := recordLike(256)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(testData)
			require.NoError(t, err)

			done := make(chan error, numGoroutines*2)
			for range numGoroutines {
				go func() {
					_, err := codec.Compress(testData)
					done <- err
				}()

				go func() {
					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						done <- err
						return
					}
					if !bytes.Equal(testData, decompressed) {
						done <- fmt.Errorf("decompressed data mismatch")
						return
					}
					done <- nil
				}()
			}

			for range numGoroutines * 2 {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestAllCodecs_IndexRunsCompress(t *testing.T) {
	indices := make([]byte, 0, 8*100_000)
	for i := range 100_000 {
		indices = binary.LittleEndian.AppendUint64(indices, uint64(i))
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(indices)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(indices)*3/4)
		})
	}
}
