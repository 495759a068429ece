// Package vecio reads and writes VECIO records: self-describing binary
// files holding one dense N-dimensional array of float32 or float64 values
// together with string metadata and named, indexed dimensions.
//
// # Core Features
//
//   - Fixed 60-byte little-endian header with section sizes
//   - key\0value\0 metadata and 128-byte named dimension descriptors
//   - Identical bytes on every host: big-endian hosts swap per element
//   - xxHash64-based checksums over metadata, payload, and the whole record
//   - Optional whole-record compression (Zstd, S2, LZ4) chosen by file extension
//   - Pluggable object stores: local directory, memory, MinIO/S3
//
// # Basic Usage
//
// Writing a one-dimensional array:
//
//	arr := vecio.NewFloat64()
//	_ = arr.SetMeta("Name", "test")
//	_ = arr.AddDimRange("testdim", 8, 10)
//	arr.SetData([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
//	err := vecio.WriteFile("test.vecio", arr)
//
// Reading it back:
//
//	arr, err := vecio.ReadFile[float64]("test.vecio")
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the array
// package, adding compression and storage. For streaming and fine-grained
// control, use the array package directly.
package vecio

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/vecio/array"
	"github.com/arloliu/vecio/compress"
	"github.com/arloliu/vecio/format"
	"github.com/arloliu/vecio/storage"
)

// NewFloat32 creates an empty float32 array.
func NewFloat32() *array.Array[float32] {
	return array.New[float32]()
}

// NewFloat64 creates an empty float64 array.
func NewFloat64() *array.Array[float64] {
	return array.New[float64]()
}

// Encode serializes arr and compresses the record with the given codec.
func Encode[T constraints.Float](arr *array.Array[T], compression format.CompressionType, opts ...array.WriterOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := arr.Write(&buf, opts...); err != nil {
		return nil, err
	}

	out, _, err := compress.CompressWith(compression, buf.Bytes())

	return out, err
}

// Decode decompresses data with the given codec and parses the record.
func Decode[T constraints.Float](data []byte, compression format.CompressionType, opts ...array.DecoderOption) (*array.Array[T], error) {
	d, err := Inspect(data, compression, opts...)
	if err != nil {
		return nil, err
	}

	return array.Decode[T](d)
}

// Inspect decompresses data and parses the record without fixing the element type.
// The decoder's record size limit also caps the decompressed output.
func Inspect(data []byte, compression format.CompressionType, opts ...array.DecoderOption) (*array.Decoder, error) {
	limit, err := array.RecordSizeLimit(opts...)
	if err != nil {
		return nil, err
	}

	raw, err := compress.DecompressWithLimit(compression, data, limit)
	if err != nil {
		return nil, err
	}

	return array.NewDecoder(raw, opts...)
}

// WriteFile writes arr to path atomically. The compression codec is chosen
// from the file extension: .zst, .s2, and .lz4 compress, anything else is
// written uncompressed.
func WriteFile[T constraints.Float](path string, arr *array.Array[T], opts ...array.WriterOption) error {
	data, err := Encode(arr, format.CompressionFromPath(path), opts...)
	if err != nil {
		return err
	}

	if err := storage.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

// ReadFile reads the record at path, decompressing by extension.
func ReadFile[T constraints.Float](path string, opts ...array.DecoderOption) (*array.Array[T], error) {
	d, err := InspectFile(path, opts...)
	if err != nil {
		return nil, err
	}

	return array.Decode[T](d)
}

// InspectFile reads and parses the record at path without fixing the element type.
func InspectFile(path string, opts ...array.DecoderOption) (*array.Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	d, err := Inspect(data, format.CompressionFromPath(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return d, nil
}

// Save encodes arr and stores it under name. The name's extension selects
// the compression codec, as for WriteFile.
func Save[T constraints.Float](ctx context.Context, store storage.Store, name string, arr *array.Array[T], opts ...array.WriterOption) error {
	data, err := Encode(arr, format.CompressionFromPath(name), opts...)
	if err != nil {
		return err
	}

	return store.Put(ctx, name, data)
}

// Load fetches the record stored under name and decodes it.
func Load[T constraints.Float](ctx context.Context, store storage.Store, name string, opts ...array.DecoderOption) (*array.Array[T], error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	arr, err := Decode[T](data, format.CompressionFromPath(name), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return arr, nil
}
