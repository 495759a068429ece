package format

import (
	"path/filepath"
	"strings"
)

type (
	NumberType      uint8
	CompressionType uint8
)

const (
	Float32 NumberType = 4 // Float32 is a 4-byte IEEE-754 value.
	Float64 NumberType = 8 // Float64 is an 8-byte IEEE-754 value.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// FileExt is the extension of an uncompressed vecio file.
const FileExt = ".vecio"

// Size returns the encoded width of a single number in bytes.
func (n NumberType) Size() int {
	return int(n)
}

// Valid reports whether n is one of the supported number types.
func (n NumberType) Valid() bool {
	return n == Float32 || n == Float64
}

func (n NumberType) String() string {
	switch n {
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the file name suffix appended after FileExt for the compression type.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionFromPath infers the compression type from a file name.
// Unknown suffixes map to CompressionNone.
func CompressionFromPath(path string) CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return CompressionZstd
	case ".s2":
		return CompressionS2
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// ParseCompression parses a compression name as printed by CompressionType.String.
// The match is case-insensitive.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
