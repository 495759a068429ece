// Package errs defines the sentinel errors returned by vecio.
//
// Call sites wrap these with additional context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is rather than equality.
package errs

import "errors"

// Construction and write errors.
var (
	// ErrDimNameTooLong is returned when a dimension name does not fit the fixed 128-byte name field.
	ErrDimNameTooLong = errors.New("dimension name too long")
	// ErrInvalidDimName is returned when a dimension name contains a NUL byte.
	ErrInvalidDimName = errors.New("invalid dimension name")
	// ErrInvalidMetadata is returned when a metadata key or value cannot be encoded as a NUL-terminated string.
	ErrInvalidMetadata = errors.New("invalid metadata entry")
	// ErrMetaNotFound is returned by strict metadata lookups for absent keys.
	ErrMetaNotFound = errors.New("metadata key not found")
	// ErrUndefinedIndices is returned when a dimension descriptor is written without an index list.
	ErrUndefinedIndices = errors.New("undefined indices")
	// ErrDataSizeMismatch is returned when the data buffer length differs from the product of dimension lengths.
	ErrDataSizeMismatch = errors.New("data length does not match dimensions")
	// ErrSizeOverflow is returned when a computed size does not fit in 64 bits.
	ErrSizeOverflow = errors.New("size overflow")
)

// Decode errors.
var (
	ErrInvalidMagic        = errors.New("invalid magic bytes")
	ErrInvalidHeaderSize   = errors.New("invalid header size")
	ErrInvalidSize         = errors.New("inconsistent section size")
	ErrInvalidNumberSize   = errors.New("invalid number size")
	ErrNumberTypeMismatch  = errors.New("number type mismatch")
	ErrInvalidMetadataFlag = errors.New("invalid metadata flag")
	ErrTruncated           = errors.New("truncated data")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrRecordTooLarge      = errors.New("record exceeds size limit")
)

// Storage and codec errors.
var (
	ErrNotFound               = errors.New("object not found")
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
