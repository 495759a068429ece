package section

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/arloliu/vecio/errs"
)

// MetaEntry is one metadata key/value pair.
type MetaEntry struct {
	Key   string
	Value string
}

// ValidateMetaEntry checks that key and value can be stored as NUL-terminated strings.
func ValidateMetaEntry(key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", errs.ErrInvalidMetadata)
	}

	if strings.IndexByte(key, 0) >= 0 {
		return fmt.Errorf("%w: key contains NUL: %q", errs.ErrInvalidMetadata, key)
	}

	if strings.IndexByte(value, 0) >= 0 {
		return fmt.Errorf("%w: value for %q contains NUL", errs.ErrInvalidMetadata, key)
	}

	return nil
}

// MetadataBlobSize returns the encoded size of entries, excluding the flag byte.
func MetadataBlobSize(entries []MetaEntry) uint64 {
	var n uint64
	for _, e := range entries {
		n += uint64(len(e.Key)) + uint64(len(e.Value)) + 2
	}

	return n
}

// AppendMetadata appends entries to dst as key\0value\0 pairs, in slice order.
func AppendMetadata(dst []byte, entries []MetaEntry) []byte {
	for _, e := range entries {
		dst = append(dst, e.Key...)
		dst = append(dst, 0)
		dst = append(dst, e.Value...)
		dst = append(dst, 0)
	}

	return dst
}

// ParseMetadata parses a metadata blob (without the flag byte).
func ParseMetadata(blob []byte) ([]MetaEntry, error) {
	if len(blob) == 0 {
		return nil, nil
	}

	if blob[len(blob)-1] != 0 {
		return nil, fmt.Errorf("%w: metadata blob is not NUL-terminated", errs.ErrInvalidMetadata)
	}

	parts := bytes.Split(blob[:len(blob)-1], []byte{0})
	if len(parts)%2 != 0 {
		return nil, fmt.Errorf("%w: key %q has no value", errs.ErrInvalidMetadata, parts[len(parts)-1])
	}

	entries := make([]MetaEntry, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		if len(parts[i]) == 0 {
			return nil, fmt.Errorf("%w: empty key at pair %d", errs.ErrInvalidMetadata, i/2)
		}
		entries = append(entries, MetaEntry{Key: string(parts[i]), Value: string(parts[i+1])})
	}

	return entries, nil
}
