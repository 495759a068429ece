package section

import (
	"bytes"
	"fmt"
	"io"
	"math/bits"
	"strings"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/errs"
)

// DimSpec is the binary form of one labeled axis: a fixed 128-byte name field,
// the index count, then each index as a uint64.
type DimSpec struct {
	Name    string
	Indices []uint64
}

// ValidateDimName checks that name fits the fixed name field with room for a NUL terminator.
func ValidateDimName(name string) error {
	if len(name) >= DimNameSize {
		return fmt.Errorf("%w: %d bytes, max %d: %q", errs.ErrDimNameTooLong, len(name), DimNameSize-1, name)
	}

	if strings.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("%w: contains NUL: %q", errs.ErrInvalidDimName, name)
	}

	return nil
}

// Len returns the number of indices.
func (d DimSpec) Len() int {
	return len(d.Indices)
}

// SizeBinary returns the encoded size: name field, index count, and 8 bytes per index.
func (d DimSpec) SizeBinary() uint64 {
	return DimFixedSize + DimIndexSize*uint64(len(d.Indices))
}

// Encode writes the descriptor to w.
//
// The name is zero-padded to DimNameSize bytes. A nil index list means the
// descriptor was never populated and is reported as ErrUndefinedIndices
// before anything is written.
func (d DimSpec) Encode(w io.Writer, p endian.Policy) error {
	if d.Indices == nil {
		return fmt.Errorf("%w: dimension %q", errs.ErrUndefinedIndices, d.Name)
	}

	if err := ValidateDimName(d.Name); err != nil {
		return err
	}

	var name [DimNameSize]byte
	copy(name[:], d.Name)
	if _, err := w.Write(name[:]); err != nil {
		return err
	}

	if err := endian.WriteLittleScalar(p, w, uint64(len(d.Indices))); err != nil {
		return err
	}

	return p.WriteLittleElements(w, endian.SliceBytes(d.Indices), DimIndexSize)
}

// ParseDimSpec parses one descriptor from the start of data.
//
// Returns:
//   - DimSpec: the parsed descriptor (Indices is never nil)
//   - int: number of bytes consumed
//   - error: ErrTruncated or ErrInvalidDimName
func ParseDimSpec(data []byte) (DimSpec, int, error) {
	if len(data) < DimFixedSize {
		return DimSpec{}, 0, fmt.Errorf("%w: dimension descriptor needs %d bytes, have %d", errs.ErrTruncated, DimFixedSize, len(data))
	}

	nameField := data[:DimNameSize]
	end := bytes.IndexByte(nameField, 0)
	if end < 0 {
		return DimSpec{}, 0, fmt.Errorf("%w: name field is not NUL-terminated", errs.ErrInvalidDimName)
	}

	engine := endian.GetLittleEndianEngine()
	count := engine.Uint64(data[DimNameSize:DimFixedSize])

	hi, idxBytes := bits.Mul64(count, DimIndexSize)
	if hi != 0 || idxBytes > uint64(len(data)-DimFixedSize) {
		return DimSpec{}, 0, fmt.Errorf("%w: dimension %q declares %d indices", errs.ErrTruncated, nameField[:end], count)
	}

	indices := make([]uint64, count)
	off := DimFixedSize
	for i := range indices {
		indices[i] = engine.Uint64(data[off : off+DimIndexSize])
		off += DimIndexSize
	}

	return DimSpec{Name: string(nameField[:end]), Indices: indices}, off, nil
}

// ParseSpec parses the DimCount field and every descriptor.
// data must be exactly the spec section (SpecSize bytes).
func ParseSpec(data []byte) ([]DimSpec, error) {
	if len(data) < DimCountSize {
		return nil, fmt.Errorf("%w: spec section needs %d bytes, have %d", errs.ErrTruncated, DimCountSize, len(data))
	}

	count := endian.GetLittleEndianEngine().Uint64(data[:DimCountSize])
	if count > uint64(len(data)-DimCountSize)/DimFixedSize {
		return nil, fmt.Errorf("%w: %d dimensions do not fit in %d bytes", errs.ErrInvalidSize, count, len(data))
	}

	dims := make([]DimSpec, 0, count)
	off := DimCountSize
	for range count {
		dim, n, err := ParseDimSpec(data[off:])
		if err != nil {
			return nil, err
		}
		dims = append(dims, dim)
		off += n
	}

	if off != len(data) {
		return nil, fmt.Errorf("%w: spec size %d, descriptors use %d", errs.ErrInvalidSize, len(data), off)
	}

	return dims, nil
}
