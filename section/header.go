package section

import (
	"bytes"
	"fmt"
	"io"
	"math/bits"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/errs"
)

// Header is the fixed 60-byte prefix of a vecio record.
type Header struct {
	// HeaderSize is the byte offset of the payload: FixedHeaderSize + MetaSize + SpecSize.
	HeaderSize uint64 // byte offset 8-15
	// MetaSize counts the metadata flag byte plus the metadata blob.
	MetaSize uint64 // byte offset 16-23
	// SpecSize counts the DimCount field plus every dimension descriptor.
	SpecSize uint64 // byte offset 24-31
	// DataSize is the payload length in bytes.
	DataSize uint64 // byte offset 32-39
	// NumberSize is the width of one payload element, 4 or 8.
	NumberSize uint64 // byte offset 40-47

	CheckSumMeta uint32 // byte offset 48-51
	CheckSumData uint32 // byte offset 52-55
	CheckSum     uint32 // byte offset 56-59
}

// NewHeader computes HeaderSize from the section sizes.
func NewHeader(metaSize, specSize, dataSize, numberSize uint64) (Header, error) {
	h := Header{
		MetaSize:   metaSize,
		SpecSize:   specSize,
		DataSize:   dataSize,
		NumberSize: numberSize,
	}

	total, carry := bits.Add64(FixedHeaderSize, metaSize, 0)
	total, carry2 := bits.Add64(total, specSize, 0)
	if carry != 0 || carry2 != 0 {
		return Header{}, fmt.Errorf("%w: header size", errs.ErrSizeOverflow)
	}
	h.HeaderSize = total

	return h, nil
}

// Encode writes the header to w through the endianness policy.
func (h Header) Encode(w io.Writer, p endian.Policy) error {
	if _, err := w.Write(Magic[:]); err != nil {
		return err
	}

	for _, v := range [SizeFieldCount]uint64{h.HeaderSize, h.MetaSize, h.SpecSize, h.DataSize, h.NumberSize} {
		if err := endian.WriteLittleScalar(p, w, v); err != nil {
			return err
		}
	}

	for _, v := range [ChecksumFieldCount]uint32{h.CheckSumMeta, h.CheckSumData, h.CheckSum} {
		if err := endian.WriteLittleScalar(p, w, v); err != nil {
			return err
		}
	}

	return nil
}

// Bytes serializes the header into a new FixedHeaderSize-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, 0, FixedHeaderSize)
	b = append(b, Magic[:]...)

	return h.appendFields(b)
}

func (h Header) appendFields(b []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	b = engine.AppendUint64(b, h.HeaderSize)
	b = engine.AppendUint64(b, h.MetaSize)
	b = engine.AppendUint64(b, h.SpecSize)
	b = engine.AppendUint64(b, h.DataSize)
	b = engine.AppendUint64(b, h.NumberSize)
	b = engine.AppendUint32(b, h.CheckSumMeta)
	b = engine.AppendUint32(b, h.CheckSumData)

	return engine.AppendUint32(b, h.CheckSum)
}

// PutChecksums overwrites the three checksum fields of an encoded record in place.
func PutChecksums(record []byte, meta, data, whole uint32) {
	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(record[ChecksumOffset:], meta)
	engine.PutUint32(record[ChecksumOffset+4:], data)
	engine.PutUint32(record[ChecksumOffset+8:], whole)
}

// Parse parses the header from exactly FixedHeaderSize bytes.
//
// Only the magic is checked here; call Validate for size consistency.
func (h *Header) Parse(data []byte) error {
	if len(data) != FixedHeaderSize {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), FixedHeaderSize)
	}

	if !bytes.Equal(data[:MagicSize], Magic[:]) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidMagic, data[:MagicSize])
	}

	engine := endian.GetLittleEndianEngine()
	h.HeaderSize = engine.Uint64(data[8:16])
	h.MetaSize = engine.Uint64(data[16:24])
	h.SpecSize = engine.Uint64(data[24:32])
	h.DataSize = engine.Uint64(data[32:40])
	h.NumberSize = engine.Uint64(data[40:48])
	h.CheckSumMeta = engine.Uint32(data[48:52])
	h.CheckSumData = engine.Uint32(data[52:56])
	h.CheckSum = engine.Uint32(data[56:60])

	return nil
}

// ParseHeader parses and validates a Header from the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < FixedHeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, want at least %d", errs.ErrInvalidHeaderSize, len(data), FixedHeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:FixedHeaderSize]); err != nil {
		return Header{}, err
	}

	if err := h.Validate(); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Validate checks that the size fields are mutually consistent.
func (h Header) Validate() error {
	if h.NumberSize != 4 && h.NumberSize != 8 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidNumberSize, h.NumberSize)
	}

	if h.MetaSize < MetaFlagSize {
		return fmt.Errorf("%w: meta size %d", errs.ErrInvalidSize, h.MetaSize)
	}

	if h.SpecSize < DimCountSize {
		return fmt.Errorf("%w: spec size %d", errs.ErrInvalidSize, h.SpecSize)
	}

	want, err := NewHeader(h.MetaSize, h.SpecSize, h.DataSize, h.NumberSize)
	if err != nil {
		return err
	}
	if want.HeaderSize != h.HeaderSize {
		return fmt.Errorf("%w: header size %d, sections add up to %d", errs.ErrInvalidHeaderSize, h.HeaderSize, want.HeaderSize)
	}

	if h.DataSize%h.NumberSize != 0 {
		return fmt.Errorf("%w: data size %d is not a multiple of %d", errs.ErrInvalidSize, h.DataSize, h.NumberSize)
	}

	if _, carry := bits.Add64(h.HeaderSize, h.DataSize, 0); carry != 0 {
		return fmt.Errorf("%w: record size", errs.ErrSizeOverflow)
	}

	return nil
}

// RecordSize returns the total encoded size: header plus payload.
func (h Header) RecordSize() uint64 {
	return h.HeaderSize + h.DataSize
}

// ElementCount returns the number of payload elements.
func (h Header) ElementCount() uint64 {
	if h.NumberSize == 0 {
		return 0
	}

	return h.DataSize / h.NumberSize
}

// HasChecksums reports whether any checksum field is set.
// A record written without checksums carries three zero fields.
func (h Header) HasChecksums() bool {
	return h.CheckSumMeta != 0 || h.CheckSumData != 0 || h.CheckSum != 0
}
