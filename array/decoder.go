package array

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/arloliu/vecio/encoding"
	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
	"github.com/arloliu/vecio/internal/hash"
	"github.com/arloliu/vecio/section"
)

// Decoder is a parsed vecio record.
//
// The payload is kept in wire form and aliases the input buffer; Decode
// converts it to host values.
type Decoder struct {
	record  []byte
	header  section.Header
	meta    []section.MetaEntry
	dims    []Dim
	payload []byte
}

// NewDecoder parses and validates the record at the start of data.
// Bytes after the record are ignored.
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	return decodeRecord(data, cfg)
}

func decodeRecord(data []byte, cfg *DecoderConfig) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	log := cfg.logger
	log.Debug("vecio header parsed",
		zap.Uint64("header_size", header.HeaderSize),
		zap.Uint64("meta_size", header.MetaSize),
		zap.Uint64("spec_size", header.SpecSize),
		zap.Uint64("data_size", header.DataSize),
		zap.Uint64("number_size", header.NumberSize),
	)

	recordSize := header.RecordSize()
	if recordSize > cfg.maxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrRecordTooLarge, recordSize, cfg.maxRecordSize)
	}
	if uint64(len(data)) < recordSize {
		return nil, fmt.Errorf("%w: record needs %d bytes, have %d", errs.ErrTruncated, recordSize, len(data))
	}

	metaEnd := section.MetaOffset + header.MetaSize
	if flag := data[section.MetaOffset]; flag != section.MetaFlagKeyValue {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidMetadataFlag, flag)
	}

	meta, err := section.ParseMetadata(data[section.MetaOffset+section.MetaFlagSize : metaEnd])
	if err != nil {
		return nil, err
	}

	specs, err := section.ParseSpec(data[metaEnd:header.HeaderSize])
	if err != nil {
		return nil, err
	}

	dims := make([]Dim, len(specs))
	for i, s := range specs {
		dims[i] = Dim{name: s.Name, indices: s.Indices}
	}

	count, err := elementCount(dims)
	if err != nil {
		return nil, err
	}
	if count != header.ElementCount() {
		return nil, fmt.Errorf("%w: dimensions describe %d elements, payload holds %d",
			errs.ErrInvalidSize, count, header.ElementCount())
	}

	d := &Decoder{
		record:  data[:recordSize],
		header:  header,
		meta:    meta,
		dims:    dims,
		payload: data[header.HeaderSize:recordSize],
	}

	if cfg.verifyChecksums && header.HasChecksums() {
		if err := d.verify(data[:recordSize]); err != nil {
			return nil, err
		}
		log.Debug("vecio checksums verified")
	}

	return d, nil
}

func (d *Decoder) verify(record []byte) error {
	metaEnd := section.MetaOffset + d.header.MetaSize
	if sum := hash.Sum32(record[section.MetaOffset:metaEnd]); sum != d.header.CheckSumMeta {
		return fmt.Errorf("%w: metadata 0x%08x, stored 0x%08x", errs.ErrChecksumMismatch, sum, d.header.CheckSumMeta)
	}

	if sum := hash.Sum32(d.payload); sum != d.header.CheckSumData {
		return fmt.Errorf("%w: payload 0x%08x, stored 0x%08x", errs.ErrChecksumMismatch, sum, d.header.CheckSumData)
	}

	whole := hash.New()
	_, _ = whole.Write(record[:section.ChecksumOffset])
	_, _ = whole.Write(record[section.FixedHeaderSize:])
	if sum := whole.Sum32(); sum != d.header.CheckSum {
		return fmt.Errorf("%w: record 0x%08x, stored 0x%08x", errs.ErrChecksumMismatch, sum, d.header.CheckSum)
	}

	return nil
}

// ReadRecord reads exactly one record from r and parses it.
func ReadRecord(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return nil, err
	}

	fixed := make([]byte, section.FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, readErr(err, "header")
	}

	header, err := section.ParseHeader(fixed)
	if err != nil {
		return nil, err
	}
	if header.RecordSize() > cfg.maxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", errs.ErrRecordTooLarge, header.RecordSize(), cfg.maxRecordSize)
	}

	record := make([]byte, header.RecordSize())
	copy(record, fixed)
	if _, err := io.ReadFull(r, record[section.FixedHeaderSize:]); err != nil {
		return nil, readErr(err, "record body")
	}

	return decodeRecord(record, cfg)
}

func readErr(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s: %w", errs.ErrTruncated, what, err)
	}

	return fmt.Errorf("reading %s: %w", what, err)
}

// Header returns the parsed fixed header.
func (d *Decoder) Header() section.Header {
	return d.header
}

// NumberType returns the element type of the payload.
func (d *Decoder) NumberType() format.NumberType {
	return format.NumberType(d.header.NumberSize)
}

// Meta returns the metadata as a map.
func (d *Decoder) Meta() map[string]string {
	m := make(map[string]string, len(d.meta))
	for _, e := range d.meta {
		m[e.Key] = e.Value
	}

	return m
}

// MetaEntries returns a copy of the metadata entries in stored order.
func (d *Decoder) MetaEntries() []section.MetaEntry {
	return slices.Clone(d.meta)
}

// Dims returns a copy of the dimensions in stored order.
func (d *Decoder) Dims() []Dim {
	return slices.Clone(d.dims)
}

// Shape returns the length of every dimension.
func (d *Decoder) Shape() []int {
	shape := make([]int, len(d.dims))
	for i, dim := range d.dims {
		shape[i] = dim.Len()
	}

	return shape
}

// Payload returns the little-endian payload bytes.
func (d *Decoder) Payload() []byte {
	return d.payload
}

// RawRecord returns the encoded record; it aliases the decoder's input.
func (d *Decoder) RawRecord() []byte {
	return d.record
}

// RecordSize returns the encoded size of the record.
func (d *Decoder) RecordSize() uint64 {
	return d.header.RecordSize()
}

// Decode converts a parsed record into an Array of T.
// T must match the stored number type.
func Decode[T constraints.Float](d *Decoder) (*Array[T], error) {
	want := encoding.NumberTypeOf[T]()
	if d.NumberType() != want {
		return nil, fmt.Errorf("%w: record holds %s, requested %s", errs.ErrNumberTypeMismatch, d.NumberType(), want)
	}

	data, err := encoding.DecodePayload[T](d.payload)
	if err != nil {
		return nil, err
	}

	arr := New[T]()
	for _, e := range d.meta {
		arr.meta[e.Key] = e.Value
	}
	for _, dim := range d.dims {
		arr.appendDim(dim.name, dim.Indices())
	}
	arr.data = data

	return arr, nil
}

// Unmarshal parses data and converts it into an Array of T.
func Unmarshal[T constraints.Float](data []byte, opts ...DecoderOption) (*Array[T], error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return Decode[T](d)
}

// Read reads one record from r and converts it into an Array of T.
func Read[T constraints.Float](r io.Reader, opts ...DecoderOption) (*Array[T], error) {
	d, err := ReadRecord(r, opts...)
	if err != nil {
		return nil, err
	}

	return Decode[T](d)
}
