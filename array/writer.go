package array

import (
	"fmt"
	"io"
	"math/bits"

	"go.uber.org/zap"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/internal/hash"
	"github.com/arloliu/vecio/internal/pool"
	"github.com/arloliu/vecio/section"
)

// Write serializes the array as one vecio record.
//
// The header, metadata, and dimension descriptors are staged in a pooled
// buffer so the checksums can be patched in before anything reaches w; the
// payload is then streamed straight from the data slice. On error, w may
// have received a partial record.
func (a *Array[T]) Write(w io.Writer, opts ...WriterOption) error {
	cfg, err := newWriterConfig(opts)
	if err != nil {
		return err
	}

	proj, err := a.projection()
	if err != nil {
		return err
	}

	log := cfg.logger
	log.Debug("vecio header",
		zap.Uint64("header_size", proj.Header.HeaderSize),
		zap.Uint64("meta_size", proj.Header.MetaSize),
		zap.Uint64("spec_size", proj.Header.SpecSize),
		zap.Uint64("data_size", proj.Header.DataSize),
		zap.Uint64("number_size", proj.Header.NumberSize),
		zap.Bool("host_little_endian", cfg.policy.HostIsLittleEndian()),
	)
	for _, d := range proj.Dims {
		log.Debug("vecio dim", zap.String("dim", d.Name), zap.Int("index_count", d.Len()))
	}

	buf := pool.GetHeaderBuffer()
	defer pool.PutHeaderBuffer(buf)

	if err := proj.Encode(buf, cfg.policy); err != nil {
		return err
	}
	if uint64(buf.Len()) != proj.Header.HeaderSize {
		return fmt.Errorf("%w: staged %d header bytes, want %d", errs.ErrInvalidHeaderSize, buf.Len(), proj.Header.HeaderSize)
	}

	payload := endian.SliceBytes(a.data)
	numberSize := int(proj.Header.NumberSize)

	if cfg.checksums {
		if err := patchChecksums(buf.Bytes(), proj.Header.MetaSize, payload, numberSize, cfg.policy, log); err != nil {
			return err
		}
	}

	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	log.Debug("vecio header written", zap.Int("bytes", buf.Len()))

	if err := cfg.policy.WriteLittleElements(w, payload, numberSize); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	log.Debug("vecio payload written", zap.Int("elements", len(a.data)), zap.Bool("swapped", cfg.policy.NeedsSwap()))

	return nil
}

// patchChecksums hashes the staged header and the payload, in its on-wire
// byte order, and stores the three checksums into the staged header.
func patchChecksums(staged []byte, metaSize uint64, payload []byte, numberSize int, p endian.Policy, log *zap.Logger) error {
	metaEnd := section.MetaOffset + metaSize
	metaSum := hash.Sum32(staged[section.MetaOffset:metaEnd])

	whole := hash.New()
	_, _ = whole.Write(staged[:section.ChecksumOffset])
	_, _ = whole.Write(staged[section.FixedHeaderSize:])

	data := hash.New()
	if err := p.WriteLittleElements(io.MultiWriter(data, whole), payload, numberSize); err != nil {
		return fmt.Errorf("hash payload: %w", err)
	}

	section.PutChecksums(staged, metaSum, data.Sum32(), whole.Sum32())
	log.Debug("vecio checksums",
		zap.Uint32("meta", metaSum),
		zap.Uint32("data", data.Sum32()),
		zap.Uint32("whole", whole.Sum32()),
	)

	return nil
}

// WriteTo writes the array with default options and reports the bytes written.
func (a *Array[T]) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := a.Write(cw)

	return cw.n, err
}

// MarshalBinary encodes the array with default options.
func (a *Array[T]) MarshalBinary() ([]byte, error) {
	buf := pool.NewByteBuffer(0)
	if err := a.Write(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// RecordSize returns the number of bytes Write would produce.
func (a *Array[T]) RecordSize() (uint64, error) {
	proj, err := a.projection()
	if err != nil {
		return 0, err
	}

	return proj.Header.RecordSize(), nil
}

// projection builds the write-time view of the array. Its Dims alias the
// array's index buffers.
func (a *Array[T]) projection() (section.Projection, error) {
	count, err := a.ElementCount()
	if err != nil {
		return section.Projection{}, err
	}
	if uint64(len(a.data)) != count {
		return section.Projection{}, fmt.Errorf("%w: have %d elements, dimensions require %d",
			errs.ErrDataSizeMismatch, len(a.data), count)
	}

	numberSize := uint64(a.NumberType().Size())
	hi, dataSize := bits.Mul64(count, numberSize)
	if hi != 0 {
		return section.Projection{}, fmt.Errorf("%w: data size", errs.ErrSizeOverflow)
	}

	entries := a.metaEntries()
	blob := section.AppendMetadata(make([]byte, 0, section.MetadataBlobSize(entries)), entries)

	specs := make([]section.DimSpec, len(a.dims))
	for i, d := range a.dims {
		specs[i] = d.spec()
	}

	header, err := section.NewHeader(uint64(len(blob))+section.MetaFlagSize, section.SpecSize(specs), dataSize, numberSize)
	if err != nil {
		return section.Projection{}, err
	}

	return section.Projection{
		Header:         header,
		IsMetaKeyValue: section.MetaFlagKeyValue,
		Metadata:       blob,
		Dims:           specs,
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}
