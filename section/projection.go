package section

import (
	"fmt"
	"io"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/errs"
)

// Projection is the layout-exact view of an array built right before it is written.
// Metadata and Dims alias the owner's buffers; a Projection must not outlive the write.
type Projection struct {
	Header         Header
	IsMetaKeyValue uint8
	// Metadata is the blob after the flag byte; len(Metadata) == Header.MetaSize-1.
	Metadata []byte
	Dims     []DimSpec
}

// Encode writes everything up to the payload: header, flag, metadata blob,
// DimCount, and each descriptor in order.
func (p *Projection) Encode(w io.Writer, pol endian.Policy) error {
	if uint64(len(p.Metadata))+MetaFlagSize != p.Header.MetaSize {
		return fmt.Errorf("%w: meta size %d, blob has %d bytes", errs.ErrInvalidSize, p.Header.MetaSize, len(p.Metadata))
	}

	if err := p.Header.Encode(w, pol); err != nil {
		return err
	}

	if _, err := w.Write([]byte{p.IsMetaKeyValue}); err != nil {
		return err
	}
	if _, err := w.Write(p.Metadata); err != nil {
		return err
	}

	if err := endian.WriteLittleScalar(pol, w, uint64(len(p.Dims))); err != nil {
		return err
	}

	for _, dim := range p.Dims {
		if err := dim.Encode(w, pol); err != nil {
			return err
		}
	}

	return nil
}

// SpecSize returns the DimCount field plus the size of every descriptor.
func SpecSize(dims []DimSpec) uint64 {
	size := uint64(DimCountSize)
	for _, d := range dims {
		size += d.SizeBinary()
	}

	return size
}
