package section

import (
	"bytes"
	"testing"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/errs"
	"github.com/stretchr/testify/require"
)

func TestProjection_Encode(t *testing.T) {
	meta := AppendMetadata(nil, []MetaEntry{{"Name", "test"}})
	dims := []DimSpec{{Name: "x", Indices: []uint64{1, 2}}}
	h, err := NewHeader(uint64(len(meta))+MetaFlagSize, SpecSize(dims), 16, 8)
	require.NoError(t, err)

	p := Projection{Header: h, IsMetaKeyValue: MetaFlagKeyValue, Metadata: meta, Dims: dims}

	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf, endian.Native()))

	out := buf.Bytes()
	require.Equal(t, h.HeaderSize, uint64(len(out)))
	require.Equal(t, h.Bytes(), out[:FixedHeaderSize])
	require.Equal(t, MetaFlagKeyValue, out[MetaOffset])
	require.Equal(t, meta, out[MetaOffset+1:MetaOffset+1+len(meta)])

	specStart := MetaOffset + int(h.MetaSize)
	parsed, err := ParseSpec(out[specStart:])
	require.NoError(t, err)
	require.Equal(t, dims, parsed)
}

func TestProjection_EncodeMetaSizeMismatch(t *testing.T) {
	h, _ := NewHeader(5, 8, 0, 8)
	p := Projection{Header: h, IsMetaKeyValue: MetaFlagKeyValue, Metadata: []byte("ab")}

	err := p.Encode(&bytes.Buffer{}, endian.Native())
	require.ErrorIs(t, err, errs.ErrInvalidSize)
}

func TestProjection_EncodeUndefinedIndices(t *testing.T) {
	dims := []DimSpec{{Name: "ok", Indices: []uint64{}}, {Name: "bad"}}
	h, _ := NewHeader(1, SpecSize(dims), 0, 8)
	p := Projection{Header: h, IsMetaKeyValue: MetaFlagKeyValue, Dims: dims}

	err := p.Encode(&bytes.Buffer{}, endian.Native())
	require.ErrorIs(t, err, errs.ErrUndefinedIndices)
}
