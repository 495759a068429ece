package encoding

import (
	"encoding/binary"
	"math"
	"slices"
	"testing"

	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
	"github.com/stretchr/testify/require"
)

func float64Payload(vals ...float64) []byte {
	var b []byte
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(v))
	}

	return b
}

func float32Payload(vals ...float32) []byte {
	var b []byte
	for _, v := range vals {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}

	return b
}

func TestNumberTypeOf(t *testing.T) {
	require.Equal(t, format.Float32, NumberTypeOf[float32]())
	require.Equal(t, format.Float64, NumberTypeOf[float64]())
}

func TestDecodePayload(t *testing.T) {
	t.Run("float64", func(t *testing.T) {
		vals, err := DecodePayload[float64](float64Payload(1, 2.5, -3, math.Inf(1)))
		require.NoError(t, err)
		require.Equal(t, []float64{1, 2.5, -3, math.Inf(1)}, vals)
	})

	t.Run("float32", func(t *testing.T) {
		vals, err := DecodePayload[float32](float32Payload(0.5, -1, 1e10))
		require.NoError(t, err)
		require.Equal(t, []float32{0.5, -1, 1e10}, vals)
	})

	t.Run("empty", func(t *testing.T) {
		vals, err := DecodePayload[float64](nil)
		require.NoError(t, err)
		require.Empty(t, vals)
	})

	t.Run("partial element", func(t *testing.T) {
		_, err := DecodePayload[float64](make([]byte, 12))
		require.ErrorIs(t, err, errs.ErrInvalidSize)
	})

	t.Run("nan bits survive", func(t *testing.T) {
		nan := math.Float64frombits(0x7FF8000000000001)
		vals, err := DecodePayload[float64](float64Payload(nan))
		require.NoError(t, err)
		require.Equal(t, uint64(0x7FF8000000000001), math.Float64bits(vals[0]))
	})
}

func TestPayloadDecoder(t *testing.T) {
	data := float64Payload(10, 20, 30)
	dec := NewPayloadDecoder[float64]()

	require.Equal(t, 3, dec.Len(data))
	require.Equal(t, []float64{10, 20, 30}, slices.Collect(dec.All(data)))

	v, ok := dec.At(data, 2)
	require.True(t, ok)
	require.Equal(t, 30.0, v)

	_, ok = dec.At(data, 3)
	require.False(t, ok)
	_, ok = dec.At(data, -1)
	require.False(t, ok)

	t.Run("early stop", func(t *testing.T) {
		var got []float64
		for v := range dec.All(data) {
			got = append(got, v)
			if len(got) == 2 {
				break
			}
		}
		require.Equal(t, []float64{10, 20}, got)
	})

	t.Run("zero value decoder", func(t *testing.T) {
		var zero PayloadDecoder[float32]
		v, ok := zero.At(float32Payload(7), 0)
		require.True(t, ok)
		require.Equal(t, float32(7), v)
	})
}

func TestAppendPayload(t *testing.T) {
	require.Equal(t, float64Payload(1, 2), AppendPayload(nil, []float64{1, 2}))
	require.Equal(t, float32Payload(3, 4), AppendPayload(nil, []float32{3, 4}))

	prefix := []byte{0xAB}
	out := AppendPayload(prefix, []float32{1})
	require.Equal(t, byte(0xAB), out[0])
	require.Len(t, out, 5)
}
