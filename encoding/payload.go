package encoding

import (
	"fmt"
	"iter"
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
)

// NumberTypeOf returns the wire number type of T.
func NumberTypeOf[T constraints.Float]() format.NumberType {
	var zero T

	return format.NumberType(unsafe.Sizeof(zero))
}

// PayloadDecoder decodes little-endian payload elements of type T.
//
// The decoder is stateless; the zero value is ready to use.
type PayloadDecoder[T constraints.Float] struct {
	engine endian.EndianEngine
}

// NewPayloadDecoder creates a PayloadDecoder reading the vecio wire byte order.
func NewPayloadDecoder[T constraints.Float]() PayloadDecoder[T] {
	return PayloadDecoder[T]{engine: endian.GetLittleEndianEngine()}
}

func (d PayloadDecoder[T]) size() int {
	return NumberTypeOf[T]().Size()
}

// Len returns the number of whole elements in data.
func (d PayloadDecoder[T]) Len(data []byte) int {
	return len(data) / d.size()
}

// At decodes the element at index.
//
// Returns:
//   - T: the element value
//   - bool: false if index is out of range
func (d PayloadDecoder[T]) At(data []byte, index int) (T, bool) {
	size := d.size()
	if index < 0 || (index+1)*size > len(data) {
		return 0, false
	}

	return d.decode(data[index*size:]), true
}

// All yields every whole element of data in order.
func (d PayloadDecoder[T]) All(data []byte) iter.Seq[T] {
	return func(yield func(T) bool) {
		size := d.size()
		for off := 0; off+size <= len(data); off += size {
			if !yield(d.decode(data[off:])) {
				return
			}
		}
	}
}

func (d PayloadDecoder[T]) decode(b []byte) T {
	engine := d.engine
	if engine == nil {
		engine = endian.GetLittleEndianEngine()
	}

	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return T(math.Float32frombits(engine.Uint32(b)))
	}

	return T(math.Float64frombits(engine.Uint64(b)))
}

// DecodePayload decodes a complete payload into a new slice.
// len(data) must be a whole multiple of the element size.
func DecodePayload[T constraints.Float](data []byte) ([]T, error) {
	size := NumberTypeOf[T]().Size()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("%w: payload of %d bytes is not a multiple of %d", errs.ErrInvalidSize, len(data), size)
	}

	out := make([]T, len(data)/size)
	if len(out) == 0 {
		return out, nil
	}

	if endian.IsNativeLittleEndian() {
		copy(endian.SliceBytes(out), data)
		return out, nil
	}

	dec := NewPayloadDecoder[T]()
	for i := range out {
		out[i] = dec.decode(data[i*size:])
	}

	return out, nil
}

// AppendPayload appends vals to dst in wire order.
func AppendPayload[T constraints.Float](dst []byte, vals []T) []byte {
	if endian.IsNativeLittleEndian() {
		return append(dst, endian.SliceBytes(vals)...)
	}

	engine := endian.GetLittleEndianEngine()
	for _, v := range vals {
		if NumberTypeOf[T]() == format.Float32 {
			dst = engine.AppendUint32(dst, math.Float32bits(float32(v)))
		} else {
			dst = engine.AppendUint64(dst, math.Float64bits(float64(v)))
		}
	}

	return dst
}
