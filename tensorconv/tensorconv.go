// Package tensorconv converts between vecio arrays and gorgonia dense tensors.
//
// Tensors carry a shape but no axis labels or index values, so ToDense keeps
// only the shape and data, and FromDense labels every axis with consecutive
// indices starting at zero.
package tensorconv

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"gorgonia.org/tensor"

	"github.com/arloliu/vecio/array"
	"github.com/arloliu/vecio/errs"
)

// ToDense returns a dense tensor backed by arr's data slice; no copy is made.
// An array without dimensions becomes a scalar tensor.
func ToDense[T constraints.Float](arr *array.Array[T]) (*tensor.Dense, error) {
	count, err := arr.ElementCount()
	if err != nil {
		return nil, err
	}

	data := arr.Data()
	if uint64(len(data)) != count {
		return nil, fmt.Errorf("%w: have %d elements, dimensions require %d", errs.ErrDataSizeMismatch, len(data), count)
	}

	shape := arr.Shape()
	if len(shape) == 0 {
		return tensor.New(tensor.FromScalar(data[0])), nil
	}
	if count == 0 {
		return nil, fmt.Errorf("tensorconv: shape %v has no elements", shape)
	}

	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data)), nil
}

// FromDense builds an array of T from t. names labels the axes in order; a
// missing or empty name becomes "dim<i>". The array shares t's backing slice,
// except for views and pending transposes, which are first copied out in
// row-major order of t's shape.
func FromDense[T constraints.Float](t *tensor.Dense, names ...string) (*array.Array[T], error) {
	arr := array.New[T]()

	if t.IsMaterializable() {
		m, ok := t.Materialize().(*tensor.Dense)
		if !ok {
			return nil, fmt.Errorf("tensorconv: cannot materialize %T", t)
		}
		t = m
	}

	var data []T
	switch v := t.Data().(type) {
	case []T:
		data = v
	case T:
		data = []T{v}
	default:
		return nil, fmt.Errorf("%w: tensor holds %v, requested %s", errs.ErrNumberTypeMismatch, t.Dtype(), arr.NumberType())
	}

	if !t.IsScalar() {
		shape := t.Shape()
		if len(names) > len(shape) {
			return nil, fmt.Errorf("tensorconv: %d names for %d axes", len(names), len(shape))
		}

		for i, n := range shape {
			name := fmt.Sprintf("dim%d", i)
			if i < len(names) && names[i] != "" {
				name = names[i]
			}
			if err := arr.AddDimRange(name, 0, n); err != nil {
				return nil, err
			}
		}
	}

	count, err := arr.ElementCount()
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) != count {
		return nil, fmt.Errorf("%w: tensor backing has %d elements, shape requires %d", errs.ErrDataSizeMismatch, len(data), count)
	}
	arr.SetData(data)

	return arr, nil
}
