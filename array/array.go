package array

import (
	"fmt"
	"iter"
	"maps"
	"math/bits"
	"slices"

	"golang.org/x/exp/constraints"

	"github.com/arloliu/vecio/encoding"
	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
	"github.com/arloliu/vecio/section"
)

// Dim is one labeled axis of an array.
type Dim struct {
	name    string
	indices []uint64
}

// Name returns the axis label.
func (d Dim) Name() string {
	return d.name
}

// Len returns the number of indices along the axis.
func (d Dim) Len() int {
	return len(d.indices)
}

// Index returns the i-th index value.
func (d Dim) Index(i int) uint64 {
	return d.indices[i]
}

// Indices returns a copy of the index values.
func (d Dim) Indices() []uint64 {
	return slices.Clone(d.indices)
}

// SizeBinary returns the encoded size of the axis descriptor.
func (d Dim) SizeBinary() uint64 {
	return d.spec().SizeBinary()
}

// spec returns the binary descriptor; Indices aliases d.indices.
func (d Dim) spec() section.DimSpec {
	return section.DimSpec{Name: d.name, Indices: d.indices}
}

// Array is a dense N-dimensional array of T together with its axes and metadata.
//
// The zero value is not usable; create arrays with New.
type Array[T constraints.Float] struct {
	meta map[string]string
	// dims is append-only; byName stores positions in it rather than pointers.
	dims   []Dim
	byName map[string]int
	data   []T
}

// New creates an empty array with no metadata, no dimensions, and no data.
func New[T constraints.Float]() *Array[T] {
	return &Array[T]{
		meta:   make(map[string]string),
		byName: make(map[string]int),
	}
}

// NumberType returns the wire number type of the array elements.
func (a *Array[T]) NumberType() format.NumberType {
	return encoding.NumberTypeOf[T]()
}

// SetMeta inserts or overwrites a metadata entry.
//
// Keys must be non-empty and neither key nor value may contain a NUL byte,
// since both are stored NUL-terminated.
func (a *Array[T]) SetMeta(key, value string) error {
	if err := section.ValidateMetaEntry(key, value); err != nil {
		return err
	}

	a.meta[key] = value

	return nil
}

// GetMeta returns the value stored for key and whether it was present.
func (a *Array[T]) GetMeta(key string) (string, bool) {
	v, ok := a.meta[key]
	return v, ok
}

// LookupMeta returns the value stored for key, or ErrMetaNotFound.
func (a *Array[T]) LookupMeta(key string) (string, error) {
	v, ok := a.meta[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", errs.ErrMetaNotFound, key)
	}

	return v, nil
}

// MetaOr returns the value stored for key, or def when key is absent.
func (a *Array[T]) MetaOr(key, def string) string {
	if v, ok := a.meta[key]; ok {
		return v
	}

	return def
}

// Meta returns a copy of the metadata store.
func (a *Array[T]) Meta() map[string]string {
	return maps.Clone(a.meta)
}

// metaEntries returns the metadata in wire order, ascending by key.
func (a *Array[T]) metaEntries() []section.MetaEntry {
	keys := slices.Sorted(maps.Keys(a.meta))
	entries := make([]section.MetaEntry, len(keys))
	for i, k := range keys {
		entries[i] = section.MetaEntry{Key: k, Value: a.meta[k]}
	}

	return entries
}

// AddDim appends a dimension built from a copy of indices.
//
// The name must be shorter than 128 bytes and free of NUL bytes. On error the
// dimension list is left unchanged. Adding a name that already exists appends
// a new axis; Dim(name) then resolves to the newest one.
func (a *Array[T]) AddDim(name string, indices []uint64) error {
	if err := section.ValidateDimName(name); err != nil {
		return err
	}

	a.appendDim(name, append(make([]uint64, 0, len(indices)), indices...))

	return nil
}

// AddDimSeq appends a dimension whose indices are drawn from seq.
func (a *Array[T]) AddDimSeq(name string, seq iter.Seq[uint64]) error {
	if err := section.ValidateDimName(name); err != nil {
		return err
	}

	indices := make([]uint64, 0)
	for v := range seq {
		indices = append(indices, v)
	}
	a.appendDim(name, indices)

	return nil
}

// AddDimRange appends a dimension with count consecutive indices starting at first.
func (a *Array[T]) AddDimRange(name string, first uint64, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative index count %d for %q", errs.ErrInvalidSize, count, name)
	}

	return a.AddDimSeq(name, func(yield func(uint64) bool) {
		for i := range uint64(count) {
			if !yield(first + i) {
				return
			}
		}
	})
}

func (a *Array[T]) appendDim(name string, indices []uint64) {
	a.dims = append(a.dims, Dim{name: name, indices: indices})
	a.byName[name] = len(a.dims) - 1
}

// Dim returns the most recently added dimension named name.
func (a *Array[T]) Dim(name string) (Dim, bool) {
	i, ok := a.byName[name]
	if !ok {
		return Dim{}, false
	}

	return a.dims[i], true
}

// DimAt returns the i-th dimension in append order.
func (a *Array[T]) DimAt(i int) Dim {
	return a.dims[i]
}

// NumDims returns the number of dimensions.
func (a *Array[T]) NumDims() int {
	return len(a.dims)
}

// Dims returns the dimensions in append order.
func (a *Array[T]) Dims() []Dim {
	return slices.Clone(a.dims)
}

// Shape returns the length of every dimension in append order.
func (a *Array[T]) Shape() []int {
	shape := make([]int, len(a.dims))
	for i, d := range a.dims {
		shape[i] = d.Len()
	}

	return shape
}

// ElementCount returns the product of the dimension lengths.
// An array without dimensions holds a single element.
func (a *Array[T]) ElementCount() (uint64, error) {
	return elementCount(a.dims)
}

func elementCount(dims []Dim) (uint64, error) {
	count := uint64(1)
	for _, d := range dims {
		hi, lo := bits.Mul64(count, uint64(d.Len()))
		if hi != 0 {
			return 0, fmt.Errorf("%w: element count of %d dimensions", errs.ErrSizeOverflow, len(dims))
		}
		count = lo
	}

	return count, nil
}

// SetData assigns the element buffer. The array keeps a reference to data,
// not a copy; the caller must keep it alive and unmodified during writes.
func (a *Array[T]) SetData(data []T) {
	a.data = data
}

// Data returns the element buffer as last assigned by SetData.
func (a *Array[T]) Data() []T {
	return a.data
}
