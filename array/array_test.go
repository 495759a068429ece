package array

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/vecio/errs"
	"github.com/arloliu/vecio/format"
)

func TestNumberType(t *testing.T) {
	require.Equal(t, format.Float32, New[float32]().NumberType())
	require.Equal(t, format.Float64, New[float64]().NumberType())
}

func TestMetadata(t *testing.T) {
	arr := New[float64]()

	t.Run("absent key", func(t *testing.T) {
		v, ok := arr.GetMeta("Name")
		require.False(t, ok)
		require.Empty(t, v)

		_, err := arr.LookupMeta("Name")
		require.ErrorIs(t, err, errs.ErrMetaNotFound)

		require.Equal(t, "fallback", arr.MetaOr("Name", "fallback"))
	})

	t.Run("set and overwrite", func(t *testing.T) {
		require.NoError(t, arr.SetMeta("Name", "first"))
		require.NoError(t, arr.SetMeta("Name", "test"))

		v, ok := arr.GetMeta("Name")
		require.True(t, ok)
		require.Equal(t, "test", v)

		v, err := arr.LookupMeta("Name")
		require.NoError(t, err)
		require.Equal(t, "test", v)
		require.Equal(t, "test", arr.MetaOr("Name", "fallback"))
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, arr.SetMeta("Unit", ""))
		v, ok := arr.GetMeta("Unit")
		require.True(t, ok)
		require.Empty(t, v)
	})

	t.Run("rejects unencodable entries", func(t *testing.T) {
		require.ErrorIs(t, arr.SetMeta("", "x"), errs.ErrInvalidMetadata)
		require.ErrorIs(t, arr.SetMeta("a\x00b", "x"), errs.ErrInvalidMetadata)
		require.ErrorIs(t, arr.SetMeta("Key", "x\x00"), errs.ErrInvalidMetadata)
		require.Len(t, arr.Meta(), 2)
	})

	t.Run("Meta returns a copy", func(t *testing.T) {
		m := arr.Meta()
		m["Name"] = "changed"
		v, _ := arr.GetMeta("Name")
		require.Equal(t, "test", v)
	})

	t.Run("wire order is sorted by key", func(t *testing.T) {
		a := New[float32]()
		require.NoError(t, a.SetMeta("b", "2"))
		require.NoError(t, a.SetMeta("c", "3"))
		require.NoError(t, a.SetMeta("a", "1"))

		keys := make([]string, 0, 3)
		for _, e := range a.metaEntries() {
			keys = append(keys, e.Key)
		}
		require.Equal(t, []string{"a", "b", "c"}, keys)
	})
}

func TestAddDim(t *testing.T) {
	t.Run("copies indices", func(t *testing.T) {
		arr := New[float64]()
		indices := []uint64{8, 9, 10}
		require.NoError(t, arr.AddDim("x", indices))

		indices[0] = 99
		d, ok := arr.Dim("x")
		require.True(t, ok)
		require.Equal(t, []uint64{8, 9, 10}, d.Indices())

		got := d.Indices()
		got[1] = 99
		require.Equal(t, uint64(9), d.Index(1))
	})

	t.Run("name length boundary", func(t *testing.T) {
		arr := New[float64]()
		require.NoError(t, arr.AddDim(strings.Repeat("a", 127), []uint64{1}))
		require.Equal(t, 1, arr.NumDims())

		err := arr.AddDim(strings.Repeat("b", 128), []uint64{1, 2})
		require.ErrorIs(t, err, errs.ErrDimNameTooLong)
		require.Equal(t, 1, arr.NumDims())
		require.Equal(t, []int{1}, arr.Shape())

		_, ok := arr.Dim(strings.Repeat("b", 128))
		require.False(t, ok)
	})

	t.Run("rejects NUL in name", func(t *testing.T) {
		arr := New[float64]()
		require.ErrorIs(t, arr.AddDim("a\x00b", []uint64{1}), errs.ErrInvalidDimName)
		require.Zero(t, arr.NumDims())
	})

	t.Run("nil indices become an empty axis", func(t *testing.T) {
		arr := New[float64]()
		require.NoError(t, arr.AddDim("empty", nil))
		d := arr.DimAt(0)
		require.Zero(t, d.Len())
		require.Equal(t, uint64(136), d.SizeBinary())
	})

	t.Run("lookup survives later appends", func(t *testing.T) {
		arr := New[float64]()
		require.NoError(t, arr.AddDim("first", []uint64{1, 2}))
		for i := range 100 {
			require.NoError(t, arr.AddDimRange("d"+strings.Repeat("x", i%5), uint64(i), 1))
		}

		d, ok := arr.Dim("first")
		require.True(t, ok)
		require.Equal(t, "first", d.Name())
		require.Equal(t, []uint64{1, 2}, d.Indices())
	})

	t.Run("duplicate names resolve to newest", func(t *testing.T) {
		arr := New[float64]()
		require.NoError(t, arr.AddDim("x", []uint64{1}))
		require.NoError(t, arr.AddDim("x", []uint64{1, 2, 3}))

		require.Equal(t, 2, arr.NumDims())
		d, ok := arr.Dim("x")
		require.True(t, ok)
		require.Equal(t, 3, d.Len())
		require.Equal(t, 1, arr.DimAt(0).Len())
	})
}

func TestAddDimSeq(t *testing.T) {
	arr := New[float32]()
	require.NoError(t, arr.AddDimSeq("seq", slices.Values([]uint64{5, 3, 1})))
	require.NoError(t, arr.AddDimRange("range", 8, 10))
	require.NoError(t, arr.AddDimRange("none", 0, 0))

	d, _ := arr.Dim("seq")
	assert.Equal(t, []uint64{5, 3, 1}, d.Indices())

	d, _ = arr.Dim("range")
	assert.Equal(t, []uint64{8, 9, 10, 11, 12, 13, 14, 15, 16, 17}, d.Indices())

	require.Equal(t, []int{3, 10, 0}, arr.Shape())

	require.ErrorIs(t, arr.AddDimRange("bad", 0, -1), errs.ErrInvalidSize)
	require.ErrorIs(t, arr.AddDimSeq(strings.Repeat("n", 200), slices.Values([]uint64{1})), errs.ErrDimNameTooLong)
	require.Equal(t, 3, arr.NumDims())
}

func TestElementCount(t *testing.T) {
	tests := []struct {
		name  string
		shape []int
		want  uint64
	}{
		{name: "no dimensions", shape: nil, want: 1},
		{name: "single axis", shape: []int{10}, want: 10},
		{name: "matrix", shape: []int{3, 4}, want: 12},
		{name: "zero-length axis", shape: []int{3, 0, 4}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arr := New[float64]()
			for i, n := range tt.shape {
				require.NoError(t, arr.AddDimRange(string(rune('a'+i)), 0, n))
			}

			got, err := arr.ElementCount()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestElementCountOverflow(t *testing.T) {
	huge := Dim{name: "huge", indices: make([]uint64, 1<<16)}
	dims := []Dim{huge, huge, huge, huge, huge}

	_, err := elementCount(dims)
	require.ErrorIs(t, err, errs.ErrSizeOverflow)
}

func TestSetData(t *testing.T) {
	arr := New[float64]()
	data := []float64{1, 2, 3}
	arr.SetData(data)

	data[0] = 42
	require.Equal(t, float64(42), arr.Data()[0])
}
