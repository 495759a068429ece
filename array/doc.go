// Package array implements the vecio array container and its reader.
//
// An Array owns three things: a string metadata store, an ordered list of
// named dimensions (each an ordered list of uint64 indices), and a reference
// to a caller-owned data slice whose length is the product of the dimension
// lengths. Write serializes all three into a single self-describing record;
// Decoder and the Decode/Unmarshal/Read helpers reconstruct it.
//
// # Writing
//
//	arr := array.New[float64]()
//	_ = arr.SetMeta("Name", "test")
//	_ = arr.AddDim("testdim", []uint64{8, 9, 10, 11, 12, 13, 14, 15, 16, 17})
//	arr.SetData([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
//	err := arr.Write(w)
//
// # Reading
//
//	arr, err := array.Read[float64](r)
//
// When the element type is not known in advance, parse with ReadRecord or
// NewDecoder, inspect Decoder.NumberType, then call Decode with the matching
// type parameter.
//
// # Thread Safety
//
// Array is NOT thread-safe. A write reads the container's internal buffers
// and the caller's data slice directly, so neither may be mutated while a
// write is in progress, and two writes of the same Array must not overlap.
// A Decoder is immutable after construction and may be shared.
package array
