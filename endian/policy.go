package endian

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"

	"github.com/arloliu/vecio/internal/pool"
)

// Scalar is the set of fixed-width values Policy can normalize.
type Scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

// Policy writes host-native memory to a sink as little-endian bytes.
//
// On a little-endian host every write is a plain copy. On a big-endian host
// each value (or each element of a byte run) is byte-reversed first.
type Policy struct {
	little bool
}

var native = Policy{little: hostOrder == binary.LittleEndian}

// Native returns the policy for the current host.
func Native() Policy {
	return native
}

// NewPolicy returns a policy that treats host as the native byte order.
// It exists so callers can exercise the swapping path on any machine; production
// code should use Native.
func NewPolicy(host binary.ByteOrder) Policy {
	return Policy{little: host == binary.LittleEndian}
}

// HostIsLittleEndian reports whether the policy's host order is little-endian.
func (p Policy) HostIsLittleEndian() bool {
	return p.little
}

// NeedsSwap reports whether writes go through byte reversal.
func (p Policy) NeedsSwap() bool {
	return !p.little
}

// WriteLittleScalar writes the in-memory bytes of v to w in little-endian order.
// v is passed by value so the caller's copy is never modified.
func WriteLittleScalar[T Scalar](p Policy, w io.Writer, v T) error {
	var buf [8]byte
	n := int(unsafe.Sizeof(v))
	copy(buf[:n], unsafe.Slice((*byte)(unsafe.Pointer(&v)), n))

	if !p.little {
		reverse(buf[:n])
	}

	_, err := w.Write(buf[:n])

	return err
}

// AppendLittleScalar appends the little-endian bytes of v to dst.
func AppendLittleScalar[T Scalar](p Policy, dst []byte, v T) []byte {
	n := int(unsafe.Sizeof(v))
	start := len(dst)
	dst = append(dst, unsafe.Slice((*byte)(unsafe.Pointer(&v)), n)...)

	if !p.little {
		reverse(dst[start:])
	}

	return dst
}

// WriteLittleBytes writes b to w, treating the whole run as a single value.
// On a swapping policy the run is reversed through a pooled staging buffer,
// so there is no upper bound on len(b). b itself is never modified.
func (p Policy) WriteLittleBytes(w io.Writer, b []byte) error {
	if p.little || len(b) < 2 {
		_, err := w.Write(b)
		return err
	}

	bb := pool.GetSwapBuffer()
	defer pool.PutSwapBuffer(bb)

	dst := bb.Extend(len(b))
	for i, c := range b {
		dst[len(b)-1-i] = c
	}

	_, err := w.Write(dst)

	return err
}

// WriteLittleElements writes raw as a sequence of elemSize-byte values.
// On a swapping policy each element is reversed independently; the data is
// staged in bounded chunks so memory use does not grow with len(raw).
func (p Policy) WriteLittleElements(w io.Writer, raw []byte, elemSize int) error {
	if elemSize <= 0 || len(raw)%elemSize != 0 {
		return fmt.Errorf("endian: %d bytes is not a whole number of %d-byte elements", len(raw), elemSize)
	}

	if p.little || elemSize == 1 {
		_, err := w.Write(raw)
		return err
	}

	bb := pool.GetSwapBuffer()
	defer pool.PutSwapBuffer(bb)

	chunk := max(pool.SwapBufferDefaultSize/elemSize, 1) * elemSize
	for off := 0; off < len(raw); off += chunk {
		end := min(off+chunk, len(raw))
		bb.Reset()
		dst := bb.Extend(end - off)
		copy(dst, raw[off:end])
		for e := 0; e < len(dst); e += elemSize {
			reverse(dst[e : e+elemSize])
		}
		if _, err := w.Write(dst); err != nil {
			return err
		}
	}

	return nil
}

// SliceBytes returns the in-memory bytes of s without copying.
// The result aliases s and must not outlive it.
func SliceBytes[T Scalar](s []T) []byte {
	if len(s) == 0 {
		return nil
	}

	var zero T

	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
