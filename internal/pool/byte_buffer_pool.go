package pool

import (
	"io"
	"sync"
)

const (
	HeaderBufferDefaultSize  = 1024 * 4   // 4KiB
	HeaderBufferMaxThreshold = 1024 * 256 // 256KiB
	SwapBufferDefaultSize    = 1024 * 16  // 16KiB
	SwapBufferMaxThreshold   = 1024 * 128 // 128KiB
)

// ByteBuffer is a growable byte slice wrapper that can be recycled through a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the number of bytes in the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures the buffer can take n more bytes without reallocating.
//
// Small buffers grow by at least HeaderBufferDefaultSize; larger ones grow by
// a quarter of their capacity so repeated appends stay amortized.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := HeaderBufferDefaultSize
	if cap(bb.B) > 4*HeaderBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Extend grows the length of the buffer by n bytes and returns the newly exposed region.
// The contents of the returned slice are unspecified.
func (bb *ByteBuffer) Extend(n int) []byte {
	bb.Grow(n)
	start := len(bb.B)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte to the buffer. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the buffer contents to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being
// retained, so a single large write does not pin memory for the process lifetime.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose fresh buffers have defaultSize capacity.
// A maxThreshold of zero disables the size check.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	headerPool = NewByteBufferPool(HeaderBufferDefaultSize, HeaderBufferMaxThreshold)
	swapPool   = NewByteBufferPool(SwapBufferDefaultSize, SwapBufferMaxThreshold)
)

// GetHeaderBuffer retrieves a buffer used to stage an encoded header.
func GetHeaderBuffer() *ByteBuffer {
	return headerPool.Get()
}

// PutHeaderBuffer returns a header staging buffer to its pool.
func PutHeaderBuffer(bb *ByteBuffer) {
	headerPool.Put(bb)
}

// GetSwapBuffer retrieves a buffer used to stage byte-reversed data.
func GetSwapBuffer() *ByteBuffer {
	return swapPool.Get()
}

// PutSwapBuffer returns a byte-reversal staging buffer to its pool.
func PutSwapBuffer(bb *ByteBuffer) {
	swapPool.Put(bb)
}
