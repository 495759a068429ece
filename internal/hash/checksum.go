// Package hash provides the 32-bit checksums stored in the vecio header.
//
// Every checksum is the low 32 bits of xxHash64 with seed zero.
package hash

import "github.com/cespare/xxhash/v2"

// Sum32 computes the checksum of data.
func Sum32(data []byte) uint32 {
	return uint32(xxhash.Sum64(data))
}

// Digest is a streaming checksum. It implements io.Writer.
type Digest struct {
	d *xxhash.Digest
}

// New returns a new streaming Digest.
func New() *Digest {
	return &Digest{d: xxhash.New()}
}

// Write adds p to the running checksum. It never fails.
func (d *Digest) Write(p []byte) (int, error) {
	return d.d.Write(p)
}

// Sum32 returns the checksum of everything written so far.
func (d *Digest) Sum32() uint32 {
	return uint32(d.d.Sum64())
}

// Reset clears the running checksum.
func (d *Digest) Reset() {
	d.d.Reset()
}
