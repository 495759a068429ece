package hash

import (
	"math/rand"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum32(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("Name\x00test\x00")},
		{"binary", []byte{0, 1, 2, 3, 255, 254}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, uint32(xxhash.Sum64(tt.data)), Sum32(tt.data))
		})
	}
}

func TestSum32Empty(t *testing.T) {
	// Low 32 bits of xxHash64("") = 0xef46db3751d8e999.
	assert.Equal(t, uint32(0x51d8e999), Sum32(nil))
}

func TestDigestMatchesSum32(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 10_000)
	rng.Read(data)

	d := New()
	for off := 0; off < len(data); off += 777 {
		end := min(off+777, len(data))
		n, err := d.Write(data[off:end])
		require.NoError(t, err)
		require.Equal(t, end-off, n)
	}

	assert.Equal(t, Sum32(data), d.Sum32())

	d.Reset()
	assert.Equal(t, Sum32(nil), d.Sum32())
}
