package compress

// NoOpCompressor passes data through unchanged. It backs plain .vecio files.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself; the result aliases the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself; the result aliases the input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressLimit returns data itself, or an error if it is longer than limit.
func (c NoOpCompressor) DecompressLimit(data []byte, limit uint64) ([]byte, error) {
	if uint64(len(data)) > limit {
		return nil, errTooLarge("none", uint64(len(data)), limit)
	}

	return data, nil
}
