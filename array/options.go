package array

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/vecio/endian"
	"github.com/arloliu/vecio/internal/options"
	"github.com/arloliu/vecio/section"
)

// DefaultMaxRecordSize bounds the record size a decoder accepts unless overridden.
const DefaultMaxRecordSize = 4 << 30

// WriterConfig holds the settings of a single Write call.
type WriterConfig struct {
	logger    *zap.Logger
	checksums bool
	policy    endian.Policy
}

// WriterOption configures Write.
type WriterOption = options.Option[*WriterConfig]

func newWriterConfig(opts []WriterOption) (*WriterConfig, error) {
	cfg := &WriterConfig{
		logger:    zap.NewNop(),
		checksums: true,
		policy:    endian.Native(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger that receives per-phase debug events. A nil
// logger disables logging.
func WithLogger(logger *zap.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithChecksums toggles the xxHash64-based checksum fields. Enabled by
// default; when disabled the three fields are written as zero.
func WithChecksums(enabled bool) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.checksums = enabled
	})
}

// withPolicy overrides the host byte-order policy.
func withPolicy(p endian.Policy) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.policy = p
	})
}

// DecoderConfig holds the settings of a decoder.
type DecoderConfig struct {
	logger          *zap.Logger
	verifyChecksums bool
	maxRecordSize   uint64
}

// DecoderOption configures NewDecoder, ReadRecord, and the decode helpers.
type DecoderOption = options.Option[*DecoderConfig]

func newDecoderConfig(opts []DecoderOption) (*DecoderConfig, error) {
	cfg := &DecoderConfig{
		logger:          zap.NewNop(),
		verifyChecksums: true,
		maxRecordSize:   DefaultMaxRecordSize,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithDecoderLogger sets the logger used while parsing.
func WithDecoderLogger(logger *zap.Logger) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithVerifyChecksums toggles checksum verification. Records whose three
// checksum fields are all zero are never verified: zero checksums mean the
// record is unverified, not that it is intact.
func WithVerifyChecksums(enabled bool) DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.verifyChecksums = enabled
	})
}

// WithMaxRecordSize limits the total record size (header plus payload) the
// decoder accepts. The limit must be at least the fixed header size.
func WithMaxRecordSize(n uint64) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n < section.FixedHeaderSize {
			return fmt.Errorf("max record size %d is smaller than the fixed header", n)
		}
		c.maxRecordSize = n

		return nil
	})
}

// RecordSizeLimit returns the maximum record size a decoder built with opts
// accepts. Callers that decompress before decoding use it to bound the
// decompressed output.
func RecordSizeLimit(opts ...DecoderOption) (uint64, error) {
	cfg, err := newDecoderConfig(opts)
	if err != nil {
		return 0, err
	}

	return cfg.maxRecordSize, nil
}
