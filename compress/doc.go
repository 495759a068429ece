// Package compress provides whole-record compression codecs for vecio files.
//
// A vecio record is written uncompressed by the array package. When a record
// is stored with a compressed extension (.vecio.zst, .vecio.s2, .vecio.lz4)
// the complete encoded record, header included, is passed through one of the
// codecs below. The record's own checksums are verified after decompression.
//
//   - None: no compression
//   - Zstd: best ratio; pure Go by default, libzstd with the gozstd build tag
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(record)
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool encoders and are safe
// for concurrent use.
package compress
