// Package section defines the low-level binary structures of the vecio record format.
//
// A vecio record is a single self-describing file holding a dense N-dimensional
// array of fixed-width floating-point numbers, the labeled axes that describe its
// shape, and free-form string metadata.
//
// # Record Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (60 bytes, fixed)                                │
//	│  - Magic (8 bytes): "VECIO\0\0\0"                       │
//	│  - HeaderSize, MetaSize, SpecSize, DataSize,            │
//	│    NumberSize (5 × uint64)                              │
//	│  - CheckSumMeta, CheckSumData, CheckSum (3 × uint32)    │
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata (MetaSize bytes)                               │
//	│  - IsMetaKeyValue flag (1 byte, always 1)               │
//	│  - key\0value\0 pairs                                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Spec (SpecSize bytes)                                   │
//	│  - DimCount (uint64)                                    │
//	│  - DimCount × descriptor:                               │
//	│      name (128 bytes, NUL padded)                       │
//	│      index count (uint64)                               │
//	│      indices (count × uint64)                           │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (DataSize bytes)                                │
//	│  - product(index counts) × NumberSize-byte numbers      │
//	└─────────────────────────────────────────────────────────┘
//
// Every multi-byte integer and every payload element is little-endian on the
// wire, independent of the byte order of the machine that wrote it.
//
// # Writing
//
// Writers build a Projection, a transient view whose Metadata and Dims alias
// the owning array, and call Projection.Encode followed by the payload. The
// header and descriptors are written through an endian.Policy.
//
// # Parsing
//
// ParseHeader validates the fixed prefix and the size arithmetic, ParseMetadata
// splits the metadata blob, and ParseSpec walks the DimCount-prefixed
// descriptor list.
package section
