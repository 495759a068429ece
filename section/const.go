package section

// Byte layout of a vecio record. All multi-byte integers are little-endian.
//
//	offset  size  field
//	0       8     magic "VECIO\0\0\0"
//	8       8     HeaderSize
//	16      8     MetaSize (flag byte + metadata blob)
//	24      8     SpecSize (DimCount field + descriptors)
//	32      8     DataSize
//	40      8     NumberSize
//	48      4     CheckSumMeta
//	52      4     CheckSumData
//	56      4     CheckSum
//	60      1     IsMetaKeyValue flag
//	61      ...   metadata blob
//	...     8     DimCount
//	...     ...   descriptors, then DataSize bytes of payload
const (
	MagicSize          = 8
	SizeFieldCount     = 5
	ChecksumFieldCount = 3

	SizeFieldsOffset = MagicSize                           // 8
	ChecksumOffset   = SizeFieldsOffset + SizeFieldCount*8 // 48
	ChecksumSize     = ChecksumFieldCount * 4              // 12
	FixedHeaderSize  = ChecksumOffset + ChecksumSize       // 60
	MetaOffset       = FixedHeaderSize                     // byte offset of the metadata flag

	MetaFlagSize      = 1
	MetaFlagKeyValue  = uint8(1) // metadata blob is a sequence of key\0value\0 pairs
	DimNameSize       = 128      // fixed width of the name field, including at least one NUL
	DimCountSize      = 8
	DimIndexCountSize = 8
	DimIndexSize      = 8
	DimFixedSize      = DimNameSize + DimIndexCountSize
)

// Magic identifies a vecio record.
var Magic = [MagicSize]byte{'V', 'E', 'C', 'I', 'O', 0, 0, 0}
