// Package endian provides byte order utilities for the vecio wire format.
//
// Every multi-byte value in a vecio file is little-endian regardless of the
// host. This package detects the host byte order once at start-up and exposes
// two layers on top of it:
//
//   - EndianEngine, the encoding/binary ByteOrder + AppendByteOrder pair used by parsers.
//   - Policy, which writes host-native values and byte runs to an io.Writer
//     normalized to little-endian, swapping only when the host is big-endian.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// Engines and policies are immutable values.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// hostOrder is probed once; the result cannot change for the life of the process.
var hostOrder = probeHostOrder()

// probeHostOrder inspects the low-address byte of a known 16-bit pattern.
func probeHostOrder() EndianEngine {
	// 0x0100 stores 0x00 first on little-endian hosts and 0x01 first on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CheckEndianness returns the host byte order.
func CheckEndianness() binary.ByteOrder {
	return hostOrder
}

func IsNativeLittleEndian() bool {
	return hostOrder == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return hostOrder == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == hostOrder
}

// GetLittleEndianEngine returns the little-endian engine, the byte order of the vecio wire format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
