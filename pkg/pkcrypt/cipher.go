package pkcrypt

import "encoding/binary"

const (
	lcgMult = 0x41C64E6D
	lcgAdd  = 0x00006073
)

// XOR32 XORs every little-endian u32 in data with key. Trailing bytes that do
// not form a full word are left alone. XOR32 is its own inverse.
func XOR32(data []byte, key uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		w := binary.LittleEndian.Uint32(data[i:])
		binary.LittleEndian.PutUint32(data[i:], w^key)
	}
}

// LCG applies the linear-congruential keystream seeded by seed to every
// little-endian u16 in data. LCG is its own inverse.
func LCG(data []byte, seed uint32) {
	for i := 0; i+2 <= len(data); i += 2 {
		seed = lcgMult*seed + lcgAdd
		w := binary.LittleEndian.Uint16(data[i:])
		binary.LittleEndian.PutUint16(data[i:], w^uint16(seed>>16))
	}
}

// Sum16 is the running 16-bit sum of the little-endian u16 words in data.
func Sum16(data []byte) uint16 {
	var sum uint16
	for i := 0; i+2 <= len(data); i += 2 {
		sum += binary.LittleEndian.Uint16(data[i:])
	}
	return sum
}

// SectorSum is the save sector checksum: a 32-bit sum of little-endian u32
// words folded into 16 bits.
func SectorSum(data []byte) uint16 {
	var sum uint32
	for i := 0; i+4 <= len(data); i += 4 {
		sum += binary.LittleEndian.Uint32(data[i:])
	}
	return uint16((sum >> 16) + (sum & 0xFFFF))
}
