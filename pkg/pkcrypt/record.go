package pkcrypt

import "encoding/binary"

// Gen 3 record geometry.
const (
	Gen3HeaderSize = 0x20
	Gen3BlockSize  = 12
	Gen3StoredSize = Gen3HeaderSize + BlockCount*Gen3BlockSize
	Gen3ChecksumAt = 0x1C
)

// Gen 7 record geometry.
const (
	Gen7HeaderSize = 8
	Gen7BlockSize  = 56
	Gen7StoredSize = Gen7HeaderSize + BlockCount*Gen7BlockSize
	Gen7ChecksumAt = 0x06
)

// Gen3Key returns the XOR key of a gen 3 record (PID ^ OTID).
func Gen3Key(rec []byte) uint32 {
	return binary.LittleEndian.Uint32(rec[0:]) ^ binary.LittleEndian.Uint32(rec[4:])
}

// Gen3ShuffleValue returns PID % 24.
func Gen3ShuffleValue(rec []byte) uint32 {
	return binary.LittleEndian.Uint32(rec[0:]) % 24
}

// Gen3Decrypt decrypts a gen 3 record in place. rec must hold at least
// Gen3StoredSize bytes; the party tail is never encrypted.
func Gen3Decrypt(rec []byte) {
	XOR32(rec[Gen3HeaderSize:Gen3StoredSize], Gen3Key(rec))
	Shuffle(rec, Gen3HeaderSize, Gen3BlockSize, Gen3ShuffleValue(rec))
}

// Gen3Encrypt is the inverse of Gen3Decrypt.
func Gen3Encrypt(rec []byte) {
	Unshuffle(rec, Gen3HeaderSize, Gen3BlockSize, Gen3ShuffleValue(rec))
	XOR32(rec[Gen3HeaderSize:Gen3StoredSize], Gen3Key(rec))
}

// Gen3Checksum sums the decrypted data blocks of a gen 3 record.
func Gen3Checksum(rec []byte) uint16 {
	return Sum16(rec[Gen3HeaderSize:Gen3StoredSize])
}

// Gen7ShuffleValue derives the block order from the encryption constant.
func Gen7ShuffleValue(rec []byte) uint32 {
	ec := binary.LittleEndian.Uint32(rec[0:])
	return ((ec >> 13) & 31) % 24
}

// Gen7Decrypt decrypts a gen 7 record in place. Any bytes past
// Gen7StoredSize (the party tail) are decrypted with a fresh keystream.
func Gen7Decrypt(rec []byte) {
	gen7Crypt(rec)
	Shuffle(rec, Gen7HeaderSize, Gen7BlockSize, Gen7ShuffleValue(rec))
}

// Gen7Encrypt is the inverse of Gen7Decrypt.
func Gen7Encrypt(rec []byte) {
	Unshuffle(rec, Gen7HeaderSize, Gen7BlockSize, Gen7ShuffleValue(rec))
	gen7Crypt(rec)
}

func gen7Crypt(rec []byte) {
	ec := binary.LittleEndian.Uint32(rec[0:])
	LCG(rec[Gen7HeaderSize:Gen7StoredSize], ec)
	if len(rec) > Gen7StoredSize {
		LCG(rec[Gen7StoredSize:], ec)
	}
}

// Gen7Checksum sums the decrypted data blocks of a gen 7 record.
func Gen7Checksum(rec []byte) uint16 {
	return Sum16(rec[Gen7HeaderSize:Gen7StoredSize])
}
