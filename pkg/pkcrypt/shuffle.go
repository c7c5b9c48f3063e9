// Package pkcrypt implements the record ciphers, block shuffles and checksums
// used by the encrypted entity formats.
//
// Every function here is pure: it reads and writes only the slice it is given
// and never retains it.
package pkcrypt

// BlockCount is the number of shuffled sub-blocks in an encrypted record.
const BlockCount = 4

// blockPosition lists, for each shuffle value, the physical block that holds
// logical block 0..3.
var blockPosition = [24][BlockCount]int{
	{0, 1, 2, 3},
	{0, 1, 3, 2},
	{0, 2, 1, 3},
	{0, 3, 1, 2},
	{0, 2, 3, 1},
	{0, 3, 2, 1},
	{1, 0, 2, 3},
	{1, 0, 3, 2},
	{2, 0, 1, 3},
	{3, 0, 1, 2},
	{2, 0, 3, 1},
	{3, 0, 2, 1},
	{1, 2, 0, 3},
	{1, 3, 0, 2},
	{2, 1, 0, 3},
	{3, 1, 0, 2},
	{2, 3, 0, 1},
	{3, 2, 0, 1},
	{1, 2, 3, 0},
	{1, 3, 2, 0},
	{2, 1, 3, 0},
	{3, 1, 2, 0},
	{2, 3, 1, 0},
	{3, 2, 1, 0},
}

// ShuffleOrder returns the block permutation selected by sv.
func ShuffleOrder(sv uint32) [BlockCount]int {
	return blockPosition[sv%24]
}

// Shuffle puts the blocks of data[start:start+4*blockSize] back into logical
// order: logical block i is read from physical block ShuffleOrder(sv)[i].
func Shuffle(data []byte, start, blockSize int, sv uint32) {
	order := ShuffleOrder(sv)
	span := data[start : start+BlockCount*blockSize]
	tmp := make([]byte, len(span))
	copy(tmp, span)
	for i, src := range order {
		copy(span[i*blockSize:(i+1)*blockSize], tmp[src*blockSize:(src+1)*blockSize])
	}
}

// Unshuffle is the inverse of Shuffle for the same sv.
func Unshuffle(data []byte, start, blockSize int, sv uint32) {
	order := ShuffleOrder(sv)
	span := data[start : start+BlockCount*blockSize]
	tmp := make([]byte, len(span))
	copy(tmp, span)
	for i, dst := range order {
		copy(span[dst*blockSize:(dst+1)*blockSize], tmp[i*blockSize:(i+1)*blockSize])
	}
}
