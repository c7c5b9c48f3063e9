package sav

import "encoding/binary"

// Gen 3 flash layout.
const (
	SizeFull   = 0x20000
	SizeSingle = 0x10000

	SectorSize   = 0x1000
	SectorData   = 0xF80
	BlockCount   = 14
	CopySize     = SectorSize * BlockCount
	footerID     = 0xFF4
	footerSum    = 0xFF6
	footerMagic  = 0xFF8
	footerCount  = 0xFFC
	SectorMagic  = 0x08012025
	counterEmpty = 0xFFFFFFFF
)

// chunkLength is the number of bytes each block's checksum covers.
var chunkLength = [BlockCount]int{
	// trainer info
	0xF2C,
	// team, items, flags
	0xF80, 0xF80, 0xF80, 0xF08,
	// pc buffer
	0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0xF80, 0x7D0,
}

// Block ids.
const (
	blockTrainer = 0
	blockTeam    = 1
	blockPC      = 5
)

// Trainer block offsets.
const (
	trainerName     = 0x00
	trainerNameLen  = 7
	trainerGender   = 0x08
	trainerTID      = 0x0A
	trainerSID      = 0x0C
	trainerHours    = 0x0E
	trainerMinutes  = 0x10
	trainerSeconds  = 0x11
	trainerGameCode = 0xAC
)

// PC buffer offsets, relative to the start of the logical PC buffer formed by
// concatenating the data areas of blocks 5 through 13.
const (
	Boxes        = 14
	BoxSlots     = 30
	PartySlots   = 6
	BoxRecordLen = 80
	PartyRecLen  = 100

	pcCurrentBox = 0
	pcBoxData    = 4
	pcBoxNames   = pcBoxData + Boxes*BoxSlots*BoxRecordLen
	boxNameLen   = 9
	pcWallpapers = pcBoxNames + Boxes*boxNameLen
)

type footer struct {
	id      uint16
	sum     uint16
	magic   uint32
	counter uint32
}

func readFooter(sector []byte) footer {
	le := binary.LittleEndian
	return footer{
		id:      le.Uint16(sector[footerID:]),
		sum:     le.Uint16(sector[footerSum:]),
		magic:   le.Uint32(sector[footerMagic:]),
		counter: le.Uint32(sector[footerCount:]),
	}
}

func writeFooter(sector []byte, f footer) {
	le := binary.LittleEndian
	le.PutUint16(sector[footerID:], f.id)
	le.PutUint16(sector[footerSum:], f.sum)
	le.PutUint32(sector[footerMagic:], f.magic)
	le.PutUint32(sector[footerCount:], f.counter)
}

// newer reports whether counter a beats b. Erased sectors read 0xFFFFFFFF
// and lose to everything.
func newer(a, b uint32) bool {
	if a == counterEmpty {
		return false
	}
	if b == counterEmpty {
		return true
	}
	return a > b
}
