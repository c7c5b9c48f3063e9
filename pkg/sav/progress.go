package sav

import (
	"encoding/binary"
	"math/bits"

	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// Limits the games enforce on the money and coin counters.
const (
	MaxMoney = 999999
	MaxCoins = 9999
)

const (
	// Emerald's key doubles as the game code.
	trainerKeyE    = trainerGameCode
	trainerKeyFRLG = 0xF20

	dexCaught = 0x28
	dexSeen   = 0x5C
	dexLen    = 49
)

// Offsets into the item block, the data areas of blocks 1 to 4 laid end to end.
type itemOffsets struct {
	money, coins int
	seen         [2]int
}

func (g Game) items() itemOffsets {
	switch g {
	case GameFRLG:
		return itemOffsets{money: 0x290, coins: 0x294, seen: [2]int{0x5F8, 0x3A18}}
	case GameE:
		return itemOffsets{money: 0x490, coins: 0x494, seen: [2]int{0x988, 0x3B24}}
	}
	return itemOffsets{money: 0x490, coins: 0x494, seen: [2]int{0x938, 0x3A8C}}
}

// item returns n bytes of the item block at logical offset off. None of the
// fields read through it crosses a block boundary.
func (s *Sav3) item(off, n int) []byte {
	b := s.block(blockTeam + off/SectorData)
	within := off % SectorData
	return b[within : within+n]
}

// SecurityKey masks money and coins in Emerald and FireRed/LeafGreen. Ruby and
// Sapphire store them in the clear.
func (s *Sav3) SecurityKey() uint32 {
	switch s.game {
	case GameE:
		return binary.LittleEndian.Uint32(s.block(blockTrainer)[trainerKeyE:])
	case GameFRLG:
		return binary.LittleEndian.Uint32(s.block(blockTrainer)[trainerKeyFRLG:])
	}
	return 0
}

func (s *Sav3) Money() uint32 {
	return binary.LittleEndian.Uint32(s.item(s.game.items().money, 4)) ^ s.SecurityKey()
}

func (s *Sav3) SetMoney(v uint32) error {
	if v > MaxMoney {
		return rangeErr("money", int(v), MaxMoney)
	}
	binary.LittleEndian.PutUint32(s.item(s.game.items().money, 4), v^s.SecurityKey())
	s.touch()
	return nil
}

// Coins is the Game Corner coin case. Only the low half of the key applies.
func (s *Sav3) Coins() uint16 {
	return binary.LittleEndian.Uint16(s.item(s.game.items().coins, 2)) ^ uint16(s.SecurityKey())
}

func (s *Sav3) SetCoins(v uint16) error {
	if v > MaxCoins {
		return rangeErr("coins", int(v), MaxCoins)
	}
	binary.LittleEndian.PutUint16(s.item(s.game.items().coins, 2), v^uint16(s.SecurityKey()))
	s.touch()
	return nil
}

// dexBit locates the flag of a national dex number inside a 49 byte table.
func dexBit(species uint16) (int, byte, error) {
	lim := pkx.Gen3.SpeciesLimit()
	if species == 0 || species > lim {
		return 0, 0, rangeErr("species", int(species), int(lim))
	}
	i := int(species - 1)
	return i >> 3, 1 << (i & 7), nil
}

func (s *Sav3) Caught(species uint16) (bool, error) {
	i, mask, err := dexBit(species)
	if err != nil {
		return false, err
	}
	return s.block(blockTrainer)[dexCaught+i]&mask != 0, nil
}

func (s *Sav3) SetCaught(species uint16, v bool) error {
	i, mask, err := dexBit(species)
	if err != nil {
		return err
	}
	setFlag(s.block(blockTrainer)[dexCaught:dexCaught+dexLen], i, mask, v)
	s.touch()
	return nil
}

func (s *Sav3) Seen(species uint16) (bool, error) {
	i, mask, err := dexBit(species)
	if err != nil {
		return false, err
	}
	return s.block(blockTrainer)[dexSeen+i]&mask != 0, nil
}

// SetSeen writes the seen flag and both of its copies in the item block,
// which the games compare against the trainer block.
func (s *Sav3) SetSeen(species uint16, v bool) error {
	i, mask, err := dexBit(species)
	if err != nil {
		return err
	}
	setFlag(s.block(blockTrainer)[dexSeen:dexSeen+dexLen], i, mask, v)
	for _, off := range s.game.items().seen {
		setFlag(s.item(off, dexLen), i, mask, v)
	}
	s.touch()
	return nil
}

func (s *Sav3) DexCaught() int { return s.dexCount(dexCaught) }
func (s *Sav3) DexSeen() int   { return s.dexCount(dexSeen) }

func (s *Sav3) dexCount(off int) int {
	n := 0
	for _, b := range s.block(blockTrainer)[off : off+dexLen] {
		n += bits.OnesCount8(b)
	}
	return n
}

func setFlag(table []byte, i int, mask byte, v bool) {
	if v {
		table[i] |= mask
	} else {
		table[i] &^= mask
	}
}
