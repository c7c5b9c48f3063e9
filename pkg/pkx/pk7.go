package pkx

import (
	"encoding/binary"

	"github.com/samcharles93/pkxcore/pkg/pkcrypt"
)

const (
	pk7BoxLength   = 232
	pk7PartyLength = 260
)

var pk7Layout = Layout{
	AttrEC:            u32(0x00),
	AttrSanity:        u16(0x04),
	AttrChecksum:      u16(0x06),
	AttrSpecies:       u16(0x08),
	AttrHeldItem:      u16(0x0A),
	AttrTID:           u16(0x0C),
	AttrSID:           u16(0x0E),
	AttrExperience:    u32(0x10),
	AttrAbility:       u8(0x14),
	AttrAbilityNumber: bits(0x15, 1, 0, 3),
	AttrMarkings:      u16(0x16),
	AttrPID:           u32(0x18),
	AttrNature:        u8(0x1C),
	AttrFateful:       flag(0x1D, 1, 0),
	AttrGender:        bits(0x1D, 1, 1, 2),
	AttrForm:          bits(0x1D, 1, 3, 5),
	AttrPokerus:       u8(0x2B),

	AttrEgg:       flag(0x74, 4, 30),
	AttrNicknamed: flag(0x74, 4, 31),

	AttrCurrentHandler: u8(0x93),
	AttrHTFriendship:   u8(0xA2),
	AttrFriendship:     u8(0xCA),
	AttrEggYear:        u8(0xD1),
	AttrEggMonth:       u8(0xD2),
	AttrEggDay:         u8(0xD3),
	AttrMetYear:        u8(0xD4),
	AttrMetMonth:       u8(0xD5),
	AttrMetDay:         u8(0xD6),
	AttrEggLocation:    u16(0xD8),
	AttrMetLocation:    u16(0xDA),
	AttrBall:           u8(0xDC),
	AttrMetLevel:       bits(0xDD, 1, 0, 7),
	AttrOTGender:       flag(0xDD, 1, 7),
	AttrVersion:        u8(0xDF),
	AttrCountry:        u8(0xE0),
	AttrRegion:         u8(0xE1),
	AttrConsoleRegion:  u8(0xE2),
	AttrLanguage:       u8(0xE3),

	AttrStatus:     u32(0xE8),
	AttrPartyLevel: u8(0xEC),
	AttrCurrentHP:  u16(0xF0),
}

// Hyper training bits are stored HP, Atk, Def, SpA, SpD, Spe.
var pk7HyperBit = [StatCount]uint8{0, 1, 2, 5, 3, 4}

func init() {
	for i := 0; i < MoveSlots; i++ {
		pk7Layout[moveAttr(i)] = u16(0x5A + 2*i)
		pk7Layout[ppAttr(i)] = u8(0x62 + i)
		pk7Layout[ppUpAttr(i)] = u8(0x66 + i)
		pk7Layout[relearnAttr(i)] = u16(0x6A + 2*i)
	}
	for s := StatHP; s < StatCount; s++ {
		pk7Layout[evAttr(s)] = u8(0x1E + int(s))
		pk7Layout[ivAttr(s)] = bits(0x74, 4, 5*uint8(s), 5)
		pk7Layout[hyperAttr(s)] = flag(0xDE, 1, pk7HyperBit[s])
		pk7Layout[partyStatAttr(s)] = u16(0xF2 + 2*int(s))
	}
	for c := ContestCool; c < ContestCount; c++ {
		pk7Layout[contestAttr(c)] = u8(0x24 + int(c))
	}
}

// PK7 is the gen 7 record: 232 bytes boxed, 260 in the party. Data blocks
// are shuffled by the encryption constant and encrypted with an LCG stream.
type PK7 struct {
	record
}

// NewPK7 wraps buf without copying it.
func NewPK7(buf Buffer, opts Options) (*PK7, error) {
	r, err := newRecord(Gen7, buf, pk7Layout, opts)
	if err != nil {
		return nil, err
	}
	p := &PK7{record: r}
	p.self = p
	p.writable = p.plainOnly
	return p, nil
}

func (p *PK7) Clone() Entity {
	c, _ := NewPK7(NewOwned(p.Bytes()), p.opts)
	return c
}

// IsEncrypted checks the string terminators inside the nickname and OT name,
// which are always zero in a decrypted record.
func (p *PK7) IsEncrypted() bool {
	var w [2]byte
	p.buf.Load(w[:], 0x58)
	if binary.LittleEndian.Uint16(w[:]) != 0 {
		return true
	}
	p.buf.Load(w[:], 0xC8)
	return binary.LittleEndian.Uint16(w[:]) != 0
}

func (p *PK7) Decrypt() {
	if !p.IsEncrypted() {
		return
	}
	b := p.Bytes()
	pkcrypt.Gen7Decrypt(b)
	p.buf.Store(b, 0)
}

// Encrypt refreshes the checksum before encrypting.
func (p *PK7) Encrypt() {
	if p.IsEncrypted() {
		return
	}
	p.RefreshChecksum()
	b := p.Bytes()
	pkcrypt.Gen7Encrypt(b)
	p.buf.Store(b, 0)
}

func (p *PK7) CalcChecksum() uint16 {
	var data [pkcrypt.Gen7StoredSize]byte
	p.buf.Load(data[:], 0)
	return pkcrypt.Gen7Checksum(data[:])
}

func (p *PK7) RefreshChecksum() {
	p.layout[AttrChecksum].Write(p.buf, uint32(p.CalcChecksum()))
}

func (p *PK7) TSV() uint16 { return (p.TID() ^ p.SID()) >> 4 }

func (p *PK7) PSV() uint16 {
	pid := p.PID()
	return uint16((pid>>16)^(pid&0xFFFF)) >> 4
}

// SetShiny rewrites the upper PID half so the shiny xor is zero, or flips
// a high bit to clear it.
func (p *PK7) SetShiny(v bool) error {
	if p.Shiny() == v {
		return nil
	}
	pid := p.PID()
	if v {
		lo := pid & 0xFFFF
		hi := uint32(p.TID()^p.SID()) ^ lo
		return p.SetPID(hi<<16 | lo)
	}
	return p.SetPID(pid ^ 0x10000000)
}

// Friendship reads the counter of whoever currently holds the creature.
func (p *PK7) Friendship() uint8 {
	if p.get(AttrCurrentHandler) != 0 {
		return uint8(p.get(AttrHTFriendship))
	}
	return uint8(p.get(AttrFriendship))
}

func (p *PK7) SetFriendship(v uint8) error {
	if p.get(AttrCurrentHandler) != 0 {
		return p.set(AttrHTFriendship, uint32(v))
	}
	return p.set(AttrFriendship, uint32(v))
}

func (p *PK7) SetIV(s Stat, v uint8) error {
	if v > MaxIV {
		return rangeErr("iv", int64(v), int64(MaxIV))
	}
	return p.record.SetIV(s, v)
}

func (p *PK7) SetEV(s Stat, v uint16) error {
	if v > uint16(MaxEVGen7) {
		return rangeErr("ev", int64(v), int64(MaxEVGen7))
	}
	return p.record.SetEV(s, v)
}

// Country, Region and ConsoleRegion are the 3DS locale fields.
func (p *PK7) Country() uint8       { return uint8(p.get(AttrCountry)) }
func (p *PK7) Region() uint8        { return uint8(p.get(AttrRegion)) }
func (p *PK7) ConsoleRegion() uint8 { return uint8(p.get(AttrConsoleRegion)) }

func (p *PK7) SetCountry(v uint8) error       { return p.set(AttrCountry, uint32(v)) }
func (p *PK7) SetRegion(v uint8) error        { return p.set(AttrRegion, uint32(v)) }
func (p *PK7) SetConsoleRegion(v uint8) error { return p.set(AttrConsoleRegion, uint32(v)) }

func (p *PK7) CurrentHandler() uint8 { return uint8(p.get(AttrCurrentHandler)) }

func (p *PK7) SetCurrentHandler(v uint8) error {
	if v > 1 {
		return rangeErr("current handler", int64(v), 1)
	}
	return p.set(AttrCurrentHandler, uint32(v))
}
