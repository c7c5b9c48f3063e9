package pkx

import (
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkcrypt"
)

const (
	pk3BoxLength   = 80
	pk3PartyLength = 100
)

var pk3Layout = Layout{
	AttrPID:        u32(0x00),
	AttrTID:        u16(0x04),
	AttrSID:        u16(0x06),
	AttrLanguage:   u8(0x12),
	AttrBadEgg:     flag(0x13, 1, 0),
	AttrHasSpecies: flag(0x13, 1, 1),
	AttrEggName:    flag(0x13, 1, 2),
	AttrMarkings:   u8(0x1B),
	AttrChecksum:   u16(0x1C),
	AttrSanity:     u16(0x1E),

	AttrSpecies:    u16(0x20),
	AttrHeldItem:   u16(0x22),
	AttrExperience: u32(0x24),
	AttrFriendship: u8(0x29),

	AttrPokerus:     u8(0x44),
	AttrMetLocation: u8(0x45),
	AttrMetLevel:    bits(0x46, 2, 0, 7),
	AttrVersion:     bits(0x46, 2, 7, 4),
	AttrBall:        bits(0x46, 2, 11, 4),
	AttrOTGender:    flag(0x46, 2, 15),
	AttrEgg:         flag(0x48, 4, 30),
	AttrAbilityBit:  flag(0x48, 4, 31),
	AttrFateful:     flag(0x4C, 4, 31),

	AttrStatus:     u32(0x50),
	AttrPartyLevel: u8(0x54),
	AttrCurrentHP:  u16(0x56),
}

func init() {
	for i := 0; i < MoveSlots; i++ {
		pk3Layout[moveAttr(i)] = u16(0x2C + 2*i)
		pk3Layout[ppAttr(i)] = u8(0x34 + i)
		pk3Layout[ppUpAttr(i)] = bits(0x28, 1, 2*uint8(i), 2)
	}
	for s := StatHP; s < StatCount; s++ {
		pk3Layout[evAttr(s)] = u8(0x38 + int(s))
		pk3Layout[ivAttr(s)] = bits(0x48, 4, 5*uint8(s), 5)
		pk3Layout[partyStatAttr(s)] = u16(0x58 + 2*int(s))
	}
	for c := ContestCool; c < ContestCount; c++ {
		pk3Layout[contestAttr(c)] = u8(0x3E + int(c))
	}
}

// PK3 is the gen 3 record: 80 bytes boxed, 100 in the party. Nature, gender,
// shininess and the Unown letter are all derived from the PID.
//
// Gen 3 records carry no encryption marker, so the state is guessed once when
// the record is wrapped and tracked from then on. Field writes are refused
// while the record is encrypted; on a decrypted record every write refreshes
// the checksum.
type PK3 struct {
	record
	encrypted bool
}

// NewPK3 wraps buf without copying it. The record counts as encrypted when its
// stored checksum only validates after decryption. A record whose checksum
// validates neither way is treated as decrypted, so it can be repaired.
func NewPK3(buf Buffer, opts Options) (*PK3, error) {
	p, err := wrapPK3(buf, opts)
	if err != nil {
		return nil, err
	}
	p.encrypted = p.looksEncrypted()
	return p, nil
}

// NewStoredPK3 wraps buf holding a record in its stored, encrypted form, as
// every save slot does. An all zero slot is the same in both forms.
func NewStoredPK3(buf Buffer, opts Options) (*PK3, error) {
	p, err := wrapPK3(buf, opts)
	if err != nil {
		return nil, err
	}
	p.encrypted = true
	return p, nil
}

func wrapPK3(buf Buffer, opts Options) (*PK3, error) {
	r, err := newRecord(Gen3, buf, pk3Layout, opts)
	if err != nil {
		return nil, err
	}
	p := &PK3{record: r}
	p.self = p
	p.writable = p.plainOnly
	p.touched = p.RefreshChecksum
	return p, nil
}

func (p *PK3) looksEncrypted() bool {
	sum := p.Checksum()
	if sum == p.CalcChecksum() {
		return false
	}
	var data [pkcrypt.Gen3StoredSize]byte
	p.buf.Load(data[:], 0)
	pkcrypt.Gen3Decrypt(data[:])
	return pkcrypt.Gen3Checksum(data[:]) == sum
}

func (p *PK3) Clone() Entity {
	c, _ := wrapPK3(NewOwned(p.Bytes()), p.opts)
	c.encrypted = p.encrypted
	return c
}

func (p *PK3) IsEncrypted() bool { return p.encrypted }

func (p *PK3) Decrypt() {
	if !p.encrypted {
		return
	}
	b := p.Bytes()
	pkcrypt.Gen3Decrypt(b)
	p.buf.Store(b, 0)
	p.encrypted = false
}

func (p *PK3) Encrypt() {
	if p.encrypted {
		return
	}
	b := p.Bytes()
	pkcrypt.Gen3Encrypt(b)
	p.buf.Store(b, 0)
	p.encrypted = true
}

func (p *PK3) CalcChecksum() uint16 {
	var data [pkcrypt.Gen3StoredSize]byte
	p.buf.Load(data[:], 0)
	return pkcrypt.Gen3Checksum(data[:])
}

func (p *PK3) RefreshChecksum() {
	p.layout[AttrChecksum].Write(p.buf, uint32(p.CalcChecksum()))
}

// EncryptionConstant is the PID; gen 3 has no separate constant.
func (p *PK3) EncryptionConstant() uint32 { return p.PID() }

func (p *PK3) SetEncryptionConstant(uint32) error { return nil }

func (p *PK3) Species() uint16 { return Gen3ToNational(uint16(p.get(AttrSpecies))) }

func (p *PK3) SetSpecies(v uint16) error {
	if lim := Gen3.SpeciesLimit(); v > lim {
		return rangeErr("species", int64(v), int64(lim))
	}
	if err := p.set(AttrSpecies, uint32(NationalToGen3(v))); err != nil {
		return err
	}
	return p.setBool(AttrHasSpecies, v != 0)
}

// Form is only meaningful for Unown, whose letter comes from the PID.
func (p *PK3) Form() uint8 {
	if p.Species() != SpeciesUnown {
		return 0
	}
	return UnownLetter(p.PID())
}

// SetForm is a no-op: the only gen 3 form is derived from the PID.
func (p *PK3) SetForm(uint8) error { return nil }

// UnownLetter extracts the Unown form index from a PID.
func UnownLetter(pid uint32) uint8 {
	v := (pid&0x3000000)>>18 | (pid&0x30000)>>12 | (pid&0x300)>>6 | pid&0x3
	return uint8(v % 28)
}

func (p *PK3) AbilityBit() uint8 { return uint8(p.get(AttrAbilityBit)) }

// Ability resolves the ability slot through the personal table. Species
// with a single ability use slot 0 for both bits.
func (p *PK3) Ability() uint16 {
	a := p.Abilities()
	if v := a[p.AbilityBit()]; v != 0 {
		return v
	}
	return a[0]
}

func (p *PK3) SetAbility(v uint16) error {
	a := p.Abilities()
	switch v {
	case a[0]:
		return p.set(AttrAbilityBit, 0)
	case a[1]:
		return p.set(AttrAbilityBit, 1)
	}
	return rangeErr("ability", int64(v), int64(max(a[0], a[1])))
}

func (p *PK3) AbilityNumber() uint8 { return 1 << p.AbilityBit() }

func (p *PK3) SetAbilityNumber(v uint8) error {
	switch v {
	case 1:
		return p.set(AttrAbilityBit, 0)
	case 2:
		return p.set(AttrAbilityBit, 1)
	}
	return rangeErr("ability number", int64(v), 2)
}

func (p *PK3) Nature() Nature { return Nature(p.PID() % uint32(NatureCount)) }

// SetNature rewrites the PID, keeping gender and shininess.
func (p *PK3) SetNature(v Nature) error {
	if v >= NatureCount {
		return rangeErr("nature", int64(v), int64(NatureCount-1))
	}
	pid := p.PID()
	return p.SetPID(pid3(pid, p.otx(), uint8(pid), v, p.Shiny()))
}

func (p *PK3) Gender() Gender {
	return genderFromValue(p.GenderRatio(), uint8(p.PID()))
}

// SetGender rewrites the low PID byte, keeping nature and shininess.
func (p *PK3) SetGender(v Gender) error {
	if err := p.checkGender(v); err != nil {
		return err
	}
	if p.Gender() == v {
		return nil
	}
	ratio := p.GenderRatio()
	switch ratio {
	case personal.RatioGenderless, personal.RatioFemale, personal.RatioMale:
		return nil
	}
	pid := p.PID()
	low := uint8(pid)
	if v == Female {
		low %= ratio
	} else {
		low = ratio + low%(255-ratio+1)
	}
	return p.SetPID(pid3(pid, p.otx(), low, p.Nature(), p.Shiny()))
}

// SetShiny rewrites the PID, keeping nature and gender.
func (p *PK3) SetShiny(v bool) error {
	if p.Shiny() == v {
		return nil
	}
	pid := p.PID()
	return p.SetPID(pid3(pid, p.otx(), uint8(pid), p.Nature(), v))
}

func (p *PK3) otx() uint16 { return p.TID() ^ p.SID() }

func (p *PK3) TSV() uint16 { return p.otx() >> 3 }

func (p *PK3) PSV() uint16 {
	pid := p.PID()
	return uint16((pid>>16)^(pid&0xFFFF)) >> 3
}

// SetEgg also maintains the egg name flag.
func (p *PK3) SetEgg(v bool) error {
	if err := p.setBool(AttrEgg, v); err != nil {
		return err
	}
	return p.setBool(AttrEggName, v)
}

func (p *PK3) BadEgg() bool { return p.getBool(AttrBadEgg) }

func (p *PK3) SetBadEgg(v bool) error { return p.setBool(AttrBadEgg, v) }

// pid3 searches for a PID with the given low byte, nature and shininess,
// starting from cur so that unrelated bits move as little as possible.
func pid3(cur uint32, otx uint16, low uint8, nature Nature, shiny bool) uint32 {
	n := uint32(nature)
	if shiny {
		start := cur >> 8 & 0xFF
		for i := uint32(0); i < 256; i++ {
			lo := (start+i)&0xFF<<8 | uint32(low)
			for x := uint32(0); x < 8; x++ {
				hi := (uint32(otx) ^ lo ^ x) & 0xFFFF
				if pid := hi<<16 | lo; pid%25 == n {
					return pid
				}
			}
		}
		lo := cur&0xFF00 | uint32(low)
		return (uint32(otx)^lo)<<16 | lo
	}

	lo := cur&0xFF00 | uint32(low)
	hi := cur >> 16
	// 0x10000 is 11 mod 25 and 16 is the inverse of 11 mod 25.
	diff := (n + 25 - (hi<<16|lo)%25) % 25
	hi += diff * 16 % 25
	if hi > 0xFFFF {
		hi -= 25
	}
	step := int32(25)
	if hi > 0x8000 {
		step = -25
	}
	for (uint32(otx)^hi^lo)&0xFFFF < 8 {
		hi = uint32(int32(hi) + step)
	}
	return hi<<16 | lo
}
