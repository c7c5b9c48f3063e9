package pkx

import (
	"github.com/samcharles93/pkxcore/pkg/personal"
)

const (
	pk1BoxLength   = 33
	pk1PartyLength = 44
)

func be(off, size int) Field { return Field{Offset: off, Size: size, BigEndian: true} }

func beBits(off, size int, shift, n uint8) Field {
	return Field{Offset: off, Size: size, Shift: shift, Bits: n, BigEndian: true}
}

// dvWord holds the four stored DVs as nibbles: Atk, Def, Spe, Spc.
var dvWord = be(0x1B, 2)

var pk1Layout = Layout{
	AttrSpecies:    u8(0x00),
	AttrCurrentHP:  be(0x01, 2),
	AttrBoxLevel:   u8(0x03),
	AttrStatus:     u8(0x04),
	AttrType1:      u8(0x05),
	AttrType2:      u8(0x06),
	AttrCatchRate:  u8(0x07),
	AttrHeldItem:   u8(0x07),
	AttrTID:        be(0x0C, 2),
	AttrExperience: be(0x0E, 3),

	ivAttr(StatAtk): beBits(0x1B, 2, 12, 4),
	ivAttr(StatDef): beBits(0x1B, 2, 8, 4),
	ivAttr(StatSpe): beBits(0x1B, 2, 4, 4),
	ivAttr(StatSpA): beBits(0x1B, 2, 0, 4),
	ivAttr(StatSpD): beBits(0x1B, 2, 0, 4),

	evAttr(StatHP):  be(0x11, 2),
	evAttr(StatAtk): be(0x13, 2),
	evAttr(StatDef): be(0x15, 2),
	evAttr(StatSpe): be(0x17, 2),
	evAttr(StatSpA): be(0x19, 2),
	evAttr(StatSpD): be(0x19, 2),

	AttrPartyLevel:         u8(0x21),
	partyStatAttr(StatHP):  be(0x22, 2),
	partyStatAttr(StatAtk): be(0x24, 2),
	partyStatAttr(StatDef): be(0x26, 2),
	partyStatAttr(StatSpe): be(0x28, 2),
	partyStatAttr(StatSpA): be(0x2A, 2),
	partyStatAttr(StatSpD): be(0x2A, 2),
}

func init() {
	for i := 0; i < MoveSlots; i++ {
		pk1Layout[moveAttr(i)] = u8(0x08 + i)
		pk1Layout[ppAttr(i)] = bits(0x1D+i, 1, 0, 6)
		pk1Layout[ppUpAttr(i)] = bits(0x1D+i, 1, 6, 2)
	}
}

// PK1 is the gen 1 record: 33 bytes boxed, 44 in the party, big endian and
// never encrypted. The species byte is the internal index, Special covers
// both SpA and SpD, and the HP DV is built from the low bits of the others.
type PK1 struct {
	record
}

// NewPK1 wraps buf without copying it.
func NewPK1(buf Buffer, opts Options) (*PK1, error) {
	r, err := newRecord(Gen1, buf, pk1Layout, opts)
	if err != nil {
		return nil, err
	}
	p := &PK1{record: r}
	p.self = p
	return p, nil
}

func (p *PK1) Clone() Entity {
	c, _ := NewPK1(NewOwned(p.Bytes()), p.opts)
	return c
}

func (p *PK1) IsEncrypted() bool    { return false }
func (p *PK1) Encrypt()             {}
func (p *PK1) Decrypt()             {}
func (p *PK1) CalcChecksum() uint16 { return 0 }
func (p *PK1) RefreshChecksum()     {}

func (p *PK1) Species() uint16 { return Gen1ToNational(uint8(p.get(AttrSpecies))) }

// SetSpecies also rewrites the stored types from the personal table.
func (p *PK1) SetSpecies(v uint16) error {
	idx := NationalToGen1(v)
	if v != 0 && idx == 0 {
		return rangeErr("species", int64(v), int64(Gen1.SpeciesLimit()))
	}
	if err := p.set(AttrSpecies, uint32(idx)); err != nil {
		return err
	}
	if info, ok := p.Personal(); ok {
		p.set(AttrType1, uint32(info.Types[0]))
		p.set(AttrType2, uint32(info.Types[1]))
	}
	return nil
}

// CatchRateByte is the stored catch rate. Gen 2 reads the same byte as the
// held item, which is how trade-forward conversion treats it.
func (p *PK1) CatchRateByte() uint8 { return uint8(p.get(AttrCatchRate)) }

func (p *PK1) SetCatchRateByte(v uint8) error { return p.set(AttrCatchRate, uint32(v)) }

func (p *PK1) dvs() (atk, def, spe, spc uint8) {
	w := dvWord.Read(p.buf)
	return uint8(w >> 12 & 0xF), uint8(w >> 8 & 0xF), uint8(w >> 4 & 0xF), uint8(w & 0xF)
}

func (p *PK1) setDVs(atk, def, spe, spc uint8) {
	dvWord.Write(p.buf, uint32(atk)<<12|uint32(def)<<8|uint32(spe)<<4|uint32(spc))
}

func (p *PK1) IV(s Stat) uint8 {
	if s != StatHP {
		return p.record.IV(s)
	}
	atk, def, spe, spc := p.dvs()
	return (atk&1)<<3 | (def&1)<<2 | (spe&1)<<1 | spc&1
}

// SetIV writes a DV. Setting HP rewrites the low bit of every other DV.
func (p *PK1) SetIV(s Stat, v uint8) error {
	if s >= StatCount {
		return rangeErr("stat index", int64(s), int64(StatCount-1))
	}
	if v > MaxDV {
		return rangeErr("dv", int64(v), int64(MaxDV))
	}
	if s != StatHP {
		return p.record.SetIV(s, v)
	}
	atk, def, spe, spc := p.dvs()
	p.setDVs(atk&^1|v>>3&1, def&^1|v>>2&1, spe&^1|v>>1&1, spc&^1|v&1)
	return nil
}

func (p *PK1) SetExperience(v uint32) error {
	if err := p.record.SetExperience(v); err != nil {
		return err
	}
	return p.set(AttrBoxLevel, uint32(p.Level()))
}

// Level falls back to the stored box level when the species is unknown.
func (p *PK1) Level() uint8 {
	if _, ok := p.Personal(); !ok {
		return uint8(p.get(AttrBoxLevel))
	}
	return p.record.Level()
}

// Nature is experience mod 25, the rule used when these records are traded
// into later games.
func (p *PK1) Nature() Nature { return Nature(p.Experience() % uint32(NatureCount)) }

// SetNature nudges experience by less than 25 points, staying inside the
// current level where the level is wide enough.
func (p *PK1) SetNature(v Nature) error {
	if v >= NatureCount {
		return rangeErr("nature", int64(v), int64(NatureCount-1))
	}
	rate := p.GrowthRate()
	exp := p.Experience()
	lvl := personal.LevelForExp(rate, exp)
	lo := personal.ExpForLevel(rate, lvl)
	hi := personal.MaxExp(rate)
	if lvl < personal.MaxLevel {
		hi = personal.ExpForLevel(rate, lvl+1) - 1
	}
	next := exp - exp%25 + uint32(v)
	if next < lo {
		next += 25
	}
	if next > hi && next >= 25 {
		next -= 25
	}
	return p.SetExperience(next)
}

func (p *PK1) Gender() Gender {
	atk, _, _, _ := p.dvs()
	return genderFromValue(p.GenderRatio(), atk<<4)
}

// SetGender picks the closest attack DV giving v. Shininess is kept when
// some shiny attack DV also gives v.
func (p *PK1) SetGender(v Gender) error {
	if err := p.checkGender(v); err != nil {
		return err
	}
	if p.Gender() == v {
		return nil
	}
	ratio := p.GenderRatio()
	atk, def, spe, spc := p.dvs()
	shiny := p.Shiny()
	best, found := closestAtk(atk, func(c uint8) bool {
		return genderFromValue(ratio, c<<4) == v && (!shiny || shinyAtk(c))
	})
	if !found {
		best, found = closestAtk(atk, func(c uint8) bool {
			return genderFromValue(ratio, c<<4) == v
		})
	}
	if !found {
		return rangeErr("gender", int64(v), int64(Genderless))
	}
	p.setDVs(best, def, spe, spc)
	return nil
}

// closestAtk returns the attack DV nearest to cur accepted by ok.
func closestAtk(cur uint8, ok func(uint8) bool) (uint8, bool) {
	best, found := cur, false
	for c := uint8(0); c <= MaxDV; c++ {
		if !ok(c) {
			continue
		}
		if !found || absDiff(c, cur) < absDiff(best, cur) {
			best, found = c, true
		}
	}
	return best, found
}

func shinyAtk(atk uint8) bool { return atk&2 != 0 }

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

// Shiny uses the gen 2 rule: Def, Spe and Spc of 10 with an attack DV of
// 2, 3, 6, 7, 10, 11, 14 or 15.
func (p *PK1) Shiny() bool {
	atk, def, spe, spc := p.dvs()
	return def == 10 && spe == 10 && spc == 10 && shinyAtk(atk)
}

// SetShiny rewrites the DVs, keeping gender.
func (p *PK1) SetShiny(v bool) error {
	if p.Shiny() == v {
		return nil
	}
	atk, def, spe, _ := p.dvs()
	if !v {
		p.setDVs(atk, def, spe, 11)
		return nil
	}
	ratio := p.GenderRatio()
	gender := p.Gender()
	best, found := closestAtk(atk, func(c uint8) bool {
		return shinyAtk(c) && genderFromValue(ratio, c<<4) == gender
	})
	if !found {
		best = 10
	}
	p.setDVs(best, 10, 10, 10)
	return nil
}

// TSV and PSV never match; shininess is DV based.
func (p *PK1) TSV() uint16 { return 0 }
func (p *PK1) PSV() uint16 { return 0xFFFF }

// HiddenPowerType uses the gen 2 rule on the attack and defense DVs.
func (p *PK1) HiddenPowerType() uint8 {
	atk, def, _, _ := p.dvs()
	return 4*(atk&3) + def&3 + 1
}

// Stat applies the gen 1 formula with stat experience in place of EVs.
func (p *PK1) Stat(s Stat) uint16 {
	if s >= StatCount {
		return 0
	}
	base := uint32(p.BaseStat(s))
	dv := uint32(p.IV(s))
	lvl := uint32(p.Level())
	v := ((base+dv)*2 + statExpBonus(p.EV(s))) * lvl / 100
	if s == StatHP {
		return uint16(v + lvl + 10)
	}
	return uint16(v + 5)
}

func statExpBonus(ev uint16) uint32 {
	if ev == 0 {
		return 0
	}
	return min(isqrt(uint32(ev)-1)+1, 255) / 4
}

func (p *PK1) UpdatePartyData() {
	if !p.party {
		return
	}
	p.record.UpdatePartyData()
	p.set(AttrBoxLevel, uint32(p.Level()))
}

func (p *PK1) Language() Language {
	if p.opts.Japanese {
		return LangJapanese
	}
	return LangEnglish
}

func (p *PK1) Version() uint8    { return VersionRed }
func (p *PK1) Ball() uint8       { return BallPoke }
func (p *PK1) Friendship() uint8 { return p.BaseFriendship() }
