package pkx

import (
	"math"

	"github.com/samcharles93/pkxcore/pkg/personal"
)

// record carries the layout driven behaviour shared by every format. Format
// types embed it and override whatever their storage derives differently.
// self points back at the embedding type so shared derived accessors see
// those overrides.
type record struct {
	self   Entity
	buf    Buffer
	layout Layout
	gen    Generation
	party  bool
	opts   Options
	info   personal.Provider
	// writable runs before every field write; a non-nil error refuses it.
	writable func() error
	// touched runs after every successful field write.
	touched func()
}

func newRecord(gen Generation, buf Buffer, layout Layout, opts Options) (record, error) {
	box, party := gen.Lengths()
	n := buf.Len()
	if n != box && n != party {
		return record{}, &FormatError{Generation: gen, Length: n}
	}
	return record{
		buf:    buf,
		layout: layout,
		gen:    gen,
		party:  n == party,
		opts:   opts,
		info:   opts.provider(),
	}, nil
}

func (r *record) field(a Attr) (Field, bool) {
	f, ok := r.layout[a]
	if !ok || !f.fits(r.buf) {
		return Field{}, false
	}
	return f, true
}

func (r *record) has(a Attr) bool {
	_, ok := r.field(a)
	return ok
}

func (r *record) get(a Attr) uint32 {
	f, ok := r.field(a)
	if !ok {
		return 0
	}
	return f.Read(r.buf)
}

func (r *record) set(a Attr, v uint32) error {
	f, ok := r.field(a)
	if !ok {
		return nil
	}
	if r.writable != nil {
		if err := r.writable(); err != nil {
			return err
		}
	}
	if !f.Write(r.buf, v) {
		return rangeErr(a.String(), int64(v), int64(f.Max()))
	}
	if r.touched != nil {
		r.touched()
	}
	return nil
}

// plainOnly refuses writes into ciphertext.
func (r *record) plainOnly() error {
	if r.self.IsEncrypted() {
		return ErrEncrypted
	}
	return nil
}

func (r *record) getBool(a Attr) bool { return r.get(a) != 0 }

func (r *record) setBool(a Attr, v bool) error {
	if v {
		return r.set(a, 1)
	}
	return r.set(a, 0)
}

func (r *record) Generation() Generation { return r.gen }
func (r *record) IsParty() bool          { return r.party }
func (r *record) Japanese() bool         { return r.opts.Japanese }
func (r *record) Len() int               { return r.buf.Len() }
func (r *record) Bytes() []byte          { return Snapshot(r.buf) }
func (r *record) Buffer() Buffer         { return r.buf }
func (r *record) Extension() string      { return r.gen.Extension() }

func (r *record) Checksum() uint16 { return uint16(r.get(AttrChecksum)) }

func (r *record) EncryptionConstant() uint32           { return r.get(AttrEC) }
func (r *record) SetEncryptionConstant(v uint32) error { return r.set(AttrEC, v) }
func (r *record) PID() uint32                          { return r.get(AttrPID) }
func (r *record) SetPID(v uint32) error                { return r.set(AttrPID, v) }
func (r *record) TID() uint16                          { return uint16(r.get(AttrTID)) }
func (r *record) SetTID(v uint16) error                { return r.set(AttrTID, uint32(v)) }
func (r *record) SID() uint16                          { return uint16(r.get(AttrSID)) }
func (r *record) SetSID(v uint16) error                { return r.set(AttrSID, uint32(v)) }

func (r *record) Species() uint16 { return uint16(r.get(AttrSpecies)) }

func (r *record) SetSpecies(v uint16) error {
	if lim := r.gen.SpeciesLimit(); v > lim {
		return rangeErr("species", int64(v), int64(lim))
	}
	return r.set(AttrSpecies, uint32(v))
}

func (r *record) Form() uint8                { return uint8(r.get(AttrForm)) }
func (r *record) SetForm(v uint8) error      { return r.set(AttrForm, uint32(v)) }
func (r *record) HeldItem() uint16           { return uint16(r.get(AttrHeldItem)) }
func (r *record) SetHeldItem(v uint16) error { return r.set(AttrHeldItem, uint32(v)) }

func (r *record) Experience() uint32 { return r.get(AttrExperience) }

func (r *record) SetExperience(v uint32) error {
	if lim := personal.MaxExp(r.self.GrowthRate()); v > lim {
		return rangeErr("experience", int64(v), int64(lim))
	}
	return r.set(AttrExperience, v)
}

// Level is derived from experience and the species growth rate.
func (r *record) Level() uint8 {
	return personal.LevelForExp(r.self.GrowthRate(), r.self.Experience())
}

// SetLevel rewrites experience to the minimum for level and keeps the party
// level in step.
func (r *record) SetLevel(v uint8) error {
	if v < 1 || v > personal.MaxLevel {
		return rangeErr("level", int64(v), personal.MaxLevel)
	}
	if err := r.self.SetExperience(personal.ExpForLevel(r.self.GrowthRate(), v)); err != nil {
		return err
	}
	return r.set(AttrPartyLevel, uint32(v))
}

func (r *record) Ability() uint16           { return uint16(r.get(AttrAbility)) }
func (r *record) SetAbility(v uint16) error { return r.set(AttrAbility, uint32(v)) }

func (r *record) AbilityNumber() uint8 { return uint8(r.get(AttrAbilityNumber)) }

func (r *record) SetAbilityNumber(v uint8) error {
	if v != 1 && v != 2 && v != 4 {
		return rangeErr("ability number", int64(v), 4)
	}
	return r.set(AttrAbilityNumber, uint32(v))
}

func (r *record) Nature() Nature { return Nature(r.get(AttrNature)) }

func (r *record) SetNature(v Nature) error {
	if v >= NatureCount {
		return rangeErr("nature", int64(v), int64(NatureCount-1))
	}
	return r.set(AttrNature, uint32(v))
}

func (r *record) Gender() Gender { return Gender(r.get(AttrGender)) }

func (r *record) SetGender(v Gender) error {
	if err := r.checkGender(v); err != nil {
		return err
	}
	return r.set(AttrGender, uint32(v))
}

// checkGender rejects genders the species cannot have.
func (r *record) checkGender(v Gender) error {
	if v > Genderless {
		return rangeErr("gender", int64(v), int64(Genderless))
	}
	if _, ok := r.self.Personal(); !ok {
		return nil
	}
	var ok bool
	switch r.self.GenderRatio() {
	case personal.RatioGenderless:
		ok = v == Genderless
	case personal.RatioFemale:
		ok = v == Female
	case personal.RatioMale:
		ok = v == Male
	default:
		ok = v != Genderless
	}
	if !ok {
		return rangeErr("gender", int64(v), int64(Genderless))
	}
	return nil
}

// Shiny compares the trainer and personality shiny values.
func (r *record) Shiny() bool { return r.self.TSV() == r.self.PSV() }

func (r *record) IV(s Stat) uint8 { return uint8(r.get(ivAttr(s))) }

func (r *record) SetIV(s Stat, v uint8) error {
	if s >= StatCount {
		return rangeErr("stat index", int64(s), int64(StatCount-1))
	}
	return r.set(ivAttr(s), uint32(v))
}

func (r *record) EV(s Stat) uint16 { return uint16(r.get(evAttr(s))) }

func (r *record) SetEV(s Stat, v uint16) error {
	if s >= StatCount {
		return rangeErr("stat index", int64(s), int64(StatCount-1))
	}
	return r.set(evAttr(s), uint32(v))
}

func (r *record) HyperTrained(s Stat) bool { return r.getBool(hyperAttr(s)) }

func (r *record) SetHyperTrained(s Stat, v bool) error {
	if s >= StatCount {
		return rangeErr("stat index", int64(s), int64(StatCount-1))
	}
	return r.setBool(hyperAttr(s), v)
}

func (r *record) Contest(c ContestStat) uint8 { return uint8(r.get(contestAttr(c))) }

func (r *record) SetContest(c ContestStat, v uint8) error {
	if c >= ContestCount {
		return rangeErr("contest index", int64(c), int64(ContestCount-1))
	}
	return r.set(contestAttr(c), uint32(v))
}

func slotErr(slot int) error {
	if slot < 0 || slot >= MoveSlots {
		return rangeErr("move slot", int64(slot), MoveSlots-1)
	}
	return nil
}

func (r *record) Move(slot int) uint16 {
	if slotErr(slot) != nil {
		return 0
	}
	return uint16(r.get(moveAttr(slot)))
}

func (r *record) SetMove(slot int, v uint16) error {
	if err := slotErr(slot); err != nil {
		return err
	}
	if lim := r.gen.MoveLimit(); v > lim {
		return rangeErr("move", int64(v), int64(lim))
	}
	return r.set(moveAttr(slot), uint32(v))
}

func (r *record) PP(slot int) uint8 {
	if slotErr(slot) != nil {
		return 0
	}
	return uint8(r.get(ppAttr(slot)))
}

func (r *record) SetPP(slot int, v uint8) error {
	if err := slotErr(slot); err != nil {
		return err
	}
	return r.set(ppAttr(slot), uint32(v))
}

func (r *record) PPUp(slot int) uint8 {
	if slotErr(slot) != nil {
		return 0
	}
	return uint8(r.get(ppUpAttr(slot)))
}

func (r *record) SetPPUp(slot int, v uint8) error {
	if err := slotErr(slot); err != nil {
		return err
	}
	if v > 3 {
		return rangeErr("pp ups", int64(v), 3)
	}
	return r.set(ppUpAttr(slot), uint32(v))
}

func (r *record) RelearnMove(slot int) uint16 {
	if slotErr(slot) != nil {
		return 0
	}
	return uint16(r.get(relearnAttr(slot)))
}

func (r *record) SetRelearnMove(slot int, v uint16) error {
	if err := slotErr(slot); err != nil {
		return err
	}
	if lim := r.gen.MoveLimit(); v > lim {
		return rangeErr("relearn move", int64(v), int64(lim))
	}
	return r.set(relearnAttr(slot), uint32(v))
}

func (r *record) Egg() bool                         { return r.getBool(AttrEgg) }
func (r *record) SetEgg(v bool) error               { return r.setBool(AttrEgg, v) }
func (r *record) Nicknamed() bool                   { return r.getBool(AttrNicknamed) }
func (r *record) SetNicknamed(v bool) error         { return r.setBool(AttrNicknamed, v) }
func (r *record) FatefulEncounter() bool            { return r.getBool(AttrFateful) }
func (r *record) SetFatefulEncounter(v bool) error  { return r.setBool(AttrFateful, v) }
func (r *record) Friendship() uint8                 { return uint8(r.get(AttrFriendship)) }
func (r *record) SetFriendship(v uint8) error       { return r.set(AttrFriendship, uint32(v)) }
func (r *record) Markings() uint16                  { return uint16(r.get(AttrMarkings)) }
func (r *record) SetMarkings(v uint16) error        { return r.set(AttrMarkings, uint32(v)) }
func (r *record) Pokerus() uint8                    { return uint8(r.get(AttrPokerus)) }
func (r *record) SetPokerus(v uint8) error          { return r.set(AttrPokerus, uint32(v)) }
func (r *record) Language() Language                { return Language(r.get(AttrLanguage)) }
func (r *record) SetLanguage(v Language) error      { return r.set(AttrLanguage, uint32(v)) }
func (r *record) MetLocation() uint16               { return uint16(r.get(AttrMetLocation)) }
func (r *record) SetMetLocation(v uint16) error     { return r.set(AttrMetLocation, uint32(v)) }
func (r *record) EggLocation() uint16               { return uint16(r.get(AttrEggLocation)) }
func (r *record) SetEggLocation(v uint16) error     { return r.set(AttrEggLocation, uint32(v)) }
func (r *record) MetLevel() uint8                   { return uint8(r.get(AttrMetLevel)) }
func (r *record) SetMetLevel(v uint8) error         { return r.set(AttrMetLevel, uint32(v)) }
func (r *record) Ball() uint8                       { return uint8(r.get(AttrBall)) }
func (r *record) SetBall(v uint8) error             { return r.set(AttrBall, uint32(v)) }
func (r *record) Version() uint8                    { return uint8(r.get(AttrVersion)) }
func (r *record) SetVersion(v uint8) error          { return r.set(AttrVersion, uint32(v)) }
func (r *record) StatusCondition() uint32           { return r.get(AttrStatus) }
func (r *record) SetStatusCondition(v uint32) error { return r.set(AttrStatus, v) }
func (r *record) PartyLevel() uint8                 { return uint8(r.get(AttrPartyLevel)) }
func (r *record) SetPartyLevel(v uint8) error       { return r.set(AttrPartyLevel, uint32(v)) }
func (r *record) PartyCurrentHP() uint16            { return uint16(r.get(AttrCurrentHP)) }
func (r *record) SetPartyCurrentHP(v uint16) error  { return r.set(AttrCurrentHP, uint32(v)) }

func (r *record) OTGender() Gender { return Gender(r.get(AttrOTGender)) }

func (r *record) SetOTGender(v Gender) error {
	if v > Female {
		return rangeErr("ot gender", int64(v), int64(Female))
	}
	return r.set(AttrOTGender, uint32(v))
}

func (r *record) PartyStat(s Stat) uint16 { return uint16(r.get(partyStatAttr(s))) }

func (r *record) SetPartyStat(s Stat, v uint16) error {
	if s >= StatCount {
		return rangeErr("stat index", int64(s), int64(StatCount-1))
	}
	return r.set(partyStatAttr(s), uint32(v))
}

func (r *record) date(y, m, d Attr) Date {
	if !r.has(y) {
		return NoDate
	}
	yy, mm, dd := r.get(y), r.get(m), r.get(d)
	if mm == 0 || dd == 0 {
		return Epoch
	}
	return Date{Year: 2000 + int(yy), Month: int(mm), Day: int(dd)}
}

// setDate stores years relative to 2000. Epoch and the zero Date clear the
// field.
func (r *record) setDate(y, m, d Attr, v Date) error {
	if !r.has(y) {
		return nil
	}
	if v == Epoch || v == (Date{}) {
		r.set(y, 0)
		r.set(m, 0)
		return r.set(d, 0)
	}
	if v.Year < 2000 || v.Year > 2255 {
		return rangeErr("year", int64(v.Year), 2255)
	}
	if v.Month < 1 || v.Month > 12 {
		return rangeErr("month", int64(v.Month), 12)
	}
	if v.Day < 1 || v.Day > 31 {
		return rangeErr("day", int64(v.Day), 31)
	}
	r.set(y, uint32(v.Year-2000))
	r.set(m, uint32(v.Month))
	return r.set(d, uint32(v.Day))
}

func (r *record) MetDate() Date { return r.date(AttrMetYear, AttrMetMonth, AttrMetDay) }

func (r *record) SetMetDate(v Date) error {
	return r.setDate(AttrMetYear, AttrMetMonth, AttrMetDay, v)
}

func (r *record) EggDate() Date { return r.date(AttrEggYear, AttrEggMonth, AttrEggDay) }

func (r *record) SetEggDate(v Date) error {
	return r.setDate(AttrEggYear, AttrEggMonth, AttrEggDay, v)
}

// HiddenPowerType returns the modern type id (Fighting 1 through Dark 16)
// selected by the low IV bits.
func (r *record) HiddenPowerType() uint8 {
	order := [StatCount]Stat{StatHP, StatAtk, StatDef, StatSpe, StatSpA, StatSpD}
	var t int
	for i, s := range order {
		t |= int(r.self.IV(s)&1) << i
	}
	return uint8(t*15/63) + 1
}

// Stat applies the gen 3 and later formula. Hyper trained stats use a
// perfect IV.
func (r *record) Stat(s Stat) uint16 {
	if s >= StatCount {
		return 0
	}
	if s == StatHP && r.self.Species() == SpeciesShedinja {
		return 1
	}
	iv := uint32(r.self.IV(s))
	if r.self.HyperTrained(s) {
		iv = uint32(MaxIV)
	}
	base := uint32(r.self.BaseStat(s))
	ev := uint32(r.self.EV(s))
	lvl := uint32(r.self.Level())
	v := (2*base + iv + ev/4) * lvl / 100
	if s == StatHP {
		return uint16(v + lvl + 10)
	}
	v += 5
	up, down := r.self.Nature().StatModifier()
	switch {
	case up == down:
	case s == up:
		v = v * 110 / 100
	case s == down:
		v = v * 90 / 100
	}
	return uint16(v)
}

func (r *record) UpdatePartyData() {
	if !r.party {
		return
	}
	r.set(AttrPartyLevel, uint32(r.self.Level()))
	for s := StatHP; s < StatCount; s++ {
		r.set(partyStatAttr(s), uint32(r.self.Stat(s)))
	}
	r.set(AttrCurrentHP, uint32(r.self.Stat(StatHP)))
}

func (r *record) Personal() (personal.Info, bool) {
	return r.info.Lookup(uint8(r.gen), r.self.Species(), r.self.Form())
}

func (r *record) BaseStat(s Stat) uint8 {
	if s >= StatCount {
		return 0
	}
	info, _ := r.self.Personal()
	return info.BaseStats[s]
}

func (r *record) Types() [2]uint8 {
	info, _ := r.self.Personal()
	return info.Types
}

func (r *record) Abilities() [3]uint16 {
	info, _ := r.self.Personal()
	return info.Abilities
}

// GenderRatio reports genderless for species without a reference row.
func (r *record) GenderRatio() uint8 {
	info, ok := r.self.Personal()
	if !ok {
		return personal.RatioGenderless
	}
	return info.GenderRatio
}

func (r *record) GrowthRate() uint8 {
	info, _ := r.self.Personal()
	return info.GrowthRate
}

func (r *record) CatchRate() uint8 {
	info, _ := r.self.Personal()
	return info.CatchRate
}

func (r *record) BaseFriendship() uint8 {
	info, ok := r.self.Personal()
	if !ok {
		return personal.DefaultFriendship
	}
	return info.BaseFriendship
}

// genderFromValue applies the gender ratio threshold shared by gen 3 PIDs
// and gen 1 attack DVs.
func genderFromValue(ratio uint8, v uint8) Gender {
	switch ratio {
	case personal.RatioGenderless:
		return Genderless
	case personal.RatioFemale:
		return Female
	case personal.RatioMale:
		return Male
	}
	if v < ratio {
		return Female
	}
	return Male
}

func isqrt(x uint32) uint32 {
	return uint32(math.Sqrt(float64(x)))
}
