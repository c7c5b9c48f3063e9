package pkx

import "fmt"

// Attr names a stored attribute. Per-generation layouts bind attributes to
// byte positions; an attribute absent from a layout is unsupported by that
// format.
type Attr uint8

const (
	AttrEC Attr = iota
	AttrPID
	AttrTID
	AttrSID
	AttrChecksum
	AttrSanity
	AttrSpecies
	AttrHeldItem
	AttrExperience
	AttrAbility
	AttrAbilityNumber
	AttrAbilityBit
	AttrMarkings
	AttrNature
	AttrFateful
	AttrGender
	AttrForm
	AttrPokerus
	AttrFriendship
	AttrHTFriendship
	AttrCurrentHandler
	AttrLanguage
	AttrEgg
	AttrNicknamed
	AttrBadEgg
	AttrHasSpecies
	AttrEggName
	AttrMetLocation
	AttrEggLocation
	AttrMetLevel
	AttrVersion
	AttrBall
	AttrOTGender
	AttrMetYear
	AttrMetMonth
	AttrMetDay
	AttrEggYear
	AttrEggMonth
	AttrEggDay
	AttrCountry
	AttrRegion
	AttrConsoleRegion
	AttrBoxLevel
	AttrType1
	AttrType2
	AttrCatchRate
	AttrStatus
	AttrPartyLevel
	AttrCurrentHP

	// Indexed groups. Use the helper functions below.
	AttrMove
	_
	_
	_
	AttrPP
	_
	_
	_
	AttrPPUp
	_
	_
	_
	AttrRelearn
	_
	_
	_
	AttrIV
	_
	_
	_
	_
	_
	AttrEV
	_
	_
	_
	_
	_
	AttrPartyStat
	_
	_
	_
	_
	_
	AttrHyperTrained
	_
	_
	_
	_
	_
	AttrContest
	_
	_
	_
	_
	_

	attrCount
)

func moveAttr(i int) Attr            { return AttrMove + Attr(i) }
func ppAttr(i int) Attr              { return AttrPP + Attr(i) }
func ppUpAttr(i int) Attr            { return AttrPPUp + Attr(i) }
func relearnAttr(i int) Attr         { return AttrRelearn + Attr(i) }
func ivAttr(s Stat) Attr             { return AttrIV + Attr(s) }
func evAttr(s Stat) Attr             { return AttrEV + Attr(s) }
func partyStatAttr(s Stat) Attr      { return AttrPartyStat + Attr(s) }
func hyperAttr(s Stat) Attr          { return AttrHyperTrained + Attr(s) }
func contestAttr(c ContestStat) Attr { return AttrContest + Attr(c) }

var attrNames = map[Attr]string{
	AttrEC: "encryption constant", AttrPID: "pid", AttrTID: "tid", AttrSID: "sid",
	AttrChecksum: "checksum", AttrSanity: "sanity", AttrSpecies: "species",
	AttrHeldItem: "held item", AttrExperience: "experience", AttrAbility: "ability",
	AttrAbilityNumber: "ability number", AttrAbilityBit: "ability bit",
	AttrMarkings: "markings", AttrNature: "nature", AttrFateful: "fateful encounter",
	AttrGender: "gender", AttrForm: "form", AttrPokerus: "pokerus",
	AttrFriendship: "friendship", AttrHTFriendship: "handler friendship",
	AttrCurrentHandler: "current handler", AttrLanguage: "language", AttrEgg: "egg",
	AttrNicknamed: "nicknamed", AttrBadEgg: "bad egg", AttrHasSpecies: "has species",
	AttrEggName: "egg name", AttrMetLocation: "met location",
	AttrEggLocation: "egg location", AttrMetLevel: "met level", AttrVersion: "version",
	AttrBall: "ball", AttrOTGender: "ot gender", AttrMetYear: "met year",
	AttrMetMonth: "met month", AttrMetDay: "met day", AttrEggYear: "egg year",
	AttrEggMonth: "egg month", AttrEggDay: "egg day", AttrCountry: "country",
	AttrRegion: "region", AttrConsoleRegion: "console region",
	AttrBoxLevel: "box level", AttrType1: "type 1", AttrType2: "type 2",
	AttrCatchRate: "catch rate", AttrStatus: "status", AttrPartyLevel: "party level",
	AttrCurrentHP: "current hp",
}

func (a Attr) String() string {
	if n, ok := attrNames[a]; ok {
		return n
	}
	switch {
	case a >= AttrContest && a < attrCount:
		return fmt.Sprintf("contest %d", a-AttrContest)
	case a >= AttrHyperTrained:
		return "hyper trained " + Stat(a-AttrHyperTrained).String()
	case a >= AttrPartyStat:
		return "stat " + Stat(a-AttrPartyStat).String()
	case a >= AttrEV:
		return "ev " + Stat(a-AttrEV).String()
	case a >= AttrIV:
		return "iv " + Stat(a-AttrIV).String()
	case a >= AttrRelearn:
		return fmt.Sprintf("relearn move %d", a-AttrRelearn+1)
	case a >= AttrPPUp:
		return fmt.Sprintf("pp up %d", a-AttrPPUp+1)
	case a >= AttrPP:
		return fmt.Sprintf("pp %d", a-AttrPP+1)
	case a >= AttrMove:
		return fmt.Sprintf("move %d", a-AttrMove+1)
	}
	return fmt.Sprintf("attr(%d)", uint8(a))
}

// Field locates a value inside a record: Size bytes at Offset, read in the
// given byte order, then Bits bits starting at Shift. Bits == 0 means the
// whole word.
type Field struct {
	Offset    int
	Size      int
	Shift     uint8
	Bits      uint8
	BigEndian bool
}

func u8(off int) Field  { return Field{Offset: off, Size: 1} }
func u16(off int) Field { return Field{Offset: off, Size: 2} }
func u32(off int) Field { return Field{Offset: off, Size: 4} }
func bits(off, size int, shift, n uint8) Field {
	return Field{Offset: off, Size: size, Shift: shift, Bits: n}
}
func flag(off, size int, bit uint8) Field { return bits(off, size, bit, 1) }

func (f Field) width() uint8 {
	if f.Bits == 0 {
		return uint8(f.Size * 8)
	}
	return f.Bits
}

// Max is the largest value the field can hold.
func (f Field) Max() uint32 {
	w := f.width()
	if w >= 32 {
		return ^uint32(0)
	}
	return 1<<w - 1
}

func (f Field) fits(b Buffer) bool { return f.Offset+f.Size <= b.Len() }

func (f Field) word(b Buffer) uint32 {
	var tmp [4]byte
	p := tmp[:f.Size]
	b.Load(p, f.Offset)
	var w uint32
	if f.BigEndian {
		for _, c := range p {
			w = w<<8 | uint32(c)
		}
	} else {
		for i := len(p) - 1; i >= 0; i-- {
			w = w<<8 | uint32(p[i])
		}
	}
	return w
}

func (f Field) putWord(b Buffer, w uint32) {
	var tmp [4]byte
	p := tmp[:f.Size]
	if f.BigEndian {
		for i := len(p) - 1; i >= 0; i-- {
			p[i] = byte(w)
			w >>= 8
		}
	} else {
		for i := range p {
			p[i] = byte(w)
			w >>= 8
		}
	}
	b.Store(p, f.Offset)
}

// Read extracts the field value.
func (f Field) Read(b Buffer) uint32 {
	return f.word(b) >> f.Shift & f.Max()
}

// Write stores v, preserving neighbouring bits. Values that do not fit are
// rejected without touching the buffer.
func (f Field) Write(b Buffer, v uint32) bool {
	m := f.Max()
	if v > m {
		return false
	}
	if f.Bits == 0 {
		f.putWord(b, v)
		return true
	}
	w := f.word(b)
	w = w&^(m<<f.Shift) | v<<f.Shift
	f.putWord(b, w)
	return true
}

// Layout binds attributes to fields for one format.
type Layout map[Attr]Field

// Validate checks every field lies inside length bytes and is well formed.
func (l Layout) Validate(length int) error {
	for a, f := range l {
		if f.Size < 1 || f.Size > 4 {
			return fmt.Errorf("%w: %s: size %d", ErrFormat, a, f.Size)
		}
		if f.Offset < 0 || f.Offset+f.Size > length {
			return fmt.Errorf("%w: %s: offset %#x outside %d bytes", ErrFormat, a, f.Offset, length)
		}
		if int(f.Shift)+int(f.width()) > f.Size*8 {
			return fmt.Errorf("%w: %s: %d bits at %d overflow %d byte word", ErrFormat, a, f.width(), f.Shift, f.Size)
		}
	}
	return nil
}
