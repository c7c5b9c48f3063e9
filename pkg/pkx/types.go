package pkx

import (
	"fmt"
	"time"
)

// Generation identifies a record format family.
type Generation uint8

const (
	Gen1 Generation = 1
	Gen3 Generation = 3
	Gen7 Generation = 7
)

// Generations lists the implemented formats in conversion order.
var Generations = []Generation{Gen1, Gen3, Gen7}

func (g Generation) String() string {
	switch g {
	case Gen1, Gen3, Gen7:
		return fmt.Sprintf("gen%d", uint8(g))
	default:
		return fmt.Sprintf("gen?(%d)", uint8(g))
	}
}

// Valid reports whether g is an implemented format.
func (g Generation) Valid() bool {
	return g == Gen1 || g == Gen3 || g == Gen7
}

// Lengths returns the boxed and party record lengths.
func (g Generation) Lengths() (box, party int) {
	switch g {
	case Gen1:
		return pk1BoxLength, pk1PartyLength
	case Gen3:
		return pk3BoxLength, pk3PartyLength
	case Gen7:
		return pk7BoxLength, pk7PartyLength
	}
	return 0, 0
}

// SpeciesLimit is the highest national dex number the format can store.
func (g Generation) SpeciesLimit() uint16 {
	switch g {
	case Gen1:
		return 151
	case Gen3:
		return 386
	case Gen7:
		return 807
	}
	return 0
}

// MoveLimit is the highest move id the format knows.
func (g Generation) MoveLimit() uint16 {
	switch g {
	case Gen1:
		return 165
	case Gen3:
		return 354
	case Gen7:
		return 728
	}
	return 0
}

// Extension is the conventional export file suffix.
func (g Generation) Extension() string {
	switch g {
	case Gen1, Gen3, Gen7:
		return fmt.Sprintf(".pk%d", uint8(g))
	}
	return ""
}

// ParseGeneration accepts "1", "gen1", "pk1" and friends.
func ParseGeneration(s string) (Generation, error) {
	for _, g := range Generations {
		n := fmt.Sprint(uint8(g))
		if s == n || s == "gen"+n || s == "pk"+n || s == "g"+n {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown generation %q", ErrFormat, s)
}

// Stat indexes IVs, EVs and battle stats. The order matches the gen 3+
// storage order and the personal base stat order.
type Stat uint8

const (
	StatHP Stat = iota
	StatAtk
	StatDef
	StatSpe
	StatSpA
	StatSpD

	StatCount
)

var statNames = [StatCount]string{"hp", "atk", "def", "spe", "spa", "spd"}

func (s Stat) String() string {
	if s < StatCount {
		return statNames[s]
	}
	return fmt.Sprintf("stat(%d)", uint8(s))
}

// ContestStat indexes contest conditions.
type ContestStat uint8

const (
	ContestCool ContestStat = iota
	ContestBeauty
	ContestCute
	ContestSmart
	ContestTough
	ContestSheen

	ContestCount
)

// Gender of a creature or trainer.
type Gender uint8

const (
	Male Gender = iota
	Female
	Genderless
)

func (g Gender) String() string {
	switch g {
	case Male:
		return "male"
	case Female:
		return "female"
	case Genderless:
		return "genderless"
	}
	return fmt.Sprintf("gender(%d)", uint8(g))
}

// Nature is one of the 25 natures, 0 (Hardy) through 24 (Quirky).
type Nature uint8

const NatureCount Nature = 25

// StatModifier returns the boosted and hindered stats for the nature. Neutral
// natures return equal stats.
func (n Nature) StatModifier() (up, down Stat) {
	return StatAtk + Stat(n/5), StatAtk + Stat(n%5)
}

// Language codes shared by gen 3 and gen 7.
type Language uint8

const (
	LangNone     Language = 0
	LangJapanese Language = 1
	LangEnglish  Language = 2
	LangFrench   Language = 3
	LangItalian  Language = 4
	LangGerman   Language = 5
	LangSpanish  Language = 7
	LangKorean   Language = 8
	LangChineseS Language = 9
	LangChineseT Language = 10
)

// Game versions used by the implemented formats.
const (
	VersionSapphire   uint8 = 1
	VersionRuby       uint8 = 2
	VersionEmerald    uint8 = 3
	VersionFireRed    uint8 = 4
	VersionLeafGreen  uint8 = 5
	VersionColosseum  uint8 = 15
	VersionSun        uint8 = 30
	VersionMoon       uint8 = 31
	VersionUltraSun   uint8 = 32
	VersionUltraMoon  uint8 = 33
	VersionRed        uint8 = 35
	VersionGreen      uint8 = 36
	VersionBlue       uint8 = 37
	VersionYellow     uint8 = 38
	BallPoke          uint8 = 4
	MaxIV             uint8 = 31
	MaxDV             uint8 = 15
	MaxEVTotal              = 510
	MaxEVGen3         uint8 = 255
	MaxEVGen7         uint8 = 252
	SpeciesUnown            = 201
	SpeciesShedinja         = 292
	MoveSlots               = 4
)

// Date is a calendar date as stored in records.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Epoch is an unset date in formats that store one. Years are stored
// relative to it.
var Epoch = Date{Year: 2000, Month: 1, Day: 1}

// NoDate is returned by formats without the date field.
var NoDate = Date{Year: 1900, Month: 1, Day: 1}

// DateOf truncates t to a Date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
