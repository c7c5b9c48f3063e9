// Package pkx decodes and edits individual creature records of the gen 1,
// gen 3 and gen 7 formats.
//
// A record is a view over a Buffer. Reads and writes go straight to the
// buffer, so a record built over a save container region edits the container
// in place. Every format exposes the same Entity surface; attributes a format
// does not store read as a documented default and their setters succeed
// without writing.
package pkx

import (
	"github.com/samcharles93/pkxcore/pkg/personal"
)

// Entity is the format independent record surface.
type Entity interface {
	Generation() Generation
	IsParty() bool
	Japanese() bool
	Len() int
	// Bytes returns a copy of the current physical bytes.
	Bytes() []byte
	Buffer() Buffer
	Extension() string
	// Clone returns a record with its own copy of the bytes.
	Clone() Entity

	IsEncrypted() bool
	Encrypt()
	Decrypt()
	Checksum() uint16
	CalcChecksum() uint16
	RefreshChecksum()

	EncryptionConstant() uint32
	SetEncryptionConstant(uint32) error
	PID() uint32
	SetPID(uint32) error
	TID() uint16
	SetTID(uint16) error
	SID() uint16
	SetSID(uint16) error

	Species() uint16
	SetSpecies(uint16) error
	Form() uint8
	SetForm(uint8) error
	HeldItem() uint16
	SetHeldItem(uint16) error
	Experience() uint32
	SetExperience(uint32) error
	Level() uint8
	SetLevel(uint8) error
	Ability() uint16
	SetAbility(uint16) error
	AbilityNumber() uint8
	SetAbilityNumber(uint8) error
	Nature() Nature
	SetNature(Nature) error
	Gender() Gender
	SetGender(Gender) error
	Shiny() bool
	SetShiny(bool) error

	IV(Stat) uint8
	SetIV(Stat, uint8) error
	EV(Stat) uint16
	SetEV(Stat, uint16) error
	HyperTrained(Stat) bool
	SetHyperTrained(Stat, bool) error
	Contest(ContestStat) uint8
	SetContest(ContestStat, uint8) error

	Move(slot int) uint16
	SetMove(slot int, move uint16) error
	PP(slot int) uint8
	SetPP(slot int, pp uint8) error
	PPUp(slot int) uint8
	SetPPUp(slot int, ups uint8) error
	RelearnMove(slot int) uint16
	SetRelearnMove(slot int, move uint16) error

	Egg() bool
	SetEgg(bool) error
	Nicknamed() bool
	SetNicknamed(bool) error
	FatefulEncounter() bool
	SetFatefulEncounter(bool) error
	Friendship() uint8
	SetFriendship(uint8) error
	Markings() uint16
	SetMarkings(uint16) error
	Pokerus() uint8
	SetPokerus(uint8) error
	Language() Language
	SetLanguage(Language) error

	MetDate() Date
	SetMetDate(Date) error
	EggDate() Date
	SetEggDate(Date) error
	MetLocation() uint16
	SetMetLocation(uint16) error
	EggLocation() uint16
	SetEggLocation(uint16) error
	MetLevel() uint8
	SetMetLevel(uint8) error
	Ball() uint8
	SetBall(uint8) error
	Version() uint8
	SetVersion(uint8) error
	OTGender() Gender
	SetOTGender(Gender) error

	TSV() uint16
	PSV() uint16
	HiddenPowerType() uint8
	// Stat computes a battle stat from the stored fields.
	Stat(Stat) uint16

	StatusCondition() uint32
	SetStatusCondition(uint32) error
	PartyLevel() uint8
	SetPartyLevel(uint8) error
	PartyCurrentHP() uint16
	SetPartyCurrentHP(uint16) error
	PartyStat(Stat) uint16
	SetPartyStat(Stat, uint16) error
	// UpdatePartyData recomputes the stored party block. No-op when boxed.
	UpdatePartyData()

	Personal() (personal.Info, bool)
	BaseStat(Stat) uint8
	Types() [2]uint8
	Abilities() [3]uint16
	GenderRatio() uint8
	GrowthRate() uint8
	CatchRate() uint8
	BaseFriendship() uint8
}

// Options configure record construction.
type Options struct {
	// Japanese selects the Japanese variant of formats that have one.
	Japanese bool
	// Personal answers species queries. Nil uses personal.Builtin.
	Personal personal.Provider
}

func (o Options) provider() personal.Provider {
	if o.Personal == nil {
		return personal.Builtin()
	}
	return o.Personal
}

// New builds a record of generation gen over buf. The buffer length selects
// the boxed or party form.
func New(gen Generation, buf Buffer, opts Options) (Entity, error) {
	switch gen {
	case Gen1:
		return NewPK1(buf, opts)
	case Gen3:
		return NewPK3(buf, opts)
	case Gen7:
		return NewPK7(buf, opts)
	}
	return nil, &FormatError{Generation: gen, Length: buf.Len(), Reason: "unsupported generation"}
}

// FromBytes copies b and builds a record over the copy.
func FromBytes(gen Generation, b []byte, opts Options) (Entity, error) {
	return New(gen, NewOwned(b), opts)
}

// Detect guesses the generation from a raw record length.
func Detect(length int) (Generation, bool) {
	for _, g := range Generations {
		box, party := g.Lengths()
		if length == box || length == party {
			return g, true
		}
	}
	return 0, false
}

// Parse detects the generation from len(b) and copies b into a new record.
func Parse(b []byte, opts Options) (Entity, error) {
	g, ok := Detect(len(b))
	if !ok {
		return nil, &FormatError{Length: len(b), Reason: "length matches no known format"}
	}
	return FromBytes(g, b, opts)
}

// Empty returns a zeroed record. Zero bytes are a valid decrypted record for
// every implemented format.
func Empty(gen Generation, party bool, opts Options) (Entity, error) {
	box, p := gen.Lengths()
	n := box
	if party {
		n = p
	}
	if n == 0 {
		return nil, &FormatError{Generation: gen, Reason: "unsupported generation"}
	}
	return New(gen, make(Owned, n), opts)
}

var (
	_ Entity = (*PK1)(nil)
	_ Entity = (*PK3)(nil)
	_ Entity = (*PK7)(nil)
)
