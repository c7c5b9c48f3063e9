package convert

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

var transferDay = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func newConverter(t *testing.T, prov personal.Provider) *Converter {
	t.Helper()
	c, err := NewConverter(&Config{Personal: prov, Clock: FixedClock(transferDay)})
	require.NoError(t, err)
	return c
}

func newRecord(t *testing.T, gen pkx.Generation, prov personal.Provider) pkx.Entity {
	t.Helper()
	e, err := pkx.Empty(gen, false, pkx.Options{Personal: prov})
	require.NoError(t, err)
	return e
}

func setDVs(t *testing.T, e pkx.Entity, atk, def, spe, spc uint8) {
	t.Helper()
	require.NoError(t, e.SetIV(pkx.StatAtk, atk))
	require.NoError(t, e.SetIV(pkx.StatDef, def))
	require.NoError(t, e.SetIV(pkx.StatSpe, spe))
	require.NoError(t, e.SetIV(pkx.StatSpA, spc))
}

func newBulbasaur(t *testing.T) pkx.Entity {
	t.Helper()
	e := newRecord(t, pkx.Gen1, nil)
	require.NoError(t, e.SetSpecies(1))
	require.NoError(t, e.SetTID(31337))
	require.NoError(t, e.SetExperience(117360))
	setDVs(t, e, 14, 9, 4, 11)
	require.NoError(t, e.SetEV(pkx.StatHP, 100))
	require.NoError(t, e.SetEV(pkx.StatAtk, 65535))
	require.NoError(t, e.SetEV(pkx.StatDef, 1))
	require.NoError(t, e.SetEV(pkx.StatSpA, 400))
	require.NoError(t, e.SetMove(0, 33))
	require.NoError(t, e.SetPP(0, 35))
	require.NoError(t, e.SetPPUp(0, 1))
	require.NoError(t, e.SetHeldItem(0x12))
	return e
}

func TestGen1ToGen3Fields(t *testing.T) {
	t.Parallel()

	src := newBulbasaur(t)
	out, err := newConverter(t, nil).Convert(src, pkx.Gen3)
	require.NoError(t, err)

	require.Equal(t, pkx.Gen3, out.Generation())
	require.False(t, out.IsParty())
	require.False(t, out.IsEncrypted())
	require.Equal(t, out.CalcChecksum(), out.Checksum())

	require.EqualValues(t, 1, out.Species())
	require.EqualValues(t, 31337, out.TID())
	require.Zero(t, out.SID())
	require.EqualValues(t, 117360, out.Experience())
	require.EqualValues(t, 50, out.Level())

	// HP DV is built from the low bits: 0,1,0,1 -> 5.
	wantIVs := [pkx.StatCount]uint8{10, 28, 18, 8, 22, 22}
	wantEVs := [pkx.StatCount]uint16{10, 255, 1, 0, 20, 20}
	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		require.Equal(t, wantIVs[s], out.IV(s), "iv %s", s)
		require.Equal(t, wantEVs[s], out.EV(s), "ev %s", s)
	}

	require.Equal(t, src.Nature(), out.Nature())
	require.EqualValues(t, 10, out.Nature())
	require.Equal(t, pkx.Male, out.Gender())
	require.False(t, out.Shiny())

	require.EqualValues(t, 33, out.Move(0))
	require.EqualValues(t, 35, out.PP(0))
	require.EqualValues(t, 1, out.PPUp(0))
	require.EqualValues(t, 13, out.HeldItem())

	require.EqualValues(t, metLocationTrade, out.MetLocation())
	require.EqualValues(t, 50, out.MetLevel())
	require.Equal(t, pkx.BallPoke, out.Ball())
	require.Equal(t, pkx.VersionFireRed, out.Version())
	require.Equal(t, pkx.LangEnglish, out.Language())
	require.Equal(t, pkx.Male, out.OTGender())
	require.EqualValues(t, 70, out.Friendship())
	require.EqualValues(t, 1, out.AbilityNumber())
}

func TestGen1ToGen3IsDeterministic(t *testing.T) {
	t.Parallel()

	c := newConverter(t, nil)
	a, err := c.Convert(newBulbasaur(t), pkx.Gen3)
	require.NoError(t, err)
	b, err := c.Convert(newBulbasaur(t), pkx.Gen3)
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestGen1ShinyCarriesOver(t *testing.T) {
	t.Parallel()

	src := newBulbasaur(t)
	setDVs(t, src, 10, 10, 10, 10)
	require.True(t, src.Shiny())

	out, err := newConverter(t, nil).Convert(src, pkx.Gen3)
	require.NoError(t, err)
	require.True(t, out.Shiny())
	require.Equal(t, src.Gender(), out.Gender())
	require.Equal(t, src.Nature(), out.Nature())
}

func TestGen1FemaleCarriesOver(t *testing.T) {
	t.Parallel()

	src := newBulbasaur(t)
	setDVs(t, src, 1, 9, 4, 11)
	require.Equal(t, pkx.Female, src.Gender())

	out, err := newConverter(t, nil).Convert(src, pkx.Gen3)
	require.NoError(t, err)
	require.Equal(t, pkx.Female, out.Gender())
	require.Equal(t, src.Nature(), out.Nature())
	require.False(t, out.Shiny())
}

func TestStatExpTotalIsCapped(t *testing.T) {
	t.Parallel()

	src := newBulbasaur(t)
	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		require.NoError(t, src.SetEV(s, 65535))
	}
	out, err := newConverter(t, nil).Convert(src, pkx.Gen3)
	require.NoError(t, err)

	want := [pkx.StatCount]uint16{255, 255, 0, 0, 0, 0}
	total := 0
	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		require.Equal(t, want[s], out.EV(s), "ev %s", s)
		total += int(out.EV(s))
	}
	require.Equal(t, pkx.MaxEVTotal, total)
}

func TestUnmappedItemIsDropped(t *testing.T) {
	t.Parallel()

	src := newBulbasaur(t)
	require.NoError(t, src.SetHeldItem(0xC8))
	out, err := newConverter(t, nil).Convert(src, pkx.Gen3)
	require.NoError(t, err)
	require.Zero(t, out.HeldItem())
}

func newPidgey(t *testing.T) *pkx.PK3 {
	t.Helper()
	e := newRecord(t, pkx.Gen3, nil)
	p := e.(*pkx.PK3)
	require.NoError(t, p.SetSpecies(19))
	require.NoError(t, p.SetTID(1000))
	require.NoError(t, p.SetSID(2000))
	require.NoError(t, p.SetPID(0x12345678))
	require.NoError(t, p.SetExperience(125000))
	require.NoError(t, p.SetAbilityNumber(2))
	require.NoError(t, p.SetIV(pkx.StatHP, 31))
	require.NoError(t, p.SetIV(pkx.StatSpe, 7))
	require.NoError(t, p.SetEV(pkx.StatAtk, 255))
	require.NoError(t, p.SetEV(pkx.StatHP, 200))
	require.NoError(t, p.SetContest(pkx.ContestCool, 50))
	require.NoError(t, p.SetMove(0, 16))
	require.NoError(t, p.SetPP(0, 35))
	require.NoError(t, p.SetHeldItem(13))
	require.NoError(t, p.SetVersion(pkx.VersionEmerald))
	require.NoError(t, p.SetLanguage(pkx.LangEnglish))
	require.NoError(t, p.SetBall(pkx.BallPoke))
	require.NoError(t, p.SetMetLevel(3))
	require.NoError(t, p.SetPokerus(0x21))
	return p
}

func TestGen3ToGen7Fields(t *testing.T) {
	t.Parallel()

	src := newPidgey(t)
	src.Encrypt()
	out, err := newConverter(t, nil).Convert(src, pkx.Gen7)
	require.NoError(t, err)

	require.Equal(t, pkx.Gen7, out.Generation())
	require.False(t, out.IsEncrypted())
	require.Equal(t, out.CalcChecksum(), out.Checksum())

	require.EqualValues(t, 0x12345678, out.EncryptionConstant())
	require.EqualValues(t, 0x12345678, out.PID())
	require.EqualValues(t, 19, out.Species())
	require.EqualValues(t, 1000, out.TID())
	require.EqualValues(t, 2000, out.SID())
	require.EqualValues(t, 125000, out.Experience())
	require.Equal(t, pkx.Nature(0x12345678%25), out.Nature())
	require.Equal(t, pkx.Female, out.Gender())

	require.EqualValues(t, 31, out.IV(pkx.StatHP))
	require.EqualValues(t, 7, out.IV(pkx.StatSpe))
	require.EqualValues(t, 252, out.EV(pkx.StatAtk))
	require.EqualValues(t, 200, out.EV(pkx.StatHP))
	require.EqualValues(t, 50, out.Contest(pkx.ContestCool))
	require.EqualValues(t, 16, out.Move(0))
	require.EqualValues(t, 35, out.PP(0))

	require.EqualValues(t, 2, out.AbilityNumber())
	require.EqualValues(t, 62, out.Ability())
	require.EqualValues(t, 17, out.HeldItem())

	require.EqualValues(t, metLocationTransfer, out.MetLocation())
	require.Equal(t, pkx.Date{Year: 2026, Month: 3, Day: 14}, out.MetDate())
	require.Equal(t, pkx.Epoch, out.EggDate())
	require.EqualValues(t, 3, out.MetLevel())
	require.Equal(t, pkx.VersionEmerald, out.Version())
	require.Equal(t, pkx.LangEnglish, out.Language())
	require.EqualValues(t, 0x21, out.Pokerus())
	require.EqualValues(t, 70, out.Friendship())
}

func TestConvertLeavesSourceUntouched(t *testing.T) {
	t.Parallel()

	src := newPidgey(t)
	src.Encrypt()
	before := src.Bytes()

	_, err := newConverter(t, nil).Convert(src, pkx.Gen7)
	require.NoError(t, err)
	require.True(t, bytes.Equal(before, src.Bytes()))
	require.True(t, src.IsEncrypted())
}

func TestShinyWindowWidens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		pid       uint32
		wantPID   uint32
		wantShiny bool
	}{
		{"xor 10 flips", 0x0000000A, 0x8000000A, false},
		{"xor 3 stays shiny", 0x00000003, 0x00000003, true},
		{"xor 0x20 untouched", 0x00000020, 0x00000020, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := newRecord(t, pkx.Gen3, nil)
			require.NoError(t, src.SetSpecies(19))
			require.NoError(t, src.SetPID(tc.pid))

			out, err := newConverter(t, nil).Convert(src, pkx.Gen7)
			require.NoError(t, err)
			require.Equal(t, tc.pid, out.EncryptionConstant())
			require.Equal(t, tc.wantPID, out.PID())
			require.Equal(t, tc.wantShiny, out.Shiny())
			require.Equal(t, src.Shiny(), out.Shiny())
		})
	}
}

func TestUnownLetterBecomesForm(t *testing.T) {
	t.Parallel()

	src := newRecord(t, pkx.Gen3, nil)
	require.NoError(t, src.SetSpecies(pkx.SpeciesUnown))
	require.NoError(t, src.SetPID(0x01000000))

	out, err := newConverter(t, nil).Convert(src, pkx.Gen7)
	require.NoError(t, err)
	require.EqualValues(t, 8, out.Form())
	require.Equal(t, pkx.Genderless, out.Gender())
}

func TestUntransferableRecords(t *testing.T) {
	t.Parallel()

	c := newConverter(t, nil)

	egg := newPidgey(t)
	require.NoError(t, egg.SetEgg(true))
	_, err := c.Convert(egg, pkx.Gen7)
	require.ErrorIs(t, err, ErrIncompatible)

	bad := newPidgey(t)
	require.NoError(t, bad.SetBadEgg(true))
	_, err = c.Convert(bad, pkx.Gen7)
	require.ErrorIs(t, err, ErrIncompatible)

	_, err = c.Convert(newRecord(t, pkx.Gen3, nil), pkx.Gen7)
	require.ErrorIs(t, err, ErrIncompatible)

	_, err = c.Convert(newRecord(t, pkx.Gen1, nil), pkx.Gen3)
	require.ErrorIs(t, err, ErrIncompatible)
	require.ErrorIs(t, err, ErrConversionUnsupported)
}

func TestUnsupportedPairs(t *testing.T) {
	t.Parallel()

	c := newConverter(t, nil)
	src := newBulbasaur(t)

	_, err := c.Convert(src, pkx.Gen7)
	var ue *UnsupportedError
	require.ErrorAs(t, err, &ue)
	require.ErrorIs(t, err, ErrConversionUnsupported)
	require.Equal(t, pkx.Gen1, ue.From)
	require.Equal(t, pkx.Gen7, ue.To)

	_, err = c.Convert(src, pkx.Gen1)
	require.ErrorIs(t, err, ErrConversionUnsupported)

	_, err = c.Convert(newRecord(t, pkx.Gen7, nil), pkx.Gen3)
	require.ErrorIs(t, err, ErrConversionUnsupported)

	_, err = c.ConvertTo(newRecord(t, pkx.Gen7, nil), pkx.Gen1)
	require.ErrorIs(t, err, ErrConversionUnsupported)
}

func TestConvertToChains(t *testing.T) {
	t.Parallel()

	c := newConverter(t, nil)
	src := newBulbasaur(t)

	out, err := c.ConvertTo(src, pkx.Gen7)
	require.NoError(t, err)
	require.Equal(t, pkx.Gen7, out.Generation())
	require.EqualValues(t, 1, out.Species())
	require.Equal(t, src.Nature(), out.Nature())
	require.Equal(t, src.Gender(), out.Gender())
	require.EqualValues(t, 65, out.Ability())

	same, err := c.ConvertTo(src, pkx.Gen1)
	require.NoError(t, err)
	require.Equal(t, src.Bytes(), same.Bytes())
	require.EqualValues(t, 1, same.Species())
}

func TestEveryGen1SpeciesReachesGen7(t *testing.T) {
	t.Parallel()

	prov := personal.Func(func(gen uint8, species uint16, form uint8) (personal.Info, bool) {
		return personal.Info{
			BaseStats:      [6]uint8{50, 50, 50, 50, 50, 50},
			Abilities:      [3]uint16{1, 2, 3},
			GenderRatio:    127,
			GrowthRate:     personal.GrowthMediumFast,
			BaseFriendship: personal.DefaultFriendship,
		}, true
	})
	c := newConverter(t, prov)

	for species := uint16(1); species <= pkx.Gen1.SpeciesLimit(); species++ {
		src := newRecord(t, pkx.Gen1, prov)
		require.NoError(t, src.SetSpecies(species))
		require.NoError(t, src.SetExperience(1000+uint32(species)))
		setDVs(t, src, uint8(species%16), 10, 10, 10)

		out, err := c.ConvertTo(src, pkx.Gen7)
		require.NoError(t, err, "species %d", species)
		require.Equal(t, species, out.Species())
		require.Equal(t, src.Nature(), out.Nature(), "species %d", species)
		require.Equal(t, src.Gender(), out.Gender(), "species %d", species)
		require.Equal(t, src.Shiny(), out.Shiny(), "species %d", species)
		require.Equal(t, out.CalcChecksum(), out.Checksum())
	}
}

func TestEveryGen3SpeciesReachesGen7(t *testing.T) {
	t.Parallel()

	prov := personal.Builtin()
	c := newConverter(t, prov)

	for species := uint16(1); species <= pkx.Gen3.SpeciesLimit(); species++ {
		for _, pid := range []uint32{0, 0x89ABCDEF, 0xFFFFFFFF} {
			src := newRecord(t, pkx.Gen3, prov)
			require.NoError(t, src.SetPID(pid))
			require.NoError(t, src.SetSpecies(species))
			require.NoError(t, src.SetTID(31337))
			require.NoError(t, src.SetSID(4242))
			require.NoError(t, src.SetExperience(100))

			out, err := c.ConvertTo(src, pkx.Gen7)
			require.NoError(t, err, "species %d pid %#x", species, pid)
			require.Equal(t, species, out.Species())
			require.Equal(t, pid, out.EncryptionConstant())
			require.Equal(t, src.Nature(), out.Nature(), "species %d pid %#x", species, pid)
			require.Equal(t, src.Gender(), out.Gender(), "species %d pid %#x", species, pid)
			require.Equal(t, src.Shiny(), out.Shiny(), "species %d pid %#x", species, pid)
			require.False(t, out.IsEncrypted())
			require.Equal(t, out.CalcChecksum(), out.Checksum())
		}
	}
}

func TestHoennSpeciesToGen7(t *testing.T) {
	t.Parallel()

	prov := personal.Builtin()
	c := newConverter(t, prov)

	src := newRecord(t, pkx.Gen3, prov)
	require.NoError(t, src.SetPID(0x89ABCDEF))
	require.NoError(t, src.SetSpecies(252))
	require.NoError(t, src.SetAbilityNumber(2))
	require.NoError(t, src.SetTID(31337))
	require.NoError(t, src.SetLevel(16))
	// Hoenn species sit past the gen 3 placeholder block.
	require.EqualValues(t, 277, pkx.NationalToGen3(252))
	src.Encrypt()

	out, err := c.Convert(src, pkx.Gen7)
	require.NoError(t, err)
	require.EqualValues(t, 252, out.Species())
	require.EqualValues(t, 16, out.Level())
	require.EqualValues(t, 2, out.AbilityNumber())
	require.EqualValues(t, 65, out.Ability())
	require.EqualValues(t, 30001, out.MetLocation())
	require.True(t, src.IsEncrypted())
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(&Config{Version: pkx.VersionSun})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewConverter(&Config{Language: pkx.LangChineseT + 1})
	require.ErrorIs(t, err, ErrInvalidConfig)

	c, err := NewConverter(nil)
	require.NoError(t, err)
	require.Equal(t, pkx.VersionFireRed, c.version)

	c, err = NewConverter(&Config{Version: pkx.VersionLeafGreen})
	require.NoError(t, err)
	out, err := c.Convert(newBulbasaur(t), pkx.Gen3)
	require.NoError(t, err)
	require.Equal(t, pkx.VersionLeafGreen, out.Version())
}

func TestItemTables(t *testing.T) {
	t.Parallel()

	cases := map[uint16]uint16{1: 1, 13: 17, 38: 42, 44: 43, 68: 50, 133: 149, 179: 213, 289: 328, 346: 427}
	for in, want := range cases {
		got, ok := ItemGen3ToNational[in]
		require.True(t, ok, "item %d", in)
		require.Equal(t, want, got, "item %d", in)
	}
	_, ok := ItemGen3ToNational[39]
	require.False(t, ok)

	require.EqualValues(t, 179, ItemGen2ToGen3[0x03])
	_, ok = ItemGen2ToGen3[0x06]
	require.False(t, ok)
}
