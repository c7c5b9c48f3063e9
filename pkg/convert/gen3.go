package convert

import (
	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// metLocationTransfer marks records moved in from the gen 3 family.
const metLocationTransfer = 30001

func (c *Converter) gen3To7(src pkx.Entity, log logger.Logger) (pkx.Entity, error) {
	if err := preflight(src, pkx.Gen7); err != nil {
		return nil, err
	}
	if src.Egg() {
		return nil, incompatible("eggs cannot be transferred")
	}
	out := c.empty(pkx.Gen7)

	lang := src.Language()
	if lang == pkx.LangNone {
		lang = c.language
	}

	if err := out.SetSpecies(src.Species()); err != nil {
		return nil, err
	}
	exp := min(src.Experience(), personal.MaxExp(out.GrowthRate()))

	if err := firstErr(
		out.SetForm(src.Form()),
		out.SetEncryptionConstant(src.PID()),
		out.SetPID(transferPID(src)),
		out.SetTID(src.TID()),
		out.SetSID(src.SID()),
		out.SetExperience(exp),
		out.SetNature(src.Nature()),
		out.SetOTGender(src.OTGender()),
		out.SetBall(src.Ball()),
		out.SetVersion(src.Version()),
		out.SetLanguage(lang),
		out.SetMetLevel(src.MetLevel()),
		out.SetMetLocation(metLocationTransfer),
		out.SetMetDate(pkx.DateOf(c.clock.Now())),
		out.SetPokerus(src.Pokerus()),
		out.SetFatefulEncounter(src.FatefulEncounter()),
		out.SetNicknamed(src.Nicknamed()),
	); err != nil {
		return nil, err
	}
	// Gender is stored explicitly from gen 6 on; copy the PID derived value.
	if err := out.SetGender(src.Gender()); err != nil {
		return nil, err
	}
	if err := out.SetFriendship(out.BaseFriendship()); err != nil {
		return nil, err
	}

	if err := c.copyMoves(src, out, log); err != nil {
		return nil, err
	}
	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		if err := firstErr(
			out.SetIV(s, src.IV(s)),
			out.SetEV(s, min(src.EV(s), uint16(pkx.MaxEVGen7))),
		); err != nil {
			return nil, err
		}
	}
	for cs := pkx.ContestStat(0); cs < pkx.ContestCount; cs++ {
		if err := out.SetContest(cs, src.Contest(cs)); err != nil {
			return nil, err
		}
	}

	if err := c.setTransferAbility(src, out); err != nil {
		return nil, err
	}

	if item := src.HeldItem(); item != 0 {
		mapped, ok := ItemGen3ToNational[item]
		if !ok {
			log.Debug("held item dropped", "item", item)
		}
		if err := out.SetHeldItem(mapped); err != nil {
			return nil, err
		}
	}

	out.RefreshChecksum()
	return out, nil
}

// transferPID keeps the source PID unless the wider gen 7 shiny window would
// change the result, in which case bit 31 is flipped.
func transferPID(src pkx.Entity) uint32 {
	pid := src.PID()
	xor := uint32(src.TID()) ^ uint32(src.SID()) ^ pid>>16 ^ pid&0xFFFF
	if (xor < 16) != src.Shiny() {
		pid ^= 0x80000000
	}
	return pid
}

// setTransferAbility keeps the ability slot. Species whose second slot is
// empty fall back to the first.
func (c *Converter) setTransferAbility(src, out pkx.Entity) error {
	num := src.AbilityNumber()
	abilities := out.Abilities()
	if num == 2 && abilities[1] == 0 {
		num = 1
	}
	if err := out.SetAbilityNumber(num); err != nil {
		return err
	}
	return out.SetAbility(abilities[num>>1])
}
