package convert

import (
	"math"

	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// metLocationTrade is the gen 3 met location used for in-game trades, which
// is how a traded-forward record presents itself.
const metLocationTrade = 0xFE

func (c *Converter) gen1To3(src pkx.Entity, log logger.Logger) (pkx.Entity, error) {
	if err := preflight(src, pkx.Gen3); err != nil {
		return nil, err
	}
	out := c.empty(pkx.Gen3)

	if err := out.SetSpecies(src.Species()); err != nil {
		return nil, err
	}
	exp := min(src.Experience(), personal.MaxExp(out.GrowthRate()))
	if exp != src.Experience() {
		log.Debug("experience saturated", "from", src.Experience(), "to", exp)
	}

	if err := firstErr(
		out.SetTID(src.TID()),
		out.SetSID(0),
		out.SetExperience(exp),
		out.SetOTGender(pkx.Male),
		out.SetAbilityNumber(1),
		out.SetMetLevel(src.Level()),
		out.SetMetLocation(metLocationTrade),
		out.SetBall(pkx.BallPoke),
		out.SetVersion(c.version),
		out.SetLanguage(src.Language()),
		out.SetFriendship(out.BaseFriendship()),
	); err != nil {
		return nil, err
	}

	if err := c.copyMoves(src, out, log); err != nil {
		return nil, err
	}

	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		if err := out.SetIV(s, dvToIV(src.IV(s))); err != nil {
			return nil, err
		}
	}
	evs := statExpToEVs(src)
	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		if err := out.SetEV(s, evs[s]); err != nil {
			return nil, err
		}
	}

	item := src.HeldItem()
	if item != 0 {
		mapped, ok := ItemGen2ToGen3[item]
		if !ok {
			log.Debug("held item dropped", "item", item)
		}
		if err := out.SetHeldItem(mapped); err != nil {
			return nil, err
		}
	}

	if err := out.SetPID(pidSeed(src)); err != nil {
		return nil, err
	}
	// Each PID setter keeps the traits the others already placed.
	if err := firstErr(
		out.SetGender(src.Gender()),
		out.SetNature(src.Nature()),
		out.SetShiny(src.Shiny()),
	); err != nil {
		return nil, err
	}
	return out, nil
}

// dvToIV scales a 0-15 DV onto the 0-31 IV range.
func dvToIV(dv uint8) uint8 {
	return uint8(uint16(dv) * uint16(pkx.MaxIV) / uint16(pkx.MaxDV))
}

// statExpToEVs takes the rounded-up square root of each stat experience
// value, capped per stat, then trims from the last stat until the total fits.
func statExpToEVs(src pkx.Entity) [pkx.StatCount]uint16 {
	var evs [pkx.StatCount]uint16
	total := 0
	for s := pkx.StatHP; s < pkx.StatCount; s++ {
		v := uint16(math.Ceil(math.Sqrt(float64(src.EV(s)))))
		evs[s] = min(v, uint16(pkx.MaxEVGen3))
		total += int(evs[s])
	}
	for s := pkx.StatSpD; total > pkx.MaxEVTotal; s-- {
		cut := min(int(evs[s]), total-pkx.MaxEVTotal)
		evs[s] -= uint16(cut)
		total -= cut
	}
	return evs
}

// pidSeed derives the starting point of the PID search from the DVs and
// trainer id, so the same source always converts to the same PID.
func pidSeed(src pkx.Entity) uint32 {
	dvs := uint32(src.IV(pkx.StatAtk))<<12 | uint32(src.IV(pkx.StatDef))<<8 |
		uint32(src.IV(pkx.StatSpe))<<4 | uint32(src.IV(pkx.StatSpA))
	return uint32(src.TID())<<16 | dvs
}

// copyMoves copies move slots, PP and PP ups, clearing moves the target
// generation does not have.
func (c *Converter) copyMoves(src, out pkx.Entity, log logger.Logger) error {
	lim := out.Generation().MoveLimit()
	for i := range pkx.MoveSlots {
		m := src.Move(i)
		if m > lim {
			log.Debug("move cleared", "slot", i, "move", m)
			continue
		}
		if err := firstErr(
			out.SetMove(i, m),
			out.SetPP(i, src.PP(i)),
			out.SetPPUp(i, src.PPUp(i)),
		); err != nil {
			return err
		}
	}
	return nil
}
