package sav

import (
	"encoding/binary"

	"github.com/samcharles93/pkxcore/pkg/pkcrypt"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// pcRanges maps n bytes at a logical PC buffer offset to file ranges. The PC
// buffer is the data areas of blocks 5 to 13 laid end to end, so a span that
// runs past one block's data area continues at the start of the next block.
func (s *Sav3) pcRanges(logical, n int) []Range {
	block := blockPC + logical/SectorData
	within := logical % SectorData
	first := min(n, SectorData-within)
	ranges := []Range{{Offset: s.blockOfs[block] + within, Len: first}}
	if first < n {
		ranges = append(ranges, Range{Offset: s.blockOfs[block+1], Len: n - first})
	}
	return ranges
}

func (s *Sav3) pcRegion(logical, n int) Region {
	return newRegion(s, s.pcRanges(logical, n)...)
}

func checkSlot(box, slot int) error {
	if box < 0 || box >= Boxes {
		return rangeErr("box", box, Boxes-1)
	}
	if slot < 0 || slot >= BoxSlots {
		return rangeErr("box slot", slot, BoxSlots-1)
	}
	return nil
}

// BoxRegion locates a box slot. Slots that straddle two blocks come back as
// a split Region.
func (s *Sav3) BoxRegion(box, slot int) (Region, error) {
	if err := checkSlot(box, slot); err != nil {
		return Region{}, err
	}
	off := pcBoxData + (box*BoxSlots+slot)*BoxRecordLen
	return s.pcRegion(off, BoxRecordLen), nil
}

// PartyRegion locates a party slot in the team block.
func (s *Sav3) PartyRegion(slot int) (Region, error) {
	if slot < 0 || slot >= PartySlots {
		return Region{}, rangeErr("party slot", slot, PartySlots-1)
	}
	_, party := s.game.teamOffsets()
	off := s.blockOfs[blockTeam] + party + slot*PartyRecLen
	return newRegion(s, Range{Offset: off, Len: PartyRecLen}), nil
}

// Box returns a decrypted copy of a box slot. Editing it does not touch the
// save; write it back with SetBox.
func (s *Sav3) Box(box, slot int) (*pkx.PK3, error) {
	r, err := s.BoxRegion(box, slot)
	if err != nil {
		return nil, err
	}
	return s.detached(r)
}

// BoxView returns a record that reads and writes the save directly. It starts
// encrypted: Decrypt before editing fields and Encrypt again before Resign.
// Any write marks the save dirty.
func (s *Sav3) BoxView(box, slot int) (*pkx.PK3, error) {
	r, err := s.BoxRegion(box, slot)
	if err != nil {
		return nil, err
	}
	return pkx.NewStoredPK3(r, s.opts)
}

// SetBox writes pk to a box slot with a fresh checksum, encrypted. A party
// length record is trimmed to its boxed part.
func (s *Sav3) SetBox(box, slot int, pk *pkx.PK3) error {
	r, err := s.BoxRegion(box, slot)
	if err != nil {
		return err
	}
	s.store(r, plainCopy(pk))
	return nil
}

// Party returns a decrypted copy of a party slot.
func (s *Sav3) Party(slot int) (*pkx.PK3, error) {
	r, err := s.PartyRegion(slot)
	if err != nil {
		return nil, err
	}
	return s.detached(r)
}

// SetParty writes pk to a party slot like SetBox. A boxed record is extended
// and its party block computed first. The party count is left alone.
func (s *Sav3) SetParty(slot int, pk *pkx.PK3) error {
	r, err := s.PartyRegion(slot)
	if err != nil {
		return err
	}
	c := plainCopy(pk)
	c.RefreshChecksum()
	if !c.IsParty() {
		b := make([]byte, PartyRecLen)
		copy(b, c.Bytes())
		full, err := pkx.NewPK3(pkx.Owned(b), s.opts)
		if err != nil {
			return err
		}
		full.UpdatePartyData()
		c = full
	}
	s.store(r, c)
	return nil
}

func (s *Sav3) detached(r Region) (*pkx.PK3, error) {
	pk, err := pkx.NewStoredPK3(pkx.NewOwned(pkx.Snapshot(r)), s.opts)
	if err != nil {
		return nil, err
	}
	pk.Decrypt()
	return pk, nil
}

// plainCopy returns a decrypted private copy of pk.
func plainCopy(pk *pkx.PK3) *pkx.PK3 {
	c := pk.Clone().(*pkx.PK3)
	c.Decrypt()
	return c
}

// store refreshes the checksum of the decrypted record pk, encrypts it and
// writes the first r.Len() bytes through r.
func (s *Sav3) store(r Region, pk *pkx.PK3) {
	pk.RefreshChecksum()
	b := pk.Bytes()[:r.Len()]
	pkcrypt.Gen3Encrypt(b)
	r.Store(b, 0)
}

// PartyCount is the number of occupied party slots.
func (s *Sav3) PartyCount() int {
	count, _ := s.game.teamOffsets()
	return int(binary.LittleEndian.Uint32(s.block(blockTeam)[count:]))
}

func (s *Sav3) SetPartyCount(n int) error {
	if n < 0 || n > PartySlots {
		return rangeErr("party count", n, PartySlots)
	}
	count, _ := s.game.teamOffsets()
	binary.LittleEndian.PutUint32(s.block(blockTeam)[count:], uint32(n))
	s.touch()
	return nil
}

// CurrentBox is the box the PC opens on.
func (s *Sav3) CurrentBox() int {
	return int(s.block(blockPC)[pcCurrentBox])
}

func (s *Sav3) SetCurrentBox(box int) error {
	if box < 0 || box >= Boxes {
		return rangeErr("box", box, Boxes-1)
	}
	s.block(blockPC)[pcCurrentBox] = byte(box)
	s.touch()
	return nil
}

// BoxNameRaw returns the encoded name of a box.
func (s *Sav3) BoxNameRaw(box int) ([]byte, error) {
	if box < 0 || box >= Boxes {
		return nil, rangeErr("box", box, Boxes-1)
	}
	return pkx.Snapshot(s.pcRegion(pcBoxNames+box*boxNameLen, boxNameLen)), nil
}

func (s *Sav3) BoxWallpaper(box int) (uint8, error) {
	if box < 0 || box >= Boxes {
		return 0, rangeErr("box", box, Boxes-1)
	}
	var b [1]byte
	s.pcRegion(pcWallpapers+box, 1).Load(b[:], 0)
	return b[0], nil
}

func (s *Sav3) SetBoxWallpaper(box int, v uint8) error {
	if box < 0 || box >= Boxes {
		return rangeErr("box", box, Boxes-1)
	}
	s.pcRegion(pcWallpapers+box, 1).Store([]byte{v}, 0)
	return nil
}
