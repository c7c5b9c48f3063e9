// Package sav reads and edits gen 3 save files.
//
// A gen 3 save holds two copies of fourteen 4 KiB sectors. Each sector
// carries a footer with its block id, a checksum and a save counter, and the
// sectors of a copy are stored in rotated order. Open picks the newest copy
// whose sectors all validate; corrupt saves still open, with the failures
// listed by Problems, so they can be repaired and resigned.
package sav

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/pkg/pkcrypt"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// Option configures Open.
type Option func(*Sav3)

// WithLogger sets the logger used for validation warnings.
func WithLogger(l logger.Logger) Option {
	return func(s *Sav3) { s.log = logger.OrNop(l) }
}

// WithPersonal sets the species data given to records read from the save.
func WithPersonal(p personal.Provider) Option {
	return func(s *Sav3) { s.opts.Personal = p }
}

// WithJapanese marks the save as coming from a Japanese cartridge.
func WithJapanese(v bool) Option {
	return func(s *Sav3) { s.opts.Japanese = v }
}

// Sav3 is an opened gen 3 save. It owns a private copy of the file.
type Sav3 struct {
	data     []byte
	copies   int
	active   int
	blockOfs [BlockCount]int
	counter  uint32
	state    State
	problems []*ChecksumError
	game     Game
	log      logger.Logger
	opts     pkx.Options
}

type copyInfo struct {
	order    [BlockCount]int // physical sector index to block id
	counter  uint32
	problems []*ChecksumError
}

func (c copyInfo) valid() bool { return len(c.problems) == 0 }

// Open copies data and selects the active save copy. Only the file size can
// make it fail.
func Open(data []byte, opts ...Option) (*Sav3, error) {
	if len(data) != SizeFull && len(data) != SizeSingle {
		return nil, fmt.Errorf("%w: size %#x, want %#x or %#x", ErrFormat, len(data), SizeFull, SizeSingle)
	}
	s := &Sav3{
		data:   bytes.Clone(data),
		copies: 1,
		log:    logger.Nop(),
		state:  StateUnresolved,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if len(data) == SizeFull {
		s.copies = 2
	}

	info := s.selectActive()
	base := s.active * CopySize
	for i, id := range info.order {
		s.blockOfs[id] = base + i*SectorSize
	}
	s.counter = info.counter
	s.state = StateActiveCopySelected

	s.problems = info.problems
	for _, p := range s.problems {
		s.log.Warn("save sector failed validation", "error", p)
	}
	s.game = s.detectGame()
	s.state = StateValidated

	s.log.Debug("opened save", "copy", s.active, "counter", s.counter, "game", s.game.String(),
		"problems", len(s.problems))
	return s, nil
}

// selectActive prefers valid copies, then the higher save counter. With no
// valid copy the raw counters decide and ties go to copy A.
func (s *Sav3) selectActive() copyInfo {
	a := s.inspectCopy(0)
	if s.copies == 1 {
		s.active = 0
		return a
	}
	b := s.inspectCopy(1)

	// Validity decides first; the counter breaks ties, valid or not.
	pickB := b.valid()
	if a.valid() == b.valid() {
		pickB = newer(b.counter, a.counter)
	}
	if pickB {
		s.active = 1
		return b
	}
	s.active = 0
	return a
}

func (s *Sav3) sector(c, i int) []byte {
	off := c*CopySize + i*SectorSize
	return s.data[off : off+SectorSize]
}

// inspectCopy resolves the block order of copy c and checks every sector.
// Sector ids that do not form a permutation fall back to the identity order.
func (s *Sav3) inspectCopy(c int) copyInfo {
	var info copyInfo
	var seen [BlockCount]bool
	perm := true
	for i := range BlockCount {
		id := int(readFooter(s.sector(c, i)).id)
		if id >= BlockCount || seen[id] {
			perm = false
			break
		}
		seen[id] = true
		info.order[i] = id
	}
	if !perm {
		for i := range BlockCount {
			info.order[i] = i
		}
		info.problems = append(info.problems, &ChecksumError{
			Copy: c, Sector: -1, Block: -1,
			Reason: "sector ids are not a permutation, using identity order",
		})
	}

	for i, id := range info.order {
		sec := s.sector(c, i)
		f := readFooter(sec)
		if id == blockTrainer {
			info.counter = f.counter
		}
		if f.magic != SectorMagic {
			info.problems = append(info.problems, &ChecksumError{
				Copy: c, Sector: i, Block: id, Reason: "missing sector signature",
			})
			continue
		}
		if sum := pkcrypt.SectorSum(sec[:chunkLength[id]]); sum != f.sum {
			info.problems = append(info.problems, &ChecksumError{
				Copy: c, Sector: i, Block: id, Stored: f.sum, Computed: sum,
			})
		}
	}
	return info
}

func (s *Sav3) detectGame() Game {
	switch binary.LittleEndian.Uint32(s.block(blockTrainer)[trainerGameCode:]) {
	case 0:
		return GameRS
	case 1:
		return GameFRLG
	}
	return GameE
}

// block returns the data area of a logical block in the active copy.
func (s *Sav3) block(id int) []byte {
	off := s.blockOfs[id]
	return s.data[off : off+SectorData]
}

func (s *Sav3) touch() { s.state = StateDirty }

func (s *Sav3) State() State         { return s.state }
func (s *Sav3) ActiveCopy() int      { return s.active }
func (s *Sav3) Copies() int          { return s.copies }
func (s *Sav3) Counter() uint32      { return s.counter }
func (s *Sav3) Game() Game           { return s.game }
func (s *Sav3) Len() int             { return len(s.data) }
func (s *Sav3) Exportable() bool     { return s.state != StateDirty }
func (s *Sav3) Options() pkx.Options { return s.opts }

// Problems lists the validation failures of the active copy found at open.
// Resign clears them.
func (s *Sav3) Problems() []*ChecksumError {
	return append([]*ChecksumError(nil), s.problems...)
}

// Resign rewrites every sector footer of the active copy: block id,
// signature, checksum over the declared block length and an incremented save
// counter.
func (s *Sav3) Resign() {
	s.counter++
	for id := range BlockCount {
		off := s.blockOfs[id]
		sec := s.data[off : off+SectorSize]
		writeFooter(sec, footer{
			id:      uint16(id),
			sum:     pkcrypt.SectorSum(sec[:chunkLength[id]]),
			magic:   SectorMagic,
			counter: s.counter,
		})
	}
	s.problems = nil
	s.state = StateResigned
	s.log.Debug("resigned save", "copy", s.active, "counter", s.counter)
}

// Export returns a copy of the file. It refuses while edits are unsigned.
func (s *Sav3) Export() ([]byte, error) {
	if s.state == StateDirty {
		return nil, ErrDirty
	}
	return bytes.Clone(s.data), nil
}

// Trainer info.

func (s *Sav3) trainerU16(off int) uint16 {
	return binary.LittleEndian.Uint16(s.block(blockTrainer)[off:])
}

func (s *Sav3) setTrainerU16(off int, v uint16) {
	binary.LittleEndian.PutUint16(s.block(blockTrainer)[off:], v)
	s.touch()
}

func (s *Sav3) TID() uint16 { return s.trainerU16(trainerTID) }
func (s *Sav3) SID() uint16 { return s.trainerU16(trainerSID) }

func (s *Sav3) SetTID(v uint16) { s.setTrainerU16(trainerTID, v) }
func (s *Sav3) SetSID(v uint16) { s.setTrainerU16(trainerSID, v) }

// TrainerGender is the player's gender byte: 0 male, 1 female.
func (s *Sav3) TrainerGender() pkx.Gender {
	return pkx.Gender(s.block(blockTrainer)[trainerGender] & 1)
}

func (s *Sav3) SetTrainerGender(g pkx.Gender) error {
	if g > pkx.Female {
		return rangeErr("trainer gender", int(g), int(pkx.Female))
	}
	s.block(blockTrainer)[trainerGender] = byte(g)
	s.touch()
	return nil
}

// TrainerNameRaw returns the encoded trainer name. Text decoding is left to
// the caller's character tables.
func (s *Sav3) TrainerNameRaw() []byte {
	return bytes.Clone(s.block(blockTrainer)[trainerName : trainerName+trainerNameLen])
}

// PlayTime returns hours, minutes and seconds played.
func (s *Sav3) PlayTime() (hours uint16, minutes, seconds uint8) {
	b := s.block(blockTrainer)
	return s.trainerU16(trainerHours), b[trainerMinutes], b[trainerSeconds]
}

func (s *Sav3) SetPlayTime(hours uint16, minutes, seconds uint8) error {
	if minutes > 59 || seconds > 59 {
		return rangeErr("play time minutes/seconds", int(max(minutes, seconds)), 59)
	}
	b := s.block(blockTrainer)
	binary.LittleEndian.PutUint16(b[trainerHours:], hours)
	b[trainerMinutes] = minutes
	b[trainerSeconds] = seconds
	s.touch()
	return nil
}
