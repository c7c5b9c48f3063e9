package api

import (
	"fmt"

	"github.com/samcharles93/pkxcore/pkg/pkx"
	"github.com/samcharles93/pkxcore/pkg/sav"
)

// RecordView is the decoded, format independent summary of a record. The
// command line inspect output uses the same shape.
type RecordView struct {
	Generation    string    `json:"generation"`
	Length        int       `json:"length"`
	Party         bool      `json:"party"`
	Encrypted     bool      `json:"encrypted"`
	Checksum      uint16    `json:"checksum"`
	ChecksumValid bool      `json:"checksum_valid"`
	PID           uint32    `json:"pid"`
	EC            uint32    `json:"encryption_constant"`
	TID           uint16    `json:"tid"`
	SID           uint16    `json:"sid"`
	Species       uint16    `json:"species"`
	Form          uint8     `json:"form"`
	Level         uint8     `json:"level"`
	Experience    uint32    `json:"experience"`
	Nature        uint8     `json:"nature"`
	Gender        string    `json:"gender"`
	Shiny         bool      `json:"shiny"`
	Ability       uint16    `json:"ability"`
	AbilityNumber uint8     `json:"ability_number"`
	HeldItem      uint16    `json:"held_item"`
	IVs           [6]uint8  `json:"ivs"`
	EVs           [6]uint16 `json:"evs"`
	Stats         [6]uint16 `json:"stats"`
	Moves         [4]uint16 `json:"moves"`
	PP            [4]uint8  `json:"pp"`
	PPUps         [4]uint8  `json:"pp_ups"`
	Egg           bool      `json:"egg"`
	Nicknamed     bool      `json:"nicknamed"`
	Friendship    uint8     `json:"friendship"`
	Language      uint8     `json:"language"`
	Version       uint8     `json:"version"`
	Ball          uint8     `json:"ball"`
	MetLevel      uint8     `json:"met_level"`
	MetLocation   uint16    `json:"met_location"`
	MetDate       string    `json:"met_date"`
	Pokerus       uint8     `json:"pokerus"`
	TSV           uint16    `json:"tsv"`
	PSV           uint16    `json:"psv"`
	HiddenPower   uint8     `json:"hidden_power_type"`
}

// NewRecordView summarises pk without modifying it. Encrypted records are
// read through a decrypted clone.
func NewRecordView(pk pkx.Entity) RecordView {
	c := pk.Clone()
	encrypted := c.IsEncrypted()
	c.Decrypt()

	v := RecordView{
		Generation:    c.Generation().String(),
		Length:        c.Len(),
		Party:         c.IsParty(),
		Encrypted:     encrypted,
		Checksum:      c.Checksum(),
		ChecksumValid: c.Checksum() == c.CalcChecksum(),
		PID:           c.PID(),
		EC:            c.EncryptionConstant(),
		TID:           c.TID(),
		SID:           c.SID(),
		Species:       c.Species(),
		Form:          c.Form(),
		Level:         c.Level(),
		Experience:    c.Experience(),
		Nature:        uint8(c.Nature()),
		Gender:        c.Gender().String(),
		Shiny:         c.Shiny(),
		Ability:       c.Ability(),
		AbilityNumber: c.AbilityNumber(),
		HeldItem:      c.HeldItem(),
		Egg:           c.Egg(),
		Nicknamed:     c.Nicknamed(),
		Friendship:    c.Friendship(),
		Language:      uint8(c.Language()),
		Version:       c.Version(),
		Ball:          c.Ball(),
		MetLevel:      c.MetLevel(),
		MetLocation:   c.MetLocation(),
		MetDate:       c.MetDate().String(),
		Pokerus:       c.Pokerus(),
		TSV:           c.TSV(),
		PSV:           c.PSV(),
		HiddenPower:   c.HiddenPowerType(),
	}
	for s := range pkx.StatCount {
		v.IVs[s] = c.IV(s)
		v.EVs[s] = c.EV(s)
		v.Stats[s] = c.Stat(s)
	}
	for i := range pkx.MoveSlots {
		v.Moves[i] = c.Move(i)
		v.PP[i] = c.PP(i)
		v.PPUps[i] = c.PPUp(i)
	}
	return v
}

type SaveView struct {
	Game       string        `json:"game"`
	Copies     int           `json:"copies"`
	ActiveCopy int           `json:"active_copy"`
	Counter    uint32        `json:"counter"`
	State      string        `json:"state"`
	Problems   []SaveProblem `json:"problems"`
	Trainer    TrainerView   `json:"trainer"`
	CurrentBox int           `json:"current_box"`
	Party      []RecordView  `json:"party"`
	Boxes      []BoxSlotView `json:"boxes,omitempty"`
}

type SaveProblem struct {
	Copy     int    `json:"copy"`
	Sector   int    `json:"sector"`
	Block    int    `json:"block"`
	Stored   uint16 `json:"stored"`
	Computed uint16 `json:"computed"`
	Message  string `json:"message"`
}

type TrainerView struct {
	TID       uint16 `json:"tid"`
	SID       uint16 `json:"sid"`
	Gender    string `json:"gender"`
	PlayTime  string `json:"play_time"`
	Money     uint32 `json:"money"`
	Coins     uint16 `json:"coins"`
	DexSeen   int    `json:"dex_seen"`
	DexCaught int    `json:"dex_caught"`
}

type BoxSlotView struct {
	Box    int        `json:"box"`
	Slot   int        `json:"slot"`
	Split  bool       `json:"split"`
	Record RecordView `json:"record"`
}

// NewSaveView summarises an opened save. With boxes set, every occupied box
// slot is listed.
func NewSaveView(s *sav.Sav3, boxes bool) (SaveView, error) {
	h, m, sec := s.PlayTime()
	v := SaveView{
		Game:       s.Game().String(),
		Copies:     s.Copies(),
		ActiveCopy: s.ActiveCopy(),
		Counter:    s.Counter(),
		State:      s.State().String(),
		Problems:   []SaveProblem{},
		Trainer: TrainerView{
			TID:       s.TID(),
			SID:       s.SID(),
			Gender:    s.TrainerGender().String(),
			PlayTime:  fmt.Sprintf("%d:%02d:%02d", h, m, sec),
			Money:     s.Money(),
			Coins:     s.Coins(),
			DexSeen:   s.DexSeen(),
			DexCaught: s.DexCaught(),
		},
		CurrentBox: s.CurrentBox(),
		Party:      []RecordView{},
	}
	for _, p := range s.Problems() {
		v.Problems = append(v.Problems, SaveProblem{
			Copy: p.Copy, Sector: p.Sector, Block: p.Block,
			Stored: p.Stored, Computed: p.Computed, Message: p.Error(),
		})
	}

	for i := range min(s.PartyCount(), sav.PartySlots) {
		pk, err := s.Party(i)
		if err != nil {
			return SaveView{}, err
		}
		v.Party = append(v.Party, NewRecordView(pk))
	}
	if !boxes {
		return v, nil
	}
	for b := range sav.Boxes {
		for slot := range sav.BoxSlots {
			pk, err := s.Box(b, slot)
			if err != nil {
				return SaveView{}, err
			}
			if pk.Species() == 0 {
				continue
			}
			r, err := s.BoxRegion(b, slot)
			if err != nil {
				return SaveView{}, err
			}
			v.Boxes = append(v.Boxes, BoxSlotView{Box: b, Slot: slot, Split: r.Split(), Record: NewRecordView(pk)})
		}
	}
	return v, nil
}
