// Package personal defines the read-only species reference data contract
// (base stats, types, abilities, gender ratio, growth rate) and an in-memory
// table implementation.
//
// A Table is immutable once built and may be shared between goroutines.
package personal

import (
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// Gender ratio sentinels. Any other value is the female threshold compared
// against a record's gender value.
const (
	RatioMale       uint8 = 0
	RatioFemale     uint8 = 254
	RatioGenderless uint8 = 255
)

// DefaultFriendship is used when a species has no reference row.
const DefaultFriendship uint8 = 70

var ErrInvalidTable = errors.New("personal: invalid table")

// Info is one species/form row.
// BaseStats and IV/EV orders are HP, Atk, Def, Spe, SpA, SpD.
type Info struct {
	BaseStats      [6]uint8  `json:"base_stats"`
	Types          [2]uint8  `json:"types"`
	Abilities      [3]uint16 `json:"abilities"`
	GenderRatio    uint8     `json:"gender_ratio"`
	GrowthRate     uint8     `json:"growth_rate"`
	CatchRate      uint8     `json:"catch_rate"`
	BaseFriendship uint8     `json:"base_friendship"`
	FormCount      uint8     `json:"form_count"`
}

// Genderless reports whether the species has no gender.
func (i Info) Genderless() bool { return i.GenderRatio == RatioGenderless }

// Provider answers species queries for a generation.
type Provider interface {
	Lookup(gen uint8, species uint16, form uint8) (Info, bool)
}

type key struct {
	gen     uint8
	species uint16
	form    uint8
}

// Table is a map-backed Provider.
type Table struct {
	rows map[key]Info
}

// Row is the serialised form of one table entry.
type Row struct {
	Generation uint8  `json:"generation"`
	Species    uint16 `json:"species"`
	Form       uint8  `json:"form"`
	Info
}

// NewTable builds a table from rows. Later rows replace earlier ones with the
// same generation/species/form.
func NewTable(rows []Row) *Table {
	t := &Table{rows: make(map[key]Info, len(rows))}
	for _, r := range rows {
		t.rows[key{r.Generation, r.Species, r.Form}] = r.Info
	}
	return t
}

// Lookup returns the row for the exact form, falling back to form 0.
func (t *Table) Lookup(gen uint8, species uint16, form uint8) (Info, bool) {
	if t == nil {
		return Info{}, false
	}
	if info, ok := t.rows[key{gen, species, form}]; ok {
		return info, true
	}
	if form != 0 {
		info, ok := t.rows[key{gen, species, 0}]
		return info, ok
	}
	return Info{}, false
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// LoadJSON reads a JSON array of rows.
func LoadJSON(r io.Reader) (*Table, error) {
	var rows []Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	for i, row := range rows {
		if row.Generation == 0 || row.Species == 0 {
			return nil, fmt.Errorf("%w: row %d has no generation or species", ErrInvalidTable, i)
		}
		if row.GrowthRate >= GrowthRateCount {
			return nil, fmt.Errorf("%w: row %d growth rate %d", ErrInvalidTable, i, row.GrowthRate)
		}
	}
	return NewTable(rows), nil
}

// Func adapts a function to Provider.
type Func func(gen uint8, species uint16, form uint8) (Info, bool)

func (f Func) Lookup(gen uint8, species uint16, form uint8) (Info, bool) {
	return f(gen, species, form)
}

// Chain consults providers in order and returns the first hit.
type Chain []Provider

func (c Chain) Lookup(gen uint8, species uint16, form uint8) (Info, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if info, ok := p.Lookup(gen, species, form); ok {
			return info, true
		}
	}
	return Info{}, false
}
