// Package convert transfers records forward between generations, the way the
// official transfer tools move creatures from one game family to the next.
package convert

import (
	"fmt"

	"github.com/samcharles93/pkxcore/internal/logger"
	"github.com/samcharles93/pkxcore/pkg/personal"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

// Config configures a Converter. The zero value is usable.
type Config struct {
	// Personal answers species queries for the output records.
	Personal personal.Provider
	// Clock supplies the transfer date. Nil uses the system clock.
	Clock Clock
	// Logger receives notes about dropped or adjusted fields.
	Logger logger.Logger
	// Version is the origin game written by the gen 1 to gen 3 step.
	// Zero means FireRed.
	Version uint8
	// Language fills records whose source carries no language.
	// Zero means English.
	Language pkx.Language
}

var gen3Versions = map[uint8]bool{
	pkx.VersionSapphire:  true,
	pkx.VersionRuby:      true,
	pkx.VersionEmerald:   true,
	pkx.VersionFireRed:   true,
	pkx.VersionLeafGreen: true,
	pkx.VersionColosseum: true,
}

// Validate reports a config that could only produce invalid records.
func (c *Config) Validate() error {
	if c.Version != 0 && !gen3Versions[c.Version] {
		return fmt.Errorf("%w: version %d is not a gen 3 game", ErrInvalidConfig, c.Version)
	}
	if c.Language > pkx.LangChineseT {
		return fmt.Errorf("%w: language %d", ErrInvalidConfig, c.Language)
	}
	return nil
}

// Converter runs single generation steps. It holds no per-call state and is
// safe for concurrent use.
type Converter struct {
	personal personal.Provider
	clock    Clock
	log      logger.Logger
	version  uint8
	language pkx.Language
}

// NewConverter validates cfg and fills its defaults. A nil cfg is the zero
// Config.
func NewConverter(cfg *Config) (*Converter, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Converter{
		personal: cfg.Personal,
		clock:    cfg.Clock,
		log:      logger.OrNop(cfg.Logger),
		version:  cfg.Version,
		language: cfg.Language,
	}
	if c.personal == nil {
		c.personal = personal.Builtin()
	}
	if c.clock == nil {
		c.clock = RealClock{}
	}
	if c.version == 0 {
		c.version = pkx.VersionFireRed
	}
	if c.language == 0 {
		c.language = pkx.LangEnglish
	}
	return c, nil
}

// Next returns the generation one conversion step after g.
func Next(g pkx.Generation) (pkx.Generation, bool) {
	switch g {
	case pkx.Gen1:
		return pkx.Gen3, true
	case pkx.Gen3:
		return pkx.Gen7, true
	}
	return 0, false
}

// Convert runs exactly one step. The source is never modified. The result is
// a decrypted boxed record with a valid checksum.
func (c *Converter) Convert(src pkx.Entity, target pkx.Generation) (pkx.Entity, error) {
	from := src.Generation()
	next, ok := Next(from)
	if !ok || next != target {
		return nil, &UnsupportedError{From: from, To: target}
	}

	work := src.Clone()
	work.Decrypt()

	log := c.log.With("from", from.String(), "to", target.String(), "species", work.Species())
	var (
		out pkx.Entity
		err error
	)
	switch from {
	case pkx.Gen1:
		out, err = c.gen1To3(work, log)
	case pkx.Gen3:
		out, err = c.gen3To7(work, log)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("converted record")
	return out, nil
}

// ConvertTo chains single steps until target is reached. Converting to the
// source generation returns a decrypted copy.
func (c *Converter) ConvertTo(src pkx.Entity, target pkx.Generation) (pkx.Entity, error) {
	cur := src
	for cur.Generation() != target {
		next, ok := Next(cur.Generation())
		if !ok || next > target {
			return nil, &UnsupportedError{From: src.Generation(), To: target}
		}
		out, err := c.Convert(cur, next)
		if err != nil {
			return nil, err
		}
		cur = out
	}
	if cur == src {
		cur = src.Clone()
		cur.Decrypt()
	}
	return cur, nil
}

func (c *Converter) empty(gen pkx.Generation) pkx.Entity {
	// Zero bytes always form a valid boxed record.
	e, _ := pkx.Empty(gen, false, pkx.Options{Personal: c.personal})
	return e
}

func preflight(src pkx.Entity, target pkx.Generation) error {
	species := src.Species()
	if species == 0 {
		return incompatible("species slot is empty or unmapped")
	}
	if species > target.SpeciesLimit() {
		return incompatible("species %d does not exist in %s", species, target)
	}
	if b, ok := src.(interface{ BadEgg() bool }); ok && b.BadEgg() {
		return incompatible("record is flagged as a bad egg")
	}
	return nil
}
