package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/internal/api"
	"github.com/samcharles93/pkxcore/internal/fileio"
	"github.com/samcharles93/pkxcore/pkg/convert"
	"github.com/samcharles93/pkxcore/pkg/pkx"
	"github.com/samcharles93/pkxcore/pkg/sav"
)

func saveCmd() *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Read and edit gen 3 save files",
		Commands: []*cli.Command{
			saveInfoCmd(),
			saveExtractCmd(),
			saveInjectCmd(),
			saveResignCmd(),
		},
	}
}

func (s *settings) saveOptions() []sav.Option {
	opts := s.recordOptions()
	return []sav.Option{
		sav.WithLogger(s.log),
		sav.WithPersonal(opts.Personal),
		sav.WithJapanese(opts.Japanese),
	}
}

// slotRef names a box slot or a party slot.
type slotRef struct {
	party bool
	box   int
	slot  int
}

func (r slotRef) String() string {
	if r.party {
		return fmt.Sprintf("party slot %d", r.slot)
	}
	return fmt.Sprintf("box %d slot %d", r.box, r.slot)
}

// tag is the file name suffix used for extracted records.
func (r slotRef) tag() string {
	if r.party {
		return fmt.Sprintf("-p%d", r.slot)
	}
	return fmt.Sprintf("-b%02ds%02d", r.box, r.slot)
}

func slotFlags(box, slot, party *int) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "box", Aliases: []string{"b"}, Usage: "box number, from 0", Destination: box},
		&cli.IntFlag{Name: "slot", Aliases: []string{"s"}, Usage: "slot within the box, from 0", Destination: slot},
		&cli.IntFlag{Name: "party", Aliases: []string{"p"}, Usage: "party slot, from 0", Destination: party},
	}
}

func slotFromFlags(c *cli.Command, box, slot, party int) (slotRef, error) {
	boxed := c.IsSet("box") || c.IsSet("slot")
	switch {
	case c.IsSet("party") && boxed:
		return slotRef{}, cli.Exit("error: use either --party or --box/--slot", 1)
	case c.IsSet("party"):
		return slotRef{party: true, slot: party}, nil
	case c.IsSet("box") && c.IsSet("slot"):
		return slotRef{box: box, slot: slot}, nil
	}
	return slotRef{}, cli.Exit("error: --box and --slot, or --party, are required", 1)
}

func saveInfoCmd() *cli.Command {
	var (
		boxes  bool
		asJSON bool
	)

	return &cli.Command{
		Name:      "info",
		Usage:     "Show copy selection, validation problems, trainer and party",
		ArgsUsage: "SAVE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "boxes", Usage: "list occupied box slots", Destination: &boxes},
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of text", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := inputArg(cmd, "save")
			if err != nil {
				return err
			}
			_, st, err := loadSettings(ctx, cmd)
			if err != nil {
				return err
			}
			s, err := readSave(in, st.saveOptions()...)
			if err != nil {
				return err
			}
			view, err := api.NewSaveView(s, boxes)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.Root().Writer, view)
			}
			printSave(cmd.Root().Writer, view)
			return nil
		},
	}
}

func printSave(w io.Writer, v api.SaveView) {
	_, _ = fmt.Fprintf(w, "game:        %s\n", v.Game)
	_, _ = fmt.Fprintf(w, "copy:        %d of %d, counter %d, %s\n", v.ActiveCopy, v.Copies, v.Counter, v.State)
	_, _ = fmt.Fprintf(w, "trainer:     %05d/%05d %s, played %s\n", v.Trainer.TID, v.Trainer.SID, v.Trainer.Gender, v.Trainer.PlayTime)
	_, _ = fmt.Fprintf(w, "money:       %d, coins %d\n", v.Trainer.Money, v.Trainer.Coins)
	_, _ = fmt.Fprintf(w, "pokedex:     %d seen, %d caught\n", v.Trainer.DexSeen, v.Trainer.DexCaught)
	if len(v.Problems) == 0 {
		_, _ = fmt.Fprintln(w, "problems:    none")
	} else {
		_, _ = fmt.Fprintf(w, "problems:    %d\n", len(v.Problems))
		for _, p := range v.Problems {
			_, _ = fmt.Fprintf(w, "  - %s\n", p.Message)
		}
	}
	_, _ = fmt.Fprintf(w, "party:       %d\n", len(v.Party))
	for i, pk := range v.Party {
		_, _ = fmt.Fprintf(w, "  %d: species %d level %d pid 0x%08X\n", i, pk.Species, pk.Level, pk.PID)
	}
	_, _ = fmt.Fprintf(w, "current box: %d\n", v.CurrentBox)
	for _, b := range v.Boxes {
		split := ""
		if b.Split {
			split = " (split)"
		}
		_, _ = fmt.Fprintf(w, "  box %2d slot %2d: species %d level %d%s\n", b.Box, b.Slot, b.Record.Species, b.Record.Level, split)
	}
}

func saveExtractCmd() *cli.Command {
	var (
		box, slot, party int
		out              string
		force            bool
	)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Write one slot of a save to a decrypted record file",
		ArgsUsage: "SAVE",
		Flags:     append(slotFlags(&box, &slot, &party), outFlag(&out, false), forceFlag(&force)),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := inputArg(cmd, "save")
			if err != nil {
				return err
			}
			ref, err := slotFromFlags(cmd, box, slot, party)
			if err != nil {
				return err
			}
			_, st, err := loadSettings(ctx, cmd)
			if err != nil {
				return err
			}
			s, err := readSave(in, st.saveOptions()...)
			if err != nil {
				return err
			}

			var pk *pkx.PK3
			if ref.party {
				pk, err = s.Party(ref.slot)
			} else {
				pk, err = s.Box(ref.box, ref.slot)
			}
			if err != nil {
				return err
			}
			if pk.Species() == 0 {
				return fmt.Errorf("%s is empty", ref)
			}
			dst, err := resolveOut(in, out, derivedPath(in, ref.tag(), pkx.Gen3.Extension()), force)
			if err != nil {
				return err
			}
			if err := writeRecord(dst, pk); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.Root().Writer, "extract: wrote %s from %s\n", dst, ref)
			return nil
		},
	}
}

func saveInjectCmd() *cli.Command {
	var (
		box, slot, party int
		record           string
		generation       string
		out              string
		force            bool
	)

	return &cli.Command{
		Name:      "inject",
		Usage:     "Write a record into a save slot and resign the save",
		ArgsUsage: "SAVE",
		Flags: append(slotFlags(&box, &slot, &party),
			&cli.StringFlag{
				Name:        "record",
				Aliases:     []string{"r"},
				Usage:       "record file to write; gen 1 records are converted first",
				Required:    true,
				Destination: &record,
			},
			generationFlag(&generation),
			outFlag(&out, true),
			forceFlag(&force),
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := inputArg(cmd, "save")
			if err != nil {
				return err
			}
			ref, err := slotFromFlags(cmd, box, slot, party)
			if err != nil {
				return err
			}
			_, st, err := loadSettings(ctx, cmd)
			if err != nil {
				return err
			}
			dst, err := resolveOut(in, out, "", force)
			if err != nil {
				return err
			}
			s, err := readSave(in, st.saveOptions()...)
			if err != nil {
				return err
			}
			pk, err := readRecord(record, generation, st.recordOptions())
			if err != nil {
				return err
			}
			pk3, err := asGen3(st, pk)
			if err != nil {
				return fmt.Errorf("%s: %w", record, err)
			}

			if ref.party {
				err = injectParty(s, ref.slot, pk3)
			} else {
				err = s.SetBox(ref.box, ref.slot, pk3)
			}
			if err != nil {
				return err
			}
			return resignAndWrite(cmd, st, s, dst, fmt.Sprintf("inject: wrote %s with %s", dst, ref))
		},
	}
}

// asGen3 returns pk as a gen 3 record, converting older formats.
func asGen3(st *settings, pk pkx.Entity) (*pkx.PK3, error) {
	if pk.Generation() != pkx.Gen3 {
		conv, err := convert.NewConverter(st.cfg.Converter(st.personal, st.log))
		if err != nil {
			return nil, err
		}
		if pk, err = conv.ConvertTo(pk, pkx.Gen3); err != nil {
			return nil, err
		}
		st.log.Info("converted record for injection", "species", pk.Species())
	}
	pk3, ok := pk.(*pkx.PK3)
	if !ok {
		return nil, fmt.Errorf("%w: not a gen 3 record", convert.ErrConversionUnsupported)
	}
	return pk3, nil
}

// injectParty writes a party slot and grows the party count to cover it.
func injectParty(s *sav.Sav3, slot int, pk *pkx.PK3) error {
	if err := s.SetParty(slot, pk); err != nil {
		return err
	}
	if s.PartyCount() <= slot {
		return s.SetPartyCount(slot + 1)
	}
	return nil
}

func saveResignCmd() *cli.Command {
	var (
		out   string
		force bool
	)

	return &cli.Command{
		Name:      "resign",
		Usage:     "Recompute every sector checksum of the active copy",
		ArgsUsage: "SAVE",
		Flags:     []cli.Flag{outFlag(&out, true), forceFlag(&force)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := inputArg(cmd, "save")
			if err != nil {
				return err
			}
			_, st, err := loadSettings(ctx, cmd)
			if err != nil {
				return err
			}
			dst, err := resolveOut(in, out, "", force)
			if err != nil {
				return err
			}
			s, err := readSave(in, st.saveOptions()...)
			if err != nil {
				return err
			}
			fixed := len(s.Problems())
			return resignAndWrite(cmd, st, s, dst, fmt.Sprintf("resign: wrote %s, cleared %d problems", dst, fixed))
		},
	}
}

func resignAndWrite(cmd *cli.Command, st *settings, s *sav.Sav3, dst, msg string) error {
	s.Resign()
	data, err := s.Export()
	if err != nil {
		return err
	}
	if err := fileio.WriteFileAtomic(dst, data, 0o644); err != nil {
		return err
	}
	st.log.Debug("wrote save", "path", dst, "copy", s.ActiveCopy(), "counter", s.Counter())
	_, _ = fmt.Fprintln(cmd.Root().Writer, msg)
	return nil
}
