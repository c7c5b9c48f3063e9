package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/internal/api"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

func inspectCmd() *cli.Command {
	var (
		generation string
		asJSON     bool
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode a record file and print its fields",
		ArgsUsage: "RECORD",
		Flags: []cli.Flag{
			generationFlag(&generation),
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of text", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := inputArg(cmd, "record")
			if err != nil {
				return err
			}
			_, st, err := loadSettings(ctx, cmd)
			if err != nil {
				return err
			}
			pk, err := readRecord(in, generation, st.recordOptions())
			if err != nil {
				return err
			}
			view := api.NewRecordView(pk)
			if asJSON {
				return writeJSON(cmd.Root().Writer, view)
			}
			printRecord(cmd.Root().Writer, view)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printRecord(w io.Writer, v api.RecordView) {
	kind := "boxed"
	if v.Party {
		kind = "party"
	}
	state := "decrypted"
	if v.Encrypted {
		state = "encrypted"
	}
	valid := "valid"
	if !v.ChecksumValid {
		valid = "INVALID"
	}

	_, _ = fmt.Fprintf(w, "format:      %s, %d bytes, %s, %s\n", v.Generation, v.Length, kind, state)
	_, _ = fmt.Fprintf(w, "checksum:    0x%04X (%s)\n", v.Checksum, valid)
	_, _ = fmt.Fprintf(w, "species:     %d form %d, level %d (%d exp)\n", v.Species, v.Form, v.Level, v.Experience)
	_, _ = fmt.Fprintf(w, "pid:         0x%08X  ec: 0x%08X  shiny: %t\n", v.PID, v.EC, v.Shiny)
	_, _ = fmt.Fprintf(w, "trainer:     %05d/%05d  tsv %d  psv %d\n", v.TID, v.SID, v.TSV, v.PSV)
	_, _ = fmt.Fprintf(w, "nature:      %d  gender: %s\n", v.Nature, v.Gender)
	_, _ = fmt.Fprintf(w, "ability:     %d (slot %d)  item: %d\n", v.Ability, v.AbilityNumber, v.HeldItem)
	_, _ = fmt.Fprintf(w, "ivs:         %s\n", statLine(v.IVs[:]))
	_, _ = fmt.Fprintf(w, "evs:         %s\n", statLine(v.EVs[:]))
	_, _ = fmt.Fprintf(w, "stats:       %s\n", statLine(v.Stats[:]))

	moves := make([]string, 0, pkx.MoveSlots)
	for i, m := range v.Moves {
		if m == 0 {
			continue
		}
		moves = append(moves, fmt.Sprintf("%d (%dpp +%d)", m, v.PP[i], v.PPUps[i]))
	}
	if len(moves) == 0 {
		moves = append(moves, "none")
	}
	_, _ = fmt.Fprintf(w, "moves:       %s\n", strings.Join(moves, ", "))
	_, _ = fmt.Fprintf(w, "met:         level %d at %d on %s, ball %d, version %d, language %d\n",
		v.MetLevel, v.MetLocation, v.MetDate, v.Ball, v.Version, v.Language)
	_, _ = fmt.Fprintf(w, "flags:       egg=%t nicknamed=%t friendship=%d pokerus=0x%02X hp-type=%d\n",
		v.Egg, v.Nicknamed, v.Friendship, v.Pokerus, v.HiddenPower)
}

func statLine[T uint8 | uint16](vals []T) string {
	parts := make([]string, len(vals))
	for i, n := range vals {
		parts[i] = fmt.Sprintf("%s %d", pkx.Stat(i), n)
	}
	return strings.Join(parts, " ")
}
