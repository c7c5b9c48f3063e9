package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/pkg/convert"
	"github.com/samcharles93/pkxcore/pkg/pkx"
)

func convertCmd() *cli.Command {
	var (
		generation string
		target     string
		out        string
		force      bool
		origin     int
		language   int
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a record file to a later generation",
		ArgsUsage: "RECORD",
		Flags: []cli.Flag{
			generationFlag(&generation),
			&cli.StringFlag{
				Name:        "to",
				Aliases:     []string{"t"},
				Usage:       "target generation (3, 7)",
				Required:    true,
				Destination: &target,
			},
			&cli.IntFlag{
				Name:        "origin-version",
				Usage:       "origin game written when leaving gen 1 (default FireRed)",
				Destination: &origin,
			},
			&cli.IntFlag{
				Name:        "language",
				Usage:       "language code for records that carry none (default English)",
				Destination: &language,
			},
			outFlag(&out, false),
			forceFlag(&force),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in, err := inputArg(cmd, "record")
			if err != nil {
				return err
			}
			to, err := pkx.ParseGeneration(target)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: --to: %v", err), 1)
			}
			if origin < 0 || origin > 0xFF || language < 0 || language > 0xFF {
				return cli.Exit("error: --origin-version and --language must be between 0 and 255", 1)
			}
			_, st, err := loadSettings(ctx, cmd)
			if err != nil {
				return err
			}
			applyConvertConfig(cmd, &st.cfg, uint8(origin), uint8(language))

			conv, err := convert.NewConverter(st.cfg.Converter(st.personal, st.log))
			if err != nil {
				return err
			}
			pk, err := readRecord(in, generation, st.recordOptions())
			if err != nil {
				return err
			}
			dst, err := resolveOut(in, out, derivedPath(in, "", to.Extension()), force)
			if err != nil {
				return err
			}

			res, err := conv.ConvertTo(pk, to)
			if err != nil {
				return fmt.Errorf("convert %s: %w", in, err)
			}
			if err := writeRecord(dst, res); err != nil {
				return err
			}
			st.log.Info("converted record", "in", in, "out", dst,
				"from", pk.Generation().String(), "to", res.Generation().String(), "species", res.Species())
			_, _ = fmt.Fprintf(cmd.Root().Writer, "convert: wrote %s (%s -> %s)\n", dst, pk.Generation(), res.Generation())
			return nil
		},
	}
}
