package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/pkg/pkx"
)

func decryptCmd() *cli.Command {
	return cryptCmd("decrypt", "Write the decrypted form of a record file", ".dec", func(pk pkx.Entity) { pk.Decrypt() })
}

func encryptCmd() *cli.Command {
	return cryptCmd("encrypt", "Write the encrypted (stored) form of a record file", ".enc", func(pk pkx.Entity) { pk.Encrypt() })
}

// cryptCmd builds decrypt and encrypt. Both are idempotent, so running
// decrypt on a decrypted record just copies it.
func cryptCmd(name, usage, tag string, apply func(pkx.Entity)) *cli.Command {
	var (
		generation string
		out        string
		force      bool
	)

	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "RECORD",
		Flags: []cli.Flag{
			generationFlag(&generation),
			outFlag(&out, false),
			forceFlag(&force),
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
			dst, err := resolveOut(in, out, derivedPath(in, tag, ""), force)
			if err != nil {
				return err
			}

			was := pk.IsEncrypted()
			apply(pk)
			if err := writeRecord(dst, pk); err != nil {
				return err
			}
			st.log.Debug(name+" record", "in", in, "out", dst, "generation", pk.Generation().String(),
				"was_encrypted", was, "encrypted", pk.IsEncrypted())
			_, _ = fmt.Fprintf(cmd.Root().Writer, "%s: wrote %s\n", name, dst)
			return nil
		},
	}
}
