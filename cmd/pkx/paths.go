package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/internal/fileio"
	"github.com/samcharles93/pkxcore/pkg/pkx"
	"github.com/samcharles93/pkxcore/pkg/sav"
)

const (
	// recordLimit is well above the largest record (a 260 byte gen 7 party
	// record) and keeps obviously wrong inputs out.
	recordLimit = 4 << 10
	saveLimit   = sav.SizeFull
)

// inputArg returns the single positional file argument.
func inputArg(c *cli.Command, what string) (string, error) {
	if c.Args().Len() != 1 {
		return "", cli.Exit(fmt.Sprintf("error: expected one %s path, got %d arguments", what, c.Args().Len()), 1)
	}
	p := strings.TrimSpace(c.Args().First())
	if p == "" {
		return "", cli.Exit(fmt.Sprintf("error: empty %s path", what), 1)
	}
	return filepath.Clean(p), nil
}

// derivedPath builds an output name next to in: "dir/base" + tag + ext. An
// empty ext keeps the input's extension.
func derivedPath(in, tag, ext string) string {
	oldExt := filepath.Ext(in)
	if ext == "" {
		ext = oldExt
	}
	return strings.TrimSuffix(in, oldExt) + tag + ext
}

// resolveOut picks the output path and refuses to clobber an existing file
// unless force is set. The input file itself is never overwritten.
func resolveOut(in, outFlag, def string, force bool) (string, error) {
	out := strings.TrimSpace(outFlag)
	if out == "" {
		out = def
	}
	out = filepath.Clean(out)
	if out == filepath.Clean(in) {
		return "", fmt.Errorf("output %s would overwrite the input", out)
	}
	if _, err := os.Stat(out); err == nil && !force {
		return "", fmt.Errorf("output %s exists; pass --force to overwrite", out)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	return out, nil
}

// readRecord loads a record file. gen may be empty to detect the format from
// the file size.
func readRecord(path, gen string, opts pkx.Options) (pkx.Entity, error) {
	data, err := fileio.ReadFile(path, recordLimit)
	if err != nil {
		return nil, err
	}
	if gen == "" {
		pk, err := pkx.Parse(data, opts)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return pk, nil
	}
	g, err := pkx.ParseGeneration(gen)
	if err != nil {
		return nil, err
	}
	pk, err := pkx.FromBytes(g, data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pk, nil
}

func readSave(path string, opts ...sav.Option) (*sav.Sav3, error) {
	data, err := fileio.ReadFile(path, saveLimit)
	if err != nil {
		return nil, err
	}
	s, err := sav.Open(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func writeRecord(path string, pk pkx.Entity) error {
	return fileio.WriteFileAtomic(path, pk.Bytes(), 0o644)
}
