package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pkxcore/internal/api"
	"github.com/samcharles93/pkxcore/pkg/pkx"
	"github.com/samcharles93/pkxcore/pkg/sav"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.ExitErrHandler = func(context.Context, *cli.Command, error) {}
	full := append([]string{"pkx", "--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...)
	err := app.Run(context.Background(), full)
	return out.String(), err
}

func writeBulbasaur(t *testing.T, dir string) (string, []byte) {
	t.Helper()
	pk, err := pkx.Empty(pkx.Gen3, false, pkx.Options{})
	require.NoError(t, err)
	require.NoError(t, pk.SetSpecies(1))
	require.NoError(t, pk.SetPID(0xDEADBEEF))
	require.NoError(t, pk.SetTID(31337))
	require.NoError(t, pk.SetSID(4242))
	require.NoError(t, pk.SetExperience(135))
	require.NoError(t, pk.SetMove(0, 33))
	require.NoError(t, pk.SetPP(0, 35))
	pk.Encrypt()

	path := filepath.Join(dir, "bulbasaur.pk3")
	data := pk.Bytes()
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path, data
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestInspectText(t *testing.T) {
	path, _ := writeBulbasaur(t, t.TempDir())

	out, err := runApp(t, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, out, "gen3, 80 bytes, boxed, encrypted")
	require.Contains(t, out, "species:     1 form 0, level 5 (135 exp)")
	require.Contains(t, out, "pid:         0xDEADBEEF")
	require.Contains(t, out, "moves:       33 (35pp +0)")
}

func TestInspectJSON(t *testing.T) {
	path, _ := writeBulbasaur(t, t.TempDir())

	out, err := runApp(t, "inspect", "--json", path)
	require.NoError(t, err)
	var view api.RecordView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, uint16(1), view.Species)
	require.Equal(t, uint16(4242), view.SID)
	require.True(t, view.ChecksumValid)
}

func TestInspectNeedsOnePath(t *testing.T) {
	_, err := runApp(t, "inspect")
	require.Error(t, err)

	_, err = runApp(t, "inspect", filepath.Join(t.TempDir(), "missing.pk3"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecryptEncryptRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path, encrypted := writeBulbasaur(t, dir)

	_, err := runApp(t, "decrypt", path)
	require.NoError(t, err)
	decPath := filepath.Join(dir, "bulbasaur.dec.pk3")
	dec, err := pkx.FromBytes(pkx.Gen3, readFile(t, decPath), pkx.Options{})
	require.NoError(t, err)
	require.False(t, dec.IsEncrypted())
	require.Equal(t, uint16(1), dec.Species())

	encPath := filepath.Join(dir, "again.pk3")
	_, err = runApp(t, "encrypt", "-o", encPath, decPath)
	require.NoError(t, err)
	require.Equal(t, encrypted, readFile(t, encPath))

	_, err = runApp(t, "decrypt", path)
	require.Error(t, err, "second decrypt must not overwrite without --force")
	_, err = runApp(t, "decrypt", "--force", path)
	require.NoError(t, err)
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	path, _ := writeBulbasaur(t, dir)

	out, err := runApp(t, "convert", "--to", "7", "--language", "5", path)
	require.NoError(t, err)
	require.Contains(t, out, "gen3 -> gen7")

	pk, err := pkx.FromBytes(pkx.Gen7, readFile(t, filepath.Join(dir, "bulbasaur.pk7")), pkx.Options{})
	require.NoError(t, err)
	require.Equal(t, uint16(1), pk.Species())
	require.Equal(t, uint32(0xDEADBEEF), pk.EncryptionConstant())
	require.Equal(t, pkx.LangGerman, pk.Language())

	_, err = runApp(t, "convert", "--to", "1", "-o", filepath.Join(dir, "back.pk1"), path)
	require.Error(t, err)
	_, err = runApp(t, "convert", "--to", "gen9", path)
	require.Error(t, err)
}

func TestSaveCommands(t *testing.T) {
	dir := t.TempDir()
	record, _ := writeBulbasaur(t, dir)
	blank := filepath.Join(dir, "blank.sav")
	require.NoError(t, os.WriteFile(blank, make([]byte, sav.SizeFull), 0o644))

	out, err := runApp(t, "save", "info", blank)
	require.NoError(t, err)
	require.Contains(t, out, "problems:")
	require.NotContains(t, out, "problems:    none")

	signed := filepath.Join(dir, "signed.sav")
	_, err = runApp(t, "save", "resign", "-o", signed, blank)
	require.NoError(t, err)

	out, err = runApp(t, "save", "info", "--json", signed)
	require.NoError(t, err)
	var view api.SaveView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Empty(t, view.Problems)
	require.Equal(t, uint32(1), view.Counter)

	edited := filepath.Join(dir, "edited.sav")
	_, err = runApp(t, "save", "inject", "--box", "1", "--slot", "19", "--record", record, "-o", edited, signed)
	require.NoError(t, err)

	party := filepath.Join(dir, "party.sav")
	_, err = runApp(t, "save", "inject", "--party", "0", "--record", record, "-o", party, edited)
	require.NoError(t, err)

	out, err = runApp(t, "save", "info", "--boxes", party)
	require.NoError(t, err)
	require.Contains(t, out, "problems:    none")
	require.Contains(t, out, "party:       1")
	require.Contains(t, out, "money:       0, coins 0")
	require.Contains(t, out, "pokedex:     0 seen, 0 caught")
	require.Contains(t, out, "box  1 slot 19: species 1 level 5 (split)")

	s, err := sav.Open(readFile(t, party))
	require.NoError(t, err)
	require.Equal(t, uint32(3), s.Counter())
	require.Empty(t, s.Problems())

	_, err = runApp(t, "save", "extract", "--box", "1", "--slot", "19", party)
	require.NoError(t, err)
	pk, err := pkx.FromBytes(pkx.Gen3, readFile(t, filepath.Join(dir, "party-b01s19.pk3")), pkx.Options{})
	require.NoError(t, err)
	require.False(t, pk.IsEncrypted())
	require.Equal(t, uint32(0xDEADBEEF), pk.PID())

	_, err = runApp(t, "save", "extract", "--box", "0", "--slot", "0", party)
	require.ErrorContains(t, err, "empty")
	_, err = runApp(t, "save", "extract", party)
	require.Error(t, err)
	_, err = runApp(t, "save", "extract", "--party", "0", "--box", "1", party)
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "version:"), out)
}
