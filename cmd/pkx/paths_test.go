package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDerivedPath(t *testing.T) {
	cases := []struct {
		in, tag, ext, want string
	}{
		{"box/bulbasaur.pk3", ".dec", "", "box/bulbasaur.dec.pk3"},
		{"box/bulbasaur.pk3", "", ".pk7", "box/bulbasaur.pk7"},
		{"emerald.sav", "-b01s19", ".pk3", "emerald-b01s19.pk3"},
		{"noext", ".enc", "", "noext.enc"},
	}
	for _, tc := range cases {
		if got := derivedPath(tc.in, tc.tag, tc.ext); got != tc.want {
			t.Fatalf("derivedPath(%q, %q, %q): got %q want %q", tc.in, tc.tag, tc.ext, got, tc.want)
		}
	}
}

func TestResolveOut(t *testing.T) {
	t.Run("default is used when no flag", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "a.pk3")
		def := filepath.Join(dir, "nested", "a.pk7")
		got, err := resolveOut(in, "", def, false)
		if err != nil {
			t.Fatalf("resolveOut returned error: %v", err)
		}
		if got != def {
			t.Fatalf("unexpected output path: got %q want %q", got, def)
		}
		if _, err := os.Stat(filepath.Dir(got)); err != nil {
			t.Fatalf("expected output directory to exist: %v", err)
		}
	})

	t.Run("existing output needs force", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "b.pk7")
		if err := os.WriteFile(out, []byte{1}, 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := resolveOut(filepath.Join(dir, "a.pk3"), out, "", false); err == nil || !strings.Contains(err.Error(), "--force") {
			t.Fatalf("expected --force hint, got %v", err)
		}
		got, err := resolveOut(filepath.Join(dir, "a.pk3"), out, "", true)
		if err != nil {
			t.Fatalf("resolveOut with force: %v", err)
		}
		if got != out {
			t.Fatalf("unexpected output path: got %q want %q", got, out)
		}
	})

	t.Run("input is never overwritten", func(t *testing.T) {
		in := filepath.Join(t.TempDir(), "game.sav")
		if _, err := resolveOut(in, in, "", true); err == nil {
			t.Fatalf("expected refusal to overwrite the input")
		}
	})
}
