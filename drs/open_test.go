package drs

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenGameData(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "terrain.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	archivePath := filepath.Join(dir, "terrain.drs")
	archive := buildArchive(t, map[string][]testFile{"json": {{50500, "{}"}}}, "json")
	if err := os.WriteFile(archivePath, archive, 0644); err != nil {
		t.Fatal(err)
	}
	invalidPath := filepath.Join(dir, "invalid.drs")
	if err := os.WriteFile(invalidPath, []byte("not an archive"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		path, file string
	}{
		{dir, "terrain.json"},
		{archivePath, "50500.json"},
	} {
		fsys, closeGameData, err := OpenGameData(tc.path)
		if err != nil {
			t.Fatalf("Cannot open %s (%v)", tc.path, err)
		}
		data, err := fs.ReadFile(fsys, tc.file)
		if err != nil || string(data) != "{}" {
			t.Errorf("Cannot read %s from %s, got %q (%v)", tc.file, tc.path, data, err)
		}
		if err := closeGameData(); err != nil {
			t.Errorf("Error closing %s (%v)", tc.path, err)
		}
	}

	for _, path := range []string{invalidPath, filepath.Join(dir, "missing")} {
		if fsys, closeGameData, err := OpenGameData(path); err == nil || fsys != nil || closeGameData != nil {
			t.Errorf("Expected only an error opening %s", path)
		}
	}
}
