package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.ClockRadius != defaultClockRadius {
		t.Fatalf("ClockRadius = %d, want %d", p.ClockRadius, defaultClockRadius)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "waktu-solat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "theme = \"Siang\"\nclock_radius = 7\nslides = [\"a\", \"b\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "prefs.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Siang" || p.ClockRadius != 7 || len(p.Slides) != 2 {
		t.Fatalf("Load = %+v", p)
	}
}

func TestLoad_ClampsRadius(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("clock_radius = 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, _ := Load(path)
	if p.ClockRadius != maxClockRadius {
		t.Fatalf("ClockRadius = %d, want %d", p.ClockRadius, maxClockRadius)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want default", p.Theme)
	}
}

func TestLoad_InvalidTOMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme || p.ClockRadius != defaultClockRadius || p.Slides != nil {
		t.Fatalf("Load = %+v, want defaults", p)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{Theme: "Siang", ClockRadius: 4, Slides: []string{"x"}}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Theme != want.Theme || got.ClockRadius != want.ClockRadius || len(got.Slides) != 1 {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
