package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/cache"
	"github.com/smokyabdulrahman/waktu-solat/internal/config"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

const sgr01 = "Tarikh Miladi,Tarikh Hijri,Hari,Imsak,Subuh,Syuruk,Zohor,Asar,Maghrib,Isyak\n" +
	"15/10/2025,23/04/1447,Rabu,5:46 AM,5:56 AM,7:03 AM,1:07 PM,4:13 PM,7:05 PM,8:15 PM\n" +
	"16/10/2025,24/04/1447,Khamis,5:45 AM,5:55 AM,7:03 AM,1:06 PM,4:13 PM,7:05 PM,8:14 PM\n"

// TestVersionFlag verifies that --version prints the version string.
func TestVersionFlag(t *testing.T) {
	// Build the binary with a known version.
	binPath := t.TempDir() + "/tmux-waktu-solat"
	cmd := exec.Command("go", "build", "-ldflags", "-X main.version=v1.2.3-test", "-o", binPath, ".")
	cmd.Dir = "."
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build failed: %v\n%s", err, out)
	}

	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}

	got := strings.TrimSpace(string(out))
	want := "tmux-waktu-solat v1.2.3-test"
	if got != want {
		t.Errorf("--version = %q, want %q", got, want)
	}
}

// TestListZones verifies that the zone catalogue is printed.
func TestListZones(t *testing.T) {
	var buf bytes.Buffer
	printZones(&buf)

	for _, want := range []string{"SGR01", "WLY01", "Selangor"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("--list-zones output missing %q", want)
		}
	}
}

func fixture(t *testing.T) options {
	t.Helper()
	src := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "SGR01.csv"), []byte(sgr01), 0o644); err != nil {
		t.Fatal(err)
	}
	return options{
		zone:         "SGR01",
		source:       src,
		format:       "name-and-time",
		timeFormat:   "24h",
		cacheDir:     t.TempDir(),
		cacheBackend: config.CacheFile,
		cacheTTL:     cache.DefaultTTL,
		timeColumn:   schedule.DefaultTimeColumn,
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		at     time.Time
		format string
		want   string
	}{
		{"before zohor", time.Date(2025, 10, 15, 12, 0, 0, 0, schedule.Malaysia), "name-and-time", "Zohor 13:07"},
		{"remaining", time.Date(2025, 10, 15, 12, 0, 0, 0, schedule.Malaysia), "time-remaining", "1h 7m"},
		{"after isyak", time.Date(2025, 10, 15, 21, 0, 0, 0, schedule.Malaysia), "name-and-time", "Imsak 05:45"},
		{"end of table", time.Date(2025, 10, 16, 21, 0, 0, 0, schedule.Malaysia), "name-and-time", "Isyak --:--"},
		{"no row for today", time.Date(2025, 12, 1, 12, 0, 0, 0, schedule.Malaysia), "name-and-time", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := fixture(t)
			opts.format = tt.format

			var buf bytes.Buffer
			if err := run(context.Background(), &buf, opts, tt.at); err != nil {
				t.Fatalf("run: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRun_MissingTable(t *testing.T) {
	opts := fixture(t)
	opts.zone = "JHR01"

	var buf bytes.Buffer
	if err := run(context.Background(), &buf, opts, time.Date(2025, 10, 15, 12, 0, 0, 0, schedule.Malaysia)); err == nil {
		t.Error("expected an error for a zone with no table")
	}
}

func TestRun_CacheBackend(t *testing.T) {
	at := time.Date(2025, 10, 15, 12, 0, 0, 0, schedule.Malaysia)
	tests := []struct {
		backend    string
		wantCached bool
	}{
		{config.CacheFile, true},
		{config.CacheNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			opts := fixture(t)
			opts.cacheBackend = tt.backend

			var buf bytes.Buffer
			if err := run(context.Background(), &buf, opts, at); err != nil {
				t.Fatalf("first run: %v", err)
			}

			// With the source gone only a cached table can answer.
			if err := os.Remove(filepath.Join(opts.source, "SGR01.csv")); err != nil {
				t.Fatal(err)
			}
			buf.Reset()
			err := run(context.Background(), &buf, opts, at)
			if tt.wantCached {
				if err != nil || buf.String() != "Zohor 13:07" {
					t.Errorf("second run = %q, %v; want the cached table", buf.String(), err)
				}
			} else if err == nil {
				t.Errorf("second run = %q, want an error with caching off", buf.String())
			}
		})
	}
}

func TestRun_ExpiredCache(t *testing.T) {
	opts := fixture(t)
	opts.cacheTTL = time.Nanosecond
	at := time.Date(2025, 10, 15, 12, 0, 0, 0, schedule.Malaysia)

	var buf bytes.Buffer
	if err := run(context.Background(), &buf, opts, at); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := os.Remove(filepath.Join(opts.source, "SGR01.csv")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if err := run(context.Background(), &buf, opts, at); err == nil {
		t.Error("expected an error once the cached table has expired")
	}
}

func TestResolveOptions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WAKTU_SOLAT_ZONE", "sgr02")
	t.Setenv("WAKTU_SOLAT_TIME_FORMAT", "")
	t.Setenv("WAKTU_SOLAT_FORMAT", "")

	opts, err := resolveOptions("", "", "", "24h", "")
	if err != nil {
		t.Fatal(err)
	}
	if opts.zone != "SGR02" {
		t.Errorf("zone = %q, want SGR02 from the environment", opts.zone)
	}
	if opts.timeFormat != "24h" {
		t.Errorf("timeFormat = %q, want 24h", opts.timeFormat)
	}
	if opts.format != "name-and-remaining" {
		t.Errorf("format = %q, want the default", opts.format)
	}

	opts, err = resolveOptions("jhr01", "", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if opts.zone != "JHR01" {
		t.Errorf("zone = %q, want JHR01 from the flag", opts.zone)
	}

	if _, err := resolveOptions("", "", "bogus", "", ""); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestResolveOptions_Cache(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("WAKTU_SOLAT_CACHE_BACKEND", "none")
	t.Setenv("WAKTU_SOLAT_CACHE_TTL", "90m")

	opts, err := resolveOptions("", "", "", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if opts.cacheBackend != config.CacheNone {
		t.Errorf("cacheBackend = %q, want none", opts.cacheBackend)
	}
	if opts.cacheTTL != 90*time.Minute {
		t.Errorf("cacheTTL = %v, want 90m", opts.cacheTTL)
	}
}

func TestResolveOptions_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "waktu-solat", "config.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"cache_ttl":"-1h"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := resolveOptions("", "", "", "", ""); err == nil {
		t.Error("expected an error for an invalid config file")
	}
}
