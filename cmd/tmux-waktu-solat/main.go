package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/smokyabdulrahman/waktu-solat/internal/cache"
	"github.com/smokyabdulrahman/waktu-solat/internal/config"
	"github.com/smokyabdulrahman/waktu-solat/internal/feed"
	"github.com/smokyabdulrahman/waktu-solat/internal/geo"
	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/prayer"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/zones"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// options are the resolved settings for one status-line render.
type options struct {
	zone         string
	source       string
	format       string
	timeFormat   string
	cacheDir     string
	cacheBackend string
	cacheTTL     time.Duration
	redisAddr    string
	timeColumn   int
}

// redisPasswordEnv holds the Redis password; it is never written to the config file.
const redisPasswordEnv = "WAKTU_SOLAT_REDIS_PASSWORD"

func main() {
	// Location flags
	zone := flag.String("zone", "", "JAKIM zone code, e.g. SGR01 (default: config, then auto-detect)")
	source := flag.String("source", "", "Directory or URL the yearly tables are read from")

	// Display flags
	format := flag.String("format", "", "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template (e.g. '{{.Name}} dalam {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Active, .Hours, .Minutes, .Seconds")
	timeFormat := flag.String("time-format", "", "Time format: 12h or 24h")

	// Cache flags
	cacheDir := flag.String("cache-dir", "", "Cache directory (default: ~/.cache/waktu-solat/)")

	// Info flags
	showVersion := flag.Bool("version", false, "Print version and exit")
	listZones := flag.Bool("list-zones", false, "Print JAKIM zone codes and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("tmux-waktu-solat %s\n", version)
		return
	}

	if *listZones {
		printZones(os.Stdout)
		return
	}

	opts, err := resolveOptions(*zone, *source, *format, *timeFormat, *cacheDir)
	if err == nil {
		err = run(context.Background(), os.Stdout, opts, time.Now().In(schedule.Malaysia))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printZones prints the zone catalogue.
func printZones(w io.Writer) {
	fmt.Fprintln(w, "JAKIM zones:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-6s %-20s %s\n", "Zone", "State", "Areas")
	fmt.Fprintf(w, "  %-6s %-20s %s\n", "────", "─────", "─────")
	for _, z := range zones.All() {
		fmt.Fprintf(w, "  %-6s %-20s %s\n", z.Code, z.State, z.Areas)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --zone <CODE> to select a zone.")
}

// resolveOptions layers flags over WAKTU_SOLAT_* variables, the shared
// config file and defaults.
func resolveOptions(zone, source, format, timeFormat, cacheDir string) (options, error) {
	cfg := config.Defaults()
	file, err := config.Load()
	if err != nil {
		return options{}, err
	}
	cfg = cfg.Merge(*file)
	env, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		return options{}, err
	}
	cfg = cfg.Merge(env)

	var over config.Config
	for key, val := range map[string]string{
		"zone":        zone,
		"source":      source,
		"format":      format,
		"time_format": timeFormat,
		"cache_dir":   cacheDir,
	} {
		if val == "" {
			continue
		}
		if err := over.Set(key, val); err != nil {
			return options{}, err
		}
	}
	cfg = cfg.Merge(over)

	return options{
		zone:         cfg.Zone,
		source:       cfg.Source,
		format:       cfg.Format,
		timeFormat:   cfg.TimeFormat,
		cacheDir:     cfg.CacheDir,
		cacheBackend: cfg.CacheBackend,
		cacheTTL:     cfg.TTL(cache.DefaultTTL),
		redisAddr:    cfg.RedisAddr,
		timeColumn:   cfg.TimeColumnOrDefault(schedule.DefaultTimeColumn),
	}, nil
}

func run(ctx context.Context, w io.Writer, opts options, now time.Time) error {
	// The file cache also holds the detected location, whatever the backend.
	fc, err := cache.New(opts.cacheDir, opts.cacheTTL)
	if err != nil {
		// Cache init failure is non-fatal; we just skip caching.
		fc = nil
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
	}
	c := resourceCache(ctx, opts, fc)

	zone, err := resolveZone(ctx, opts.zone, fc)
	if err != nil {
		return err
	}

	fetcher, err := feed.Open(opts.source)
	if err != nil {
		return err
	}
	ld := loader.New(&schedule.Store{}, loader.Options{
		Fetcher: fetcher,
		Cache:   c,
		Layout:  schedule.Layout{TimeColumn: opts.timeColumn},
	})
	if err := ld.Load(ctx, zone); err != nil {
		return err
	}
	sched := ld.Store().Schedule()

	st, ok := prayer.Resolve(sched, now)
	if !ok {
		// Tomorrow is past the end of the table: show the last prayer with a
		// "done" indicator rather than failing the status bar.
		if row, found := sched.Day(schedule.DateOf(now)); found {
			if prayers := prayer.ParseRow(row, now.Location()); len(prayers) > 0 {
				fmt.Fprintf(w, "%s --:--", prayers[len(prayers)-1].Name)
			}
		}
		return nil
	}

	fmt.Fprint(w, prayer.FormatOutput(st, opts.format, prayer.TimeLayout(opts.timeFormat)))
	return nil
}

// resourceCache picks the cache for downloaded tables from the configured backend.
func resourceCache(ctx context.Context, opts options, fc *cache.FileCache) cache.Cache {
	switch opts.cacheBackend {
	case config.CacheNone:
		return cache.Nop{}
	case config.CacheRedis:
		rc := cache.NewRedis(opts.redisAddr, os.Getenv(redisPasswordEnv), opts.cacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err == nil {
			return rc
		}
		fmt.Fprintf(os.Stderr, "warning: redis at %s unavailable, using file cache\n", opts.redisAddr)
	}
	if fc == nil {
		return cache.Nop{}
	}
	return fc
}

// resolveZone returns zone, or suggests one from the detected location.
func resolveZone(ctx context.Context, zone string, c *cache.FileCache) (string, error) {
	if zone != "" {
		return zone, nil
	}

	// Try cached geolocation first.
	var loc *geo.Location
	if c != nil {
		loc = c.LoadGeo()
	}
	if loc == nil {
		detected, err := geo.DetectLocation(ctx)
		if err != nil {
			return "", fmt.Errorf("no zone specified and auto-detection failed: %w", err)
		}
		loc = detected
		if c != nil {
			_ = c.SaveGeo(loc) // best-effort
		}
	}

	z, ok := zones.Suggest(loc)
	if !ok {
		return "", fmt.Errorf("no zone specified and %s, %s is not in a known zone; use --zone", loc.City, loc.Country)
	}
	return z.Code, nil
}
