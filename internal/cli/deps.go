package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/waktu-solat/internal/cache"
	"github.com/smokyabdulrahman/waktu-solat/internal/config"
	"github.com/smokyabdulrahman/waktu-solat/internal/feed"
	"github.com/smokyabdulrahman/waktu-solat/internal/geo"
	"github.com/smokyabdulrahman/waktu-solat/internal/loader"
	"github.com/smokyabdulrahman/waktu-solat/internal/logging"
	"github.com/smokyabdulrahman/waktu-solat/internal/metrics"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
	"github.com/smokyabdulrahman/waktu-solat/internal/zones"
)

// redisPasswordEnv holds the Redis password; it is never written to the
// config file.
const redisPasswordEnv = config.EnvPrefix + "REDIS_PASSWORD"

const redisPingTimeout = 2 * time.Second

// deps is what a command needs to load tables.
type deps struct {
	cfg    *config.Config
	log    zerolog.Logger
	files  *cache.FileCache // nil when caching is off or the directory is unusable
	loader *loader.Loader
}

// newDeps builds the logger, cache, fetcher and loader from the effective
// config. Logs go to logOut; json selects one JSON object per line.
func newDeps(cmd *cobra.Command, logOut io.Writer, json bool, m *metrics.Metrics) (*deps, error) {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logOut, cfg.LogLevel, json)
	if err != nil {
		return nil, err
	}

	fetcher, err := feed.Open(cfg.Source)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, log: log}
	if !FlagNoCache {
		files, err := cache.New(cfg.CacheDir, cfg.TTL(cache.DefaultTTL))
		if err != nil {
			log.Warn().Err(err).Msg("cache disabled")
		} else {
			d.files = files
		}
	}

	d.loader = loader.New(&schedule.Store{}, loader.Options{
		Fetcher: fetcher,
		Cache:   d.resourceCache(cmd.Context()),
		Layout:  schedule.Layout{TimeColumn: cfg.TimeColumnOrDefault(schedule.DefaultTimeColumn)},
		Logger:  log,
		Metrics: m,
	})
	return d, nil
}

// resourceCache picks the cache backend for fetched tables.
func (d *deps) resourceCache(ctx context.Context) cache.Cache {
	if FlagNoCache {
		return cache.Nop{}
	}

	switch d.cfg.CacheBackend {
	case config.CacheNone:
		return cache.Nop{}
	case config.CacheRedis:
		rc := cache.NewRedis(d.cfg.RedisAddr, os.Getenv(redisPasswordEnv), d.cfg.TTL(cache.DefaultTTL))
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			d.log.Warn().Err(err).Str("addr", d.cfg.RedisAddr).Msg("redis unavailable, falling back to file cache")
			break
		}
		return rc
	}

	if d.files == nil {
		return cache.Nop{}
	}
	return d.files
}

// resolveZone returns the configured zone, or suggests one from the
// detected location when none is set.
func (d *deps) resolveZone(ctx context.Context) (string, error) {
	if d.cfg.Zone != "" {
		return d.cfg.Zone, nil
	}

	var loc *geo.Location
	if d.files != nil {
		loc = d.files.LoadGeo()
	}
	if loc == nil {
		detected, err := geo.DetectLocation(ctx)
		if err != nil {
			return "", fmt.Errorf("no zone set and location detection failed: %w\nhint: use --zone or `waktu-solat config set zone SGR01`", err)
		}
		loc = detected
		if d.files != nil {
			if err := d.files.SaveGeo(loc); err != nil {
				d.log.Debug().Err(err).Msg("failed to cache location")
			}
		}
	}

	z, ok := zones.Suggest(loc)
	if !ok {
		return "", fmt.Errorf("no zone set and %s, %s is not in a known zone\nhint: run `waktu-solat zones` to list them", loc.City, loc.Country)
	}
	d.log.Info().Str("zone", z.Code).Str("city", loc.City).Msg("zone detected from location")
	return z.Code, nil
}

// loadZone resolves the zone and loads its table.
func (d *deps) loadZone(ctx context.Context) (*schedule.Schedule, error) {
	zone, err := d.resolveZone(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.loader.Load(ctx, zone); err != nil {
		return nil, err
	}
	return d.loader.Store().Schedule(), nil
}
