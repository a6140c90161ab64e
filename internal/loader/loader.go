// Package loader fetches a zone's yearly table, decodes it and publishes it
// to the schedule store.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/waktu-solat/internal/cache"
	"github.com/smokyabdulrahman/waktu-solat/internal/feed"
	"github.com/smokyabdulrahman/waktu-solat/internal/metrics"
	"github.com/smokyabdulrahman/waktu-solat/internal/schedule"
)

// PlaceholderText is shown in place of the table when a load fails.
const PlaceholderText = "Failed to load data. Please select a valid timezone or check the file path."

var (
	// ErrNoZone is returned when Load is called without a zone.
	ErrNoZone = errors.New("no zone selected")
	// ErrSuperseded is returned by a Load whose result was discarded because
	// a newer Load started while it was in flight.
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// Options configures a Loader. Only Fetcher is required.
type Options struct {
	Fetcher feed.Fetcher
	Cache   cache.Cache
	Layout  schedule.Layout
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

// Loader owns the path from a zone code to a published Schedule.
type Loader struct {
	store   *schedule.Store
	fetcher feed.Fetcher
	cache   cache.Cache
	layout  schedule.Layout
	log     zerolog.Logger
	metrics *metrics.Metrics

	gen       atomic.Uint64
	publishMu sync.Mutex
}

// New creates a Loader publishing into store.
func New(store *schedule.Store, opts Options) *Loader {
	c := opts.Cache
	if c == nil {
		c = cache.Nop{}
	}
	layout := opts.Layout
	if layout.TimeColumn <= 0 {
		layout = schedule.DefaultLayout()
	}
	return &Loader{
		store:   store,
		fetcher: opts.Fetcher,
		cache:   c,
		layout:  layout,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}
}

// Store returns the store Load publishes into.
func (l *Loader) Store() *schedule.Store {
	return l.store
}

// Layout returns the column layout tables are decoded with.
func (l *Loader) Layout() schedule.Layout {
	return l.layout
}

// Source describes where tables are fetched from.
func (l *Loader) Source() string {
	return l.fetcher.Source()
}

// NormalizeZone trims and upper-cases a zone code.
func NormalizeZone(zone string) string {
	return strings.ToUpper(strings.TrimSpace(zone))
}

// Load fetches and publishes the table for zone, replacing whatever the store
// held. On failure the store is emptied and the error returned. Loads are not
// retried. When a newer Load starts before this one finishes, this result is
// dropped and ErrSuperseded returned.
func (l *Loader) Load(ctx context.Context, zone string) error {
	zone = NormalizeZone(zone)
	gen := l.gen.Add(1)
	start := time.Now()

	sched, err := l.Fetch(ctx, zone)
	l.metrics.LoadFinished(zone, err, time.Since(start))

	l.publishMu.Lock()
	defer l.publishMu.Unlock()

	if l.gen.Load() != gen {
		l.log.Debug().Str("zone", zone).Msg("discarding superseded load")
		return ErrSuperseded
	}

	if err != nil {
		l.store.Fail(zone, err)
		l.log.Warn().Err(err).Str("zone", zone).Str("source", l.fetcher.Source()).Msg("schedule load failed")
		return err
	}

	l.store.Replace(zone, sched)
	l.log.Info().Str("zone", zone).Int("rows", sched.Len()).Dur("took", time.Since(start)).Msg("schedule loaded")
	return nil
}

// Fetch returns the decoded table for zone without touching the store.
// The resource cache is consulted first.
func (l *Loader) Fetch(ctx context.Context, zone string) (*schedule.Schedule, error) {
	zone = NormalizeZone(zone)
	if zone == "" {
		return nil, ErrNoZone
	}

	body, err := l.cachedFetch(ctx, feed.FileName(zone, feed.KindCSV))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %s: %w", zone, err)
	}

	sched, err := schedule.DecodeBytes(zone, body, l.layout)
	if err != nil {
		return nil, err
	}
	return sched, nil
}

func (l *Loader) cachedFetch(ctx context.Context, name string) ([]byte, error) {
	key := cache.Key(l.fetcher.Source(), name)

	if data, ok := l.cache.Get(ctx, key); ok {
		l.metrics.CacheLookup(true)
		l.log.Debug().Str("resource", name).Msg("cache hit")
		return data, nil
	}
	l.metrics.CacheLookup(false)

	data, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	// Cache write failures are non-fatal.
	if err := l.cache.Put(ctx, key, data); err != nil {
		l.log.Warn().Err(err).Str("resource", name).Msg("failed to cache resource")
	}
	return data, nil
}

// Download returns the raw resource of the given kind for zone, always
// fetched fresh, along with its file name.
func (l *Loader) Download(ctx context.Context, zone string, kind feed.Kind) ([]byte, string, error) {
	zone = NormalizeZone(zone)
	if zone == "" {
		return nil, "", ErrNoZone
	}

	name := feed.FileName(zone, kind)
	data, err := l.fetcher.Fetch(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download %s: %w", name, err)
	}

	l.metrics.Download(string(kind))
	return data, name, nil
}
