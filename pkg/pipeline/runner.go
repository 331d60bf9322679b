package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/radar/pkg/cache"
	"github.com/matzehuels/radar/pkg/observability"
	"github.com/matzehuels/radar/pkg/radar"
)

const artifactKeyType = "artifact"

// Runner encapsulates rendering with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces every requested format. Artifacts found in the cache are
// reused; the rest are rendered concurrently and stored.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hash, err := opts.ChartHash()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	cfg := opts.config()
	result := &Result{
		ChartHash: hash,
		Points:    radar.Vertices(cfg.Center, cfg.Radius, opts.Data),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.Points = len(result.Points)

	var missing []string
	for _, format := range dedupe(opts.Formats) {
		if data, ok := r.lookup(ctx, result.ChartHash, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheInfo.Hits = append(result.CacheInfo.Hits, format)
			continue
		}
		missing = append(missing, format)
	}
	result.CacheInfo.Misses = missing
	result.CacheInfo.RenderHit = len(missing) == 0

	rendered := make([][]byte, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range missing {
		g.Go(func() error {
			data, err := r.renderOne(gctx, format, opts)
			rendered[i] = data
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, format := range missing {
		result.Artifacts[format] = rendered[i]
		r.store(ctx, result.ChartHash, format, opts, rendered[i])
	}
	for _, data := range result.Artifacts {
		result.Stats.Bytes += len(data)
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered chart",
		"points", result.Stats.Points,
		"formats", opts.Formats,
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) renderOne(ctx context.Context, format string, opts Options) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	start := time.Now()
	data, err := RenderFormat(ctx, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	return data, err
}

func (r *Runner) lookup(ctx context.Context, chartHash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
	var (
		data []byte
		hit  bool
	)
	err := cache.RetryWithBackoff(ctx, 50*time.Millisecond, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache lookup failed", "format", format, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, artifactKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, artifactKeyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, chartHash, format string, opts Options, data []byte) {
	key := r.Keyer.ArtifactKey(chartHash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache store failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, artifactKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
