package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/simplecharts/simplecharts/pkg/cache"
	"github.com/simplecharts/simplecharts/pkg/chart"
	"github.com/simplecharts/simplecharts/pkg/data"
	"github.com/simplecharts/simplecharts/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
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

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	c, dataHash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Data = c
	result.DataHash = dataHash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.SeriesCount = len(c.Series)
	result.Stats.PointCount = CountPoints(c)

	r.Logger.Info("loaded series",
		"series", result.Stats.SeriesCount,
		"points", result.Stats.PointCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	g, layoutHit, err := r.LayoutWithCacheInfo(ctx, c, dataHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Geometry = g
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Iterations = g.Iterations
	result.Stats.Converged = g.Converged
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"axes", len(g.Axes),
		"iterations", g.Iterations,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, c, dataHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the input series and reports them to the pipeline hooks.
// Loading is never cached: the content hash must be computed anyway.
func (r *Runner) Load(ctx context.Context, opts Options) (*data.Collection, string, error) {
	r.applyLogger(&opts)
	source := opts.Input
	if source == "" {
		source = "demo"
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	c, hash, err := Load(opts)
	points := 0
	if c != nil {
		points = CountPoints(c)
	}
	hooks.OnLoadComplete(ctx, source, points, time.Since(start), err)
	return c, hash, err
}

// LayoutWithCacheInfo resolves chart geometry with caching and returns
// cache hit info. dataHash identifies the series in c.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, c *data.Collection, dataHash string, opts Options) (chart.Geometry, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return chart.Geometry{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(dataHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if raw, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var g chart.Geometry
			if err := json.Unmarshal(raw, &g); err == nil {
				r.Logger.Debug("layout cache hit", "key", cacheKey)
				return g, true, nil
			}
			// Undecodable entries fall through to recompute.
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Width, opts.Height)
	start := time.Now()
	g, err := ComputeLayout(c, opts)
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return chart.Geometry{}, false, err
	}

	if raw, err := json.Marshal(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, raw, cache.TTLLayout)
	}
	return g, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, c *data.Collection, dataHash string, opts Options) (chart.Geometry, error) {
	g, _, err := r.LayoutWithCacheInfo(ctx, c, dataHash, opts)
	return g, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Artifacts are keyed by both the geometry and the data, since the same
// geometry can frame different series.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g chart.Geometry, c *data.Collection, dataHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	geometry, err := json.Marshal(g)
	if err != nil {
		return nil, false, fmt.Errorf("serialize geometry for cache key: %w", err)
	}
	baseHash := cache.Hash(append(geometry, dataHash...))

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
			raw, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = raw
		}
		if len(artifacts) == len(uniqueFormats(opts.Formats)) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, g, c, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, raw := range rendered {
		key := r.Keyer.ArtifactKey(baseHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, raw, cache.TTLArtifact)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g chart.Geometry, c *data.Collection, dataHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, c, dataHash, opts)
	return artifacts, err
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

func uniqueFormats(formats []string) map[string]bool {
	set := make(map[string]bool, len(formats))
	for _, f := range formats {
		set[f] = true
	}
	return set
}
