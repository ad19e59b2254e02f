package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kinview/kinview/pkg/cache"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/observability"
)

// Runner executes pipeline stages against a cache. It holds no per-run
// state, so one Runner serves concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. A nil cache disables caching, a nil keyer
// selects cache.DefaultKeyer and a nil logger selects log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute lays out g around opts.Focus and renders every requested format.
func (r *Runner) Execute(ctx context.Context, g *kinship.Graph, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if err := r.hashDataset(g, &opts); err != nil {
		return nil, err
	}
	res := &Result{DatasetHash: opts.DatasetHash}
	res.Stats.People = g.Len()

	t := time.Now()
	doc, hit, err := r.LayoutWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Layout = doc
	res.CacheInfo.LayoutHit = hit
	res.Stats.LayoutTime = time.Since(t)
	res.Stats.Boxes, res.Stats.Edges = len(doc.Boxes), len(doc.Edges)
	r.Logger.Info("computed layout", "layout", opts.String(), "boxes", len(doc.Boxes),
		"cached", hit, "duration", res.Stats.LayoutTime)

	t = time.Now()
	res.Artifacts, hit, err = r.RenderWithCacheInfo(ctx, doc, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.CacheInfo.RenderHit = hit
	res.Stats.RenderTime = time.Since(t)
	r.Logger.Info("rendered outputs", "formats", opts.Formats,
		"cached", hit, "duration", res.Stats.RenderTime)
	return res, nil
}

// LayoutWithCacheInfo returns the positioned document for opts and whether
// it came from the cache. An unreadable cache entry is recomputed.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *kinship.Graph, opts Options) (graph.Layout, bool, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	if err := r.hashDataset(g, &opts); err != nil {
		return graph.Layout{}, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Style, opts.Focus)
	start := time.Now()
	key := r.Keyer.LayoutKey(opts.DatasetHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if doc, ok := r.cachedLayout(ctx, key); ok {
			hooks.OnLayoutComplete(ctx, opts.Style, len(doc.Boxes), time.Since(start), nil)
			return doc, true, nil
		}
	}

	doc, err := GenerateLayout(g, opts)
	hooks.OnLayoutComplete(ctx, opts.Style, len(doc.Boxes), time.Since(start), err)
	if err != nil {
		return graph.Layout{}, false, err
	}
	if data, err := graph.MarshalLayout(doc); err == nil {
		r.store(ctx, "layout", key, data, cache.TTLLayout)
	}
	return doc, false, nil
}

// Layout is LayoutWithCacheInfo without the hit flag.
func (r *Runner) Layout(ctx context.Context, g *kinship.Graph, opts Options) (graph.Layout, error) {
	doc, _, err := r.LayoutWithCacheInfo(ctx, g, opts)
	return doc, err
}

// RenderWithCacheInfo renders doc in every requested format. The result
// counts as a hit only when all formats were cached. g may be nil, in which
// case the JSON artifact carries no person details.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc graph.Layout, g *kinship.Graph, opts Options) (map[string][]byte, bool, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	data, err := graph.MarshalLayout(doc)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	docHash := cache.Hash(data)
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
	}

	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, opts.Formats, keyFor); ok {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := RenderFromLayout(doc, g, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	for format, out := range artifacts {
		r.store(ctx, "artifact", keyFor(format), out, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// Render is RenderWithCacheInfo without the hit flag.
func (r *Runner) Render(ctx context.Context, doc graph.Layout, g *kinship.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, g, opts)
	return artifacts, err
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Close()
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (graph.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err == nil && hit {
		doc, err := graph.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return doc, true
		}
		r.Logger.Debug("discarding unreadable cached layout", "key", key, "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "layout")
	return graph.Layout{}, false
}

// cachedArtifacts stops at the first missing format.
func (r *Runner) cachedArtifacts(ctx context.Context, formats []string, keyFor func(string) string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, hit, err := r.Cache.Get(ctx, keyFor(format))
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn(kind+" cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

func (r *Runner) hashDataset(g *kinship.Graph, opts *Options) error {
	if opts.DatasetHash != "" {
		return nil
	}
	h, err := DatasetHash(g)
	if err != nil {
		return err
	}
	opts.DatasetHash = h
	return nil
}
