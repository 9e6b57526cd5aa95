package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/rclayout/pkg/cache"
	"github.com/matzehuels/rclayout/pkg/form"
	"github.com/matzehuels/rclayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
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
	start := time.Now()

	doc, err := Load(ctx, opts.Input)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{Document: doc}
	result.Stats.LoadTime = time.Since(start)

	forms, err := selectForms(doc, opts)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded forms",
		"file", opts.Input,
		"forms", len(forms),
		"duration", result.Stats.LoadTime)

	result.Forms, err = r.ProcessAll(ctx, forms, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.FormCount = len(result.Forms)
	result.Stats.TotalTime = time.Since(start)
	return result, nil
}

// ProcessAll lays out and renders forms concurrently, at most
// opts.Concurrency at a time. Results keep the order of forms. The first
// failure cancels the remaining work.
func (r *Runner) ProcessAll(ctx context.Context, forms []form.Form, opts Options) ([]FormResult, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	results := make([]FormResult, len(forms))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := range forms {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := r.Process(gctx, forms[i], opts)
			if err != nil {
				return fmt.Errorf("form %s: %w", forms[i].ID, err)
			}
			results[i] = *fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Process lays out and renders a single form.
func (r *Runner) Process(ctx context.Context, f form.Form, opts Options) (*FormResult, error) {
	fr := &FormResult{Form: f.ID}

	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	fr.Layout = l
	fr.Stats.LayoutTime = time.Since(layoutStart)
	fr.Stats.ControlCount = len(l.Controls)
	fr.Stats.ContainerCount = l.Root.Containers()
	fr.CacheInfo.LayoutHit = layoutHit

	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.render(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	fr.Artifacts = artifacts
	fr.LayoutHash = hash
	fr.Stats.RenderTime = time.Since(renderStart)
	fr.CacheInfo.RenderHit = renderHit

	r.Logger.Debug("processed form",
		"form", f.ID,
		"controls", fr.Stats.ControlCount,
		"containers", fr.Stats.ContainerCount,
		"cached", layoutHit,
		"duration", fr.Stats.LayoutTime+fr.Stats.RenderTime)
	return fr, nil
}

// LayoutWithCacheInfo builds a form's layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, f form.Form, opts Options) (form.Layout, bool, error) {
	r.applyLogger(&opts)
	opts.SetLayoutDefaults()

	formData, err := f.Marshal()
	if err != nil {
		return form.Layout{}, false, fmt.Errorf("serialize form for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(formData), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := form.UnmarshalLayout(data)
			if err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	pipeHooks := observability.Pipeline()
	pipeHooks.OnLayoutStart(ctx, f.ID, len(f.Controls))
	start := time.Now()
	l, err := GenerateLayout(f, opts)
	pipeHooks.OnLayoutComplete(ctx, f.ID, time.Since(start), err)
	if err != nil {
		return form.Layout{}, false, err
	}

	if data, err := form.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			hooks.OnCacheSet(ctx, "layout", len(data))
		} else {
			r.Logger.Warn("cache write failed", "form", f.ID, "err", err)
		}
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, f form.Form, opts Options) (form.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, f, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l form.Layout, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, l, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l form.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, l form.Layout, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	layoutData, err := form.MarshalLayout(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, layoutHash, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, layoutHash, false, nil
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
