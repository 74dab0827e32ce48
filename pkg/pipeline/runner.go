package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skyfold/skyfold/pkg/cache"
	"github.com/skyfold/skyfold/pkg/errors"
	skio "github.com/skyfold/skyfold/pkg/io"
	"github.com/skyfold/skyfold/pkg/manifest"
	"github.com/skyfold/skyfold/pkg/observability"
	"github.com/skyfold/skyfold/pkg/pack"
	"github.com/skyfold/skyfold/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
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

// Execute runs the complete load → pack → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	source := opts.ManifestPath
	if source == "" {
		source = "inline"
	}
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	m, raw, err := r.Load(opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, time.Since(loadStart), err)
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Manifest = m
	result.ManifestHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)

	parts := ExpandParts(m)
	result.Stats.PartCount = len(parts)
	observability.Pipeline().OnLoadComplete(ctx, source, len(parts), result.Stats.LoadTime, nil)

	r.Logger.Info("loaded manifest",
		"parts", len(parts),
		"sheet_width", m.Sheet.Width,
		"duration", result.Stats.LoadTime)

	// Stage 2: Pack
	packStart := time.Now()
	observability.Pipeline().OnPackStart(ctx, len(parts))
	pOpts := opts.PackOptions(m)
	if err := pOpts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("pack options: %w", err)
	}
	layout, layoutHit, err := r.PackWithCacheInfo(ctx, parts, pOpts, result.ManifestHash, opts.Refresh)
	if err != nil {
		observability.Pipeline().OnPackComplete(ctx, len(parts), 0, time.Since(packStart), err)
		return nil, fmt.Errorf("pack: %w", err)
	}
	observability.Pipeline().OnPackComplete(ctx, len(parts), layout.Height, time.Since(packStart), nil)
	result.Layout = layout
	result.Stats.PackTime = time.Since(packStart)
	result.Stats.Height = layout.Height
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("packed parts",
		"placed", len(layout.Placements),
		"height", layout.Height,
		"cached", layoutHit,
		"duration", result.Stats.PackTime)

	// Stage 3: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
		return nil, fmt.Errorf("render: %w", err)
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), nil)
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads the manifest from the configured source and returns it along
// with the raw bytes used for cache keying.
func (r *Runner) Load(opts Options) (*manifest.Manifest, []byte, error) {
	data := opts.ManifestData
	if opts.ManifestPath != "" {
		var err error
		data, err = os.ReadFile(opts.ManifestPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", opts.ManifestPath)
			}
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read manifest %s", opts.ManifestPath)
		}
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	return m, data, nil
}

// ExpandParts flattens a manifest into one pack.Part per copy. Copies of a
// repeated part get a numeric suffix so placements can be told apart.
func ExpandParts(m *manifest.Manifest) []pack.Part {
	var parts []pack.Part
	for _, p := range m.Parts {
		poly, err := p.Polygon()
		if err != nil {
			// Validate has already rejected malformed point lists.
			continue
		}
		n := p.Quantity()
		for i := 0; i < n; i++ {
			name := p.Name
			if n > 1 {
				name = fmt.Sprintf("%s-%d", p.Name, i+1)
			}
			parts = append(parts, pack.Part{Name: name, Poly: poly})
		}
	}
	return parts
}

// PackWithCacheInfo packs parts with caching and returns cache hit info.
// The manifest hash and the resolved pack options form the cache key, so
// the same manifest packed with different options caches separately.
func (r *Runner) PackWithCacheInfo(ctx context.Context, parts []pack.Part, pOpts pack.Options, manifestHash string, refresh bool) (*pack.Layout, bool, error) {
	cacheKey := r.Keyer.LayoutKey(manifestHash, LayoutKeyOpts(pOpts))

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached pack.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return &cached, true, nil
			}
			// Corrupt entry, fall through to repack.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	packer, err := pack.New(pOpts, r.Logger)
	if err != nil {
		return nil, false, err
	}
	layout, err := packer.Pack(ctx, parts)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return layout, false, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info. The hit flag is true only when every requested format came from
// the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, layout *pack.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}

	layoutData, err := json.Marshal(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh
	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[format] = data
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(layout, format, opts)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

func renderFormat(layout *pack.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []render.SVGOption{render.WithScale(opts.Scale)}
		if opts.Labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		return render.RenderSVG(layout, svgOpts...), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := skio.WriteJSON(layout, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
