// Package pipeline provides the core nesting pipeline for skyfold.
//
// This package implements the complete load → pack → render pipeline that
// is shared by the CLI and the HTTP server. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read and validate the part manifest
//  2. Pack: Nest the parts onto the sheet
//  3. Render: Generate output in various formats (SVG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    ManifestPath: "parts.toml",
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skyfold/skyfold/pkg/cache"
	"github.com/skyfold/skyfold/pkg/manifest"
	"github.com/skyfold/skyfold/pkg/pack"
)

// DefaultScale is the default SVG scale in user units per model unit.
const DefaultScale = 4.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all configuration for the nesting pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of ManifestPath or ManifestData is required.
	ManifestPath string `json:"manifest_path,omitempty"`
	ManifestData []byte `json:"manifest_data,omitempty"`

	// Pack options. Zero values fall back to the manifest's [sheet] table.
	SheetWidth float64 `json:"sheet_width,omitempty"`
	Step       float64 `json:"step,omitempty"`
	Spacing    float64 `json:"spacing,omitempty"`
	Sort       string  `json:"sort,omitempty"`

	// Render options.
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Labels  bool     `json:"labels,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Manifest is the loaded part manifest.
	Manifest *manifest.Manifest

	// ManifestHash is the content hash of the manifest bytes.
	ManifestHash string

	// Layout is the packed layout.
	Layout *pack.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PartCount  int
	Height     float64
	LoadTime   time.Duration
	PackTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the packed layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.ManifestPath == "" && len(o.ManifestData) == 0 {
		return fmt.Errorf("manifest_path or manifest_data is required")
	}
	if o.ManifestPath != "" && len(o.ManifestData) > 0 {
		return fmt.Errorf("manifest_path and manifest_data are mutually exclusive")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// PackOptions resolves the effective packing options: explicit overrides
// win, the manifest's [sheet] table fills the rest.
func (o *Options) PackOptions(m *manifest.Manifest) pack.Options {
	p := pack.Options{
		SheetWidth: m.Sheet.Width,
		Step:       m.Sheet.Step,
		Spacing:    m.Sheet.Spacing,
		Sort:       o.Sort,
	}
	if o.SheetWidth > 0 {
		p.SheetWidth = o.SheetWidth
	}
	if o.Step > 0 {
		p.Step = o.Step
	}
	if o.Spacing > 0 {
		p.Spacing = o.Spacing
	}
	return p
}

// LayoutKeyOpts returns cache key options for the packing stage.
func LayoutKeyOpts(p pack.Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		SheetWidth: p.SheetWidth,
		Step:       p.Step,
		Spacing:    p.Spacing,
		Sort:       p.Sort,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Scale,
		Labels: o.Labels,
	}
}
