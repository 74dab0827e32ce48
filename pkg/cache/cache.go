// Package cache provides result caching for the skyfold pipeline.
//
// Packing a large manifest is the expensive step, so layouts and rendered
// artifacts are cached keyed by the manifest hash and the options that
// shaped them. Three backends are provided:
//   - FileCache: directory-based, for CLI usage
//   - RedisCache: shared cache for the HTTP server
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Layouts are pure functions of the manifest
// and options, so they could live forever; the TTLs bound disk usage.
const (
	TTLLayout   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// LayoutKeyOpts are the packing options that shape a layout cache key.
// Two runs with the same manifest but different options must not share
// cache entries.
type LayoutKeyOpts struct {
	SheetWidth float64
	Step       float64
	Spacing    float64
	Sort       string
}

// ArtifactKeyOpts are the render options that shape an artifact cache key.
type ArtifactKeyOpts struct {
	Format string
	Scale  float64
	Labels bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a packed layout.
	LayoutKey(manifestHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates globally-scoped cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a packed layout.
func (k *DefaultKeyer) LayoutKey(manifestHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", manifestHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
