package pipeline

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/skyfold/skyfold/pkg/cache"
	"github.com/skyfold/skyfold/pkg/errors"
	skio "github.com/skyfold/skyfold/pkg/io"
	"github.com/skyfold/skyfold/pkg/manifest"
)

const testManifest = `
[sheet]
width = 100.0
step = 1.0
spacing = 0.0

[[part]]
name = "square"
count = 2
points = [[0, 0], [10, 0], [10, 10], [0, 10]]

[[part]]
name = "triangle"
points = [[0, 0], [8, 0], [4, 6]]
`

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestOptionsValidate(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err == nil {
		t.Error("expected error when no manifest source is set")
	}

	o = Options{ManifestPath: "a.toml", ManifestData: []byte("x")}
	if err := o.ValidateAndSetDefaults(); err == nil {
		t.Error("expected error when both manifest sources are set")
	}

	o = Options{ManifestData: []byte(testManifest)}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}

	o = Options{ManifestData: []byte(testManifest), Formats: []string{"png"}}
	if err := o.ValidateAndSetDefaults(); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestExpandParts(t *testing.T) {
	m, err := manifest.Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	parts := ExpandParts(m)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	names := []string{parts[0].Name, parts[1].Name, parts[2].Name}
	want := []string{"square-1", "square-2", "triangle"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("part %d name = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestPackOptionsOverrides(t *testing.T) {
	m, err := manifest.Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	o := Options{SheetWidth: 50, Spacing: 2}
	p := o.PackOptions(m)
	if p.SheetWidth != 50 {
		t.Errorf("SheetWidth = %v, want override 50", p.SheetWidth)
	}
	if p.Step != 1 {
		t.Errorf("Step = %v, want manifest value 1", p.Step)
	}
	if p.Spacing != 2 {
		t.Errorf("Spacing = %v, want override 2", p.Spacing)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	opts := Options{
		ManifestData: []byte(testManifest),
		Formats:      []string{FormatSVG, FormatJSON},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.PartCount != 3 {
		t.Errorf("PartCount = %d, want 3", result.Stats.PartCount)
	}
	if result.Layout == nil || len(result.Layout.Placements) != 3 {
		t.Fatalf("expected 3 placements, got %+v", result.Layout)
	}
	if result.ManifestHash == "" {
		t.Error("expected non-empty manifest hash")
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("svg artifact missing or malformed")
	}
	data, ok := result.Artifacts[FormatJSON]
	if !ok {
		t.Fatal("json artifact missing")
	}
	layout, err := skio.ReadJSON(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("json artifact does not round-trip: %v", err)
	}
	if layout.SheetWidth != 100 {
		t.Errorf("round-tripped SheetWidth = %v, want 100", layout.SheetWidth)
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, discardLogger())
	opts := Options{ManifestData: []byte(testManifest)}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache, got %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache, got %+v", second.CacheInfo)
	}
	if second.Layout.Height != first.Layout.Height {
		t.Errorf("cached height %v differs from computed %v", second.Layout.Height, first.Layout.Height)
	}

	refreshed, err := r.Execute(context.Background(), Options{ManifestData: []byte(testManifest), Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if refreshed.CacheInfo.LayoutHit || refreshed.CacheInfo.RenderHit {
		t.Errorf("refresh run should bypass the cache, got %+v", refreshed.CacheInfo)
	}
}

func TestExecuteOptionsAffectCacheKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, discardLogger())

	if _, err := r.Execute(context.Background(), Options{ManifestData: []byte(testManifest)}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// Same manifest with a different sheet width must not reuse the layout.
	other, err := r.Execute(context.Background(), Options{ManifestData: []byte(testManifest), SheetWidth: 12})
	if err != nil {
		t.Fatalf("Execute with override: %v", err)
	}
	if other.CacheInfo.LayoutHit {
		t.Error("layout cache hit despite different pack options")
	}
}

func TestLoadMissingFile(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	_, _, err := r.Load(Options{ManifestPath: "does-not-exist.toml"})
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestExecuteInvalidManifest(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	_, err := r.Execute(context.Background(), Options{ManifestData: []byte("not toml [")})
	if err == nil {
		t.Fatal("expected error for invalid manifest")
	}
	if !strings.Contains(err.Error(), "load") {
		t.Errorf("error %q should mention the load stage", err)
	}
}
