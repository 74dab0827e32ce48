package render

import (
	"strings"
	"testing"

	"github.com/skyfold/skyfold/pkg/geom"
	"github.com/skyfold/skyfold/pkg/pack"
)

func testLayout() *pack.Layout {
	return &pack.Layout{
		SheetWidth: 10,
		Height:     4,
		Placements: []pack.Placement{
			{
				Name: "sq",
				Poly: geom.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
			},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, "<svg xmlns=") {
		t.Errorf("output does not start with an svg element:\n%s", svg[:min(len(svg), 80)])
	}
	if !strings.Contains(svg, "<polygon points=") {
		t.Error("output has no polygon element")
	}
	if !strings.Contains(svg, "<title>sq</title>") {
		t.Error("part name missing from polygon title")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("output is not closed")
	}
}

func TestRenderSVGLabels(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	labeled := string(RenderSVG(testLayout(), WithLabels()))

	if strings.Contains(plain, "<text") {
		t.Error("labels rendered without WithLabels")
	}
	if !strings.Contains(labeled, "<text") {
		t.Error("WithLabels produced no text element")
	}
}

func TestRenderSVGEscapes(t *testing.T) {
	l := testLayout()
	l.Placements[0].Name = `a<b&"c"`

	svg := string(RenderSVG(l, WithLabels()))
	if strings.Contains(svg, "a<b") {
		t.Error("part name not escaped in output")
	}
	if !strings.Contains(svg, "a&lt;b&amp;&quot;c&quot;") {
		t.Error("expected escaped part name in output")
	}
}

func TestRenderSVGSilhouette(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	outlined := string(RenderSVG(testLayout(), WithSilhouette()))

	if strings.Contains(plain, "<polyline") {
		t.Error("silhouette rendered without WithSilhouette")
	}
	if !strings.Contains(outlined, "<polyline") {
		t.Error("WithSilhouette produced no polyline element")
	}
	// The square's top-right corner (4, 4) maps to svg (6, 2) with the
	// default scale 1 and margin 2.
	if !strings.Contains(outlined, "6.00,2.00") {
		t.Errorf("silhouette misses the part's top edge:\n%s", outlined)
	}
}

func TestRenderSVGScale(t *testing.T) {
	small := string(RenderSVG(testLayout(), WithScale(1)))
	big := string(RenderSVG(testLayout(), WithScale(10)))

	if small == big {
		t.Error("scale had no effect on output")
	}
	if !strings.Contains(big, `viewBox="0 0 140.00 80.00"`) {
		t.Errorf("unexpected scaled viewBox:\n%s", big[:min(len(big), 120)])
	}
}
