// Package render turns packed layouts into output artifacts.
//
// The SVG sink draws each placed part as a polygon, optionally labeled at
// its centroid. Coordinates are flipped so that the sheet floor sits at the
// bottom of the image, matching the packing frame (y up).
package render

import (
	"bytes"
	"fmt"

	"github.com/skyfold/skyfold/pkg/geom"
	"github.com/skyfold/skyfold/pkg/pack"
	"github.com/skyfold/skyfold/pkg/skyline"
)

// palette cycles across parts so adjacent placements are distinguishable.
var palette = []string{
	"#4e79a7", "#f28e2b", "#59a14f", "#e15759",
	"#b07aa1", "#76b7b2", "#edc948", "#9c755f",
}

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale      float64
	margin     float64
	labels     bool
	silhouette bool
}

// WithScale multiplies all coordinates by s (user units per model unit).
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithMargin adds a margin (in model units) around the sheet.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithLabels draws each part's name at its bounding-box center.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithSilhouette overlays the sheet's top envelope as a dashed polyline:
// the surface the next part would land on.
func WithSilhouette() SVGOption { return func(r *svgRenderer) { r.silhouette = true } }

// RenderSVG renders a packed layout to SVG bytes.
func RenderSVG(l *pack.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1, margin: 2}
	for _, opt := range opts {
		opt(&r)
	}

	width := (l.SheetWidth + 2*r.margin) * r.scale
	height := (l.Height + 2*r.margin) * r.scale

	// SVG y grows downward; the layout's y grows upward.
	flipY := func(y float64) float64 {
		return height - (y+r.margin)*r.scale
	}
	mapX := func(x float64) float64 {
		return (x + r.margin) * r.scale
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	// Sheet floor line.
	fmt.Fprintf(&buf,
		`  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="#333" stroke-width="0.5"/>`+"\n",
		mapX(0), flipY(0), mapX(l.SheetWidth), flipY(0))

	for i, p := range l.Placements {
		fill := palette[i%len(palette)]

		buf.WriteString(`  <polygon points="`)
		for j, pt := range p.Poly {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%.2f,%.2f", mapX(pt.X), flipY(pt.Y))
		}
		fmt.Fprintf(&buf, `" fill="%s" fill-opacity="0.8" stroke="#222" stroke-width="0.3">`, fill)
		fmt.Fprintf(&buf, "<title>%s</title></polygon>\n", escapeXML(p.Name))

		if r.labels {
			b := p.Poly.Bounds()
			fmt.Fprintf(&buf,
				`  <text x="%.2f" y="%.2f" font-size="%.1f" text-anchor="middle" fill="#111">%s</text>`+"\n",
				mapX((b.MinX+b.MaxX)/2), flipY((b.MinY+b.MaxY)/2),
				3*r.scale, escapeXML(p.Name))
		}
	}

	if r.silhouette {
		// Floor first so uncovered stretches trace at height zero.
		top := skyline.Single[skyline.Up](0, 0, l.SheetWidth, 0)
		for _, p := range l.Placements {
			top.Merge(geom.SilhouetteUp(p.Poly))
		}

		buf.WriteString(`  <polyline points="`)
		for j, pt := range top.Trace(0, l.SheetWidth) {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%.2f,%.2f", mapX(pt[0]), flipY(pt[1]))
		}
		buf.WriteString(`" fill="none" stroke="#d62728" stroke-width="0.4" stroke-dasharray="1.5,1"/>` + "\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// escapeXML escapes the characters that are unsafe in SVG text and
// attribute content.
func escapeXML(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
