// Package geom provides the small amount of 2D geometry skyfold needs:
// points, polygons, bounding boxes, and the projection of a polygon's
// boundary into directional skylines.
//
// Conventions follow mathematical graph paper: x increases to the right and
// y increases up the page.
package geom

import "math"

// Point holds a 2D coordinate value.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the point translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal span of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical span of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// emptyBounds has its min/max swapped to infinities so that any point
// expands it.
func emptyBounds() Bounds {
	return Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

func (b Bounds) expand(p Point) Bounds {
	return Bounds{
		MinX: min(b.MinX, p.X), MinY: min(b.MinY, p.Y),
		MaxX: max(b.MaxX, p.X), MaxY: max(b.MaxY, p.Y),
	}
}
