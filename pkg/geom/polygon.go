package geom

import (
	"math"

	"github.com/skyfold/skyfold/pkg/errors"
)

// Polygon is a closed sequence of vertices. The closing edge from the last
// vertex back to the first is implicit. Polygons are assumed simple
// (non-self-intersecting); winding order does not matter.
type Polygon []Point

// Validate checks that the polygon has enough vertices and only finite
// coordinates.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return errors.New(errors.ErrCodeInvalidGeometry,
			"polygon needs at least 3 vertices, got %d", len(p))
	}
	for i, pt := range p {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return errors.New(errors.ErrCodeInvalidGeometry,
				"vertex %d has non-finite coordinates (%v, %v)", i, pt.X, pt.Y)
		}
	}
	return nil
}

// Bounds returns the polygon's axis-aligned bounding box.
func (p Polygon) Bounds() Bounds {
	b := emptyBounds()
	for _, pt := range p {
		b = b.expand(pt)
	}
	return b
}

// Translate returns a copy of the polygon shifted by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	return out
}

// Normalize returns a copy of the polygon translated so its bounding box
// sits at the origin, along with the applied offset.
func (p Polygon) Normalize() (Polygon, Point) {
	b := p.Bounds()
	return p.Translate(-b.MinX, -b.MinY), Point{X: -b.MinX, Y: -b.MinY}
}

// Area returns the polygon's area via the shoelace formula, independent of
// winding order.
func (p Polygon) Area() float64 {
	var sum float64
	for i, a := range p {
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}
