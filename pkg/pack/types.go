package pack

import "github.com/skyfold/skyfold/pkg/geom"

// Part is one polygon to be placed, identified by name. Parts with multiple
// copies appear once per copy in the input slice.
type Part struct {
	Name string       `json:"name"`
	Poly geom.Polygon `json:"poly"`
}

// Placement records where one part ended up: the offset applied to its
// normalized polygon and the resulting translated outline.
type Placement struct {
	Name string       `json:"name"`
	DX   float64      `json:"dx"`
	DY   float64      `json:"dy"`
	Poly geom.Polygon `json:"poly"`
}

// Layout is the result of packing: all placements plus the overall extent.
type Layout struct {
	SheetWidth float64     `json:"sheet_width"`
	Height     float64     `json:"height"`
	Placements []Placement `json:"placements"`
}

// PartBounds returns the bounding box of all placed parts. An empty layout
// returns the zero bounds.
func (l *Layout) PartBounds() geom.Bounds {
	var b geom.Bounds
	for i, p := range l.Placements {
		pb := p.Poly.Bounds()
		if i == 0 {
			b = pb
			continue
		}
		b = geom.Bounds{
			MinX: min(b.MinX, pb.MinX), MinY: min(b.MinY, pb.MinY),
			MaxX: max(b.MaxX, pb.MaxX), MaxY: max(b.MaxY, pb.MaxY),
		}
	}
	return b
}
