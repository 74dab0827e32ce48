package skyline

import "math"

// Skyline is an ordered sequence of non-overlapping buildings covering the
// whole real line, oriented along direction D. Building ends are strictly
// increasing and the final building always ends at +Inf.
//
// Heights are stored in the skyline's own frame: input y values are
// multiplied by the direction's sign on construction, so a Down skyline
// holds negated heights. [Overlap] exploits this: summing a skyline with a
// complementary one yields the signed gap between the two shapes.
//
// Merge, Slide and Bump mutate the receiver; callers that need the prior
// value must [Skyline.Clone] first.
type Skyline[D Direction] struct {
	buildings []building
}

// Empty returns the identity skyline: a single empty building covering
// everything. Merging it into any skyline is a no-op.
func Empty[D Direction]() *Skyline[D] {
	return &Skyline[D]{buildings: []building{emptyBuilding(math.Inf(1))}}
}

// Single returns the skyline of one line segment: the segment's building
// bracketed by empty pieces on both sides. The y values are sign-adjusted
// for the direction, so callers always pass raw coordinates.
func Single[D Direction](x1, y1, x2, y2 float64) *Skyline[D] {
	var d D
	mult := d.multiplier()

	return &Skyline[D]{buildings: []building{
		emptyBuilding(min(x1, x2)),
		buildingFromPoints(x1, y1*mult, x2, y2*mult),
		emptyBuilding(math.Inf(1)),
	}}
}

// Clone returns an independent copy of the skyline.
func (s *Skyline[D]) Clone() *Skyline[D] {
	out := make([]building, len(s.buildings))
	copy(out, s.buildings)
	return &Skyline[D]{buildings: out}
}

// At evaluates the skyline at x, in the skyline's own (sign-adjusted) frame.
// Positions covered by no segment evaluate to -Inf.
func (s *Skyline[D]) At(x float64) float64 {
	for _, bl := range s.buildings {
		if x <= bl.end {
			return bl.at(x)
		}
	}
	// Unreachable for well-formed skylines: the last building ends at +Inf.
	return math.Inf(-1)
}

// Trace returns the skyline's polyline over [from, to] as (x, y) pairs in
// the skyline's own frame. Piece boundaries inside the interval contribute a
// vertex on each side, so vertical jumps trace as walls. The value at from
// is the right limit, so a piece ending exactly there does not contribute.
// Uncovered stretches evaluate to -Inf like [Skyline.At].
func (s *Skyline[D]) Trace(from, to float64) [][2]float64 {
	var pts [][2]float64
	push := func(x, y float64) {
		if n := len(pts); n > 0 && pts[n-1][0] == x && pts[n-1][1] == y {
			return
		}
		pts = append(pts, [2]float64{x, y})
	}

	prev := from
	for _, bl := range s.buildings {
		if bl.end <= from {
			continue
		}
		start, end := prev, min(bl.end, to)
		push(start, bl.at(start))
		push(end, bl.at(end))
		prev = end
		if bl.end >= to {
			break
		}
	}
	return pts
}

// Slide translates the skyline horizontally by dx. Left domain boundaries
// are implicit in the preceding piece's end, so shifting every end moves the
// whole envelope rigidly.
func (s *Skyline[D]) Slide(dx float64) {
	for i := range s.buildings {
		s.buildings[i].end += dx
	}
}

// Bump translates the skyline by dy along the direction it faces. The sign
// multiplier makes a positive dy always mean "push further out", whichever
// way the skyline is oriented.
func (s *Skyline[D]) Bump(dy float64) {
	var d D
	dy *= d.multiplier()
	for i := range s.buildings {
		s.buildings[i].b += dy
	}
}
