package skyline

import "math"

// MaxSlope bounds the slope of any building. Near-vertical input segments
// would otherwise produce huge slopes whose intercepts cancel catastrophically
// downstream; clamping trades a bounded approximation error for numerical
// stability.
const MaxSlope = 1e3

// building is one linear piece of a skyline: the line y = m·x + b, valid up
// to x = end. Its left boundary is implicit (the previous piece's end), so a
// building on its own represents the half-open domain (-∞, end].
// An intercept of -Inf means "nothing here".
type building struct {
	m   float64 // slope, within [-MaxSlope, MaxSlope]
	b   float64 // intercept; -Inf for the empty placeholder
	end float64 // right edge of the domain; +Inf for a final piece
}

// emptyBuilding returns the "nothing here" placeholder ending at end.
func emptyBuilding(end float64) building {
	return building{m: 0, b: math.Inf(-1), end: end}
}

// buildingFromPoints constructs the building covering the segment from
// (x1,y1) to (x2,y2).
//
// A vertical segment (x1 == x2) degenerates to a flat top at the higher of
// the two y values over a zero-width domain, so a vertical wall still blocks
// correctly without dividing by zero. After slope clamping the line through
// both points may not exist; the intercept is chosen as the larger of the two
// point-implied intercepts so the piece lies on or above both endpoints.
func buildingFromPoints(x1, y1, x2, y2 float64) building {
	if x1 == x2 {
		return building{m: 0, b: max(y1, y2), end: x1}
	}

	m := (y2 - y1) / (x2 - x1)
	m = min(MaxSlope, max(-MaxSlope, m))
	return building{
		m:   m,
		b:   max(y1-m*x1, y2-m*x2),
		end: max(x1, x2),
	}
}

// intersection returns the x coordinate where the two infinite lines cross.
// Parallel lines divide to ±Inf, which is meaningful as "no crossing ahead";
// coincident lines divide to NaN, which is normalized to -Inf ("already
// diverged, no future crossing").
func (bl building) intersection(other building) float64 {
	x := (other.b - bl.b) / (bl.m - other.m)
	if math.IsNaN(x) {
		return math.Inf(-1)
	}
	return x
}

// conceals reports whether bl is on top of other at (and immediately after) x.
func (bl building) conceals(other building, x float64) bool {
	return bl.concealsAt(other, x, bl.intersection(other))
}

// concealsAt is conceals with the intersection precomputed, for callers that
// need the crossing point as well. Equal slopes are resolved by intercept;
// otherwise the steeper line wins to the right of the crossing and the
// shallower one to the left.
func (bl building) concealsAt(other building, x, cross float64) bool {
	if bl.m == other.m {
		return bl.b >= other.b
	}
	return (cross <= x && bl.m > other.m) || (cross > x && bl.m < other.m)
}

// chop returns a copy of bl with a new right boundary.
func (bl building) chop(end float64) building {
	return building{m: bl.m, b: bl.b, end: end}
}

// at evaluates the building's line at x. The empty placeholder is -Inf
// everywhere, and a flat building keeps its height at x = ±Inf; both cases
// are short-circuited so that 0·Inf never produces a NaN.
func (bl building) at(x float64) float64 {
	if math.IsInf(bl.b, 0) {
		return bl.b
	}
	if bl.m == 0 {
		return bl.b
	}
	return bl.m*x + bl.b
}
