package skyline

import "math"

// Overlap returns the worst-case contact distance between a skyline and a
// complementary-direction one: the maximum over all x of a(x) + b(x).
//
// Because b stores sign-flipped heights, the sum at each x is the signed gap
// between the two shapes there, and the maximum is how far b's shape can be
// pushed toward a's before they collide. The Flip constraint restricts the
// pairing to Up↔Down and Left↔Right at compile time.
//
// Both inputs are read-only. If both skylines are empty the result is -Inf:
// nothing constrains the two shapes along this axis.
func Overlap[T Direction, S Flip[T]](a *Skyline[T], b *Skyline[S]) float64 {
	dist := math.Inf(-1)
	start := math.Inf(-1)
	i, j := 0, 0

	// The sum of two linear pieces is linear on their common sub-interval,
	// so its maximum sits at one of the interval's endpoints. Sampling every
	// boundary of either sequence therefore covers the global maximum.
	for i < len(a.buildings) && j < len(b.buildings) {
		b1, b2 := a.buildings[i], b.buildings[j]

		var end float64
		if b1.end < b2.end {
			end = b1.end
			i++
		} else {
			end = b2.end
			j++
		}

		dist = max(dist, b1.at(start)+b2.at(start))
		dist = max(dist, b1.at(end)+b2.at(end))

		start = end
	}

	return dist
}
