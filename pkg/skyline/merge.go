package skyline

import "math"

// Merge replaces s with the union envelope of s and other: the skyline whose
// height at every x is the maximum of the two inputs. Both operands must
// share a direction, which the type parameter guarantees.
//
// The sweep is a linear two-pointer pass, so Merge costs O(n+m) in the
// number of pieces.
func (s *Skyline[D]) Merge(other *Skyline[D]) {
	s.buildings = mergeBuildings(s.buildings, other.buildings)
}

// mergeBuildings sweeps the two sequences left to right, tracking the sweep
// position start. At each step the piece concealing the other is chopped at
// the next point where the situation changes (a crossing, or a domain edge)
// and emitted.
//
// Loop invariant: when one cursor exhausts its sequence, the other stands on
// its final building, whose end is +Inf — so both always run out together
// and no tail handling is needed.
func mergeBuildings(in1, in2 []building) []building {
	out := make([]building, 0, len(in1)+len(in2))
	start := math.Inf(-1)
	i, j := 0, 0

	for i < len(in1) && j < len(in2) {
		b1, b2 := in1[i], in2[j]

		if b1.conceals(b2, start) {
			start = firstChange(b1, in2, start, &j)
			out = append(out, b1.chop(start))
			// If i is the last index then b1.end is +Inf, and start can
			// only reach it once j is on its last building too.
			if start >= b1.end {
				i++
			}
		} else {
			start = firstChange(b2, in1, start, &i)
			out = append(out, b2.chop(start))
			if start >= b2.end {
				j++
			}
		}
	}

	return out
}

// firstChange returns the first x at or after start where winner stops being
// the top piece: the crossing with the loser sequence's current piece if it
// happens inside both domains, or winner's own end. Loser pieces hidden
// entirely under winner are skipped by advancing idx, so several short
// pieces under one long winner cost one iteration each.
func firstChange(winner building, losers []building, start float64, idx *int) float64 {
	for *idx < len(losers) {
		other := losers[*idx]
		cross := winner.intersection(other)

		if !winner.concealsAt(other, start, cross) {
			return start
		}
		switch {
		case cross > start && cross < min(winner.end, other.end):
			// Genuine crossing inside both pieces' remaining domains.
			return cross
		case winner.end < other.end:
			// Winner's own domain ends first.
			return winner.end
		default:
			// The loser piece ends first (or they end together): it stayed
			// hidden for its whole remaining domain. Move to the next one.
			*idx++
			start = other.end
		}
	}
	return math.Inf(1)
}
