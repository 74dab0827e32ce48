package geom

import "github.com/skyfold/skyfold/pkg/skyline"

// The silhouette of a polygon in a direction is the union envelope of all
// its edges seen from that direction: the outline an observer looking
// against the direction would see. Every edge contributes one segment
// skyline; merging them folds the boundary into a single envelope.
//
// For Up and Down the envelope runs along the x axis; for Left and Right
// the polygon is projected along y, so the axis roles swap.

// SilhouetteUp returns the polygon's upper envelope.
func SilhouetteUp(p Polygon) *skyline.Skyline[skyline.Up] {
	return silhouette[skyline.Up](p, false)
}

// SilhouetteDown returns the polygon's lower envelope.
func SilhouetteDown(p Polygon) *skyline.Skyline[skyline.Down] {
	return silhouette[skyline.Down](p, false)
}

// SilhouetteLeft returns the polygon's leftward envelope over y.
func SilhouetteLeft(p Polygon) *skyline.Skyline[skyline.Left] {
	return silhouette[skyline.Left](p, true)
}

// SilhouetteRight returns the polygon's rightward envelope over y.
func SilhouetteRight(p Polygon) *skyline.Skyline[skyline.Right] {
	return silhouette[skyline.Right](p, true)
}

func silhouette[D skyline.Direction](p Polygon, swapAxes bool) *skyline.Skyline[D] {
	sky := skyline.Empty[D]()
	for i, a := range p {
		b := p[(i+1)%len(p)]
		if swapAxes {
			sky.Merge(skyline.Single[D](a.Y, a.X, b.Y, b.X))
		} else {
			sky.Merge(skyline.Single[D](a.X, a.Y, b.X, b.Y))
		}
	}
	return sky
}
