package geom

import (
	"math"
	"testing"

	"github.com/skyfold/skyfold/pkg/errors"
	"github.com/skyfold/skyfold/pkg/skyline"
)

func approxEq(a, b float64) bool {
	size := max(math.Abs(a), math.Abs(b))
	return a == b || math.Abs(a-b) <= max(size, 1.0)*1e-9
}

func square(x, y, side float64) Polygon {
	return Polygon{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}
}

func TestPolygonValidate(t *testing.T) {
	tests := []struct {
		name     string
		poly     Polygon
		wantCode errors.Code
	}{
		{"valid triangle", Polygon{{0, 0}, {1, 0}, {0, 1}}, ""},
		{"too few vertices", Polygon{{0, 0}, {1, 0}}, errors.ErrCodeInvalidGeometry},
		{"empty", Polygon{}, errors.ErrCodeInvalidGeometry},
		{"NaN vertex", Polygon{{0, 0}, {1, 0}, {math.NaN(), 1}}, errors.ErrCodeInvalidGeometry},
		{"infinite vertex", Polygon{{0, 0}, {math.Inf(1), 0}, {0, 1}}, errors.ErrCodeInvalidGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.poly.Validate()
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestPolygonBounds(t *testing.T) {
	p := Polygon{{-1, 2}, {3, 0}, {1, 5}}
	b := p.Bounds()

	want := Bounds{MinX: -1, MinY: 0, MaxX: 3, MaxY: 5}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
	if got, want := b.Width(), 4.0; got != want {
		t.Errorf("Width() = %v, want %v", got, want)
	}
	if got, want := b.Height(), 5.0; got != want {
		t.Errorf("Height() = %v, want %v", got, want)
	}
}

func TestPolygonArea(t *testing.T) {
	if got, want := square(0, 0, 2).Area(), 4.0; !approxEq(got, want) {
		t.Errorf("square area = %v, want %v", got, want)
	}

	// Winding order must not matter.
	cw := Polygon{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	if got, want := cw.Area(), 1.0; !approxEq(got, want) {
		t.Errorf("clockwise square area = %v, want %v", got, want)
	}
}

func TestPolygonNormalize(t *testing.T) {
	p := square(3, -2, 1)
	n, off := p.Normalize()

	b := n.Bounds()
	if !approxEq(b.MinX, 0) || !approxEq(b.MinY, 0) {
		t.Errorf("normalized bounds min = (%v, %v), want origin", b.MinX, b.MinY)
	}
	if off.X != -3 || off.Y != 2 {
		t.Errorf("offset = %+v, want (-3, 2)", off)
	}
	// Original must be untouched.
	if p[0].X != 3 {
		t.Error("Normalize modified its receiver")
	}
}

func TestSilhouetteUp(t *testing.T) {
	// Triangle with apex at (2,2): the upper envelope rises to the apex and
	// falls back down.
	tri := Polygon{{0, 0}, {4, 0}, {2, 2}}
	sky := SilhouetteUp(tri)

	samples := []struct{ x, want float64 }{
		{0.5, 0.5},
		{1, 1},
		{2, 2},
		{3, 1},
		{3.5, 0.5},
	}
	for _, s := range samples {
		if got := sky.At(s.x); !approxEq(got, s.want) {
			t.Errorf("upper silhouette At(%v) = %v, want %v", s.x, got, s.want)
		}
	}
	if got := sky.At(10); !math.IsInf(got, -1) {
		t.Errorf("silhouette At(10) = %v, want -Inf outside the polygon", got)
	}
}

func TestSilhouetteDown(t *testing.T) {
	// The lower envelope of a square at height 2 is its bottom edge,
	// negated by the Down orientation.
	sky := SilhouetteDown(square(0, 2, 2))

	if got, want := sky.At(1), -2.0; !approxEq(got, want) {
		t.Errorf("lower silhouette At(1) = %v, want %v", got, want)
	}
}

func TestSilhouetteClearance(t *testing.T) {
	// Two unit squares with a 2-wide horizontal gap: the right face of A
	// against the left face of B gives a slack of -2 (B can slide 2 closer
	// before touching).
	a := SilhouetteRight(square(0, 0, 1))
	b := SilhouetteLeft(square(3, 0, 1))

	if got, want := skyline.Overlap(a, b), -2.0; !approxEq(got, want) {
		t.Errorf("Overlap = %v, want %v", got, want)
	}
}

func TestSilhouetteRestingHeight(t *testing.T) {
	// Dropping a unit square onto a floor skyline at height 0: the bottom
	// envelope rests at 0.
	floor := skyline.Single[skyline.Up](0, 0, 10, 0)
	bottom := SilhouetteDown(square(2, 0, 1))

	if got, want := skyline.Overlap(floor, bottom), 0.0; !approxEq(got, want) {
		t.Errorf("resting height = %v, want %v", got, want)
	}

	// A square hovering 3 above the floor can fall by 3 before contact,
	// so the sum is -3.
	raised := SilhouetteDown(square(2, 3, 1))
	if got, want := skyline.Overlap(floor, raised), -3.0; !approxEq(got, want) {
		t.Errorf("raised resting sum = %v, want %v", got, want)
	}
}
