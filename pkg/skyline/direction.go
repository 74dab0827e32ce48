package skyline

// Up, Down, Left and Right are the four skyline orientations. They are
// zero-size markers used purely as type parameters: the orientation of a
// skyline is part of its type, so mixing orientations is a compile error
// rather than a runtime check.
type (
	// Up faces the positive y axis (the conventional skyline).
	Up struct{}
	// Down faces the negative y axis.
	Down struct{}
	// Left faces the negative x axis.
	Left struct{}
	// Right faces the positive x axis.
	Right struct{}
)

// Direction constrains skyline type parameters to the four orientation
// markers. The unexported method seals the set: no external type can
// satisfy it.
type Direction interface {
	// multiplier is the sign applied to input heights so that "up" in a
	// skyline's own frame always means "further in the direction it faces".
	multiplier() float64
}

func (Up) multiplier() float64    { return 1 }
func (Down) multiplier() float64  { return -1 }
func (Left) multiplier() float64  { return -1 }
func (Right) multiplier() float64 { return 1 }

// Flip constrains a direction to be the complementary partner of T:
// Up↔Down and Left↔Right. [Overlap] uses it so that only opposing
// skylines can be compared; any other pairing fails to compile.
type Flip[T Direction] interface {
	Direction
	flips(T)
}

func (Down) flips(Up)    {}
func (Up) flips(Down)    {}
func (Right) flips(Left) {}
func (Left) flips(Right) {}
