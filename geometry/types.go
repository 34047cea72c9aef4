package geometry

import "errors"

// RailStep is the lattice pitch of rail poses.
const RailStep = 8

// Sentinel errors. They are raised through panics by the Assert helpers
// and constructors, and exposed so callers can match recovered values.
var (
	// ErrMisaligned indicates a point that is not on the required lattice.
	ErrMisaligned = errors.New("geometry: point not on required lattice")

	// ErrNegativeSize indicates an area built with a negative width or height.
	ErrNegativeSize = errors.New("geometry: area size must be non-negative")

	// ErrNoPoints indicates an area requested from an empty point set.
	ErrNoPoints = errors.New("geometry: no points")

	// ErrBadStep indicates a lattice step that is not positive.
	ErrBadStep = errors.New("geometry: lattice step must be positive")
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Area is an axis-aligned rectangle of cells anchored at Start.
type Area struct {
	Start         Point
	Width, Height int
}

// Direction is one of the four cardinal headings.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every heading in clockwise order starting at North.
var Directions = [4]Direction{North, East, South, West}
