package geometry

import "fmt"

// Add returns p translated by o.
func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Move returns p moved steps cells along d. Negative steps move backwards.
func (p Point) Move(d Direction, steps int) Point {
	v := d.Vector()
	return Point{X: p.X + v.X*steps, Y: p.Y + v.Y*steps}
}

// ManhattanDistance returns |dx| + |dy| between p and o.
func (p Point) ManhattanDistance(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// String renders the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// IsEven reports whether both coordinates are even.
func (p Point) IsEven() bool { return p.IsOnGrid(2) }

// IsOdd reports whether both coordinates are odd.
func (p Point) IsOdd() bool { return p.IsOddOnGrid(2) }

// IsOnGrid reports whether both coordinates are multiples of step.
// Panics with ErrBadStep if step <= 0.
func (p Point) IsOnGrid(step int) bool {
	checkStep(step)
	return Mod(p.X, step) == 0 && Mod(p.Y, step) == 0
}

// IsOddOnGrid reports whether both coordinates are ≡ 1 (mod step).
// Panics with ErrBadStep if step <= 0.
func (p Point) IsOddOnGrid(step int) bool {
	checkStep(step)
	return Mod(p.X, step) == 1%step && Mod(p.Y, step) == 1%step
}

// IsStepRail reports whether p sits on the RailStep lattice.
func (p Point) IsStepRail() bool { return p.IsOnGrid(RailStep) }

// AssertEven panics unless p is even.
func (p Point) AssertEven() {
	if !p.IsEven() {
		panic(fmt.Errorf("%w: %s is not even", ErrMisaligned, p))
	}
}

// AssertOdd panics unless p is odd.
func (p Point) AssertOdd() {
	if !p.IsOdd() {
		panic(fmt.Errorf("%w: %s is not odd", ErrMisaligned, p))
	}
}

// AssertOdd16 panics unless p is on the odd 16×16 grid.
func (p Point) AssertOdd16() {
	if !p.IsOddOnGrid(16) {
		panic(fmt.Errorf("%w: %s is not odd on 16x16", ErrMisaligned, p))
	}
}

// AssertStepRail panics unless p is on the rail lattice.
func (p Point) AssertStepRail() {
	if !p.IsStepRail() {
		panic(fmt.Errorf("%w: %s is not a rail step", ErrMisaligned, p))
	}
}

// Mod is the Euclidean remainder: the result is always in [0, n).
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// FloorDiv divides rounding towards negative infinity.
func FloorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}

func checkStep(step int) {
	if step <= 0 {
		panic(fmt.Errorf("%w: got %d", ErrBadStep, step))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
