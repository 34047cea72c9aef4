package geometry

// Vector returns the unit step of d (North is -Y).
func (d Direction) Vector() Point {
	switch d {
	case North:
		return Point{X: 0, Y: -1}
	case East:
		return Point{X: 1, Y: 0}
	case South:
		return Point{X: 0, Y: 1}
	case West:
		return Point{X: -1, Y: 0}
	}
	panic("geometry: invalid direction")
}

// Flip rotates d by 180 degrees.
func (d Direction) Flip() Direction { return d.rotate(2) }

// RotateOnce rotates d by 90 degrees clockwise.
func (d Direction) RotateOnce() Direction { return d.rotate(1) }

// RotateOpposite rotates d by 270 degrees clockwise, i.e. one quarter turn
// counter-clockwise.
func (d Direction) RotateOpposite() Direction { return d.rotate(3) }

func (d Direction) rotate(quarters int) Direction {
	return Direction((int(d) + quarters) % 4)
}

// IsHorizontal reports whether d runs along the X axis.
func (d Direction) IsHorizontal() bool { return d == East || d == West }

// String returns the compass name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return "Direction(?)"
}
