package raillink

import (
	"fmt"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

// New builds the link of kind placed at start heading dir.
// Panics if start or the resulting pose is off the rail lattice.
func New(start geometry.Point, dir geometry.Direction, kind Kind) Link {
	start.AssertStepRail()
	l := Link{Start: start, Direction: dir, Kind: kind}
	// The transition must keep poses on the lattice.
	l.Next().Point.AssertStepRail()
	return l
}

// FromPose places a link of kind at p.
func FromPose(p Pose, kind Kind) Link { return New(p.Point, p.Direction, kind) }

// Pose returns the start pose of l.
func (l Link) Pose() Pose { return Pose{Point: l.Start, Direction: l.Direction} }

// Next returns the pose reached at the end of l.
func (l Link) Next() Pose {
	wp := l.waypoints()
	return Pose{Point: wp[len(wp)-1], Direction: l.EndDirection()}
}

// Key is the pose-only identity of l used by searches.
func (l Link) Key() Pose { return l.Next() }

// EndDirection returns the heading after l.
func (l Link) EndDirection() geometry.Direction {
	switch l.Kind {
	case TurnClockwise:
		return l.Direction.RotateOnce()
	case TurnCounterClockwise:
		return l.Direction.RotateOpposite()
	}
	return l.Direction
}

// IsTurn reports whether l changes heading.
func (l Link) IsTurn() bool { return l.Kind.IsTurn() }

// Length is the travelled distance along the waypoints of l.
func (l Link) Length() int {
	wp := l.waypoints()
	total := 0
	for i := 1; i < len(wp); i++ {
		total += wp[i-1].ManhattanDistance(wp[i])
	}
	return total
}

// Footprint lists the cells l occupies, without duplicates, in a
// deterministic order. Every link of the same kind has the same count.
func (l Link) Footprint() []geometry.Point {
	wp := l.waypoints()
	out := make([]geometry.Point, 0, 2*l.Length())
	seen := make(map[geometry.Point]struct{}, 2*l.Length())
	for i := 1; i < len(wp); i++ {
		for _, p := range band(wp[i-1], wp[i]) {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// Area is the bounding box of the footprint.
func (l Link) Area() geometry.Area { return geometry.FromPoints(l.Footprint()) }

// String renders "Kind@(x,y)Dir".
func (l Link) String() string {
	return fmt.Sprintf("%s@%s%s", l.Kind, l.Start, l.Direction)
}

// waypoints returns the lattice points l passes through, start first.
func (l Link) waypoints() []geometry.Point {
	p, d := l.Start, l.Direction
	switch l.Kind {
	case Straight:
		return []geometry.Point{p, p.Move(d, SectionLength)}
	case TurnClockwise, TurnCounterClockwise:
		corner := p.Move(d, TurnSpan)
		return []geometry.Point{p, corner, corner.Move(l.EndDirection(), TurnSpan)}
	case ShiftClockwise, ShiftCounterClockwise:
		side := d.RotateOnce()
		if l.Kind == ShiftCounterClockwise {
			side = d.RotateOpposite()
		}
		a := p.Move(d, TurnSpan/2)
		b := a.Move(side, ShiftOffset)
		return []geometry.Point{p, a, b, b.Move(d, TurnSpan/2)}
	}
	panic(fmt.Errorf("%w: %d", ErrBadKind, l.Kind))
}

// band returns the two-cell-wide strip between lattice points a and b,
// which must share a row or a column.
func band(a, b geometry.Point) []geometry.Point {
	var out []geometry.Point
	if a.Y == b.Y {
		lo, hi := min(a.X, b.X), max(a.X, b.X)
		out = make([]geometry.Point, 0, 2*(hi-lo))
		for x := lo; x < hi; x++ {
			out = append(out, geometry.Point{X: x, Y: a.Y - 1}, geometry.Point{X: x, Y: a.Y})
		}
		return out
	}
	lo, hi := min(a.Y, b.Y), max(a.Y, b.Y)
	out = make([]geometry.Point, 0, 2*(hi-lo))
	for y := lo; y < hi; y++ {
		out = append(out, geometry.Point{X: a.X - 1, Y: y}, geometry.Point{X: a.X, Y: y})
	}
	return out
}

// IsTurn reports whether k rotates the heading.
func (k Kind) IsTurn() bool { return k == TurnClockwise || k == TurnCounterClockwise }

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Straight:
		return "Straight"
	case TurnClockwise:
		return "TurnCW"
	case TurnCounterClockwise:
		return "TurnCCW"
	case ShiftClockwise:
		return "ShiftCW"
	case ShiftCounterClockwise:
		return "ShiftCCW"
	}
	return "Kind(?)"
}
