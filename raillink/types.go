// Package raillink defines the atomic rail element the pathfinder places:
// a start pose plus a kind, with a pure transition to the next pose and a
// fixed footprint of occupied cells.
//
// Geometry (all poses sit on the geometry.RailStep lattice):
//
//	– Straight:    advances SectionLength along the heading.
//	– Turn (CW/CCW): advances TurnSpan along the heading, then TurnSpan
//	  towards the new heading; the heading rotates one quarter.
//	– Shift (CW/CCW): advances half a TurnSpan, steps one lattice pitch
//	  sideways, advances the remaining half; the heading is unchanged.
//
// Footprint:
//
//	Every leg between two waypoints is a band two cells wide running along
//	the lattice line, covering the cells between the waypoints. The band of
//	a horizontal leg covers rows y-1 and y, a vertical leg covers columns
//	x-1 and x. The footprint is therefore symmetric: a link and its reverse
//	occupy the same cells.
//
// Pose compare:
//
//	Link.Key returns only the resulting pose. Two links reaching the same
//	pose via different kinds or histories compare equal on purpose, which is
//	what lets the search deduplicate states. Full equality is the struct ==.
package raillink

import (
	"errors"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

// Lattice constants.
const (
	// SectionLength is the advance of a single straight link.
	SectionLength = geometry.RailStep
	// TurnSpan is the advance along each leg of a turn.
	TurnSpan = 2 * geometry.RailStep
	// ShiftOffset is the sideways offset of a shift link.
	ShiftOffset = geometry.RailStep
)

// ErrBadKind indicates an unknown link kind.
var ErrBadKind = errors.New("raillink: unknown link kind")

// Kind selects the rail element placed at a pose.
type Kind uint8

const (
	Straight Kind = iota
	TurnClockwise
	TurnCounterClockwise
	ShiftClockwise
	ShiftCounterClockwise
)

// Kinds lists every link kind in successor order.
var Kinds = [5]Kind{Straight, TurnClockwise, TurnCounterClockwise, ShiftClockwise, ShiftCounterClockwise}

// Pose is a lattice point with a heading.
type Pose struct {
	Point     geometry.Point
	Direction geometry.Direction
}

// Link is one placed rail element. Build it with New; the zero value is a
// straight link heading North at the origin.
type Link struct {
	Start     geometry.Point
	Direction geometry.Direction
	Kind      Kind
}
