package candidates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
)

// LaneSpacing is the sideways distance between two BaseSource lanes.
const LaneSpacing = 2 * geometry.RailStep

// ErrUnbuildable indicates a mine without a single buildable entry.
var ErrUnbuildable = errors.New("candidates: mine has no buildable entry")

// ErrNoMines indicates Generate was called with an empty batch.
var ErrNoMines = errors.New("candidates: no mines")

// MineDestination is one way into a mine: the straight rail to arrive on.
type MineDestination struct {
	Mine  surface.MineLocation
	Entry raillink.Link
}

// MineRoute visits its destinations in order.
type MineRoute struct {
	Destinations []MineDestination
}

// MineRouteBatch is every route generated for one set of mines.
type MineRouteBatch struct {
	Routes []MineRoute
}

// UnbuildableError lists the mines left without an entry.
type UnbuildableError struct {
	Mines []surface.MineLocation
}

// Error implements error.
func (e *UnbuildableError) Error() string {
	keys := make([]string, len(e.Mines))
	for i, m := range e.Mines {
		keys[i] = m.Key()
	}
	return fmt.Sprintf("%v: %s", ErrUnbuildable, strings.Join(keys, ", "))
}

// Unwrap exposes ErrUnbuildable.
func (e *UnbuildableError) Unwrap() error { return ErrUnbuildable }

// String renders the visiting order, e.g. "mine[0]@… -> mine[1]@…".
func (r MineRoute) String() string {
	parts := make([]string, len(r.Destinations))
	for i, d := range r.Destinations {
		parts[i] = d.Mine.Key() + " via " + d.Entry.String()
	}
	return strings.Join(parts, " -> ")
}
