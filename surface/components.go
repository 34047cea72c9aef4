package surface

import (
	"fmt"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

var (
	conn4Offsets = []geometry.Point{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}
	conn8Offsets = []geometry.Point{
		{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
	}
)

// Detect groups every resource cell not yet owned by a patch into
// maximal same-resource regions and appends one patch per region.
// Cells are only read. Regions are discovered in row-major order of their
// first cell, members in BFS order from it.
// Returns the number of patches added. Panics with ErrOutOfBounds if an
// existing patch has a member off the plane.
//
// Time:   O(W·H·d), d = 4 or 8.
// Memory: O(W·H) for visited flags.
func (m PatchesMut) Detect(conn Connectivity) int {
	offsets := conn4Offsets
	if conn == Conn8 {
		offsets = conn8Offsets
	}
	cells := m.Pixels
	area := cells.Area()
	side := area.Width
	at := func(p geometry.Point) int { return (p.Y-area.Start.Y)*side + (p.X - area.Start.X) }

	seen := make([]bool, side*area.Height)
	for _, patch := range m.All() {
		for _, p := range patch.Points {
			if !cells.InBounds(p) {
				panic(fmt.Errorf("%w: patch member %s", ErrOutOfBounds, p))
			}
			seen[at(p)] = true
		}
	}

	added := 0
	for y := area.Start.Y; y < area.Start.Y+area.Height; y++ {
		for x := area.Start.X; x < area.Start.X+area.Width; x++ {
			p0 := geometry.Point{X: x, Y: y}
			resource := cells.PixelAt(p0)
			if !resource.IsResource() || seen[at(p0)] {
				continue
			}
			// BFS over same-resource neighbours
			queue := []geometry.Point{p0}
			seen[at(p0)] = true
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				for _, d := range offsets {
					v := u.Add(d)
					if !cells.InBounds(v) || seen[at(v)] || cells.PixelAt(v) != resource {
						continue
					}
					seen[at(v)] = true
					queue = append(queue, v)
				}
			}
			m.add(Patch{Resource: resource, Area: geometry.FromPoints(queue), Points: queue})
			added++
		}
	}
	return added
}
