package candidates

import (
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
)

// BaseSource hands out the start rails routes leave the base on. Lane i
// starts LaneSpacing×i cells to one side of Origin, all heading Heading.
// Sign picks the side: +1 is clockwise of Heading, -1 counter-clockwise.
type BaseSource struct {
	Origin  geometry.Point
	Heading geometry.Direction
	Sign    int
}

// Start returns the straight start link of lane i. Panics if Origin is
// off the rail lattice.
func (b BaseSource) Start(i int) raillink.Link {
	b.Origin.AssertStepRail()
	sign := b.Sign
	if sign == 0 {
		sign = 1
	}
	p := b.Origin.Move(b.Heading.RotateOnce(), sign*i*LaneSpacing)
	return raillink.New(p, b.Heading, raillink.Straight)
}
