package candidates

import (
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
)

// Destinations returns the buildable entry rails of mine, heading the given
// way, in corner order NW, NE, SE, SW. The result may be empty.
func Destinations(pixels surface.PixelReader, mine surface.MineLocation, heading geometry.Direction) []MineDestination {
	bounds := mine.Area.NormalizeStepRail().Expand(geometry.RailStep)
	out := make([]MineDestination, 0, 4)
	for _, corner := range bounds.Corners() {
		entry := raillink.New(corner, heading, raillink.Straight)
		if !surface.IsBuildable(pixels, entry.Footprint()) {
			continue
		}
		out = append(out, MineDestination{Mine: mine, Entry: entry})
	}
	return out
}
