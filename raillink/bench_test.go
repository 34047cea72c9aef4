package raillink_test

import (
	"testing"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
)

// BenchmarkFootprint measures footprint expansion for every kind.
func BenchmarkFootprint(b *testing.B) {
	links := make([]raillink.Link, 0, len(raillink.Kinds))
	for _, k := range raillink.Kinds {
		links = append(links, raillink.New(geometry.Point{X: 64, Y: -64}, geometry.East, k))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, l := range links {
			_ = l.Footprint()
		}
	}
}
