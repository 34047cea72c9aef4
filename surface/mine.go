package surface

import (
	"fmt"
	"strings"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

// NewMineLocation groups the given patches into one mine whose area is the
// bounding box of their areas. Panics with ErrNoPatches on no indexes.
func NewMineLocation(v PatchesView, indexes ...int) MineLocation {
	if len(indexes) == 0 {
		panic(ErrNoPatches)
	}
	corners := make([]geometry.Point, 0, 2*len(indexes))
	for _, i := range indexes {
		a := v.Patch(i).Area
		end := a.End()
		corners = append(corners, a.Start, geometry.Point{X: end.X - 1, Y: end.Y - 1})
	}
	return MineLocation{
		PatchIndexes: append([]int(nil), indexes...),
		Area:         geometry.FromPoints(corners),
	}
}

// Key identifies the mine for tallies and logs: its patch indexes and area.
func (m MineLocation) Key() string {
	var b strings.Builder
	b.WriteString("mine[")
	for i, idx := range m.PatchIndexes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", idx)
	}
	b.WriteString("]@")
	b.WriteString(m.Area.String())
	return b.String()
}

// String is Key.
func (m MineLocation) String() string { return m.Key() }
