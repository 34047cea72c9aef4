package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

// ------------------------------------------------------------------------
// 1. Lattice predicates
// ------------------------------------------------------------------------

func TestPoint_Predicates(t *testing.T) {
	cases := []struct {
		p                   geometry.Point
		even, odd, rail, o16 bool
	}{
		{geometry.Point{X: 0, Y: 0}, true, false, true, false},
		{geometry.Point{X: 8, Y: -16}, true, false, true, false},
		{geometry.Point{X: 1, Y: -1}, false, true, false, false},
		{geometry.Point{X: 17, Y: -15}, false, true, false, true},
		{geometry.Point{X: 2, Y: 3}, false, false, false, false},
		{geometry.Point{X: -8, Y: 4}, true, false, false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.even, tc.p.IsEven(), "even %s", tc.p)
		assert.Equal(t, tc.odd, tc.p.IsOdd(), "odd %s", tc.p)
		assert.Equal(t, tc.rail, tc.p.IsStepRail(), "rail %s", tc.p)
		assert.Equal(t, tc.o16, tc.p.IsOddOnGrid(16), "odd16 %s", tc.p)
	}
}

func TestPoint_AssertsPanic(t *testing.T) {
	require.Panics(t, func() { geometry.Point{X: 1, Y: 0}.AssertEven() })
	require.Panics(t, func() { geometry.Point{X: 2, Y: 1}.AssertOdd() })
	require.Panics(t, func() { geometry.Point{X: 3, Y: 1}.AssertOdd16() })
	require.Panics(t, func() { geometry.Point{X: 4, Y: 8}.AssertStepRail() })
	require.Panics(t, func() { geometry.Point{}.IsOnGrid(0) })

	require.NotPanics(t, func() { geometry.Point{X: -2, Y: 4}.AssertEven() })
	require.NotPanics(t, func() { geometry.Point{X: -1, Y: 3}.AssertOdd() })
	require.NotPanics(t, func() { geometry.Point{X: -15, Y: 17}.AssertOdd16() })
	require.NotPanics(t, func() { geometry.Point{X: -8, Y: 64}.AssertStepRail() })
}

func TestPoint_MoveAndDistance(t *testing.T) {
	p := geometry.Point{X: 3, Y: 4}
	require.Equal(t, geometry.Point{X: 3, Y: -4}, p.Move(geometry.North, 8))
	require.Equal(t, geometry.Point{X: 11, Y: 4}, p.Move(geometry.East, 8))
	require.Equal(t, geometry.Point{X: -5, Y: 4}, p.Move(geometry.East, -8))
	require.Equal(t, 14, p.ManhattanDistance(geometry.Point{X: -5, Y: -2}))
}

func TestModAndFloorDiv(t *testing.T) {
	require.Equal(t, 7, geometry.Mod(-1, 8))
	require.Equal(t, 0, geometry.Mod(-16, 8))
	require.Equal(t, -1, geometry.FloorDiv(-1, 8))
	require.Equal(t, -2, geometry.FloorDiv(-9, 8))
	require.Equal(t, 1, geometry.FloorDiv(15, 8))
}

// ------------------------------------------------------------------------
// 2. Direction group
// ------------------------------------------------------------------------

func TestDirection_CyclicGroup(t *testing.T) {
	for _, d := range geometry.Directions {
		require.Equal(t, d, d.Flip().Flip(), "flip twice %s", d)
		require.Equal(t, d, d.RotateOnce().RotateOpposite(), "once then opposite %s", d)
		require.Equal(t, d.Flip(), d.RotateOnce().RotateOnce(), "two quarters %s", d)
		require.Equal(t, d, d.RotateOnce().RotateOnce().RotateOnce().RotateOnce(), "order four %s", d)
		v, f := d.Vector(), d.Flip().Vector()
		require.Equal(t, geometry.Point{}, v.Add(f))
	}
	require.Equal(t, geometry.East, geometry.North.RotateOnce())
	require.Equal(t, geometry.West, geometry.North.RotateOpposite())
	require.True(t, geometry.West.IsHorizontal())
	require.False(t, geometry.South.IsHorizontal())
}

// ------------------------------------------------------------------------
// 3. Area
// ------------------------------------------------------------------------

func TestArea_ContainsAndCorners(t *testing.T) {
	a := geometry.NewArea(geometry.Point{X: -2, Y: 1}, 4, 3)
	require.True(t, a.Contains(geometry.Point{X: -2, Y: 1}))
	require.True(t, a.Contains(geometry.Point{X: 1, Y: 3}))
	require.False(t, a.Contains(geometry.Point{X: 2, Y: 3}))
	require.False(t, a.Contains(geometry.Point{X: 1, Y: 4}))

	c := a.Corners()
	require.Equal(t, geometry.Point{X: -2, Y: 1}, c[0])
	require.Equal(t, geometry.Point{X: 2, Y: 1}, c[1])
	require.Equal(t, geometry.Point{X: 2, Y: 4}, c[2])
	require.Equal(t, geometry.Point{X: -2, Y: 4}, c[3])
	require.Equal(t, geometry.Point{X: 0, Y: 2}, a.Center())
	require.Len(t, a.Points(), 12)

	require.True(t, a.ContainsArea(geometry.NewArea(geometry.Point{X: -1, Y: 2}, 3, 2)))
	require.False(t, a.ContainsArea(geometry.NewArea(geometry.Point{X: -1, Y: 2}, 4, 2)))
	require.Panics(t, func() { geometry.NewArea(geometry.Point{}, -1, 2) })
}

func TestArea_FromPoints(t *testing.T) {
	a := geometry.FromPoints([]geometry.Point{{X: 5, Y: 2}, {X: 1, Y: 7}, {X: 3, Y: 3}})
	require.Equal(t, geometry.NewArea(geometry.Point{X: 1, Y: 2}, 5, 6), a)
	require.Panics(t, func() { geometry.FromPoints(nil) })
}

func TestArea_Normalize(t *testing.T) {
	a := geometry.NewArea(geometry.Point{X: -3, Y: 9}, 5, 8)
	n := a.NormalizeStepRail()
	require.Equal(t, geometry.NewArea(geometry.Point{X: -8, Y: 8}, 16, 16), n)
	for _, c := range n.Corners() {
		require.True(t, c.IsStepRail(), "corner %s", c)
	}
	require.True(t, n.ContainsArea(a))

	e := a.NormalizeEntity()
	require.Equal(t, geometry.NewArea(geometry.Point{X: -3, Y: 9}, 6, 9), e)

	// Already aligned areas are unchanged.
	require.Equal(t, n, n.NormalizeStepRail())
}

func TestArea_ExpandAndClamp(t *testing.T) {
	a := geometry.NewArea(geometry.Point{X: 0, Y: 0}, 8, 8)
	require.Equal(t, geometry.NewArea(geometry.Point{X: -8, Y: -8}, 24, 24), a.Expand(8))
	require.Equal(t, geometry.NewArea(geometry.Point{X: 5, Y: 5}, 0, 0), a.Expand(-5))

	big := geometry.NewArea(geometry.Point{X: -100, Y: -4}, 300, 8)
	require.Equal(t, geometry.NewArea(geometry.Point{X: -64, Y: -4}, 128, 8), big.NormalizeWithinRadius(64))
}
