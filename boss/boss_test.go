package boss_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheLQ/facto-loop-miner-sub001/boss"
	"github.com/TheLQ/facto-loop-miner-sub001/candidates"
	"github.com/TheLQ/facto-loop-miner-sub001/config"
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/pathfinder"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
	"github.com/TheLQ/facto-loop-miner-sub001/workpool"
)

func newSurface(t *testing.T, radius int) *surface.Surface {
	t.Helper()
	s, err := surface.New(radius)
	require.NoError(t, err)
	return s
}

func block(x, y, w, h int) []geometry.Point {
	return geometry.NewArea(geometry.Point{X: x, Y: y}, w, h).Points()
}

func east(x, y int) raillink.Link {
	return raillink.New(geometry.Point{X: x, Y: y}, geometry.East, raillink.Straight)
}

// mineAt records a small coal patch away from the rail corridor and
// returns it as a mine. Only its identity matters to these tests.
func mineAt(s *surface.Surface, x, y int) surface.MineLocation {
	i := s.AddPatch(surface.Coal, block(x, y, 2, 2))
	return surface.NewMineLocation(s.Patches(), i)
}

func dest(m surface.MineLocation, entry raillink.Link) candidates.MineDestination {
	return candidates.MineDestination{Mine: m, Entry: entry}
}

func route(ds ...candidates.MineDestination) candidates.MineRoute {
	return candidates.MineRoute{Destinations: ds}
}

func straightFinder(t *testing.T) *pathfinder.Pathfinder {
	t.Helper()
	pf, err := pathfinder.New(pathfinder.WithTunables(config.StraightOnly()))
	require.NoError(t, err)
	return pf
}

func newBoss(t *testing.T, f boss.Finder, opts ...boss.Option) *boss.Boss {
	t.Helper()
	b, err := boss.New(f, opts...)
	require.NoError(t, err)
	return b
}

// spyFinder flags any search that runs after the shared surface changed.
type spyFinder struct {
	inner  boss.Finder
	shared *surface.Surface
	calls  atomic.Int64
	dirty  atomic.Bool
}

func (f *spyFinder) Find(ctx context.Context, cells surface.PixelReader, req pathfinder.Request) (pathfinder.Result, error) {
	f.calls.Add(1)
	if len(f.shared.Rails().MinePaths()) != 0 {
		f.dirty.Store(true)
	}
	return f.inner.Find(ctx, cells, req)
}

var modes = []string{config.ModeSequential, config.ModePooled}

// ------------------------------------------------------------------------
// 1. Single-route batches
// ------------------------------------------------------------------------

func TestExecute_SingleRouteModeIndependent(t *testing.T) {
	base := newSurface(t, 128)
	m := mineAt(base, 100, 100)
	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{route(dest(m, east(56, 0)))}}

	pool := workpool.New(4)
	defer pool.Close()

	var results []*boss.Success
	for _, mode := range modes {
		s := base.Clone()
		b := newBoss(t, straightFinder(t), boss.WithMode(mode), boss.WithPool(pool))
		res, err := b.Execute(context.Background(), s, batch)
		require.NoError(t, err, mode)
		require.Len(t, s.Rails().MinePaths(), 1, mode)
		results = append(results, res)
	}
	require.Equal(t, 64, results[0].Cost)
	require.Equal(t, results[0].Cost, results[1].Cost)
	require.Equal(t, results[0].Paths, results[1].Paths)
	require.NotEqual(t, results[0].RunID, results[1].RunID)
}

// ------------------------------------------------------------------------
// 2. Multi-route batches are isolated
// ------------------------------------------------------------------------

func TestExecute_MultiRouteBatchesIsolated(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			s := newSurface(t, 128)
			ma, mb := mineAt(s, 100, 100), mineAt(s, 100, -100)

			// Both batches leave on lane 0 first. Had batch 0 committed to
			// the shared surface, batch 1 could not even place its start.
			batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
				route(dest(ma, east(56, 0)), dest(mb, east(56, 16))),
				route(dest(ma, east(64, 0)), dest(mb, east(64, 16))),
			}}
			spy := &spyFinder{inner: straightFinder(t), shared: s}
			b := newBoss(t, spy, boss.WithMode(mode))

			res, err := b.Execute(context.Background(), s, batch)
			require.NoError(t, err)
			require.Empty(t, res.Failures)
			require.Equal(t, 2, res.Attempted)
			require.Equal(t, 0, res.BatchIndex)
			require.Equal(t, 128, res.Cost)
			require.EqualValues(t, 4, spy.calls.Load())
			require.False(t, spy.dirty.Load(), "shared surface written before commit")

			// The winner is committed, in route order.
			paths := s.Rails().MinePaths()
			require.Len(t, paths, 2)
			require.Equal(t, ma.Key(), paths[0].Mine.Key())
			require.Equal(t, mb.Key(), paths[1].Mine.Key())

			// Now lane 0 really is taken.
			_, err = straightFinder(t).Find(context.Background(), s.Pixels(),
				pathfinder.Request{Start: east(0, 0), End: east(64, 0)})
			require.ErrorIs(t, err, pathfinder.ErrStartBlocked)
		})
	}
}

// A rail committed by an earlier route of a batch is an obstacle to the
// later routes of that batch.
func TestExecute_EarlierRouteBlocksLaterRoute(t *testing.T) {
	for _, mode := range modes {
		t.Run(mode, func(t *testing.T) {
			s := newSurface(t, 128)
			m1, m2, m3 := mineAt(s, 100, 100), mineAt(s, 100, -100), mineAt(s, -100, 100)

			// Batch 0 route 0 turns South at x=24 and runs down to y=48,
			// walling lane 1 in before it can reach x=24.
			down := raillink.New(geometry.Point{X: 24, Y: 40}, geometry.South, raillink.Straight)
			batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
				route(dest(m1, down), dest(m2, east(56, 16)), dest(m3, east(56, 32))),
				route(dest(m1, east(56, 0)), dest(m2, east(56, 16))),
			}}

			var res *boss.Success
			require.NotPanics(t, func() {
				var err error
				res, err = newBoss(t, straightFinder(t), boss.WithMode(mode)).Execute(context.Background(), s, batch)
				require.NoError(t, err)
			})
			require.Equal(t, 1, res.BatchIndex)
			require.Equal(t, 128, res.Cost)
			require.NoError(t, s.Check())
			require.Len(t, s.Rails().MinePaths(), 2)

			require.Len(t, res.Failures, 1)
			fail := res.Failures[0]
			require.ErrorIs(t, fail, pathfinder.ErrNoPath)
			assert.Equal(t, 0, fail.Index)
			assert.Equal(t, 1, fail.Route)
			assert.Equal(t, m2.Key(), fail.Mine.Key())

			// What the batch had built and what it never tried.
			require.Len(t, fail.Found, 1)
			assert.Equal(t, m1.Key(), fail.Found[0].Mine.Key())
			assert.Equal(t, 72, fail.Found[0].Cost)
			assert.Equal(t, down.Key(), fail.Found[0].Links[len(fail.Found[0].Links)-1].Key())
			require.Len(t, fail.Remaining, 1)
			assert.Equal(t, m3.Key(), fail.Remaining[0].Mine.Key())
		})
	}
}

// The pathfinder fans out on the same pool the batches run on. With two
// workers both held by batches, waiting goroutines must run the search
// branches themselves.
func TestExecute_FinderSharesBossPool(t *testing.T) {
	pool := workpool.New(2)
	defer pool.Close()

	pf, err := pathfinder.New(
		pathfinder.WithTunables(config.StraightOnly()),
		pathfinder.WithStrategy(config.StrategyParallel),
		pathfinder.WithPool(pool),
		pathfinder.WithMaxDepth(10),
	)
	require.NoError(t, err)

	s := newSurface(t, 128)
	ma, mb := mineAt(s, 100, 100), mineAt(s, 100, -100)
	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
		route(dest(ma, east(56, 0))),
		route(dest(mb, east(56, 0))),
	}}
	limit := geometry.NewArea(geometry.Point{X: 0, Y: -1}, 72, 2)
	b := newBoss(t, pf, boss.WithMode(config.ModePooled), boss.WithPool(pool), boss.WithLimit(limit))

	type outcome struct {
		res *boss.Success
		err error
	}
	got := make(chan outcome, 1)
	go func() {
		res, err := b.Execute(context.Background(), s, batch)
		got <- outcome{res, err}
	}()

	select {
	case o := <-got:
		require.NoError(t, o.err)
		require.Empty(t, o.res.Failures)
		require.Equal(t, 0, o.res.BatchIndex)
		require.Equal(t, 64, o.res.Cost)
	case <-time.After(10 * time.Second):
		t.Fatal("Execute on a shared pool did not finish")
	}
}

// ------------------------------------------------------------------------
// 3. Reduction
// ------------------------------------------------------------------------

func TestExecute_TieGoesToLowestIndex(t *testing.T) {
	base := newSurface(t, 128)
	ma, mb := mineAt(base, 100, 100), mineAt(base, 100, -100)
	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
		route(dest(ma, east(56, 0))),
		route(dest(mb, east(56, 0))),
	}}
	pool := workpool.New(4)
	defer pool.Close()
	b := newBoss(t, straightFinder(t), boss.WithPool(pool))

	for i := 0; i < 10; i++ {
		res, err := b.Execute(context.Background(), base.Clone(), batch)
		require.NoError(t, err)
		require.Equal(t, 0, res.BatchIndex)
		require.Equal(t, ma.Key(), res.Paths[0].Mine.Key())
	}
}

func TestExecute_LowestCostWins(t *testing.T) {
	s := newSurface(t, 128)
	ma, mb := mineAt(s, 100, 100), mineAt(s, 100, -100)
	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
		route(dest(ma, east(64, 0))),
		route(dest(mb, east(56, 0))),
	}}
	res, err := newBoss(t, straightFinder(t)).Execute(context.Background(), s, batch)
	require.NoError(t, err)
	require.Equal(t, 1, res.BatchIndex)
	require.Equal(t, 64, res.Cost)
	require.Equal(t, batch.Routes[1], res.Route)
}

func TestExecute_EmptyRouteFailsOnlyItsBatch(t *testing.T) {
	s := newSurface(t, 128)
	m := mineAt(s, 100, 100)
	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
		route(),
		route(dest(m, east(56, 0))),
	}}
	res, err := newBoss(t, straightFinder(t), boss.WithMode(config.ModeSequential)).
		Execute(context.Background(), s, batch)
	require.NoError(t, err)
	require.Equal(t, 1, res.BatchIndex)
	require.Len(t, res.Failures, 1)
	require.ErrorIs(t, res.Failures[0], boss.ErrEmptyRoute)
}

// ------------------------------------------------------------------------
// 4. Failures
// ------------------------------------------------------------------------

func TestExecute_AllFailedTally(t *testing.T) {
	s := newSurface(t, 128)
	for _, p := range block(48, -8, 24, 16) {
		s.PixelsMut().Set(p, surface.Water)
	}
	mx, my := mineAt(s, 100, 100), mineAt(s, 100, -100)
	mz, mw := mineAt(s, -100, 100), mineAt(s, -100, -100)

	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{
		route(dest(mx, east(56, 0))),
		route(dest(my, east(56, 16)), dest(mx, east(56, 0))),
		route(dest(mz, east(48, 0))),
		route(dest(mw, east(56, -8))),
	}}
	limit := geometry.NewArea(geometry.Point{X: -8, Y: -40}, 96, 80)
	b := newBoss(t, straightFinder(t), boss.WithLimit(limit))

	res, err := b.Execute(context.Background(), s, batch)
	require.Nil(t, res)
	require.ErrorIs(t, err, boss.ErrAllFailed)
	require.ErrorIs(t, err, pathfinder.ErrNoPath)

	var all *boss.AllFailedError
	require.True(t, errors.As(err, &all))
	require.Equal(t, 4, all.Attempted)
	require.Len(t, all.Failures, 4)
	require.Len(t, all.Tally, 3)
	assert.Equal(t, mx.Key(), all.Tally[0].Mine.Key())
	assert.Equal(t, 2, all.Tally[0].Count)
	assert.Equal(t, mz.Key(), all.Tally[1].Mine.Key())
	assert.Equal(t, mw.Key(), all.Tally[2].Mine.Key())
	assert.Equal(t, 1, all.Failures[1].Route)
	require.Len(t, all.Failures[1].Found, 1)
	assert.Equal(t, my.Key(), all.Failures[1].Found[0].Mine.Key())
	assert.Empty(t, all.Failures[1].Remaining)
	assert.Empty(t, all.Failures[0].Found)

	var bf *boss.BatchFailure
	require.True(t, errors.As(err, &bf))
	require.Equal(t, mx.Key(), bf.Mine.Key())

	// Nothing was committed, not even batch 1's first route.
	require.Empty(t, s.Rails().MinePaths())
}

func TestExecute_Cancelled(t *testing.T) {
	s := newSurface(t, 64)
	m := mineAt(s, 40, 40)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	batch := candidates.MineRouteBatch{Routes: []candidates.MineRoute{route(dest(m, east(40, 0)))}}
	_, err := newBoss(t, straightFinder(t)).Execute(ctx, s, batch)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, s.Rails().MinePaths())
}

func TestExecute_EmptyBatch(t *testing.T) {
	s := newSurface(t, 64)
	_, err := newBoss(t, straightFinder(t)).Execute(context.Background(), s, candidates.MineRouteBatch{})
	require.ErrorIs(t, err, boss.ErrEmptyBatch)
}

// ------------------------------------------------------------------------
// 5. Plan
// ------------------------------------------------------------------------

func TestPlan_ConnectsMine(t *testing.T) {
	s := newSurface(t, 128)
	i := s.AddPatch(surface.IronOre, block(40, 40, 4, 4))
	m := surface.NewMineLocation(s.Patches(), i)

	res, err := newBoss(t, straightFinder(t)).Plan(context.Background(), s, []surface.MineLocation{m})
	require.NoError(t, err)
	require.Equal(t, 4, res.Attempted)
	require.Len(t, res.Paths, 1)

	links := res.Paths[0].Links
	require.Equal(t, east(0, 0), links[0])
	require.Equal(t, res.Route.Destinations[0].Entry.Key(), links[len(links)-1].Key())
	require.Len(t, s.Rails().MinePaths(), 1)
	require.NoError(t, s.Check())
}

func TestPlan_UnbuildableMineIsAFailure(t *testing.T) {
	s := newSurface(t, 128)
	for _, p := range block(-16, -16, 48, 48) {
		s.PixelsMut().Set(p, surface.Water)
	}
	i := s.AddPatch(surface.Stone, block(0, 0, 4, 4))
	m := surface.NewMineLocation(s.Patches(), i)

	res, err := newBoss(t, straightFinder(t)).Plan(context.Background(), s, []surface.MineLocation{m})
	require.Nil(t, res)
	require.ErrorIs(t, err, boss.ErrAllFailed)
	require.ErrorIs(t, err, candidates.ErrUnbuildable)

	var all *boss.AllFailedError
	require.True(t, errors.As(err, &all))
	require.Len(t, all.Tally, 1)
	require.Equal(t, m.Key(), all.Tally[0].Mine.Key())
	require.Equal(t, -1, all.Failures[0].Index)
	require.Empty(t, s.Rails().MinePaths())
}

// ------------------------------------------------------------------------
// 6. Construction
// ------------------------------------------------------------------------

func TestNew(t *testing.T) {
	_, err := boss.New(nil)
	require.ErrorIs(t, err, boss.ErrNilFinder)

	_, err = boss.New(straightFinder(t), boss.WithMode("threads"))
	require.ErrorIs(t, err, boss.ErrBadMode)

	tun := config.Default()
	tun.Boss.Mode = config.ModeSequential
	b := newBoss(t, straightFinder(t), boss.WithTunables(tun))
	require.Equal(t, config.ModeSequential, b.Options().Mode)
	require.Equal(t, geometry.East, b.Options().Base.Heading)
}
