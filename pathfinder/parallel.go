package pathfinder

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
	"github.com/TheLQ/facto-loop-miner-sub001/search"
	"github.com/TheLQ/facto-loop-miner-sub001/workpool"
)

// move is one search state of the parallel strategy: the links one
// continuation places together.
type move struct {
	links []raillink.Link
}

func (m move) last() raillink.Link { return m.links[len(m.links)-1] }

// flatten concatenates the links of path.
func flatten(path []move) []raillink.Link {
	n := 0
	for _, m := range path {
		n += len(m.links)
	}
	out := make([]raillink.Link, 0, n)
	for _, m := range path {
		out = append(out, m.links...)
	}
	return out
}

// runParallel fans the exploration out on pool through search.Run.
// A branch never revisits a pose of its own history nor overlaps its own
// footprint, and stops at MaxDepth moves, which keeps the tree finite.
// On failure the deepest branch examined is reported as explored.
func (s *query) runParallel(ctx context.Context, pool *workpool.Pool) (Result, error) {
	if !s.placeable(s.req.Start) {
		return Result{}, s.failure(nil, ErrStartBlocked)
	}

	var expanded atomic.Int64
	var capped atomic.Bool
	var (
		mu      sync.Mutex
		deepest []raillink.Link
	)
	lookback := s.opts.Cost.MultiTurnLookback

	successors := func(path []move) []search.Step[move, int] {
		n := expanded.Add(1)
		if s.opts.MaxExplored > 0 && n > int64(s.opts.MaxExplored) {
			capped.Store(true)
			return nil
		}
		history := flatten(path)
		mu.Lock()
		if len(history) > len(deepest) {
			deepest = history
		}
		mu.Unlock()
		if len(path) >= s.opts.MaxDepth {
			return nil
		}

		poses := make(map[raillink.Pose]struct{}, len(history)+1)
		poses[s.req.Start.Pose()] = struct{}{}
		occupied := make(map[geometry.Point]struct{})
		for _, l := range history {
			poses[l.Key()] = struct{}{}
			for _, p := range l.Footprint() {
				occupied[p] = struct{}{}
			}
		}

		var out []search.Step[move, int]
		for _, chain := range s.moves(history[len(history)-1].Key()) {
			if !fresh(chain, poses, occupied) {
				continue
			}
			cost := 0
			h := history[:len(history):len(history)]
			for _, l := range chain {
				cost += s.model.step(l, turnsIn(h, lookback))
				h = append(h, l)
			}
			out = append(out, search.Step[move, int]{State: move{links: chain}, Cost: cost})
		}
		return out
	}
	success := func(m move) bool { return m.last().Key() == s.goal }

	seed := move{links: []raillink.Link{s.req.Start}}
	res, found, err := search.Run(ctx, pool, seed, successors, success)
	explored := int(expanded.Load())
	if err != nil {
		return Result{Explored: explored}, err
	}
	if !found {
		reason := ErrNoPath
		if capped.Load() {
			reason = ErrExploreLimit
		}
		return Result{Explored: explored}, s.failure(deepest, reason)
	}
	return Result{
		Links:    flatten(res.Path),
		Cost:     s.model.step(s.req.Start, 0) + res.Cost,
		Explored: explored,
	}, nil
}

// fresh reports whether chain avoids the poses and cells already used.
func fresh(chain []raillink.Link, poses map[raillink.Pose]struct{}, occupied map[geometry.Point]struct{}) bool {
	for _, l := range chain {
		if _, ok := poses[l.Key()]; ok {
			return false
		}
		for _, p := range l.Footprint() {
			if _, ok := occupied[p]; ok {
				return false
			}
		}
	}
	return true
}
