package pathfinder

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TheLQ/facto-loop-miner-sub001/config"
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
)

// Pathfinder runs searches with fixed options. Safe for concurrent use;
// each Find keeps its own state.
type Pathfinder struct {
	opts Options
}

// New validates the options and returns a Pathfinder.
//
// Preconditions (in order):
//  1. StraightSectionSize >= 1 (ErrBadSectionSize).
//  2. Strategy is known (ErrBadStrategy).
//  3. Heuristic is known (ErrBadHeuristic).
//  4. The parallel strategy has a pool (ErrNoPool).
func New(opts ...Option) (*Pathfinder, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Cost.StraightSectionSize < 1 {
		return nil, ErrBadSectionSize
	}
	switch cfg.Strategy {
	case config.StrategyBestFirst, config.StrategyParallel:
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadStrategy, cfg.Strategy)
	}
	switch cfg.Heuristic {
	case config.HeuristicConstant, config.HeuristicManhattan:
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadHeuristic, cfg.Heuristic)
	}
	if cfg.Strategy == config.StrategyParallel && cfg.Pool == nil {
		return nil, ErrNoPool
	}
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = config.Default().Search.MaxDepth
	}
	return &Pathfinder{opts: cfg}, nil
}

// Options returns a copy of the effective options.
func (pf *Pathfinder) Options() Options { return pf.opts }

// Find searches cells for a path from req.Start to req.End's pose.
// cells is only read.
//
// Returns:
//
//   - Result: the links from req.Start to the goal, their total cost and
//     the number of states expanded.
//   - err: *FailureError wrapping ErrStartBlocked, ErrNoPath or
//     ErrExploreLimit; ctx.Err() on cancellation.
//
// Complexity:
//
//   - best_first: O(N log N) time and O(N) space for N reachable poses
//     inside req.Limit.
//   - parallel: bounded by MaxDepth and MaxExplored; each branch copies
//     its history.
//
// Notes:
//
//   - best_first returns a cheapest path. parallel returns the cheapest
//     path it reported, which need not be the cheapest overall.
//   - The parallel strategy may run on a pool whose workers call Find.
func (pf *Pathfinder) Find(ctx context.Context, cells surface.PixelReader, req Request) (Result, error) {
	ctx, span := tracer.Start(ctx, "pathfinder.Find",
		trace.WithAttributes(
			attribute.String("strategy", pf.opts.Strategy),
			attribute.String("start", req.Start.String()),
			attribute.String("end", req.End.String()),
		),
	)
	defer span.End()
	began := time.Now()

	s := pf.newQuery(cells, req)
	var (
		res Result
		err error
	)
	if pf.opts.Strategy == config.StrategyParallel {
		res, err = s.runParallel(ctx, pf.opts.Pool)
	} else {
		res, err = s.runBestFirst(ctx)
	}

	recordFind(ctx, pf.opts.Strategy, time.Since(began), res.Explored, err == nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		pf.opts.Logger.Debug("pathfinder: no path",
			slog.String("start", req.Start.String()),
			slog.String("end", req.End.String()),
			slog.Int("explored", res.Explored),
			slog.Any("error", err))
		return Result{}, err
	}
	span.SetAttributes(attribute.Int("cost", res.Cost), attribute.Int("links", len(res.Links)))
	span.SetStatus(codes.Ok, "")
	return res, nil
}

// query is the per-Find state shared by both strategies.
type query struct {
	opts  Options
	cells surface.PixelReader
	req   Request
	limit geometry.Area
	goal  raillink.Pose
	model costModel
}

func (pf *Pathfinder) newQuery(cells surface.PixelReader, req Request) *query {
	limit := req.Limit
	if limit == (geometry.Area{}) {
		r := cells.Radius()
		limit = geometry.Area{Start: geometry.Point{X: -r, Y: -r}, Width: 2 * r, Height: 2 * r}
	}
	goal := req.End.Key()
	return &query{
		opts:  pf.opts,
		cells: cells,
		req:   req,
		limit: limit,
		goal:  goal,
		model: costModel{
			units:     pf.opts.Cost,
			goal:      goal,
			manhattan: pf.opts.Heuristic == config.HeuristicManhattan,
		},
	}
}

// placeable reports whether every footprint cell of l is inside the limit,
// on the surface and buildable.
func (s *query) placeable(l raillink.Link) bool {
	for _, p := range l.Footprint() {
		if !s.limit.Contains(p) || !s.cells.InBounds(p) || !s.cells.PixelAt(p).IsBuildable() {
			return false
		}
	}
	return true
}

// moves lists the legal continuations from p, one per kind. A straight
// move places StraightSectionSize sections, or fewer if it reaches the goal.
func (s *query) moves(p raillink.Pose) [][]raillink.Link {
	out := make([][]raillink.Link, 0, len(raillink.Kinds))
	for _, k := range raillink.Kinds {
		n := 1
		if k == raillink.Straight {
			n = s.opts.Cost.StraightSectionSize
		}
		chain := make([]raillink.Link, 0, n)
		at := p
		for i := 0; i < n; i++ {
			l := raillink.FromPose(at, k)
			if !s.placeable(l) {
				break
			}
			chain = append(chain, l)
			at = l.Next()
			if at == s.goal {
				break
			}
		}
		if len(chain) == n || (len(chain) > 0 && at == s.goal) {
			out = append(out, chain)
		}
	}
	return out
}

// failure builds the typed failure for this search.
func (s *query) failure(explored []raillink.Link, err error) *FailureError {
	return &FailureError{Start: s.req.Start, End: s.req.End, Explored: explored, Err: err}
}

// ------------------------------------------------------------------------
// best_first
// ------------------------------------------------------------------------

// node is one link on a search tree branch.
type node struct {
	link   raillink.Link
	parent *node
	cost   int
}

// recentTurns counts turns among the lookback nearest ancestors, n included.
func (n *node) recentTurns(lookback int) int {
	count := 0
	for cur, i := n, 0; cur != nil && i < lookback; cur, i = cur.parent, i+1 {
		if cur.link.IsTurn() {
			count++
		}
	}
	return count
}

// path returns the links from the root to n.
func (n *node) path() []raillink.Link {
	var out []raillink.Link
	for cur := n; cur != nil; cur = cur.parent {
		out = append(out, cur.link)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// runBestFirst is uniform-cost / A* search over poses with lazy decrease-key.
func (s *query) runBestFirst(ctx context.Context) (Result, error) {
	// 1) The start link must itself be placeable.
	if !s.placeable(s.req.Start) {
		return Result{}, s.failure(nil, ErrStartBlocked)
	}

	var (
		pq       nodePQ
		seq      uint64
		explored []raillink.Link
	)
	settled := make(map[raillink.Pose]bool)
	best := make(map[raillink.Pose]int)
	push := func(n *node) {
		seq++
		heap.Push(&pq, &nodeItem{n: n, priority: n.cost + s.model.estimate(n.link.Key()), seq: seq})
	}

	// 2) Seed with the start link.
	root := &node{link: s.req.Start, cost: s.model.step(s.req.Start, 0)}
	best[root.link.Key()] = root.cost
	heap.Init(&pq)
	push(root)

	lookback := s.opts.Cost.MultiTurnLookback
	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		// 3) Pop the cheapest state; skip stale entries.
		n := heap.Pop(&pq).(*nodeItem).n
		key := n.link.Key()
		if settled[key] {
			continue
		}
		settled[key] = true
		explored = append(explored, n.link)

		// 4) Goal test on pose only.
		if key == s.goal {
			return Result{Links: n.path(), Cost: n.cost, Explored: len(explored)}, nil
		}
		if s.opts.MaxExplored > 0 && len(explored) >= s.opts.MaxExplored {
			return Result{Explored: len(explored)}, s.failure(explored, ErrExploreLimit)
		}

		// 5) Relax every legal move.
		for _, chain := range s.moves(key) {
			cur := n
			for _, l := range chain {
				cur = &node{link: l, parent: cur, cost: cur.cost + s.model.step(l, cur.recentTurns(lookback))}
			}
			next := cur.link.Key()
			if settled[next] {
				continue
			}
			if old, ok := best[next]; ok && cur.cost >= old {
				continue
			}
			best[next] = cur.cost
			push(cur)
		}
	}

	return Result{Explored: len(explored)}, s.failure(explored, ErrNoPath)
}

// nodeItem is a heap entry; seq keeps pops deterministic on equal priority.
type nodeItem struct {
	n        *node
	priority int
	seq      uint64
}

// nodePQ is a min-heap of *nodeItem by (priority, seq).
type nodePQ []*nodeItem

func (pq nodePQ) Len() int { return len(pq) }

func (pq nodePQ) Less(i, j int) bool {
	if pq[i].priority != pq[j].priority {
		return pq[i].priority < pq[j].priority
	}
	return pq[i].seq < pq[j].seq
}

func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}
