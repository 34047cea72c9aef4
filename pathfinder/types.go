package pathfinder

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheLQ/facto-loop-miner-sub001/config"
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
	"github.com/TheLQ/facto-loop-miner-sub001/workpool"
)

// Sentinel errors.
var (
	// ErrNoPath indicates the limit area was exhausted without reaching the goal.
	ErrNoPath = errors.New("pathfinder: no path within limit")

	// ErrStartBlocked indicates the start link itself cannot be placed.
	ErrStartBlocked = errors.New("pathfinder: start link not placeable")

	// ErrExploreLimit indicates MaxExplored states were expanded without success.
	ErrExploreLimit = errors.New("pathfinder: explore limit reached")

	// ErrBadStrategy indicates an unknown strategy name.
	ErrBadStrategy = errors.New("pathfinder: unknown strategy")

	// ErrBadHeuristic indicates an unknown heuristic name.
	ErrBadHeuristic = errors.New("pathfinder: unknown heuristic")

	// ErrNoPool indicates the parallel strategy was selected without a pool.
	ErrNoPool = errors.New("pathfinder: parallel strategy needs a pool")

	// ErrBadSectionSize indicates StraightSectionSize < 1.
	ErrBadSectionSize = errors.New("pathfinder: straight section size must be positive")
)

// Options configures a Pathfinder.
type Options struct {
	Cost        config.CostTunables
	Strategy    string
	Heuristic   string
	MaxExplored int // 0 = unbounded
	MaxDepth    int // parallel strategy only
	Pool        *workpool.Pool
	Logger      *slog.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions mirrors config.Default with no pool and slog.Default.
func DefaultOptions() Options {
	d := config.Default()
	return Options{
		Cost:        d.Cost,
		Strategy:    d.Search.Strategy,
		Heuristic:   d.Search.Heuristic,
		MaxExplored: d.Search.MaxExplored,
		MaxDepth:    d.Search.MaxDepth,
		Logger:      slog.Default(),
	}
}

// WithTunables copies the cost and search sections of t.
func WithTunables(t config.Tunables) Option {
	return func(o *Options) {
		o.Cost = t.Cost
		o.Strategy = t.Search.Strategy
		o.Heuristic = t.Search.Heuristic
		o.MaxExplored = t.Search.MaxExplored
		o.MaxDepth = t.Search.MaxDepth
	}
}

// WithCost replaces the cost units.
func WithCost(c config.CostTunables) Option { return func(o *Options) { o.Cost = c } }

// WithStrategy selects config.StrategyBestFirst or config.StrategyParallel.
func WithStrategy(s string) Option { return func(o *Options) { o.Strategy = s } }

// WithHeuristic selects config.HeuristicConstant or config.HeuristicManhattan.
func WithHeuristic(h string) Option { return func(o *Options) { o.Heuristic = h } }

// WithMaxExplored caps expanded states; 0 removes the cap.
func WithMaxExplored(n int) Option { return func(o *Options) { o.MaxExplored = n } }

// WithMaxDepth caps moves per path for the parallel strategy.
func WithMaxDepth(n int) Option { return func(o *Options) { o.MaxDepth = n } }

// WithPool sets the pool the parallel strategy fans out on. Callers that
// run Find on the same pool are fine: the collector runs queued branches.
func WithPool(p *workpool.Pool) Option { return func(o *Options) { o.Pool = p } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// Request is one search: from Start to a link with End's pose, every
// footprint inside Limit. A zero Limit means the whole surface.
type Request struct {
	Start, End raillink.Link
	Limit      geometry.Area
}

// Result is a found path.
type Result struct {
	Links    []raillink.Link
	Cost     int
	Explored int
}

// FailureError reports an unreachable goal. Explored lists the settled
// links of a best_first search, or the deepest branch the parallel
// strategy examined.
type FailureError struct {
	Start, End raillink.Link
	Explored   []raillink.Link
	Err        error
}

// Error implements error.
func (e *FailureError) Error() string {
	return fmt.Sprintf("%v: %s -> %s after %d states", e.Err, e.Start, e.End.Key(), len(e.Explored))
}

// Unwrap exposes the sentinel.
func (e *FailureError) Unwrap() error { return e.Err }
