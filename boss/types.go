package boss

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/TheLQ/facto-loop-miner-sub001/candidates"
	"github.com/TheLQ/facto-loop-miner-sub001/config"
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/pathfinder"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
	"github.com/TheLQ/facto-loop-miner-sub001/workpool"
)

// Sentinel errors.
var (
	// ErrNilFinder indicates New was given no Finder.
	ErrNilFinder = errors.New("boss: finder is nil")

	// ErrBadMode indicates an unknown execution mode.
	ErrBadMode = errors.New("boss: unknown mode")

	// ErrEmptyBatch indicates Execute was given no routes.
	ErrEmptyBatch = errors.New("boss: batch has no routes")

	// ErrEmptyRoute indicates a route without destinations.
	ErrEmptyRoute = errors.New("boss: route has no destinations")

	// ErrAllFailed indicates no batch produced a complete set of paths.
	ErrAllFailed = errors.New("boss: every batch failed")
)

// Finder searches one rail path. *pathfinder.Pathfinder implements it.
type Finder interface {
	Find(ctx context.Context, cells surface.PixelReader, req pathfinder.Request) (pathfinder.Result, error)
}

// Options configures a Boss.
type Options struct {
	Mode             string
	Pool             *workpool.Pool
	Oversubscription float64
	Base             candidates.BaseSource
	EntryHeading     geometry.Direction
	Limit            geometry.Area // zero = whole surface
	Logger           *slog.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions runs pooled, leaves the base at the origin heading East
// with lanes to the South, and enters mines heading East.
func DefaultOptions() Options {
	d := config.Default()
	return Options{
		Mode:             d.Boss.Mode,
		Oversubscription: d.Boss.Oversubscription,
		Base:             candidates.BaseSource{Heading: geometry.East, Sign: 1},
		EntryHeading:     geometry.East,
		Logger:           slog.Default(),
	}
}

// WithTunables copies the boss section of t.
func WithTunables(t config.Tunables) Option {
	return func(o *Options) {
		o.Mode = t.Boss.Mode
		o.Oversubscription = t.Boss.Oversubscription
	}
}

// WithMode selects config.ModeSequential or config.ModePooled.
func WithMode(m string) Option { return func(o *Options) { o.Mode = m } }

// WithPool sets the pool batches run on in pooled mode. The caller owns
// and closes it. It may be the Finder's pool too.
func WithPool(p *workpool.Pool) Option { return func(o *Options) { o.Pool = p } }

// WithBase sets where route lanes start.
func WithBase(b candidates.BaseSource) Option { return func(o *Options) { o.Base = b } }

// WithEntryHeading sets the heading Plan's mine entries face.
func WithEntryHeading(d geometry.Direction) Option { return func(o *Options) { o.EntryHeading = d } }

// WithLimit bounds every search to a.
func WithLimit(a geometry.Area) Option { return func(o *Options) { o.Limit = a } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }

// Success is the committed winner of a run.
type Success struct {
	RunID      uuid.UUID
	BatchIndex int
	Route      candidates.MineRoute
	Paths      []surface.MinePath
	Cost       int
	Attempted  int
	Failures   []*BatchFailure
}

// BatchFailure names the mine that sank a batch. Index is -1 when the
// mine failed before any batch existed. Found holds the paths of the
// routes before Route; Remaining the destinations after it.
type BatchFailure struct {
	Index     int
	Route     int
	Mine      surface.MineLocation
	Found     []surface.MinePath
	Remaining []candidates.MineDestination
	Err       error
}

// Error implements error.
func (e *BatchFailure) Error() string {
	return fmt.Sprintf("boss: batch %d route %d %s: %v", e.Index, e.Route, e.Mine.Key(), e.Err)
}

// Unwrap exposes the search error.
func (e *BatchFailure) Unwrap() error { return e.Err }

// MineTally counts how many batches one mine sank.
type MineTally struct {
	Mine  surface.MineLocation
	Count int
}

// AllFailedError reports a run in which no batch succeeded. Tally is
// ordered by Count descending, then by first appearance.
type AllFailedError struct {
	RunID     uuid.UUID
	Attempted int
	Tally     []MineTally
	Failures  []*BatchFailure
}

// Error implements error.
func (e *AllFailedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: run %s, %d batches", ErrAllFailed, e.RunID, e.Attempted)
	for i, t := range e.Tally {
		if i == 0 {
			b.WriteString(", causes: ")
		} else {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s×%d", t.Mine.Key(), t.Count)
	}
	return b.String()
}

// Unwrap exposes ErrAllFailed and every batch failure.
func (e *AllFailedError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures)+1)
	out = append(out, ErrAllFailed)
	for _, f := range e.Failures {
		out = append(out, f)
	}
	return out
}
