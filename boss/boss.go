package boss

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/TheLQ/facto-loop-miner-sub001/candidates"
	"github.com/TheLQ/facto-loop-miner-sub001/config"
	"github.com/TheLQ/facto-loop-miner-sub001/pathfinder"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
	"github.com/TheLQ/facto-loop-miner-sub001/workpool"
)

// Boss runs batches with fixed options. Safe for concurrent use as long as
// concurrent runs are given different surfaces.
type Boss struct {
	finder Finder
	opts   Options
}

// New validates the options and returns a Boss.
func New(finder Finder, opts ...Option) (*Boss, error) {
	if finder == nil {
		return nil, ErrNilFinder
	}
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.Mode {
	case config.ModeSequential, config.ModePooled:
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadMode, cfg.Mode)
	}
	if cfg.Oversubscription <= 0 {
		cfg.Oversubscription = workpool.Oversubscription
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Boss{finder: finder, opts: cfg}, nil
}

// Options returns a copy of the effective options.
func (b *Boss) Options() Options { return b.opts }

// outcome is what one batch left behind; exactly one of paths and fail is set.
type outcome struct {
	paths []surface.MinePath
	cost  int
	fail  *BatchFailure
}

// Plan generates every route for mines and executes them.
// Mines without a buildable entry fail the run with *AllFailedError
// attributed to those mines.
func (b *Boss) Plan(ctx context.Context, surf *surface.Surface, mines []surface.MineLocation) (*Success, error) {
	batch, err := candidates.Generate(surf.Pixels(), mines, b.opts.EntryHeading)
	if err == nil {
		return b.Execute(ctx, surf, batch)
	}
	var ue *candidates.UnbuildableError
	if !errors.As(err, &ue) {
		return nil, err
	}

	all := &AllFailedError{RunID: uuid.New()}
	for _, m := range ue.Mines {
		all.Failures = append(all.Failures, &BatchFailure{Index: -1, Mine: m, Err: ue})
	}
	all.Tally = tally(all.Failures)
	b.opts.Logger.Warn("boss: unbuildable mines",
		slog.String("run_id", all.RunID.String()),
		slog.Int("mines", len(ue.Mines)),
		slog.Any("error", ue))
	return nil, all
}

// Execute runs every route of batch against surf and commits the winner.
//
// Returns:
//
//   - *Success describing the committed batch, including the failures of
//     the batches that lost.
//   - ErrEmptyBatch when batch has no routes.
//   - ctx.Err() when ctx ends before every batch finished; nothing is
//     committed.
//   - *AllFailedError when no batch succeeded; nothing is committed.
//
// Complexity:
//
//   - Time: one Find per destination of every batch.
//   - Memory: one Surface.Clone per multi-route batch in flight.
//
// Notes:
//
//   - The Finder may share the pooled mode's pool; waiting goroutines run
//     queued tasks.
//   - A failed batch reports the paths it had found and the destinations
//     it never tried.
//
// Steps:
//  1. Run each batch (sequentially or pooled) into its own outcome slot.
//  2. Reduce: lowest total cost, ties to the lowest index.
//  3. Commit the winning paths to surf, or report *AllFailedError.
//
// surf is only read until step 3.
func (b *Boss) Execute(ctx context.Context, surf *surface.Surface, batch candidates.MineRouteBatch) (*Success, error) {
	if len(batch.Routes) == 0 {
		return nil, ErrEmptyBatch
	}
	runID := uuid.New()
	ctx, span := tracer.Start(ctx, "boss.Execute",
		trace.WithAttributes(
			attribute.String("run_id", runID.String()),
			attribute.String("mode", b.opts.Mode),
			attribute.Int("batches", len(batch.Routes)),
		),
	)
	defer span.End()
	began := time.Now()
	defer func() {
		executeDuration.WithLabelValues(b.opts.Mode).Observe(time.Since(began).Seconds())
	}()
	executeBatches.Observe(float64(len(batch.Routes)))

	log := b.opts.Logger.With(slog.String("run_id", runID.String()))
	log.Info("boss: execute", slog.String("mode", b.opts.Mode), slog.Int("batches", len(batch.Routes)))

	// 1) Run.
	outcomes := make([]outcome, len(batch.Routes))
	run := func(i int) {
		outcomes[i] = b.runBatch(ctx, surf, i, batch.Routes[i])
	}
	if b.opts.Mode == config.ModePooled {
		b.runPooled(len(batch.Routes), run)
	} else {
		for i := range batch.Routes {
			run(i)
		}
	}
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// 2) Reduce.
	best := -1
	var failures []*BatchFailure
	for i, o := range outcomes {
		if o.fail != nil {
			failures = append(failures, o.fail)
			batchTotal.WithLabelValues("failure").Inc()
			log.Debug("boss: batch failed", slog.Int("batch", i), slog.Any("error", o.fail))
			continue
		}
		batchTotal.WithLabelValues("success").Inc()
		if best < 0 || o.cost < outcomes[best].cost {
			best = i
		}
	}

	if best < 0 {
		all := &AllFailedError{RunID: runID, Attempted: len(outcomes), Tally: tally(failures), Failures: failures}
		span.RecordError(all)
		span.SetStatus(codes.Error, ErrAllFailed.Error())
		log.Warn("boss: every batch failed", slog.Int("batches", len(outcomes)), slog.Any("error", all))
		return nil, all
	}

	// 3) Commit.
	win := outcomes[best]
	for _, p := range win.paths {
		surf.AddMinePath(p)
	}
	span.SetAttributes(attribute.Int("winner", best), attribute.Int("cost", win.cost))
	span.SetStatus(codes.Ok, "")
	log.Info("boss: committed",
		slog.Int("batch", best),
		slog.Int("cost", win.cost),
		slog.Int("paths", len(win.paths)),
		slog.Int("failed", len(failures)))

	return &Success{
		RunID:      runID,
		BatchIndex: best,
		Route:      batch.Routes[best],
		Paths:      win.paths,
		Cost:       win.cost,
		Attempted:  len(outcomes),
		Failures:   failures,
	}, nil
}

// runPooled runs n tasks on the configured pool, or a run-scoped one, and
// waits for all of them, running queued pool tasks while it waits. A task a
// closed pool refuses runs inline.
func (b *Boss) runPooled(n int, run func(int)) {
	pool := b.opts.Pool
	if pool == nil {
		pool = workpool.New(workpool.SizeFor(b.opts.Oversubscription))
		defer pool.Close()
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		task := func() {
			defer wg.Done()
			run(i)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	pool.HelpUntil(done)
}

// runBatch connects every destination of route in order.
func (b *Boss) runBatch(ctx context.Context, shared *surface.Surface, index int, route candidates.MineRoute) outcome {
	ctx, span := tracer.Start(ctx, "boss.batch",
		trace.WithAttributes(
			attribute.Int("batch", index),
			attribute.Int("routes", len(route.Destinations)),
		),
	)
	defer span.End()

	if len(route.Destinations) == 0 {
		err := &BatchFailure{Index: index, Err: ErrEmptyRoute}
		span.SetStatus(codes.Error, err.Error())
		return outcome{fail: err}
	}

	// Multi-route batches write to a private copy.
	var (
		work  *surface.Surface
		cells surface.PixelReader = shared.Pixels()
	)
	if len(route.Destinations) > 1 {
		work = shared.Clone()
		cells = work.Pixels()
	}

	out := outcome{paths: make([]surface.MinePath, 0, len(route.Destinations))}
	for j, d := range route.Destinations {
		req := pathfinder.Request{Start: b.opts.Base.Start(j), End: d.Entry, Limit: b.opts.Limit}
		res, err := b.finder.Find(ctx, cells, req)
		if err != nil {
			fail := &BatchFailure{
				Index:     index,
				Route:     j,
				Mine:      d.Mine,
				Found:     out.paths,
				Remaining: route.Destinations[j+1:],
				Err:       err,
			}
			span.RecordError(fail)
			span.SetStatus(codes.Error, fail.Error())
			return outcome{fail: fail}
		}
		path := surface.MinePath{Mine: d.Mine, Links: res.Links, Cost: res.Cost}
		if work != nil {
			work.AddMinePath(path)
		}
		out.paths = append(out.paths, path)
		out.cost += res.Cost
	}
	span.SetAttributes(attribute.Int("cost", out.cost))
	span.SetStatus(codes.Ok, "")
	return out
}

// tally counts failures per mine: most failures first, then first seen.
func tally(failures []*BatchFailure) []MineTally {
	var out []MineTally
	at := make(map[string]int)
	for _, f := range failures {
		key := f.Mine.Key()
		if i, ok := at[key]; ok {
			out[i].Count++
			continue
		}
		at[key] = len(out)
		out = append(out, MineTally{Mine: f.Mine, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b MineTally) int { return b.Count - a.Count })
	return out
}
