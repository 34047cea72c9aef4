// Package search is a generic, successor-driven parallel search.
//
// A search starts from one state. Each branch holds the full path from the
// start, asks the successor function for the next (state, step cost) pairs
// and, for each of them in order:
//
//   - if the successor satisfies the success predicate, reports the extended
//     path and its accumulated cost to the collector and stops the branch;
//     later siblings are never evaluated;
//   - otherwise submits a new branch continuing from the extended path.
//
// A single collector, running on the caller goroutine, keeps the cheapest
// reported path. While it waits it runs queued pool tasks itself, so Run
// may be called from inside a task on the same pool. Equal costs resolve to the path whose successor indexes
// are lexicographically smallest, so the outcome never depends on which
// worker finished first.
//
// Every branch is a producer. The producer count is incremented before a
// branch is submitted and decremented when it finishes; the branch that
// brings it to zero sends a sentinel, after which the collector returns its
// best path or none.
//
// Results are sound but not exhaustively optimal: a branch stops at its
// first success, so cheaper paths through its unexplored siblings are
// never seen. The successor function must make the search finite, e.g. by
// refusing states already on the path.
//
// Cancellation: branches stop expanding once ctx is done; in-flight
// branches run to completion and Run returns ctx.Err().
package search

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/TheLQ/facto-loop-miner-sub001/workpool"
)

// ErrNilPool indicates Run was given no pool.
var ErrNilPool = errors.New("search: pool is nil")

// Number is the accumulated cost type.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Step is one successor with its incremental cost.
type Step[S any, C Number] struct {
	State S
	Cost  C
}

// SuccessorFunc expands the last state of path. path must not be retained
// or modified.
type SuccessorFunc[S any, C Number] func(path []S) []Step[S, C]

// SuccessFunc reports whether state ends the search.
type SuccessFunc[S any] func(state S) bool

// Result is a complete path and its accumulated cost.
type Result[S any, C Number] struct {
	Path []S
	Cost C
}

// message is either a reported success or the end sentinel.
type message[S any, C Number] struct {
	result Result[S, C]
	order  []int
	done   bool
}

// Run explores from start on pool and returns the cheapest reported path.
//
// Returns:
//
//   - best: the cheapest reported path, ties broken by successor order.
//   - found: false when no branch succeeded.
//   - err: ErrNilPool, a Submit error for the root branch, or ctx.Err().
//
// Complexity:
//
//   - Time: one successor call per branch; the branch count is bounded only
//     by what successors allows.
//   - Memory: every live branch owns a copy of its path.
//
// Notes:
//
//   - A start that already satisfies success returns at once with cost 0.
//   - The calling goroutine helps run pool tasks until the search ends.
func Run[S any, C Number](
	ctx context.Context,
	pool *workpool.Pool,
	start S,
	successors SuccessorFunc[S, C],
	success SuccessFunc[S],
) (best Result[S, C], found bool, err error) {
	if pool == nil {
		return best, false, ErrNilPool
	}
	if success(start) {
		return Result[S, C]{Path: []S{start}}, true, nil
	}

	r := &runner[S, C]{
		ctx:        ctx,
		pool:       pool,
		successors: successors,
		success:    success,
		box:        newMailbox[S, C](),
	}

	// 1) Root branch is the first producer.
	r.producers.Add(1)
	if err = pool.Submit(func() { r.branch([]S{start}, nil, 0) }); err != nil {
		return best, false, err
	}

	// 2) Collect until the sentinel, running queued tasks in between.
	var bestOrder []int
	for finished := false; !finished; {
		for _, msg := range r.box.drain() {
			if msg.done {
				finished = true
				continue
			}
			if !found || better(msg.result.Cost, msg.order, best.Cost, bestOrder) {
				best, bestOrder, found = msg.result, msg.order, true
			}
		}
		if finished {
			break
		}
		if ran, wake := pool.Help(); !ran {
			select {
			case <-r.box.notify:
			case <-wake:
			}
		}
	}

	if err = ctx.Err(); err != nil {
		return Result[S, C]{}, false, err
	}
	return best, found, nil
}

// mailbox is an unbounded queue of messages. post never blocks, so a
// branch run by another collector cannot stall on this one.
type mailbox[S any, C Number] struct {
	mu     sync.Mutex
	queue  []message[S, C]
	notify chan struct{} // cap 1; signalled after every post
}

func newMailbox[S any, C Number]() *mailbox[S, C] {
	return &mailbox[S, C]{notify: make(chan struct{}, 1)}
}

func (b *mailbox[S, C]) post(msg message[S, C]) {
	b.mu.Lock()
	b.queue = append(b.queue, msg)
	b.mu.Unlock()
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *mailbox[S, C]) drain() []message[S, C] {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.queue
	b.queue = nil
	return out
}

// runner is the shared state of one Run.
type runner[S any, C Number] struct {
	ctx        context.Context
	pool       *workpool.Pool
	successors SuccessorFunc[S, C]
	success    SuccessFunc[S]
	box        *mailbox[S, C]
	producers  atomic.Int64
}

// spawn registers a producer and submits its branch. If the pool was
// closed under a running search the branch runs inline on this worker.
func (r *runner[S, C]) spawn(path []S, order []int, cost C) {
	r.producers.Add(1)
	task := func() { r.branch(path, order, cost) }
	if err := r.pool.Submit(task); err != nil {
		task()
	}
}

// branch expands path once and retires its producer slot.
func (r *runner[S, C]) branch(path []S, order []int, cost C) {
	defer r.retire()
	if r.ctx.Err() != nil {
		return
	}
	for i, step := range r.successors(path) {
		next := make([]S, len(path)+1)
		copy(next, path)
		next[len(path)] = step.State
		nextOrder := make([]int, len(order)+1)
		copy(nextOrder, order)
		nextOrder[len(order)] = i
		total := cost + step.Cost

		if r.success(step.State) {
			r.box.post(message[S, C]{result: Result[S, C]{Path: next, Cost: total}, order: nextOrder})
			return
		}
		r.spawn(next, nextOrder, total)
	}
}

// retire decrements the producer count; the last producer sends the sentinel.
func (r *runner[S, C]) retire() {
	if r.producers.Add(-1) == 0 {
		r.box.post(message[S, C]{done: true})
	}
}

// better reports whether (cost, order) beats (bestCost, bestOrder).
func better[C Number](cost C, order []int, bestCost C, bestOrder []int) bool {
	if cost != bestCost {
		return cost < bestCost
	}
	for i := 0; i < len(order) && i < len(bestOrder); i++ {
		if order[i] != bestOrder[i] {
			return order[i] < bestOrder[i]
		}
	}
	return len(order) < len(bestOrder)
}
