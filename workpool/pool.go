// Package workpool provides the explicit pool handle planner code submits
// work to: a fixed number of workers draining an unbounded FIFO queue.
//
// The caller constructs and closes the pool; nothing in this module keeps a
// process-wide pool. Submit never blocks, so a running task may submit
// further tasks (recursive fan-out) without risking a full-queue deadlock.
//
// Concurrency:
//   - Submit, Help, HelpUntil and Close are safe from any goroutine,
//     including workers.
//   - A goroutine that waits for work it submitted, worker or not, waits
//     through Help or HelpUntil. It then runs queued tasks itself, so
//     nested waits on one pool always make progress even when every
//     worker is waiting.
package workpool

import (
	"errors"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Oversubscription is the default worker count multiplier over NumCPU.
const Oversubscription = 1.5

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("workpool: pool is closed")

// Pool runs submitted tasks on a fixed set of workers.
type Pool struct {
	size   int
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	wake   chan struct{} // closed and replaced on every Submit
	closed bool
	group  errgroup.Group
}

// DefaultSize is ceil(Oversubscription × runtime.NumCPU()).
func DefaultSize() int {
	return SizeFor(Oversubscription)
}

// SizeFor is ceil(factor × runtime.NumCPU()), at least 1.
func SizeFor(factor float64) int {
	return max(1, int(math.Ceil(factor*float64(runtime.NumCPU()))))
}

// New starts a pool with size workers; size <= 0 selects DefaultSize.
func New(size int) *Pool {
	if size <= 0 {
		size = DefaultSize()
	}
	p := &Pool{size: size, wake: make(chan struct{})}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < size; i++ {
		p.group.Go(func() error {
			p.work()
			return nil
		})
	}
	return p
}

// Size returns the worker count.
func (p *Pool) Size() int { return p.size }

// Submit queues task. Returns ErrClosed once Close has been called.
func (p *Pool) Submit(task func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
	close(p.wake)
	p.wake = make(chan struct{})
	return nil
}

// Help runs one queued task on the calling goroutine and reports true.
// With an empty queue it reports false and a channel closed by the next
// Submit; the channel is nil once the pool is closed.
func (p *Pool) Help() (bool, <-chan struct{}) {
	task, wake := p.next()
	if task == nil {
		return false, wake
	}
	task()
	return true, nil
}

// HelpUntil runs queued tasks on the calling goroutine until done is
// closed, sleeping while the queue is empty.
func (p *Pool) HelpUntil(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}
		if ran, wake := p.Help(); !ran {
			select {
			case <-done:
				return
			case <-wake:
			}
		}
	}
}

// next pops the head task, or returns the current wake channel when the
// queue is empty. Both happen under one lock so no Submit is missed.
func (p *Pool) next() (func(), <-chan struct{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		if p.closed {
			return nil, nil
		}
		return nil, p.wake
	}
	task := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	return task, nil
}

// Close stops accepting tasks, lets the workers drain what is queued and
// waits for them. Calling Close twice is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.cond.Broadcast()
	close(p.wake)
	p.mu.Unlock()
	return p.group.Wait()
}

// work pops tasks until the queue is closed and empty.
func (p *Pool) work() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.mu.Unlock()

		task()
	}
}
