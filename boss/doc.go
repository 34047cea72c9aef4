// Package boss executes route batches and keeps the cheapest one.
//
// A batch is one candidates.MineRoute: mines connected in order, route j
// leaving the base on lane j. Execute runs every batch of a
// candidates.MineRouteBatch, sequentially or on a workpool.Pool, and
// reduces the outcomes:
//
//   - the batch with the lowest total cost wins; equal totals go to the
//     lowest batch index, so the result never depends on completion order;
//   - the winning paths are then committed to the caller's surface;
//   - if every batch failed, *AllFailedError carries a per-mine tally of
//     failure causes, most frequent first, and nothing is committed.
//
// Isolation:
//
//	A single-route batch reads the shared surface directly; nothing is
//	written until the final commit. A multi-route batch works on its own
//	Surface.Clone, committing route k there before searching route k+1.
//	Batches never share mutable state and no locks are taken.
//
// Pools:
//
//	The pooled mode runs batches on the pool given by WithPool, or on a
//	run-scoped pool of workpool.SizeFor(Oversubscription) workers that is
//	closed before Execute returns. The Finder may share that pool: every
//	goroutine waiting on pool work runs queued tasks meanwhile.
package boss
