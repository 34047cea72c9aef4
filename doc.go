// Package loopminer plans rail connections from a base to resource mines on
// a 2-D tile surface.
//
// What is inside?
//
//	A small, layered planner:
//		• geometry   – points, half-open areas, directions, lattice predicates
//		• surface    – the tile grid, resource patches, committed rail paths
//		• raillink   – pure rail pieces: straight, turns, shifts, footprints
//		• candidates – entry rails per mine and every visiting order
//		• pathfinder – cost-driven search between two rail poses
//		• search     – generic parallel exhaustive search over a pool
//		• workpool   – the explicit worker pool handle
//		• boss       – runs route batches, keeps and commits the cheapest
//		• config     – cost units, strategy and execution mode from YAML
//
// Typical flow:
//
//	surf, _ := surface.New(512)
//	// ... stamp resources with surf.AddPatch, group them into mines ...
//	pf, _ := pathfinder.New(pathfinder.WithTunables(config.Default()))
//	b, _ := boss.New(pf)
//	res, err := b.Plan(ctx, surf, mines)
//
// On success the winning paths are appended to surf.Rails(); on failure
// *boss.AllFailedError says which mines sank the most batches and surf is
// left untouched.
//
// Everything is integer geometry; there are no floating point costs.
package loopminer
