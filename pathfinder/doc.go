// Package pathfinder finds a sequence of rail links between two rail
// links on a surface, charging the configurable per-link cost model.
//
// What:
//
//	States are rail poses. The search starts with the start link itself (a
//	straight seed) and ends when a link's pose equals the pose of the end
//	link (raillink.Link.Key). From every pose it may continue straight
//	(StraightSectionSize sections at once), turn either way, or shift
//	either way, provided the whole footprint is on the surface, inside the
//	request's limit area and on buildable cells.
//
// Cost (integer, additive per link):
//
//	StraightCostUnit × travelled length
//	+ TurnCostUnit                                   (turns)
//	+ MultiTurnCostUnit × turns in the last MultiTurnLookback links (turns)
//	+ DirectionCostUnit   if the link ends off the goal heading
//	+ AxisCostUnit        if it ends heading along the minor axis of the
//	                      remaining displacement
//
// Strategies:
//
//	– best_first: priority queue with lazy decrease-key; states are
//	  deduplicated by pose only, so two histories reaching the same pose
//	  are one state and the cheaper wins. Exact for the cost model with the
//	  constant heuristic, up to that deduplication.
//	– parallel: exhaustive branch fan-out on a workpool via package search;
//	  paths never revisit a pose or overlap their own footprint, MaxDepth
//	  bounds their length. Sound, not guaranteed optimal.
//
// Heuristic:
//
//	"constant" is a zero placeholder (best_first degenerates to uniform cost
//	search). "manhattan" is StraightCostUnit × remaining manhattan distance;
//	every link costs at least that much for its advance, so it stays
//	admissible.
//
// Errors:
//
//	Failing to reach the goal is a normal outcome: Find returns a
//	*FailureError wrapping ErrNoPath, ErrStartBlocked or ErrExploreLimit,
//	with the links explored so far for diagnostics.
//
// Complexity (best_first): O(S log S) time, O(S) memory, S = poses in the
// limit area.
package pathfinder
