// Package candidates enumerates route plans for a batch of mines.
//
// Each mine offers up to four entry rails, one per corner of its area
// snapped to the rail lattice and grown by one lattice step. Entries whose
// footprint is not buildable are dropped. Generate then emits every
// combination of one entry per mine in every visiting order:
//
//	count = N! × c₁ × c₂ × … × cₙ
//
// The enumeration is exhaustive on purpose. Callers keep N small; five
// mines with four entries each already give 120 × 1024 routes.
//
// A mine with no surviving entry is never dropped silently: Generate fails
// with *UnbuildableError naming every such mine, and yields no routes.
package candidates
