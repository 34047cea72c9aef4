// Package geometry is the integer kernel shared by every planner package:
// points, axis-aligned areas, the four cardinal directions and the lattice
// predicates rail pieces are placed on.
//
// Coordinates follow the screen convention: X grows to the East, Y grows
// to the South. An Area is half-open, it covers the cells
// [Start.X, Start.X+Width) × [Start.Y, Start.Y+Height).
//
// Lattices:
//
//	– even:        both coordinates divisible by 2.
//	– odd:         both coordinates odd.
//	– grid(n):     both coordinates divisible by n.
//	– odd grid(n): both coordinates ≡ 1 (mod n), e.g. the odd 16×16 grid.
//	– step rail:   grid(RailStep), the lattice every rail pose sits on.
//
// Contract:
//
//	The Assert* helpers panic. A point off its lattice is a bug in the code
//	that produced it, not bad input, so there is no error return.
//
// Direction forms a cyclic group of order 4 under Flip, RotateOnce and
// RotateOpposite; no other rotation amount is exposed.
package geometry
