package candidates

import (
	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/surface"
)

// Generate expands mines into every route: one entry per mine, all
// visiting orders. Orders are emitted in lexicographic permutation order
// of the mine indexes, and within one order the entry choices vary
// fastest on the last mine.
//
// Errors:
//   - ErrNoMines if mines is empty.
//   - *UnbuildableError if any mine has no buildable entry.
func Generate(pixels surface.PixelReader, mines []surface.MineLocation, heading geometry.Direction) (MineRouteBatch, error) {
	if len(mines) == 0 {
		return MineRouteBatch{}, ErrNoMines
	}

	// 1) Entries per mine; collect every dead mine before failing.
	choices := make([][]MineDestination, len(mines))
	var dead []surface.MineLocation
	for i, m := range mines {
		choices[i] = Destinations(pixels, m, heading)
		if len(choices[i]) == 0 {
			dead = append(dead, m)
		}
	}
	if len(dead) > 0 {
		return MineRouteBatch{}, &UnbuildableError{Mines: dead}
	}

	// 2) Orders × combinations.
	combos := product(choices)
	orders := permutations(len(mines))
	routes := make([]MineRoute, 0, len(orders)*len(combos))
	for _, order := range orders {
		for _, combo := range combos {
			dests := make([]MineDestination, len(order))
			for i, mi := range order {
				dests[i] = combo[mi]
			}
			routes = append(routes, MineRoute{Destinations: dests})
		}
	}
	return MineRouteBatch{Routes: routes}, nil
}

// Count returns N! × ∏cᵢ for per-mine choice counts, without building
// the routes.
func Count(choiceCounts []int) int {
	if len(choiceCounts) == 0 {
		return 0
	}
	n := 1
	for i, c := range choiceCounts {
		n *= (i + 1) * c
	}
	return n
}

// product returns the cartesian product of choices, indexed by mine.
func product(choices [][]MineDestination) [][]MineDestination {
	out := [][]MineDestination{{}}
	for _, opts := range choices {
		next := make([][]MineDestination, 0, len(out)*len(opts))
		for _, prefix := range out {
			for _, d := range opts {
				row := make([]MineDestination, len(prefix)+1)
				copy(row, prefix)
				row[len(prefix)] = d
				next = append(next, row)
			}
		}
		out = next
	}
	return out
}

// permutations returns every ordering of 0..n-1 in lexicographic order.
func permutations(n int) [][]int {
	cur := make([]int, n)
	for i := range cur {
		cur[i] = i
	}
	out := [][]int{append([]int(nil), cur...)}
	for nextPermutation(cur) {
		out = append(out, append([]int(nil), cur...))
	}
	return out
}

// nextPermutation advances a to its lexicographic successor in place and
// reports false once a is the last permutation.
func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}
