package surface

import (
	"fmt"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

// AddPatch stamps resource on every point and records the group as a new
// patch. Returns the patch index.
// Panics with ErrNotResource, ErrEmptyPatch or ErrOutOfBounds.
func (s *Surface) AddPatch(resource Pixel, points []geometry.Point) int {
	if !resource.IsResource() {
		panic(fmt.Errorf("%w: %s", ErrNotResource, resource))
	}
	if len(points) == 0 {
		panic(ErrEmptyPatch)
	}
	members := append([]geometry.Point(nil), points...)
	for _, p := range members {
		s.set(p, resource)
	}
	s.patches = append(s.patches, Patch{
		Resource: resource,
		Area:     geometry.FromPoints(members),
		Points:   members,
	})
	return len(s.patches) - 1
}

// Check runs the anti-entropy pass and reports the first violation.
//
// Steps:
//  1. every patch has at least one member;
//  2. no cell is a member of two patches;
//  3. every member cell is on the plane and carries the patch resource.
//
// Complexity: O(total member cells).
func (s *Surface) Check() error {
	owner := make(map[geometry.Point]int)
	for i, patch := range s.patches {
		// 1) empty patches never come out of grouping
		if len(patch.Points) == 0 {
			return fmt.Errorf("%w: patch %d", ErrEmptyPatch, i)
		}
		for _, p := range patch.Points {
			// 2) single ownership
			if prev, ok := owner[p]; ok {
				return fmt.Errorf("%w: %s in patches %d and %d", ErrDuplicateCell, p, prev, i)
			}
			owner[p] = i

			// 3) plane agrees with bookkeeping
			if !s.InBounds(p) {
				return fmt.Errorf("%w: patch %d member %s", ErrOutOfBounds, i, p)
			}
			if got := s.PixelAt(p); got != patch.Resource {
				return fmt.Errorf("%w: patch %d member %s is %s, want %s",
					ErrResourceMismatch, i, p, got, patch.Resource)
			}
		}
	}
	return nil
}

// Validate panics with the Check error, if any.
func (s *Surface) Validate() {
	if err := s.Check(); err != nil {
		panic(err)
	}
}

// RemovePatchesWithinRadius removes every patch whose area center lies
// strictly inside the square of half-width r around the origin, clearing
// its cells to Empty. Returns the number of patches removed.
func (s *Surface) RemovePatchesWithinRadius(r int) int {
	return s.removePatches(func(c geometry.Point) bool {
		return c.X > -r && c.X < r && c.Y > -r && c.Y < r
	})
}

// RemovePatchesInColumn removes every patch whose area center x lies in
// [minX, maxX), clearing its cells to Empty. Returns the number removed.
func (s *Surface) RemovePatchesInColumn(minX, maxX int) int {
	return s.removePatches(func(c geometry.Point) bool {
		return c.X >= minX && c.X < maxX
	})
}

// removePatches drops patches whose center matches and clears their cells.
// Indexes of the surviving patches shift down; MineLocations built before
// the call are stale afterwards.
func (s *Surface) removePatches(match func(center geometry.Point) bool) int {
	kept := s.patches[:0]
	removed := 0
	for _, patch := range s.patches {
		if !match(patch.Area.Center()) {
			kept = append(kept, patch)
			continue
		}
		for _, p := range patch.Points {
			s.set(p, Empty)
		}
		removed++
	}
	// release references held past the new length
	for i := len(kept); i < len(s.patches); i++ {
		s.patches[i] = Patch{}
	}
	s.patches = kept
	return removed
}
