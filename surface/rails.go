package surface

import (
	"fmt"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
)

// AddMinePath stamps the footprint of path as Rail and appends it to the
// committed rails. Panics with ErrNotBuildable if any cell is occupied or
// off the plane; nothing is written in that case.
func (s *Surface) AddMinePath(path MinePath) {
	fp := path.Footprint()
	for _, p := range fp {
		if !s.InBounds(p) || !s.PixelAt(p).IsBuildable() {
			panic(fmt.Errorf("%w: %s for mine %s", ErrNotBuildable, p, path.Mine.Key()))
		}
	}
	for _, p := range fp {
		s.set(p, Rail)
	}
	s.rails = append(s.rails, path.clone())
}

// RemoveMinePathAt removes committed rail i and clears its cells to Empty.
// Panics with ErrRailIndex on a bad index and ErrNotRail if the plane no
// longer shows rail under the path.
func (s *Surface) RemoveMinePathAt(i int) MinePath {
	if i < 0 || i >= len(s.rails) {
		panic(fmt.Errorf("%w: %d of %d", ErrRailIndex, i, len(s.rails)))
	}
	path := s.rails[i]
	fp := path.Footprint()
	for _, p := range fp {
		if got := s.PixelAt(p); got != Rail {
			panic(fmt.Errorf("%w: %s is %s", ErrNotRail, p, got))
		}
	}
	for _, p := range fp {
		s.set(p, Empty)
	}
	s.rails = append(s.rails[:i], s.rails[i+1:]...)
	return path
}

// PopMinePath removes the most recently committed rail. ok is false when
// no rail is committed. Panics with ErrNotRail like RemoveMinePathAt.
func (s *Surface) PopMinePath() (path MinePath, ok bool) {
	if len(s.rails) == 0 {
		return MinePath{}, false
	}
	return s.RemoveMinePathAt(len(s.rails) - 1), true
}

// Footprint is the union of the link footprints, without duplicates.
func (m MinePath) Footprint() []geometry.Point {
	seen := make(map[geometry.Point]struct{})
	var out []geometry.Point
	for _, l := range m.Links {
		for _, p := range l.Footprint() {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
