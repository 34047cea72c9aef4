package surface

import "github.com/TheLQ/facto-loop-miner-sub001/geometry"

// PixelsView is a read-only window over the cell plane.
type PixelsView struct{ s *Surface }

// PixelsMut can write cells and nothing else.
type PixelsMut struct{ PixelsView }

// PatchesView reads cells and patches.
type PatchesView struct {
	Pixels PixelsView
	s      *Surface
}

// PatchesMut edits the patch list. Cells stay read-only through Pixels.
type PatchesMut struct{ PatchesView }

// RailsView reads cells, patches and committed rails.
type RailsView struct {
	PatchesView
}

// Pixels returns a read-only cell view.
func (s *Surface) Pixels() PixelsView { return PixelsView{s: s} }

// PixelsMut returns a writable cell view.
func (s *Surface) PixelsMut() PixelsMut { return PixelsMut{PixelsView{s: s}} }

// Patches returns a read-only cell+patch view.
func (s *Surface) Patches() PatchesView { return PatchesView{Pixels: PixelsView{s: s}, s: s} }

// PatchesMut returns a view with writable patches and read-only cells.
func (s *Surface) PatchesMut() PatchesMut { return PatchesMut{s.Patches()} }

// Rails returns a read-only view over everything.
func (s *Surface) Rails() RailsView { return RailsView{s.Patches()} }

// Radius returns the plane half-width.
func (v PixelsView) Radius() int { return v.s.radius }

// Area returns the whole plane.
func (v PixelsView) Area() geometry.Area { return v.s.Area() }

// InBounds reports whether p is on the plane.
func (v PixelsView) InBounds(p geometry.Point) bool { return v.s.InBounds(p) }

// PixelAt returns the cell at p; panics off the plane.
func (v PixelsView) PixelAt(p geometry.Point) Pixel { return v.s.PixelAt(p) }

// Set writes px at p; panics off the plane.
func (m PixelsMut) Set(p geometry.Point, px Pixel) { m.s.set(p, px) }

// Len returns the number of patches.
func (v PatchesView) Len() int { return len(v.s.patches) }

// Patch returns patch i. The Points slice must not be modified.
func (v PatchesView) Patch(i int) Patch { return v.s.patches[i] }

// All returns the patch list. The slice must not be modified.
func (v PatchesView) All() []Patch { return v.s.patches }

// Set replaces the area and points of patch i, keeping its resource.
// The caller keeps the cells consistent; Validate catches a mismatch.
func (m PatchesMut) Set(i int, points []geometry.Point) {
	m.s.patches[i].Points = points
	m.s.patches[i].Area = geometry.FromPoints(points)
}

func (m PatchesMut) add(p Patch) { m.s.patches = append(m.s.patches, p) }

// MinePaths returns the committed rails. The slice must not be modified.
func (v RailsView) MinePaths() []MinePath { return v.s.rails }

// IsBuildable reports whether every point is on the plane of r and
// buildable there.
func IsBuildable(r PixelReader, points []geometry.Point) bool {
	for _, p := range points {
		if !r.InBounds(p) || !r.PixelAt(p).IsBuildable() {
			return false
		}
	}
	return true
}
