package surface

import (
	"errors"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
)

// Sentinel errors. Contract violations panic with one of these wrapped.
var (
	// ErrBadRadius indicates a surface radius that is not positive.
	ErrBadRadius = errors.New("surface: radius must be positive")

	// ErrOutOfBounds indicates a cell outside the plane.
	ErrOutOfBounds = errors.New("surface: point out of bounds")

	// ErrEmptyPatch indicates a patch without member cells.
	ErrEmptyPatch = errors.New("surface: patch has no member cells")

	// ErrDuplicateCell indicates a cell claimed by two patches.
	ErrDuplicateCell = errors.New("surface: cell claimed by more than one patch")

	// ErrResourceMismatch indicates a patch member whose pixel is not the patch resource.
	ErrResourceMismatch = errors.New("surface: cell does not match patch resource")

	// ErrNotResource indicates a patch built from a non-resource pixel.
	ErrNotResource = errors.New("surface: pixel is not a resource")

	// ErrNotBuildable indicates a rail committed over an occupied cell.
	ErrNotBuildable = errors.New("surface: cell is not buildable")

	// ErrNotRail indicates a rail removal over a cell that is not rail.
	ErrNotRail = errors.New("surface: cell is not rail")

	// ErrRailIndex indicates a rail index out of range.
	ErrRailIndex = errors.New("surface: rail index out of range")

	// ErrNoPatches indicates a mine built without patches.
	ErrNoPatches = errors.New("surface: mine needs at least one patch")
)

// Pixel classifies one cell of the plane.
type Pixel uint8

const (
	Empty Pixel = iota
	IronOre
	CopperOre
	Stone
	Coal
	UraniumOre
	CrudeOil
	Water
	Rail
	EdgeWall
	Highlighter
)

// Patch is a group of contiguous same-resource cells.
type Patch struct {
	Resource Pixel
	Area     geometry.Area
	Points   []geometry.Point
}

// Connectivity selects patch grouping adjacency: orthogonal (Conn4) or
// including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 groups through N, E, S, W neighbours.
	Conn4 Connectivity = iota
	// Conn8 also groups through diagonal neighbours.
	Conn8
)

// Surface owns the pixel plane, the patches and the committed rails.
// It is not safe for concurrent mutation; concurrent readers of an
// unmutated surface are fine.
type Surface struct {
	radius  int
	pixels  []Pixel
	patches []Patch
	rails   []MinePath
}

// MineLocation is one or more patches served together by a single rail
// connection, with their combined bounding area.
type MineLocation struct {
	PatchIndexes []int
	Area         geometry.Area
}

// MinePath is a resolved connection: the mine served, the ordered links,
// and the integer cost the pathfinder charged for them.
type MinePath struct {
	Mine  MineLocation
	Links []raillink.Link
	Cost  int
}

// PixelReader is the read-only cell access the search packages need.
type PixelReader interface {
	Radius() int
	InBounds(p geometry.Point) bool
	PixelAt(p geometry.Point) Pixel
}
