package geometry

import "fmt"

// NewArea builds an area, panicking with ErrNegativeSize on negative sizes.
func NewArea(start Point, width, height int) Area {
	if width < 0 || height < 0 {
		panic(fmt.Errorf("%w: %dx%d", ErrNegativeSize, width, height))
	}
	return Area{Start: start, Width: width, Height: height}
}

// AreaFromCorners builds the area spanning the cells between two corner
// cells, both inclusive, in any order.
func AreaFromCorners(a, b Point) Area {
	minX, maxX := minMax(a.X, b.X)
	minY, maxY := minMax(a.Y, b.Y)
	return Area{Start: Point{X: minX, Y: minY}, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// FromPoints returns the bounding box of points. Panics with ErrNoPoints on
// an empty slice.
func FromPoints(points []Point) Area {
	if len(points) == 0 {
		panic(ErrNoPoints)
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	return AreaFromCorners(lo, hi)
}

// End returns the exclusive far corner.
func (a Area) End() Point {
	return Point{X: a.Start.X + a.Width, Y: a.Start.Y + a.Height}
}

// IsEmpty reports whether the area covers no cells.
func (a Area) IsEmpty() bool { return a.Width == 0 || a.Height == 0 }

// Contains reports whether cell p lies inside a.
func (a Area) Contains(p Point) bool {
	return p.X >= a.Start.X && p.X < a.Start.X+a.Width &&
		p.Y >= a.Start.Y && p.Y < a.Start.Y+a.Height
}

// ContainsArea reports whether every cell of o lies inside a.
// An empty o is contained anywhere.
func (a Area) ContainsArea(o Area) bool {
	if o.IsEmpty() {
		return true
	}
	end, oEnd := a.End(), o.End()
	return o.Start.X >= a.Start.X && o.Start.Y >= a.Start.Y &&
		oEnd.X <= end.X && oEnd.Y <= end.Y
}

// Corners returns the boundary corners in clockwise order: NW, NE, SE, SW.
// For a lattice-normalized area every corner is a lattice point.
func (a Area) Corners() [4]Point {
	end := a.End()
	return [4]Point{
		a.Start,
		{X: end.X, Y: a.Start.Y},
		end,
		{X: a.Start.X, Y: end.Y},
	}
}

// Center returns the middle cell, rounding towards Start.
func (a Area) Center() Point {
	return Point{X: a.Start.X + a.Width/2, Y: a.Start.Y + a.Height/2}
}

// Normalize expands a outward so both corners land on the step grid.
// Panics with ErrBadStep if step <= 0.
func (a Area) Normalize(step int) Area {
	checkStep(step)
	end := a.End()
	start := Point{X: FloorDiv(a.Start.X, step) * step, Y: FloorDiv(a.Start.Y, step) * step}
	far := Point{X: ceilTo(end.X, step), Y: ceilTo(end.Y, step)}
	return Area{Start: start, Width: far.X - start.X, Height: far.Y - start.Y}
}

// NormalizeStepRail expands a to the enclosing rail lattice cells.
func (a Area) NormalizeStepRail() Area { return a.Normalize(RailStep) }

// NormalizeEntity expands a to the enclosing 3×3 entity cells.
func (a Area) NormalizeEntity() Area { return a.Normalize(3) }

// Expand grows a by margin cells on every side. A negative margin shrinks
// it; the result never has negative size.
func (a Area) Expand(margin int) Area {
	w, h := max(a.Width+2*margin, 0), max(a.Height+2*margin, 0)
	return Area{Start: Point{X: a.Start.X - margin, Y: a.Start.Y - margin}, Width: w, Height: h}
}

// NormalizeWithinRadius clamps a into the square [-radius, radius).
func (a Area) NormalizeWithinRadius(radius int) Area {
	end := a.End()
	sx, sy := clamp(a.Start.X, -radius, radius), clamp(a.Start.Y, -radius, radius)
	ex, ey := clamp(end.X, -radius, radius), clamp(end.Y, -radius, radius)
	return Area{Start: Point{X: sx, Y: sy}, Width: ex - sx, Height: ey - sy}
}

// Points lists every cell of a in row-major order.
func (a Area) Points() []Point {
	out := make([]Point, 0, a.Width*a.Height)
	for y := a.Start.Y; y < a.Start.Y+a.Height; y++ {
		for x := a.Start.X; x < a.Start.X+a.Width; x++ {
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// String renders the area as "start+WxH".
func (a Area) String() string {
	return fmt.Sprintf("%s+%dx%d", a.Start, a.Width, a.Height)
}

func ceilTo(v, step int) int {
	return -FloorDiv(-v, step) * step
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
