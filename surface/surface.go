package surface

import (
	"fmt"

	"github.com/TheLQ/facto-loop-miner-sub001/geometry"
	"github.com/TheLQ/facto-loop-miner-sub001/raillink"
)

// New builds an empty surface covering [-radius, radius) on both axes.
// Returns ErrBadRadius if radius <= 0.
// Complexity: O(radius²) time and memory.
func New(radius int) (*Surface, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadRadius, radius)
	}
	side := 2 * radius
	return &Surface{
		radius: radius,
		pixels: make([]Pixel, side*side),
	}, nil
}

// Radius returns the half-width of the plane.
func (s *Surface) Radius() int { return s.radius }

// Area returns the whole plane as an area.
func (s *Surface) Area() geometry.Area {
	return geometry.Area{Start: geometry.Point{X: -s.radius, Y: -s.radius}, Width: 2 * s.radius, Height: 2 * s.radius}
}

// InBounds reports whether p lies on the plane.
func (s *Surface) InBounds(p geometry.Point) bool {
	return p.X >= -s.radius && p.X < s.radius && p.Y >= -s.radius && p.Y < s.radius
}

// PixelAt returns the classification of p. Panics if p is off the plane.
func (s *Surface) PixelAt(p geometry.Point) Pixel {
	return s.pixels[s.index(p)]
}

func (s *Surface) set(p geometry.Point, px Pixel) {
	s.pixels[s.index(p)] = px
}

// index maps p to its row-major slot, panicking with ErrOutOfBounds.
func (s *Surface) index(p geometry.Point) int {
	if !s.InBounds(p) {
		panic(fmt.Errorf("%w: %s outside radius %d", ErrOutOfBounds, p, s.radius))
	}
	side := 2 * s.radius
	return (p.Y+s.radius)*side + (p.X + s.radius)
}

// Clone returns a deep copy: plane, patches and rails share no memory with s.
// Complexity: O(radius² + P + R) where P, R are patch and rail cell counts.
func (s *Surface) Clone() *Surface {
	c := &Surface{
		radius:  s.radius,
		pixels:  make([]Pixel, len(s.pixels)),
		patches: make([]Patch, len(s.patches)),
		rails:   make([]MinePath, len(s.rails)),
	}
	copy(c.pixels, s.pixels)
	for i, p := range s.patches {
		c.patches[i] = Patch{
			Resource: p.Resource,
			Area:     p.Area,
			Points:   append([]geometry.Point(nil), p.Points...),
		}
	}
	for i, r := range s.rails {
		c.rails[i] = r.clone()
	}
	return c
}

func (m MinePath) clone() MinePath {
	return MinePath{
		Mine:  m.Mine.clone(),
		Links: append([]raillink.Link(nil), m.Links...),
		Cost:  m.Cost,
	}
}

func (m MineLocation) clone() MineLocation {
	return MineLocation{PatchIndexes: append([]int(nil), m.PatchIndexes...), Area: m.Area}
}
