package tube

import (
	"fmt"

	"github.com/Faultbox/trefoil/pkg/math"
)

// Section is a closed polygon swept along the curve.
//
// Points wind counter-clockwise seen from the frame's +K axis. Normals, when
// present, hold one outward normal per edge: Normals[j] belongs to the edge
// from corner j to corner j+1. Colours, when present, hold one colour per corner.
type Section struct {
	Points  []math.Vec2
	Normals []math.Vec2
	Colours []math.Vec3
}

// Square returns the square section used by the demos, centred on the axis:
//
//	3-----2
//	|     |
//	|  *  |    Y
//	|     |    |
//	0-----1    +--X
//
// Corners are red, yellow, green and blue.
func Square(side float32) Section {
	h := side / 2
	return Section{
		Points: []math.Vec2{
			{X: -h, Y: -h},
			{X: h, Y: -h},
			{X: h, Y: h},
			{X: -h, Y: h},
		},
		Normals: []math.Vec2{
			{X: 0, Y: -1},
			{X: 1, Y: 0},
			{X: 0, Y: 1},
			{X: -1, Y: 0},
		},
		Colours: []math.Vec3{
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// Corners returns the number of polygon corners.
func (s Section) Corners() int {
	return len(s.Points)
}

// SignedArea returns the polygon's area, positive for counter-clockwise winding.
func (s Section) SignedArea() float32 {
	var area float32
	for j, p := range s.Points {
		area += p.Cross(s.Points[(j+1)%len(s.Points)])
	}
	return area / 2
}

// validate checks the section against the attributes the options request.
func (s Section) validate(opts Options) error {
	c := s.Corners()
	if c < 3 {
		return fmt.Errorf("%d corners: %w", c, ErrEmptySection)
	}
	if s.SignedArea() <= 0 {
		return ErrSectionWinding
	}
	if opts.WithNormals && len(s.Normals) != c {
		return fmt.Errorf("%d normals for %d corners: %w", len(s.Normals), c, ErrInvalidSection)
	}
	if opts.WithColour && len(s.Colours) != c {
		return fmt.Errorf("%d colours for %d corners: %w", len(s.Colours), c, ErrInvalidSection)
	}
	return nil
}
