package tube

import (
	"fmt"
	"strings"

	"github.com/Faultbox/trefoil/pkg/math"
)

// Primitive is the draw primitive a mesh's indices describe.
type Primitive int

const (
	Points Primitive = iota
	Lines
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case Triangles:
		return "triangles"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Style selects which of the demo renditions Generate builds.
type Style int

const (
	// StylePoints is one point per slice on the centreline.
	StylePoints Style = iota
	// StyleSkeleton joins consecutive centreline points with line segments.
	StyleSkeleton
	// StyleWireframe draws the section rings and the longitudinal edges.
	StyleWireframe
	// StyleSurface triangulates the swept tube.
	StyleSurface
)

var styleNames = map[Style]string{
	StylePoints:    "points",
	StyleSkeleton:  "skeleton",
	StyleWireframe: "wireframe",
	StyleSurface:   "surface",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle parses a style name as used in configuration files.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown style %q: %w", name, ErrInvalidOptions)
}

// Primitive returns the primitive meshes of this style are drawn with.
func (s Style) Primitive() Primitive {
	switch s {
	case StylePoints:
		return Points
	case StyleSkeleton, StyleWireframe:
		return Lines
	default:
		return Triangles
	}
}

// centreline reports whether the style ignores the cross-section.
func (s Style) centreline() bool {
	return s == StylePoints || s == StyleSkeleton
}

// Options configures Generate.
type Options struct {
	Style  Style
	Slices int
	// Scale is applied uniformly to the cross-section.
	Scale float32
	// TwistTurns is the number of quarter turns about the tangent accumulated
	// over one full loop. Closed tubes need a whole number of section steps.
	TwistTurns float64
	Closed     bool

	WithNormals bool
	WithColour  bool
	WithUV      bool

	// UMax is the u coordinate reached after one loop; VMax spans the
	// width of one face.
	UMax, VMax float32

	// WorldUp is the reference vector frames are built against.
	WorldUp math.Vec3
}

// DefaultOptions returns the lit, textured, closed trefoil configuration.
func DefaultOptions() Options {
	return Options{
		Style:       StyleSurface,
		Slices:      100,
		Scale:       0.4,
		TwistTurns:  1,
		Closed:      true,
		WithNormals: true,
		WithColour:  true,
		WithUV:      true,
		UMax:        20,
		VMax:        1,
		WorldUp:     math.Vec3{X: 0, Y: 0, Z: 1},
	}
}

func (o Options) validate() error {
	if o.Slices < 3 {
		return fmt.Errorf("%d slices: %w", o.Slices, ErrTooFewSlices)
	}
	if _, ok := styleNames[o.Style]; !ok {
		return fmt.Errorf("style %v: %w", o.Style, ErrInvalidOptions)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("scale %v: %w", o.Scale, ErrInvalidOptions)
	}
	if o.WorldUp.Length() == 0 {
		return fmt.Errorf("zero world up vector: %w", ErrInvalidOptions)
	}
	return nil
}
