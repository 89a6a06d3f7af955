package demo

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/config"
	"github.com/Faultbox/trefoil/internal/engine/render"
	"github.com/Faultbox/trefoil/internal/engine/shader"
	"github.com/Faultbox/trefoil/internal/engine/shader/shaders"
	"github.com/Faultbox/trefoil/pkg/curve"
	"github.com/Faultbox/trefoil/pkg/math"
	"github.com/Faultbox/trefoil/pkg/tube"
)

// Knot colour for renditions without per-vertex colours.
var knotColour = math.Vec3{X: 1, Y: 1, Z: 1}

// Axes is the world X, Y and Z axes as red, green and blue unit lines.
type Axes struct{}

var axesPositions = []float32{
	0, 0, 0, 1, 1, 0, 0, 1,
	0, 0, 0, 1, 0, 1, 0, 1,
	0, 0, 0, 1, 0, 0, 1, 1,
}

var axesColours = []float32{
	1, 0, 0, 1, 0, 0,
	0, 1, 0, 0, 1, 0,
	0, 0, 1, 0, 0, 1,
}

func (Axes) Primitive() tube.Primitive { return tube.Lines }

func (Axes) Has(a tube.Attribute) bool {
	return a == tube.Position || a == tube.Colour
}

func (Axes) Stream(a tube.Attribute) []float32 {
	switch a {
	case tube.Position:
		return append([]float32(nil), axesPositions...)
	case tube.Colour:
		return append([]float32(nil), axesColours...)
	default:
		return nil
	}
}

func (Axes) Indices() []uint32 {
	return []uint32{0, 1, 2, 3, 4, 5}
}

// shading selects the program a geometry is drawn with.
type shading int

const (
	shadeFlat shading = iota
	shadeColour
	shadeLit
)

func (s shading) key() shader.Key {
	switch s {
	case shadeLit:
		return shader.Key{Vertex: shaders.LitVertex, Fragment: shaders.LitFragment}
	case shadeColour:
		return shader.Key{Vertex: shaders.ColourVertex, Fragment: shaders.ColourFragment}
	default:
		return shader.Key{Vertex: shaders.FlatVertex, Fragment: shaders.FlatFragment}
	}
}

// shadingFor picks the richest program the geometry's streams can feed.
func shadingFor(g render.Geometry) shading {
	switch {
	case g.Has(tube.Normal) && g.Has(tube.UV):
		return shadeLit
	case g.Has(tube.Colour):
		return shadeColour
	default:
		return shadeFlat
	}
}

// buildKnot generates the trefoil described by the config and logs the
// result.
func buildKnot(cfg *config.Config, log *zap.Logger) (*tube.Mesh, error) {
	opts, err := cfg.TubeOptions()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	mesh, err := tube.Generate(curve.Trefoil{}, tube.Square(2), opts)
	if err != nil {
		return nil, err
	}
	log.Info("trefoil generated",
		zap.Stringer("style", opts.Style),
		zap.Int("slices", mesh.Slices()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", mesh.IndexCount()),
		zap.Stringer("primitive", mesh.Primitive()),
		zap.Int("seam_shift", mesh.SeamShift()),
		zap.Duration("took", time.Since(start)),
	)
	return mesh, nil
}
