// Package tube sweeps a 2D cross-section along a space curve and emits the
// vertex streams and indices needed to draw the result.
//
// Slice i sits at t = i*Tau/n. Each slice gets a frame built against a fixed
// world reference vector, and the section is placed with
//
//	Translate(origin) * [I J K] * RotateZ(twist * Tau/4 * i/n) * Scale(s)
//
// The twist rotation accumulates a whole number of section steps over one
// loop, so the last slice of a closed tube joins the first with a corner
// offset instead of a kink.
package tube

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/trefoil/pkg/curve"
	"github.com/Faultbox/trefoil/pkg/math"
)

// seamTolerance bounds how far a twisted section corner may land from the
// corner it is paired with, relative to the section's size.
const seamTolerance = 1e-4

// Generate builds the mesh for a curve and cross-section. The section is
// ignored by the centreline styles and may be empty for them.
func Generate(c curve.Curve, section Section, opts Options) (*Mesh, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Style.centreline() {
		return generateCentreline(c, opts), nil
	}
	if err := section.validate(opts); err != nil {
		return nil, err
	}

	frames, err := buildFrames(c, opts)
	if err != nil {
		return nil, err
	}

	shift := 0
	if opts.Closed {
		if shift, err = seamShift(section, opts); err != nil {
			return nil, err
		}
	}

	g := newGenerator(frames, section, opts, shift)
	g.emitVertices()
	if opts.Style == StyleWireframe {
		g.emitWireframe()
	} else {
		g.emitTriangles()
	}
	return g.mesh(), nil
}

// buildFrames samples the curve at every slice and builds its frame.
func buildFrames(c curve.Curve, opts Options) ([]Frame, error) {
	frames := make([]Frame, opts.Slices)
	for i := range frames {
		t := curve.Param(i, opts.Slices)
		f, err := BuildFrame(c.Position(t), c.Tangent(t), opts.WorldUp)
		if err != nil {
			return nil, fmt.Errorf("slice %d (t=%.4f): %w", i, t, err)
		}
		frames[i] = f
	}
	return frames, nil
}

// seamShift returns the corner offset between the twisted copy of slice 0 at
// the end of the loop and slice 0 itself. The full twist must be a multiple of
// the section step Tau/c and must map every corner (and edge normal) onto
// another one.
func seamShift(s Section, opts Options) (int, error) {
	c := s.Corners()
	steps := opts.TwistTurns * float64(c) / 4
	rounded := gomath.Round(steps)
	if gomath.Abs(steps-rounded) > 1e-6 {
		return 0, fmt.Errorf("%v quarter turns is %.3f steps of a %d-corner section: %w",
			opts.TwistTurns, steps, c, ErrSeamMismatch)
	}
	shift := ((int(rounded) % c) + c) % c

	angle := float32(opts.TwistTurns * curve.Tau / 4)
	var size float32
	for _, p := range s.Points {
		size = max(size, p.Length())
	}
	for j, p := range s.Points {
		k := (j + shift) % c
		if p.Rotate(angle).Distance(s.Points[k]) > seamTolerance*size {
			return 0, fmt.Errorf("corner %d does not land on corner %d: %w", j, k, ErrSeamMismatch)
		}
		if opts.WithNormals && s.Normals[j].Rotate(angle).Distance(s.Normals[k]) > seamTolerance {
			return 0, fmt.Errorf("edge %d normal does not match edge %d: %w", j, k, ErrSeamMismatch)
		}
	}
	return shift, nil
}

// generator holds the state of one Generate call.
type generator struct {
	frames  []Frame
	section Section
	opts    Options

	n, c  int
	shift int
	// faceted vertices carry one normal per edge, so every edge gets its
	// own pair of vertices per slice.
	faceted bool
	// seamSlice adds a copy of slice 0 at the end of a closed loop for
	// attributes that differ across the seam.
	seamSlice bool
	emitted   int

	streams [4][]float32
	indices []uint32
}

func newGenerator(frames []Frame, s Section, opts Options, shift int) *generator {
	g := &generator{
		frames:  frames,
		section: s,
		opts:    opts,
		n:       len(frames),
		c:       s.Corners(),
		shift:   shift,
		faceted: opts.WithNormals,
	}
	g.seamSlice = opts.Closed && (opts.WithUV || (opts.WithColour && shift != 0))
	g.emitted = g.n
	if g.seamSlice {
		g.emitted++
	}

	vertices := g.emitted * g.perSlice()
	g.streams[Position] = make([]float32, 0, vertices*Position.Components())
	if opts.WithNormals {
		g.streams[Normal] = make([]float32, 0, vertices*Normal.Components())
	}
	if opts.WithColour {
		g.streams[Colour] = make([]float32, 0, vertices*Colour.Components())
	}
	if opts.WithUV {
		g.streams[UV] = make([]float32, 0, vertices*UV.Components())
	}
	return g
}

// perSlice returns the number of vertices emitted for each slice.
func (g *generator) perSlice() int {
	if g.faceted {
		return 2 * g.c
	}
	return g.c
}

// vertex returns the index of the vertex for corner j of slice i. With
// faceted vertices, end selects which end of edge j (0: corner j, 1: corner
// j+1). Slice n wraps to slice 0 with the seam shift unless a seam slice
// was emitted.
func (g *generator) vertex(i, j, end int) uint32 {
	if i == g.n && !g.seamSlice {
		i = 0
		j += g.shift
	}
	j %= g.c
	if g.faceted {
		return uint32(i*2*g.c + 2*j + end)
	}
	return uint32(i*g.c + (j+end)%g.c)
}

// placement returns slice i's transform for positions and for normals.
func (g *generator) placement(i int) (point, direction math.Mat4) {
	twist := math.RotateZ(float32(g.opts.TwistTurns * curve.Tau / 4 * float64(i) / float64(g.n)))
	f := g.frames[i]
	s := g.opts.Scale
	point = f.Matrix().Mul(twist).Mul(math.Scale(s, s, s))
	direction = f.Rotation().Mul(twist)
	return point, direction
}

func (g *generator) emitVertices() {
	for i := 0; i < g.n; i++ {
		point, direction := g.placement(i)

		corners := make([]math.Vec3, g.c)
		for j, p := range g.section.Points {
			corners[j] = point.TransformPoint(math.Vec3{X: p.X, Y: p.Y})
		}
		var normals []math.Vec3
		if g.opts.WithNormals {
			normals = make([]math.Vec3, g.c)
			for j, nrm := range g.section.Normals {
				normals[j] = direction.TransformDirection(math.Vec3{X: nrm.X, Y: nrm.Y})
			}
		}
		g.emitSlice(i, corners, normals)
	}

	if g.seamSlice {
		// Reuse slice 0's geometry so the seam closes bit-for-bit.
		corners := make([]math.Vec3, g.c)
		var normals []math.Vec3
		if g.opts.WithNormals {
			normals = make([]math.Vec3, g.c)
		}
		for j := range corners {
			idx := g.vertex(0, (j+g.shift)%g.c, 0)
			corners[j] = g.positionAt(idx)
			if normals != nil {
				normals[j] = g.normalAt(idx)
			}
		}
		g.emitSlice(g.n, corners, normals)
	}
}

// emitSlice appends the vertices of slice i given its placed corners and,
// for faceted meshes, the placed edge normals.
func (g *generator) emitSlice(i int, corners, normals []math.Vec3) {
	u := float32(i) * g.opts.UMax / float32(g.n)

	for j := 0; j < g.c; j++ {
		if !g.faceted {
			g.emit(corners[j], math.Vec3{}, j, math.Vec2{X: u, Y: g.v(j)})
			continue
		}
		next := (j + 1) % g.c
		g.emit(corners[j], normals[j], j, math.Vec2{X: u, Y: 0})
		g.emit(corners[next], normals[j], next, math.Vec2{X: u, Y: g.opts.VMax})
	}
}

// v alternates the texture coordinate around the ring of shared vertices.
func (g *generator) v(j int) float32 {
	if j%2 == 0 {
		return 0
	}
	return g.opts.VMax
}

func (g *generator) emit(p, nrm math.Vec3, corner int, uv math.Vec2) {
	g.streams[Position] = append(g.streams[Position], p.X, p.Y, p.Z, 1)
	if g.opts.WithNormals {
		g.streams[Normal] = append(g.streams[Normal], nrm.X, nrm.Y, nrm.Z, 0)
	}
	if g.opts.WithColour {
		col := g.section.Colours[corner]
		g.streams[Colour] = append(g.streams[Colour], col.X, col.Y, col.Z)
	}
	if g.opts.WithUV {
		g.streams[UV] = append(g.streams[UV], uv.X, uv.Y)
	}
}

func (g *generator) positionAt(idx uint32) math.Vec3 {
	s := g.streams[Position][idx*4:]
	return math.Vec3{X: s[0], Y: s[1], Z: s[2]}
}

func (g *generator) normalAt(idx uint32) math.Vec3 {
	s := g.streams[Normal][idx*4:]
	return math.Vec3{X: s[0], Y: s[1], Z: s[2]}
}

// connections returns the number of slice-to-slice bands.
func (g *generator) connections() int {
	if g.opts.Closed {
		return g.n
	}
	return g.n - 1
}

func (g *generator) mesh() *Mesh {
	return &Mesh{
		primitive: g.opts.Style.Primitive(),
		vertices:  len(g.streams[Position]) / Position.Components(),
		streams:   g.streams,
		indices:   g.indices,
		frames:    g.frames,
		slices:    g.n,
		corners:   g.c,
		seamShift: g.shift,
	}
}

// generateCentreline builds the point cloud or line skeleton. Centreline
// meshes carry positions only.
func generateCentreline(c curve.Curve, opts Options) *Mesh {
	n := opts.Slices
	positions := make([]float32, 0, n*Position.Components())
	for i := 0; i < n; i++ {
		p := c.Position(curve.Param(i, n))
		positions = append(positions, p.X, p.Y, p.Z, 1)
	}

	var indices []uint32
	if opts.Style == StylePoints {
		indices = make([]uint32, n)
		for i := range indices {
			indices[i] = uint32(i)
		}
	} else {
		indices = skeletonIndices(n, opts.Closed)
	}

	m := &Mesh{
		primitive: opts.Style.Primitive(),
		vertices:  n,
		indices:   indices,
		slices:    n,
	}
	m.streams[Position] = positions
	return m
}
