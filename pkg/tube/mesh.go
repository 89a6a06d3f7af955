package tube

import "github.com/Faultbox/trefoil/pkg/math"

// Attribute names a per-vertex stream of a Mesh.
type Attribute int

const (
	Position Attribute = iota
	Normal
	Colour
	UV
)

// Attributes lists every stream in upload order.
var Attributes = []Attribute{Position, Normal, Colour, UV}

// Components returns the number of float32 values per vertex in the stream.
// Positions and normals are homogeneous (w=1 and w=0).
func (a Attribute) Components() int {
	switch a {
	case Position, Normal:
		return 4
	case Colour:
		return 3
	case UV:
		return 2
	default:
		return 0
	}
}

func (a Attribute) String() string {
	switch a {
	case Position:
		return "position"
	case Normal:
		return "normal"
	case Colour:
		return "colour"
	case UV:
		return "uv"
	default:
		return "unknown"
	}
}

// Mesh is a finished vertex and index set. It cannot be modified after
// Generate returns it: every accessor hands out copies, so one Mesh can be
// shared by any number of readers.
type Mesh struct {
	primitive Primitive
	vertices  int
	streams   [4][]float32
	indices   []uint32

	frames    []Frame
	slices    int
	corners   int
	seamShift int
}

// Primitive returns the primitive the indices describe.
func (m *Mesh) Primitive() Primitive { return m.primitive }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return m.vertices }

// IndexCount returns the number of index entries.
func (m *Mesh) IndexCount() int { return len(m.indices) }

// Slices returns the number of curve samples the mesh was built from.
func (m *Mesh) Slices() int { return m.slices }

// Corners returns the cross-section corner count, or 0 for centreline meshes.
func (m *Mesh) Corners() int { return m.corners }

// SeamShift returns the corner offset applied where the last slice joins the
// first one.
func (m *Mesh) SeamShift() int { return m.seamShift }

// Has reports whether the mesh carries the given stream.
func (m *Mesh) Has(a Attribute) bool {
	return a >= 0 && int(a) < len(m.streams) && m.streams[a] != nil
}

// Stream returns a copy of the flat float32 data for a stream, or nil if the
// mesh does not carry it.
func (m *Mesh) Stream(a Attribute) []float32 {
	if !m.Has(a) {
		return nil
	}
	return append([]float32(nil), m.streams[a]...)
}

// Indices returns a copy of the index array.
func (m *Mesh) Indices() []uint32 {
	return append([]uint32(nil), m.indices...)
}

// Frames returns a copy of the per-slice frames. Centreline meshes have none.
func (m *Mesh) Frames() []Frame {
	return append([]Frame(nil), m.frames...)
}

// Position returns vertex i's position.
func (m *Mesh) Position(i int) math.Vec3 {
	return m.vec3(Position, i)
}

// Normal returns vertex i's normal, or the zero vector without a normal stream.
func (m *Mesh) Normal(i int) math.Vec3 {
	return m.vec3(Normal, i)
}

// Colour returns vertex i's colour, or the zero vector without a colour stream.
func (m *Mesh) Colour(i int) math.Vec3 {
	return m.vec3(Colour, i)
}

// TexCoord returns vertex i's texture coordinate.
func (m *Mesh) TexCoord(i int) math.Vec2 {
	if !m.Has(UV) {
		return math.Vec2{}
	}
	s := m.streams[UV][i*2:]
	return math.Vec2{X: s[0], Y: s[1]}
}

func (m *Mesh) vec3(a Attribute, i int) math.Vec3 {
	if !m.Has(a) {
		return math.Vec3{}
	}
	n := a.Components()
	s := m.streams[a][i*n:]
	return math.Vec3{X: s[0], Y: s[1], Z: s[2]}
}
