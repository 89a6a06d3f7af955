package tube

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/trefoil/pkg/curve"
	"github.com/Faultbox/trefoil/pkg/math"
)

// bareOptions returns a closed surface with no optional attributes, so every
// slice contributes exactly one vertex per corner.
func bareOptions(slices int) Options {
	o := DefaultOptions()
	o.Slices = slices
	o.WithNormals = false
	o.WithColour = false
	o.WithUV = false
	return o
}

func triangles(m *Mesh) int {
	return m.IndexCount() / 3
}

func TestGenerateVertexCounts(t *testing.T) {
	for _, n := range []int{3, 4, 10, 100, 1000} {
		t.Run(fmt.Sprintf("%d slices", n), func(t *testing.T) {
			opts := bareOptions(n)
			opts.Closed = false
			m, err := Generate(curve.Trefoil{}, Square(2), opts)
			require.NoError(t, err)

			assert.Equal(t, n*4, m.VertexCount())
			assert.Equal(t, (n-1)*4*2, triangles(m))
		})
	}
}

func TestGenerateClosedTriangleCounts(t *testing.T) {
	for _, n := range []int{3, 4, 10, 100} {
		t.Run(fmt.Sprintf("%d slices", n), func(t *testing.T) {
			m, err := Generate(curve.Trefoil{}, Square(2), bareOptions(n))
			require.NoError(t, err)

			assert.Equal(t, Triangles, m.Primitive())
			assert.Equal(t, n*4, m.VertexCount())
			assert.Equal(t, n*4*2, triangles(m))
		})
	}
}

func TestGenerateFacetedCounts(t *testing.T) {
	opts := DefaultOptions()
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)

	// Two vertices per edge per slice, plus the seam slice.
	assert.Equal(t, (opts.Slices+1)*4*2, m.VertexCount())
	assert.Equal(t, opts.Slices*4*2, triangles(m))
	assert.Equal(t, 1, m.SeamShift())
	for _, a := range Attributes {
		assert.True(t, m.Has(a), "stream %v", a)
		assert.Len(t, m.Stream(a), m.VertexCount()*a.Components(), "stream %v", a)
	}
}

func TestGenerateCentreline(t *testing.T) {
	tests := []struct {
		style     Style
		closed    bool
		primitive Primitive
		indices   int
	}{
		{StylePoints, true, Points, 50},
		{StyleSkeleton, true, Lines, 2 * 50},
		{StyleSkeleton, false, Lines, 2 * 49},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v closed=%v", tt.style, tt.closed), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Style = tt.style
			opts.Slices = 50
			opts.Closed = tt.closed

			m, err := Generate(curve.Trefoil{}, Section{}, opts)
			require.NoError(t, err)

			assert.Equal(t, tt.primitive, m.Primitive())
			assert.Equal(t, 50, m.VertexCount())
			assert.Equal(t, tt.indices, m.IndexCount())
			assert.False(t, m.Has(Normal))
			assert.Equal(t, curve.Trefoil{}.Position(curve.Param(7, 50)), m.Position(7))
		})
	}
}

func TestSkeletonWrapsToFirstPoint(t *testing.T) {
	idx := skeletonIndices(5, true)
	assert.Equal(t, []uint32{0, 1, 1, 2, 2, 3, 3, 4, 4, 0}, idx)
}

func TestGenerateWireframe(t *testing.T) {
	opts := bareOptions(10)
	opts.Style = StyleWireframe

	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	assert.Equal(t, Lines, m.Primitive())
	// Ring edges and longitudinal edges, two entries each.
	assert.Equal(t, 2*(10*4+10*4), m.IndexCount())

	opts.Closed = false
	m, err = Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	assert.Equal(t, 2*(10*4+9*4), m.IndexCount())
}

func TestCircleScenario(t *testing.T) {
	opts := bareOptions(4)
	opts.Scale = 1
	opts.TwistTurns = 0

	m, err := Generate(curve.Circle{Radius: 1}, Square(2), opts)
	require.NoError(t, err)

	wantK := []math.Vec3{{Y: 1}, {X: -1}, {Y: -1}, {X: 1}}
	frames := m.Frames()
	require.Len(t, frames, 4)
	for i, f := range frames {
		assert.InDelta(t, 0, f.K.Distance(wantK[i]), 1e-6, "slice %d K = %v", i, f.K)
	}

	assert.Equal(t, 16, m.VertexCount())
	assert.Equal(t, 32, triangles(m))

	// Vertices only coincide where the square's inner edge touches the
	// circle's axis.
	for a := 0; a < m.VertexCount(); a++ {
		for b := a + 1; b < m.VertexCount(); b++ {
			pa, pb := m.Position(a), m.Position(b)
			if pa.Distance(pb) >= opts.Scale {
				continue
			}
			onAxis := math.Vec3{X: pa.X, Y: pa.Y}.Length() < 1e-6
			assert.True(t, onAxis, "vertices %d and %d: %v and %v", a, b, pa, pb)
		}
	}

	opts.Closed = false
	m, err = Generate(curve.Circle{Radius: 1}, Square(2), opts)
	require.NoError(t, err)
	assert.Equal(t, 16, m.VertexCount())
	assert.Equal(t, 24, triangles(m))
}

func TestMinimumSlices(t *testing.T) {
	m, err := Generate(curve.Trefoil{}, Square(2), bareOptions(3))
	require.NoError(t, err)

	frames := m.Frames()
	require.Len(t, frames, 3)
	for i, f := range frames {
		next := frames[(i+1)%3]
		assert.Greater(t, f.Origin.Distance(next.Origin), float32(1), "slices %d and %d", i, (i+1)%3)
		assert.InDelta(t, 0, f.I.Dot(f.K), 1e-5)
	}

	idx := m.Indices()
	for f := 0; f < len(idx); f += 3 {
		v0, v1, v2 := m.Position(int(idx[f])), m.Position(int(idx[f+1])), m.Position(int(idx[f+2]))
		area := v1.Sub(v0).Cross(v2.Sub(v0)).Length()
		assert.Greater(t, area, float32(1e-4), "triangle %d is degenerate", f/3)
	}
}

func TestSeamClosesBitForBit(t *testing.T) {
	opts := DefaultOptions()
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)

	n, c, shift := opts.Slices, 4, m.SeamShift()
	faceted := func(i, j, end int) int { return i*2*c + 2*j + end }

	for j := 0; j < c; j++ {
		k := (j + shift) % c
		for end := 0; end < 2; end++ {
			seam, first := faceted(n, j, end), faceted(0, k, end)
			assert.Equal(t, m.Position(first), m.Position(seam), "edge %d end %d", j, end)
			assert.Equal(t, m.Normal(first), m.Normal(seam), "edge %d end %d", j, end)
		}
	}
}

func TestSeamSharedVerticesUseShift(t *testing.T) {
	opts := bareOptions(20)
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	require.Equal(t, 1, m.SeamShift())

	// Last band: (n-1, j) (n-1, j+1) (0, j+shift) | (0, j+1+shift) (0, j+shift) (n-1, j+1)
	idx := m.Indices()
	last := idx[len(idx)-4*6:]
	for j := 0; j < 4; j++ {
		quad := last[j*6 : j*6+6]
		assert.Equal(t, uint32(19*4+j), quad[0])
		assert.Equal(t, uint32((j+1)%4), quad[2])
		assert.Equal(t, uint32((j+2)%4), quad[3])
	}
}

func TestSeamShiftMatchesNaiveContinuation(t *testing.T) {
	opts := bareOptions(100)
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)

	// Place the section once more at t = Tau with the full twist; each corner
	// must land on slice 0's shifted corner.
	tr := curve.Trefoil{}
	f, err := BuildFrame(tr.Position(curve.Tau), tr.Tangent(curve.Tau), opts.WorldUp)
	require.NoError(t, err)
	s := opts.Scale
	placement := f.Matrix().Mul(math.RotateZ(float32(curve.Tau / 4))).Mul(math.Scale(s, s, s))

	for j, p := range Square(2).Points {
		naive := placement.TransformPoint(math.Vec3{X: p.X, Y: p.Y})
		assert.InDelta(t, 0, naive.Distance(m.Position((j+1)%4)), 1e-4, "corner %d", j)
	}
}

func TestWindingFacesOutward(t *testing.T) {
	m, err := Generate(curve.Trefoil{}, Square(2), DefaultOptions())
	require.NoError(t, err)

	idx := m.Indices()
	faces := len(idx) / 3
	checked := 0
	for f := 0; f < faces; f += 7 {
		v0, v1, v2 := m.Position(int(idx[f*3])), m.Position(int(idx[f*3+1])), m.Position(int(idx[f*3+2]))
		faceNormal := v1.Sub(v0).Cross(v2.Sub(v0))
		assert.Greater(t, faceNormal.Dot(m.Normal(int(idx[f*3]))), float32(0), "face %d", f)
		checked++
	}
	assert.GreaterOrEqual(t, checked, 20)
}

func TestWindingWithoutNormals(t *testing.T) {
	opts := bareOptions(60)
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	frames := m.Frames()

	idx := m.Indices()
	for f := 0; f < len(idx)/3; f += 11 {
		slice := f / 8 // two triangles per corner, four corners per band
		v0, v1, v2 := m.Position(int(idx[f*3])), m.Position(int(idx[f*3+1])), m.Position(int(idx[f*3+2]))
		centroid := v0.Add(v1).Add(v2).Scale(1.0 / 3)
		outward := centroid.Sub(frames[slice].Origin)
		assert.Greater(t, v1.Sub(v0).Cross(v2.Sub(v0)).Dot(outward), float32(0), "face %d", f)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(curve.Trefoil{}, Square(2), DefaultOptions())
	require.NoError(t, err)
	b, err := Generate(curve.Trefoil{}, Square(2), DefaultOptions())
	require.NoError(t, err)

	for _, attr := range Attributes {
		assert.Equal(t, a.Stream(attr), b.Stream(attr), "stream %v", attr)
	}
	assert.Equal(t, a.Indices(), b.Indices())
}

func TestTexCoords(t *testing.T) {
	opts := DefaultOptions()
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)

	perSlice := 8
	assert.Equal(t, math.Vec2{X: 0, Y: 0}, m.TexCoord(0))
	assert.Equal(t, math.Vec2{X: 0, Y: 1}, m.TexCoord(1))
	assert.Equal(t, math.Vec2{X: 0.2, Y: 0}, m.TexCoord(perSlice))
	// The seam slice completes the tiling.
	assert.Equal(t, math.Vec2{X: opts.UMax, Y: 0}, m.TexCoord(opts.Slices*perSlice))
	assert.Equal(t, math.Vec2{X: opts.UMax, Y: opts.VMax}, m.TexCoord(opts.Slices*perSlice+1))
}

func TestColoursFollowCorners(t *testing.T) {
	opts := DefaultOptions()
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)

	colours := Square(2).Colours
	seam := opts.Slices * 8
	for j := 0; j < 4; j++ {
		next := (j + 1) % 4
		assert.Equal(t, colours[j], m.Colour(2*j))
		assert.Equal(t, colours[next], m.Colour(2*j+1))
		// Seam vertices keep the local corner colour.
		assert.Equal(t, colours[j], m.Colour(seam+2*j))
	}
}

func TestSharedColoursWithTwistAddSeamSlice(t *testing.T) {
	opts := bareOptions(10)
	opts.WithColour = true
	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	assert.Equal(t, 11*4, m.VertexCount())

	opts.TwistTurns = 0
	m, err = Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	assert.Equal(t, 10*4, m.VertexCount())
}

func TestNormalsAreUnit(t *testing.T) {
	m, err := Generate(curve.Trefoil{}, Square(2), DefaultOptions())
	require.NoError(t, err)
	for i := 0; i < m.VertexCount(); i += 13 {
		assert.InDelta(t, 1, m.Normal(i).Length(), 1e-5, "vertex %d", i)
	}
}

func TestMeshIsImmutable(t *testing.T) {
	m, err := Generate(curve.Trefoil{}, Square(2), DefaultOptions())
	require.NoError(t, err)

	before := m.Position(0)
	positions := m.Stream(Position)
	positions[0] = 1000
	idx := m.Indices()
	idx[0] = 12345
	frames := m.Frames()
	frames[0].Origin = math.Vec3{}

	assert.Equal(t, before, m.Position(0))
	assert.NotEqual(t, uint32(12345), m.Indices()[0])
	assert.NotEqual(t, math.Vec3{}, m.Frames()[0].Origin)
}

func TestGenerateErrors(t *testing.T) {
	clockwise := Square(2)
	clockwise.Points = []math.Vec2{{X: -1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: -1}}

	rectangle := Square(2)
	rectangle.Points = []math.Vec2{{X: -2, Y: -1}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: -2, Y: 1}}

	missingNormals := Square(2)
	missingNormals.Normals = nil

	tests := []struct {
		name    string
		curve   curve.Curve
		section Section
		modify  func(*Options)
		want    error
	}{
		{"too few slices", curve.Trefoil{}, Square(2), func(o *Options) { o.Slices = 2 }, ErrTooFewSlices},
		{"empty section", curve.Trefoil{}, Section{}, func(o *Options) {}, ErrEmptySection},
		{"clockwise section", curve.Trefoil{}, clockwise, func(o *Options) {}, ErrSectionWinding},
		{"missing normals", curve.Trefoil{}, missingNormals, func(o *Options) {}, ErrInvalidSection},
		{"half step twist", curve.Trefoil{}, Square(2), func(o *Options) { o.TwistTurns = 0.5 }, ErrSeamMismatch},
		{"asymmetric section", curve.Trefoil{}, rectangle, func(o *Options) {}, ErrSeamMismatch},
		{"zero scale", curve.Trefoil{}, Square(2), func(o *Options) { o.Scale = 0 }, ErrInvalidOptions},
		{"unknown style", curve.Trefoil{}, Square(2), func(o *Options) { o.Style = Style(42) }, ErrInvalidOptions},
		{"up along tangent", curve.Circle{Radius: 1}, Square(2), func(o *Options) { o.WorldUp = math.Vec3{Y: 1} }, ErrDegenerateFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			m, err := Generate(tt.curve, tt.section, opts)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, m)
		})
	}
}

func TestOpenTubeAllowsAnyTwist(t *testing.T) {
	opts := DefaultOptions()
	opts.Closed = false
	opts.TwistTurns = 0.5

	m, err := Generate(curve.Trefoil{}, Square(2), opts)
	require.NoError(t, err)
	assert.Equal(t, opts.Slices*8, m.VertexCount())
	assert.Equal(t, 0, m.SeamShift())
}

func TestParseStyle(t *testing.T) {
	for _, s := range []Style{StylePoints, StyleSkeleton, StyleWireframe, StyleSurface} {
		got, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStyle(" Surface ")
	require.NoError(t, err)
	assert.Equal(t, StyleSurface, got)

	_, err = ParseStyle("voxels")
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestSectionSignedArea(t *testing.T) {
	assert.InDelta(t, 4, Square(2).SignedArea(), 1e-6)
	assert.InDelta(t, 0.16, Square(0.4).SignedArea(), 1e-6)
}
