package export

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/udhos/gwob"
	"go.uber.org/zap"

	"github.com/Faultbox/trefoil/internal/logger"
	"github.com/Faultbox/trefoil/pkg/math"
	"github.com/Faultbox/trefoil/pkg/tube"
)

// verifyTolerance absorbs float32 to float64 parse rounding in the reader.
const verifyTolerance = 1e-6

// Report summarises a verified OBJ file as gwob sees it. Vertices counts the
// reader's unified vertices.
type Report struct {
	Vertices  int
	Triangles int
	TexCoords bool
	Normals   bool
}

// Verify parses the OBJ file at path and checks it describes the same
// triangles as m: the same index count, and for each face corner the same
// position, texture coordinate and normal. Only triangle meshes can be
// verified.
func Verify(path string, m *tube.Mesh) (Report, error) {
	if m.Primitive() != tube.Triangles {
		return Report{}, fmt.Errorf("%w: %v", ErrUnsupported, m.Primitive())
	}

	log := logger.Named("export")
	obj, err := gwob.NewObjFromFile(path, &gwob.ObjParserOptions{
		Logger: func(msg string) { log.Debug(msg) },
	})
	if err != nil {
		return Report{}, fmt.Errorf("parse %s: %w", path, err)
	}

	stride := obj.StrideSize / 4
	rep := Report{
		Triangles: len(obj.Indices) / 3,
		TexCoords: obj.TextCoordFound,
		Normals:   obj.NormCoordFound,
	}
	if stride > 0 {
		rep.Vertices = len(obj.Coord) / stride
	}

	want := m.Indices()
	if len(obj.Indices) != len(want) {
		return rep, fmt.Errorf("%w: %d indices, want %d", ErrMismatch, len(obj.Indices), len(want))
	}
	if rep.TexCoords != m.Has(tube.UV) || rep.Normals != m.Has(tube.Normal) {
		return rep, fmt.Errorf("%w: streams uv=%t normals=%t, want uv=%t normals=%t",
			ErrMismatch, rep.TexCoords, rep.Normals, m.Has(tube.UV), m.Has(tube.Normal))
	}

	coord := func(idx, offset, k int) float32 {
		return obj.Coord[idx*stride+offset/4+k]
	}
	for k, idx := range obj.Indices {
		vi := int(want[k])

		p := math.Vec3{
			X: coord(idx, obj.StrideOffsetPosition, 0),
			Y: coord(idx, obj.StrideOffsetPosition, 1),
			Z: coord(idx, obj.StrideOffsetPosition, 2),
		}
		if !close3(p, m.Position(vi)) {
			return rep, fmt.Errorf("%w: triangle %d position %v, want %v", ErrMismatch, k/3, p, m.Position(vi))
		}

		if rep.TexCoords {
			uv := math.Vec2{
				X: coord(idx, obj.StrideOffsetTexture, 0),
				Y: coord(idx, obj.StrideOffsetTexture, 1),
			}
			w := m.TexCoord(vi)
			if !close1(uv.X, w.X) || !close1(uv.Y, w.Y) {
				return rep, fmt.Errorf("%w: triangle %d texcoord %v, want %v", ErrMismatch, k/3, uv, w)
			}
		}

		if rep.Normals {
			n := math.Vec3{
				X: coord(idx, obj.StrideOffsetNormal, 0),
				Y: coord(idx, obj.StrideOffsetNormal, 1),
				Z: coord(idx, obj.StrideOffsetNormal, 2),
			}
			if !close3(n, m.Normal(vi)) {
				return rep, fmt.Errorf("%w: triangle %d normal %v, want %v", ErrMismatch, k/3, n, m.Normal(vi))
			}
		}
	}

	log.Info("export verified",
		zap.String("path", path),
		zap.Int("vertices", rep.Vertices),
		zap.Int("triangles", rep.Triangles))
	return rep, nil
}

func close1(a, b float32) bool {
	return math32.Abs(a-b) <= verifyTolerance*math32.Max(1, math32.Abs(b))
}

func close3(a, b math.Vec3) bool {
	return close1(a.X, b.X) && close1(a.Y, b.Y) && close1(a.Z, b.Z)
}
