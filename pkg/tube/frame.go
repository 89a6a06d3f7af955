package tube

import (
	"fmt"

	"github.com/Faultbox/trefoil/pkg/math"
)

// degenerateEpsilon bounds |worldUp x K| relative to |worldUp|. Below it the
// I axis has no usable direction.
const degenerateEpsilon = 1e-6

// Frame is an orthonormal right-handed basis attached to a point on a curve.
// K follows the curve, I and J span the cross-section plane.
type Frame struct {
	Origin  math.Vec3
	I, J, K math.Vec3
}

// BuildFrame derives a frame from a point, its tangent direction and a fixed
// world reference vector:
//
//	K = normalize(tangent)
//	I = normalize(worldUp x K)
//	J = K x I
//
// The reference vector must not be parallel to the tangent; in that case the
// returned error wraps ErrDegenerateFrame.
func BuildFrame(origin, tangent, worldUp math.Vec3) (Frame, error) {
	if tangent.Length() < degenerateEpsilon {
		return Frame{}, fmt.Errorf("zero-length tangent: %w", ErrDegenerateFrame)
	}
	k := tangent.Normalize()

	side := worldUp.Cross(k)
	if upLen := worldUp.Length(); upLen == 0 || side.Length() < degenerateEpsilon*upLen {
		return Frame{}, fmt.Errorf("up %v, tangent %v: %w", worldUp, k, ErrDegenerateFrame)
	}
	i := side.Normalize()
	j := k.Cross(i).Normalize()

	return Frame{Origin: origin, I: i, J: j, K: k}, nil
}

// Matrix returns the placement matrix [I J K Origin], mapping section-local
// coordinates (x along I, y along J, z along K) to world space.
func (f Frame) Matrix() math.Mat4 {
	return math.FromColumns(f.I.Vec4(0), f.J.Vec4(0), f.K.Vec4(0), f.Origin.Vec4(1))
}

// Rotation returns the frame's basis without the translation.
func (f Frame) Rotation() math.Mat4 {
	return math.FromColumns(f.I.Vec4(0), f.J.Vec4(0), f.K.Vec4(0), math.Vec4{0, 0, 0, 1})
}
