// Package curve provides closed parametric space curves.
//
// Every curve is periodic in t with period Tau and is sampled without state,
// so the same parameter always yields bit-identical results.
package curve

import (
	gomath "math"

	"github.com/Faultbox/trefoil/pkg/math"
)

// Tau is a full turn in radians.
const Tau = 2 * gomath.Pi

// Curve is a parametric space curve.
type Curve interface {
	// Position returns the point on the curve at t.
	Position(t float64) math.Vec3
	// Tangent returns a vector along the curve direction at t.
	// It is not normalised.
	Tangent(t float64) math.Vec3
}

// Trefoil is the (2,3) torus knot used by the demos.
type Trefoil struct{}

// Position implements Curve.
func (Trefoil) Position(t float64) math.Vec3 {
	return vec3(
		gomath.Sin(t)+2*gomath.Sin(2*t),
		gomath.Cos(t)-2*gomath.Cos(2*t),
		-gomath.Sin(3*t),
	)
}

// Tangent implements Curve. It is the analytic derivative of Position.
func (Trefoil) Tangent(t float64) math.Vec3 {
	return vec3(
		gomath.Cos(t)+4*gomath.Cos(2*t),
		-gomath.Sin(t)+4*gomath.Sin(2*t),
		-3*gomath.Cos(3*t),
	)
}

// Circle is a circle of the given radius in the XY plane, centred on the origin.
type Circle struct {
	Radius float64
}

// Position implements Curve.
func (c Circle) Position(t float64) math.Vec3 {
	return vec3(c.Radius*gomath.Cos(t), c.Radius*gomath.Sin(t), 0)
}

// Tangent implements Curve.
func (c Circle) Tangent(t float64) math.Vec3 {
	return vec3(-gomath.Sin(t), gomath.Cos(t), 0)
}

// Param returns the parameter of slice i out of n evenly spaced slices.
func Param(i, n int) float64 {
	return float64(i) * Tau / float64(n)
}

func vec3(x, y, z float64) math.Vec3 {
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}
