// Package orient turns an object's externally driven orientation into the
// model and normal matrices used at draw time.
package orient

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/trefoil/pkg/math"
)

const tau = 2 * gomath.Pi

// Orientation places an object in the world. Angles are Euler rotations in
// radians applied Z, then X, then Y.
type Orientation struct {
	Position math.Vec3
	Angles   math.Vec3
	Scale    float32
}

// New returns an unrotated orientation at the origin with unit scale.
func New() Orientation {
	return Orientation{Scale: 1}
}

// Advance returns the orientation after turning at rate (radians per second
// about each axis) for dt seconds. Angles stay within [0, Tau).
func (o Orientation) Advance(rate math.Vec3, dt float32) Orientation {
	o.Angles = math.Vec3{
		X: wrap(o.Angles.X + rate.X*dt),
		Y: wrap(o.Angles.Y + rate.Y*dt),
		Z: wrap(o.Angles.Z + rate.Z*dt),
	}
	return o
}

func wrap(a float32) float32 {
	w := gomath.Mod(float64(a), tau)
	if w < 0 {
		w += tau
	}
	return float32(w)
}

// Model returns Translate(position) * Ry * Rx * Rz * Scale.
func (o Orientation) Model() math.Mat4 {
	p := o.Position
	m := mgl32.Translate3D(p.X, p.Y, p.Z).
		Mul4(mgl32.HomogRotate3DY(o.Angles.Y)).
		Mul4(mgl32.HomogRotate3DX(o.Angles.X)).
		Mul4(mgl32.HomogRotate3DZ(o.Angles.Z)).
		Mul4(mgl32.Scale3D(o.Scale, o.Scale, o.Scale))
	return math.Mat4(m)
}

// NormalMatrix returns the inverse transpose of the model's upper 3x3,
// embedded in a Mat4 with no translation. A singular model yields zeros.
func NormalMatrix(model math.Mat4) math.Mat4 {
	return math.Mat4(mgl32.Mat4(model).Mat3().Inv().Transpose().Mat4())
}

// Matrices returns both draw-time matrices for the orientation.
func (o Orientation) Matrices() (model, normal math.Mat4) {
	model = o.Model()
	return model, NormalMatrix(model)
}
