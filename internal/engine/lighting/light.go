// Package lighting holds the directional light used by the lit shader.
package lighting

import "github.com/Faultbox/trefoil/pkg/math"

// Uniform names read by the lit fragment shader.
const (
	UniformAmbient   = "u_ambientIntensity"
	UniformDiffuse   = "u_diffuseIntensity"
	UniformDirection = "u_lightDirection"
)

// Uniforms is the part of a presenter a light needs.
type Uniforms interface {
	SetFloat(name string, v float32)
	SetVec4(name string, v math.Vec4)
}

// Directional is a light at infinity. Direction points toward the light and
// has w = 0; the shader normalizes it.
type Directional struct {
	Ambient   float32
	Diffuse   float32
	Direction math.Vec4
}

// Apply sets the light's uniforms on the current program.
func (l Directional) Apply(u Uniforms) {
	u.SetFloat(UniformAmbient, l.Ambient)
	u.SetFloat(UniformDiffuse, l.Diffuse)
	u.SetVec4(UniformDirection, l.Direction)
}
