// Package camera provides the fixed orthographic camera the demo views the
// knot through.
package camera

import (
	"github.com/Faultbox/trefoil/pkg/math"
)

// OrthoCamera sits on the +Z axis looking at the origin with Y up.
//
//	  Y
//	  |
//	  W--X        C = (0, 0, Distance)
//	 /
//	Z (out of screen)
type OrthoCamera struct {
	Distance float32

	// Width and Height are the minimum extent of world space kept in view.
	Width  float32
	Height float32

	Near float32
	Far  float32

	aspect float32
}

// NewOrthoCamera creates a camera for a square viewport.
func NewOrthoCamera(distance, width, height, near, far float32) *OrthoCamera {
	return &OrthoCamera{
		Distance: distance,
		Width:    width,
		Height:   height,
		Near:     near,
		Far:      far,
		aspect:   1,
	}
}

// Resize records the viewport's aspect ratio.
func (c *OrthoCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.aspect = float32(width) / float32(height)
}

// Position returns the camera position in world space.
func (c *OrthoCamera) Position() math.Vec3 {
	return math.Vec3{Z: c.Distance}
}

// ViewMatrix returns the inverse of the camera's placement.
func (c *OrthoCamera) ViewMatrix() math.Mat4 {
	return math.Translate(0, 0, -c.Distance)
}

// ProjectionMatrix returns an orthographic projection that keeps at least
// Width x Height in view, widening whichever side the viewport's aspect
// ratio leaves spare.
func (c *OrthoCamera) ProjectionMatrix() math.Mat4 {
	w, h := c.Extent()
	return math.Ortho(-w/2, w/2, -h/2, h/2, c.Near, c.Far)
}

// Extent returns the world-space size of the view.
func (c *OrthoCamera) Extent() (width, height float32) {
	width, height = c.Width, c.Height
	aspect := c.aspect
	if aspect == 0 {
		aspect = 1
	}
	if aspect > width/height {
		width = height * aspect
	} else {
		height = width / aspect
	}
	return width, height
}
