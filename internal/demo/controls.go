package demo

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/trefoil/pkg/math"
)

// rotationRate returns the knot's angular velocity about each axis in
// radians per second. Left/right turn about Y and up/down about X on top of
// the automatic turn about Y.
func rotationRate(auto bool, speed float32, down func(sdl.Scancode) bool) math.Vec3 {
	var rate math.Vec3
	if auto {
		rate.Y = speed
	}
	if down(sdl.SCANCODE_LEFT) {
		rate.Y -= speed
	}
	if down(sdl.SCANCODE_RIGHT) {
		rate.Y += speed
	}
	if down(sdl.SCANCODE_UP) {
		rate.X -= speed
	}
	if down(sdl.SCANCODE_DOWN) {
		rate.X += speed
	}
	return rate
}
