package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/trefoil/pkg/math"
)

func near(a, b math.Vec3) bool {
	const eps = 1e-5
	return gomath.Abs(float64(a.X-b.X)) < eps &&
		gomath.Abs(float64(a.Y-b.Y)) < eps &&
		gomath.Abs(float64(a.Z-b.Z)) < eps
}

func TestViewMatrix(t *testing.T) {
	c := NewOrthoCamera(5, 8, 8, 1, 10)

	got := c.ViewMatrix().TransformPoint(math.Vec3{})
	if want := (math.Vec3{Z: -5}); got != want {
		t.Errorf("origin in view space = %v, want %v", got, want)
	}
	if got := c.ViewMatrix().TransformPoint(c.Position()); got != (math.Vec3{}) {
		t.Errorf("camera in view space = %v, want origin", got)
	}
}

func TestProjectionMatrix(t *testing.T) {
	c := NewOrthoCamera(5, 8, 8, 1, 10)
	vp := c.ProjectionMatrix().Mul(c.ViewMatrix())

	tests := []struct {
		name  string
		world math.Vec3
		want  math.Vec3
	}{
		{"centre", math.Vec3{Z: 0}, math.Vec3{Z: (5.0 - 5.5) / 4.5}},
		{"top right at near plane", math.Vec3{X: 4, Y: 4, Z: 4}, math.Vec3{X: 1, Y: 1, Z: -1}},
		{"bottom left at far plane", math.Vec3{X: -4, Y: -4, Z: -5}, math.Vec3{X: -1, Y: -1, Z: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vp.TransformPoint(tt.world); !near(got, tt.want) {
				t.Errorf("clip(%v) = %v, want %v", tt.world, got, tt.want)
			}
		})
	}
}

func TestExtentKeepsMinimumView(t *testing.T) {
	tests := []struct {
		width, height int
		wantW, wantH  float32
	}{
		{800, 800, 8, 8},
		{1600, 800, 16, 8},
		{800, 1600, 8, 16},
	}

	for _, tt := range tests {
		c := NewOrthoCamera(5, 8, 8, 1, 10)
		c.Resize(tt.width, tt.height)
		w, h := c.Extent()
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("Extent() at %dx%d = %vx%v, want %vx%v", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	c := NewOrthoCamera(5, 8, 8, 1, 10)
	c.Resize(0, 600)
	if w, h := c.Extent(); w != 8 || h != 8 {
		t.Errorf("Extent() = %vx%v, want 8x8", w, h)
	}
}
