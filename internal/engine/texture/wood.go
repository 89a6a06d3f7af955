package texture

import (
	"image"
	"image/color"
	gomath "math"
)

// Wood generates a tileable wood-grain texture of concentric rings. The
// result depends only on its arguments.
func Wood(size, rings int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 222, G: 184, B: 135, A: 255}
	dark := color.RGBA{R: 139, G: 90, B: 43, A: 255}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := float64(x) / float64(size) * 2 * gomath.Pi
			v := float64(y) / float64(size) * 2 * gomath.Pi

			// Periodic in both axes so the texture tiles along the tube.
			wobble := 0.15*gomath.Sin(3*v) + 0.05*gomath.Sin(7*u+2*v)
			r := gomath.Hypot(gomath.Cos(u)+wobble, gomath.Sin(v))
			grain := 0.5 + 0.5*gomath.Sin(r*float64(rings)*gomath.Pi)
			grain = gomath.Pow(grain, 3)

			img.SetRGBA(x, y, lerp(light, dark, grain))
		}
	}
	return img
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(p, q uint8) uint8 {
		return uint8(gomath.Round(float64(p) + (float64(q)-float64(p))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
