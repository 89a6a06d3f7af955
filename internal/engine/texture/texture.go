// Package texture decodes surface images, generates the default wood grain
// and uploads textures to the GPU.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // registered decoders
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Load reads an image file. TGA is chosen by extension since it has no
// signature; everything else is sniffed.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return ToRGBA(img), nil
}

// ToRGBA converts any image to RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// Resize scales an image to size x size for GPUs that want power-of-two
// textures.
func Resize(img *image.RGBA, size int) *image.RGBA {
	if img.Rect.Dx() == size && img.Rect.Dy() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Rect, draw.Src, nil)
	return dst
}
