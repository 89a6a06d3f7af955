// Package debug provides developer tools for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as timestamped PNG files.
type Screenshots struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewScreenshots creates a capture handler writing to dir. An empty dir
// means the working directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{dir: dir, prefix: prefix, now: time.Now}
}

// Save writes RGBA pixels read bottom-up from OpenGL and returns the path.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	img, err := FlipRows(pixels, width, height)
	if err != nil {
		return "", err
	}

	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := s.Filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// Filename returns the path the next capture would be written to.
func (s *Screenshots) Filename() string {
	name := fmt.Sprintf("%s_%s.png", s.prefix, s.now().Format("2006-01-02_15-04-05.000"))
	if s.dir == "" {
		return name
	}
	return filepath.Join(s.dir, name)
}

// FlipRows copies bottom-up RGBA rows into a top-down image.
func FlipRows(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}
