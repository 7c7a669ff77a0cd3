// Package screenshot saves rendered frames as PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/panosphere/pkg/angle"
	"github.com/Faultbox/panosphere/pkg/sphere"
)

// Capture writes frames into a directory, naming each file after the time
// and the view direction it was taken at.
type Capture struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// New creates a capture handler writing to outputDir ("" = working dir).
func New(outputDir, prefix string) *Capture {
	return &Capture{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the path a frame taken at p would be saved to.
func (c *Capture) Filename(p sphere.Position) string {
	name := fmt.Sprintf("%s_%s_lon%03.0f_lat%+03.0f.png",
		c.prefix,
		c.now().Format("2006-01-02_15-04-05"),
		angle.Degrees(p.Longitude),
		angle.Degrees(p.Latitude),
	)
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// Save writes a frame read back from OpenGL. pixels are RGBA rows from the
// bottom of the frame up, width*height*4 bytes.
func (c *Capture) Save(pixels []byte, width, height int, p sphere.Position) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	// OpenGL has its origin at the bottom-left
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}

	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename(p)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}
