// Package panorama reads the sphere geometry of a panorama file without
// decoding its pixels: the image header gives the size and embedded GPano
// XMP metadata gives the crop of partial panoramas.
package panorama

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG header registration
	_ "image/png"  // PNG header registration
	"os"
	"strconv"

	_ "golang.org/x/image/bmp"  // BMP header registration
	_ "golang.org/x/image/tiff" // TIFF header registration
	_ "golang.org/x/image/webp" // WebP header registration

	"github.com/Faultbox/panosphere/pkg/sphere"
)

var (
	// ErrNoGPano is returned by ParseXMP when the data carries no GPano crop.
	ErrNoGPano = errors.New("no GPano metadata")
	// ErrInvalidGPano reports GPano metadata that is present but unusable.
	ErrInvalidGPano = errors.New("invalid GPano metadata")
)

// Info is what Inspect learned about a panorama file.
type Info struct {
	Format   string
	Width    int
	Height   int
	Geometry sphere.Geometry
	// FromXMP is set when Geometry came from GPano metadata rather than the
	// image size.
	FromXMP bool
	// XMPErr holds the reason GPano metadata found in the file was ignored.
	XMPErr error
}

// Inspect reads the header and XMP metadata of the file at path.
func Inspect(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("reading panorama: %w", err)
	}
	return InspectBytes(data)
}

// InspectBytes is Inspect on an in-memory file.
func InspectBytes(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("reading image header: %w", err)
	}

	info := Info{
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Geometry: sphere.FullGeometry(cfg.Width, cfg.Height),
	}

	g, err := ParseXMP(data)
	if err == nil {
		if verr := g.Validate(); verr != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidGPano, verr)
		}
	}
	switch {
	case err == nil:
		info.Geometry = g
		info.FromXMP = true
	case errors.Is(err, ErrInvalidGPano):
		info.XMPErr = err
	}
	return info, nil
}

// gpanoFields are the GPano properties making up a Geometry.
var gpanoFields = []string{
	"FullPanoWidthPixels",
	"FullPanoHeightPixels",
	"CroppedAreaImageWidthPixels",
	"CroppedAreaImageHeightPixels",
	"CroppedAreaLeftPixels",
	"CroppedAreaTopPixels",
}

// ParseXMP extracts the GPano crop from the XMP packet embedded in data.
// Properties may be written as elements or as attributes.
func ParseXMP(data []byte) (sphere.Geometry, error) {
	start := bytes.Index(data, []byte("<x:xmpmeta"))
	if start == -1 {
		return sphere.Geometry{}, ErrNoGPano
	}
	end := bytes.Index(data[start:], []byte("</x:xmpmeta>"))
	if end == -1 {
		return sphere.Geometry{}, ErrNoGPano
	}
	xmp := data[start : start+end]

	var values [6]int
	for i, name := range gpanoFields {
		v, ok := gpanoValue(xmp, name)
		if !ok {
			return sphere.Geometry{}, fmt.Errorf("%w: missing %s", ErrNoGPano, name)
		}
		n, err := strconv.Atoi(string(bytes.TrimSpace(v)))
		if err != nil {
			return sphere.Geometry{}, fmt.Errorf("%w: %s=%q", ErrInvalidGPano, name, v)
		}
		values[i] = n
	}

	return sphere.Geometry{
		FullWidth:     values[0],
		FullHeight:    values[1],
		CroppedWidth:  values[2],
		CroppedHeight: values[3],
		CroppedX:      values[4],
		CroppedY:      values[5],
	}, nil
}

// gpanoValue finds <GPano:name>v</GPano:name> or GPano:name="v".
func gpanoValue(xmp []byte, name string) ([]byte, bool) {
	open := []byte("<GPano:" + name + ">")
	if i := bytes.Index(xmp, open); i != -1 {
		rest := xmp[i+len(open):]
		if j := bytes.Index(rest, []byte("</GPano:"+name+">")); j != -1 {
			return rest[:j], true
		}
	}

	attr := []byte("GPano:" + name + "=")
	if i := bytes.Index(xmp, attr); i != -1 {
		rest := xmp[i+len(attr):]
		if len(rest) == 0 || (rest[0] != '"' && rest[0] != '\'') {
			return nil, false
		}
		quote := rest[0]
		if j := bytes.IndexByte(rest[1:], quote); j != -1 {
			return rest[1 : j+1], true
		}
	}
	return nil, false
}
