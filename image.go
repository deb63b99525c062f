package afis

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	wsq "github.com/jtejido/go-wsq"
	"github.com/spakin/netpbm"

	"github.com/high-horse/afis/templates"
)

// Image is a raw grayscale fingerprint image: one byte per pixel,
// row-major, 0 black to 255 white.
type Image struct {
	Width  int
	Height int
	Pixels []byte
}

// NewImage wraps an existing pixel buffer without copying it.
func NewImage(width, height int, pixels []byte) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, &templates.ValidationError{Field: "image", Reason: fmt.Sprintf("bounds %dx%d must be positive", width, height)}
	}
	if len(pixels) != width*height {
		return nil, &templates.ValidationError{Field: "image", Reason: fmt.Sprintf("pixel buffer has %d bytes, %dx%d needs %d", len(pixels), width, height, width*height)}
	}
	return &Image{Width: width, Height: height, Pixels: pixels}, nil
}

// At returns the intensity at (x, y).
func (img *Image) At(x, y int) byte {
	return img.Pixels[y*img.Width+x]
}

// DecodeImage reads a fingerprint image from encoded bytes, trying the
// formats scanners commonly emit: WSQ, netpbm PGM, PNG, then JPEG. The
// returned string names the codec that matched.
func DecodeImage(data []byte) (*Image, string, error) {
	if src, err := wsq.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(src), "wsq", nil
	}
	if src, err := netpbm.Decode(bytes.NewReader(data), &netpbm.DecodeOptions{Target: netpbm.PGM, Exact: false}); err == nil {
		return fromImage(src), "pgm", nil
	}
	if src, err := png.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(src), "png", nil
	}
	if src, err := jpeg.Decode(bytes.NewReader(data)); err == nil {
		return fromImage(src), "jpeg", nil
	}
	return nil, "", &templates.DecodeError{Format: "image", Field: "codec", Offset: 0, Reason: "unrecognized image data, want WSQ, PGM, PNG or JPEG"}
}

func fromImage(src image.Image) *Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := color.GrayModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			pixels[y*w+x] = g.Y
		}
	}
	return &Image{Width: w, Height: h, Pixels: pixels}
}
