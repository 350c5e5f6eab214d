// Package ggimaging provides an imaging implementation using the gg library.
package ggimaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/HollaG/youtube-screenshot-server/pkg/ports"
)

// Imaging implements ports.Imaging using the gg library.
type Imaging struct{}

// New creates a new Imaging.
func New() *Imaging {
	return &Imaging{}
}

// DecodeImage decodes image data into an image.Image.
func (i *Imaging) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeImage encodes an image to the specified format.
func (i *Imaging) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// CropImage extracts the rectangle (left, top, width, height) from img by
// drawing it onto a fresh canvas with a negative offset.
func (i *Imaging) CropImage(img image.Image, left, top, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("crop %dx%d is empty", width, height)
	}
	bounds := img.Bounds()
	if left < 0 || top < 0 || left+width > bounds.Dx() || top+height > bounds.Dy() {
		return nil, fmt.Errorf("crop %d,%d %dx%d exceeds image %dx%d",
			left, top, width, height, bounds.Dx(), bounds.Dy())
	}

	dc := gg.NewContext(width, height)
	dc.DrawImage(img, -left, -top)
	return dc.Image(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (i *Imaging) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Ensure Imaging implements ports.Imaging
var _ ports.Imaging = (*Imaging)(nil)
