package ports

import "image"

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatJPEG
)

// Imaging abstracts image decode, crop and encode operations.
type Imaging interface {
	// DecodeImage decodes image data into an image.Image.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	// quality applies to lossy formats only.
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// CropImage returns the rectangle (left, top, width, height) of img.
	// The rectangle must lie fully within the image bounds.
	CropImage(img image.Image, left, top, width, height int) (image.Image, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}
