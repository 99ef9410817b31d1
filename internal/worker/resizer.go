package worker

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

//go:generate mockgen -source=resizer.go -destination=../mock/resizer_mock.go -package=mock

// Resizer scales an encoded image to a width, keeping its aspect ratio.
type Resizer interface {
	Resize(data []byte, width int) ([]byte, error)
}

// ImagingResizer implements [Resizer] with Lanczos resampling. The result is
// encoded in the format of the source.
type ImagingResizer struct{}

func NewImagingResizer() *ImagingResizer {
	return &ImagingResizer{}
}

func (r *ImagingResizer) Resize(data []byte, width int) ([]byte, error) {
	if width <= 0 {
		return nil, fmt.Errorf("invalid thumbnail width %d", width)
	}

	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	format, err := imaging.FormatFromExtension(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, imaging.Resize(img, width, 0, imaging.Lanczos), format); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}
