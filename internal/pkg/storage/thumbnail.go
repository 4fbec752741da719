package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"

	// Register decoders for the formats uploads arrive in.
	_ "image/gif"
	_ "image/png"
)

// Thumbnailer downscales uploaded images into JPEG thumbnails.
type Thumbnailer struct{}

func NewThumbnailer() *Thumbnailer {
	return &Thumbnailer{}
}

// Generate decodes the source image and fits it into the
// maxWidth x maxHeight bounding box, preserving aspect ratio.
func (t *Thumbnailer) Generate(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	thumb := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf, nil
}
