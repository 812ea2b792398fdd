package photo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	// TargetSize is the side length of the square output image
	TargetSize = 512
	// Quality is the lossy WebP encoder quality
	Quality = 82
)

// Normalize converts an uploaded image (JPEG, PNG or WebP) into the canonical
// member photo format: center-cropped to a 512x512 square and re-encoded as
// lossy WebP. The output never keeps the input's metadata.
func Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// image.Decode only knows the registered stdlib formats
		img, err = webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unsupported image format: %w", err)
		}
	}

	square := imaging.Fill(img, TargetSize, TargetSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, square, &webp.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
