package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

// thumbnailWidth is the bounding width for generated image thumbnails.
const thumbnailWidth = 400

// Thumbnail scales an image down to at most maxWidth pixels wide, keeping
// the aspect ratio, and encodes it as JPEG. Images already narrower than
// maxWidth are re-encoded at their original size.
func Thumbnail(src []byte, maxWidth int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decoding source image: %w", err)
	}

	srcX := float64(img.Bounds().Max.X)
	srcY := float64(img.Bounds().Max.Y)

	ratio := float64(maxWidth) / srcX
	if ratio > 1 {
		ratio = 1
	}

	x := int(srcX * ratio)
	y := int(srcY * ratio)

	dst := image.NewRGBA(image.Rect(0, 0, x, y))
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	opt := &jpeg.Options{
		Quality: 85,
	}
	if err := jpeg.Encode(&buf, dst, opt); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
