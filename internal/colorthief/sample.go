package colorthief

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/colorthief-mcp/internal/mmcq"
)

// Sampling thresholds.
const (
	// WhiteThreshold is the level every channel must exceed for a pixel to
	// count as near-white.
	WhiteThreshold = 250

	// AlphaThreshold is the minimum alpha of a sampled pixel. More
	// transparent pixels never reach the histogram.
	AlphaThreshold = 125
)

// SamplePixels strides over the image in row-major order, keeping every
// quality-th pixel.
//
// Pixels with alpha below AlphaThreshold are skipped. With ignoreWhite,
// pixels whose red, green and blue all exceed WhiteThreshold are skipped as
// well. Skipped pixels do not shift the stride. The result is empty, not
// nil-with-error, when nothing survives.
//
// quality must be at least 1; ErrInvalidQuality is returned otherwise.
func SamplePixels(img image.Image, quality int, ignoreWhite bool) ([]mmcq.Pixel, error) {
	if quality < 1 {
		return nil, fmt.Errorf("%w: %d must be at least 1", ErrInvalidQuality, quality)
	}

	// Non-premultiplied copy anchored at (0,0)
	src := imaging.Clone(img)
	width := src.Bounds().Dx()
	total := width * src.Bounds().Dy()

	pixels := make([]mmcq.Pixel, 0, (total+quality-1)/quality)
	for i := 0; i < total; i += quality {
		x, y := i%width, i/width
		off := y*src.Stride + x*4
		r, g, b, a := src.Pix[off], src.Pix[off+1], src.Pix[off+2], src.Pix[off+3]

		if a < AlphaThreshold {
			continue
		}
		if ignoreWhite && r > WhiteThreshold && g > WhiteThreshold && b > WhiteThreshold {
			continue
		}
		pixels = append(pixels, mmcq.Pixel{R: r, G: g, B: b})
	}

	return pixels, nil
}
