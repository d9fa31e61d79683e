// Package colorthief extracts palettes and dominant colors from images.
//
// It samples an image with SamplePixels and hands the surviving pixels to
// the mmcq quantizer. Arguments are validated before any pixel is read.
// An image whose pixels are all filtered out yields an absent result
// (ok == false), never a fabricated color.
package colorthief

import (
	"fmt"
	"image"

	"github.com/ironsheep/colorthief-mcp/internal/mmcq"
)

// Defaults shared by every entry point.
const (
	DefaultColorCount  = 10
	DefaultQuality     = 10
	DefaultIgnoreWhite = false

	// DominantColorCount is the palette size GetColor picks its color from.
	DominantColorCount = 5

	MinColorCount = 2
	MaxColorCount = mmcq.MaxColors
)

// ErrInvalidQuality is returned for a sampling stride below 1.
var ErrInvalidQuality = fmt.Errorf("%w: quality", mmcq.ErrInvalidArgument)

// Options controls sampling and quantization.
type Options struct {
	// ColorCount is the requested palette size, in [MinColorCount, MaxColorCount].
	ColorCount int

	// Quality is the sampling stride: 1 reads every pixel, 10 every tenth.
	// Higher values are faster and more likely to miss colors.
	Quality int

	// IgnoreWhite drops near-white pixels before quantization.
	IgnoreWhite bool

	// SigBits is the histogram precision. Zero means mmcq.DefaultSigBits.
	SigBits int
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		ColorCount:  DefaultColorCount,
		Quality:     DefaultQuality,
		IgnoreWhite: DefaultIgnoreWhite,
		SigBits:     mmcq.DefaultSigBits,
	}
}

// Validate checks the options without touching any image.
func (o Options) Validate() error {
	if o.ColorCount < MinColorCount || o.ColorCount > MaxColorCount {
		return fmt.Errorf("%w: %d not in [%d, %d]", mmcq.ErrInvalidColorCount, o.ColorCount, MinColorCount, MaxColorCount)
	}
	if o.Quality < 1 {
		return fmt.Errorf("%w: %d must be at least 1", ErrInvalidQuality, o.Quality)
	}
	if o.SigBits != 0 && (o.SigBits < mmcq.MinSigBits || o.SigBits > mmcq.MaxSigBits) {
		return fmt.Errorf("%w: %d not in [%d, %d]", mmcq.ErrInvalidSigBits, o.SigBits, mmcq.MinSigBits, mmcq.MaxSigBits)
	}
	return nil
}

// GetColorMap samples img and quantizes the samples.
//
// Returns:
//   - *mmcq.ColorMap: At most opts.ColorCount entries, most dominant first.
//   - bool: False when no pixel survived sampling.
//   - error: Non-nil for invalid options.
func GetColorMap(img image.Image, opts Options) (*mmcq.ColorMap, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}

	pixels, err := SamplePixels(img, opts.Quality, opts.IgnoreWhite)
	if err != nil {
		return nil, false, err
	}

	qopts := mmcq.DefaultOptions()
	if opts.SigBits != 0 {
		qopts.SigBits = opts.SigBits
	}
	return mmcq.Quantize(pixels, opts.ColorCount, qopts)
}

// GetPalette returns the palette of img, most dominant entry first.
// The palette may be shorter than opts.ColorCount.
func GetPalette(img image.Image, opts Options) ([]mmcq.Swatch, bool, error) {
	cmap, ok, err := GetColorMap(img, opts)
	if err != nil || !ok {
		return nil, false, err
	}
	return cmap.Swatches(), true, nil
}

// GetColor returns the dominant color of img: the first entry of a
// DominantColorCount palette. opts.ColorCount is ignored.
func GetColor(img image.Image, opts Options) (mmcq.Swatch, bool, error) {
	opts.ColorCount = DominantColorCount
	cmap, ok, err := GetColorMap(img, opts)
	if err != nil || !ok {
		return mmcq.Swatch{}, false, err
	}
	dominant, ok := cmap.Dominant()
	return dominant, ok, nil
}
