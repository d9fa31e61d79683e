package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidCrop reports a negative crop dimension.
var ErrInvalidCrop = errors.New("invalid crop size")

// CropToSize keeps the width x height region at the image origin.
//
// A zero dimension means the source extent on that axis; this applies to
// width and height alike. Dimensions larger than the image are clamped to
// it. With both dimensions zero the image is returned unchanged.
func CropToSize(img image.Image, width, height int) (image.Image, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCrop, width, height)
	}
	if width == 0 && height == 0 {
		return img, nil
	}

	bounds := img.Bounds()
	if width == 0 || width > bounds.Dx() {
		width = bounds.Dx()
	}
	if height == 0 || height > bounds.Dy() {
		height = bounds.Dy()
	}

	rect := image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+width, bounds.Min.Y+height)
	return imaging.Crop(img, rect), nil
}
