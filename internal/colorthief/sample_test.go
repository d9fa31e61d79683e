package colorthief

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/colorthief-mcp/internal/mmcq"
)

// createStripedImage creates an image whose pixel i (row-major) has red = i.
func createStripedImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		img.SetNRGBA(i%width, i/width, color.NRGBA{uint8(i), 0, 0, 255})
	}
	return img
}

func TestSamplePixels_Stride(t *testing.T) {
	img := createStripedImage(10, 10)

	tests := []struct {
		quality int
		want    int
	}{
		{1, 100},
		{3, 34},
		{10, 10},
		{100, 1},
		{1000, 1},
	}

	for _, tt := range tests {
		pixels, err := SamplePixels(img, tt.quality, false)
		if err != nil {
			t.Fatalf("SamplePixels failed: %v", err)
		}
		if len(pixels) != tt.want {
			t.Errorf("quality %d: got %d pixels, want %d", tt.quality, len(pixels), tt.want)
		}
		for j, p := range pixels {
			if int(p.R) != j*tt.quality {
				t.Errorf("quality %d: pixel %d red got %d, want %d", tt.quality, j, p.R, j*tt.quality)
				break
			}
		}
	}
}

func TestSamplePixels_InvalidQuality(t *testing.T) {
	img := createStripedImage(2, 2)
	for _, q := range []int{0, -1} {
		_, err := SamplePixels(img, q, false)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("quality %d: got %v, want ErrInvalidQuality", q, err)
		}
		if !errors.Is(err, mmcq.ErrInvalidArgument) {
			t.Errorf("quality %d: error should wrap ErrInvalidArgument", q)
		}
	}
}

func TestSamplePixels_IgnoreWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255}) // white
	img.SetNRGBA(1, 0, color.NRGBA{251, 251, 251, 255}) // near-white
	img.SetNRGBA(2, 0, color.NRGBA{250, 255, 255, 255}) // red at threshold, kept
	img.SetNRGBA(3, 0, color.NRGBA{10, 20, 30, 255})

	kept, err := SamplePixels(img, 1, true)
	if err != nil {
		t.Fatalf("SamplePixels failed: %v", err)
	}
	want := []mmcq.Pixel{{R: 250, G: 255, B: 255}, {R: 10, G: 20, B: 30}}
	if len(kept) != len(want) {
		t.Fatalf("ignoreWhite: got %v, want %v", kept, want)
	}
	for i := range want {
		if kept[i] != want[i] {
			t.Errorf("pixel %d: got %v, want %v", i, kept[i], want[i])
		}
	}

	all, err := SamplePixels(img, 1, false)
	if err != nil {
		t.Fatalf("SamplePixels failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("without ignoreWhite: got %d pixels, want 4", len(all))
	}
}

func TestSamplePixels_SkipsTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 0, 0, 0})
	img.SetNRGBA(1, 0, color.NRGBA{0, 200, 0, AlphaThreshold - 1})
	img.SetNRGBA(2, 0, color.NRGBA{0, 0, 200, AlphaThreshold})

	pixels, err := SamplePixels(img, 1, false)
	if err != nil {
		t.Fatalf("SamplePixels failed: %v", err)
	}
	if len(pixels) != 1 || pixels[0] != (mmcq.Pixel{B: 200}) {
		t.Errorf("got %v, want only the opaque blue pixel", pixels)
	}
}

func TestSamplePixels_OffsetBounds(t *testing.T) {
	full := createStripedImage(10, 10)
	sub := full.SubImage(image.Rect(5, 5, 10, 10))

	pixels, err := SamplePixels(sub, 1, false)
	if err != nil {
		t.Fatalf("SamplePixels failed: %v", err)
	}
	if len(pixels) != 25 {
		t.Fatalf("got %d pixels, want 25", len(pixels))
	}
	// First sampled pixel is (5,5) of the full image: 5*10 + 5
	if pixels[0].R != 55 {
		t.Errorf("first pixel red: got %d, want 55", pixels[0].R)
	}
}

func TestSamplePixels_EmptyImage(t *testing.T) {
	pixels, err := SamplePixels(image.NewRGBA(image.Rect(0, 0, 0, 0)), 1, false)
	if err != nil {
		t.Fatalf("SamplePixels failed: %v", err)
	}
	if len(pixels) != 0 {
		t.Errorf("got %d pixels, want 0", len(pixels))
	}
}
