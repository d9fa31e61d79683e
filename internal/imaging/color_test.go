package imaging

import (
	"testing"

	"github.com/ironsheep/colorthief-mcp/internal/mmcq"
)

func TestFormatColor(t *testing.T) {
	result := FormatColor(mmcq.Pixel{R: 255, G: 128, B: 64})

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.RGB.R != 255 || result.RGB.G != 128 || result.RGB.B != 64 {
		t.Errorf("RGB: got (%d,%d,%d), want (255,128,64)", result.RGB.R, result.RGB.G, result.RGB.B)
	}
}

func TestFormatColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		pixel   mmcq.Pixel
		wantHex string
		wantHSL HSLColor
	}{
		{"pure red", mmcq.Pixel{R: 255}, "#FF0000", HSLColor{0, 100, 50}},
		{"pure green", mmcq.Pixel{G: 255}, "#00FF00", HSLColor{120, 100, 50}},
		{"pure blue", mmcq.Pixel{B: 255}, "#0000FF", HSLColor{240, 100, 50}},
		{"white", mmcq.Pixel{R: 255, G: 255, B: 255}, "#FFFFFF", HSLColor{0, 0, 100}},
		{"black", mmcq.Pixel{}, "#000000", HSLColor{0, 0, 0}},
		{"gray", mmcq.Pixel{R: 128, G: 128, B: 128}, "#808080", HSLColor{0, 0, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatColor(tt.pixel)
			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if result.HSL != tt.wantHSL {
				t.Errorf("HSL: got %+v, want %+v", result.HSL, tt.wantHSL)
			}
		})
	}
}

func TestFormatSwatches(t *testing.T) {
	swatches := []mmcq.Swatch{
		{Color: mmcq.Pixel{R: 255}, Population: 600},
		{Color: mmcq.Pixel{B: 255}, Population: 400},
	}

	results := FormatSwatches(swatches)
	if len(results) != 2 {
		t.Fatalf("length: got %d, want 2", len(results))
	}
	if results[0].Hex != "#FF0000" || results[1].Hex != "#0000FF" {
		t.Errorf("order: got %s, %s", results[0].Hex, results[1].Hex)
	}
	if results[0].Percentage != 60 || results[1].Percentage != 40 {
		t.Errorf("percentages: got %v, %v, want 60, 40", results[0].Percentage, results[1].Percentage)
	}
	if results[0].Population != 600 {
		t.Errorf("population: got %d, want 600", results[0].Population)
	}
}

func TestFormatSwatches_Empty(t *testing.T) {
	if results := FormatSwatches(nil); len(results) != 0 {
		t.Errorf("length: got %d, want 0", len(results))
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want mmcq.Pixel
	}{
		{"#FF8040", mmcq.Pixel{R: 255, G: 128, B: 64}},
		{"#ff8040", mmcq.Pixel{R: 255, G: 128, B: 64}},
		{"ff8040", mmcq.Pixel{R: 255, G: 128, B: 64}},
		{" #000000 ", mmcq.Pixel{}},
		{"#FFF", mmcq.Pixel{R: 255, G: 255, B: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if err != nil {
				t.Fatalf("ParseHexColor failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHexColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#GGGGGG", "#12345", "red"} {
		if _, err := ParseHexColor(in); err == nil {
			t.Errorf("ParseHexColor(%q) should fail", in)
		}
	}
}
