package imaging

import (
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/colorthief-mcp/internal/mmcq"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SwatchResult is a palette entry ready for transport.
type SwatchResult struct {
	ColorResult

	// Population is the number of sampled pixels the entry represents.
	Population int `json:"population"`

	// Percentage is Population relative to all sampled pixels (0-100).
	Percentage float64 `json:"percentage"`
}

// FormatColor converts a palette color to hex, RGB and HSL.
//
// HSL values are rounded to whole degrees and percent.
func FormatColor(p mmcq.Pixel) ColorResult {
	c := toColorful(p)
	h, s, l := c.Hsl()

	return ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: RGBColor{R: p.R, G: p.G, B: p.B},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
	}
}

// FormatSwatches converts palette entries in order, computing each entry's
// share of the total population.
func FormatSwatches(swatches []mmcq.Swatch) []SwatchResult {
	total := 0
	for _, s := range swatches {
		total += s.Population
	}

	out := make([]SwatchResult, len(swatches))
	for i, s := range swatches {
		pct := 0.0
		if total > 0 {
			pct = math.Round(float64(s.Population)/float64(total)*10000) / 100
		}
		out[i] = SwatchResult{
			ColorResult: FormatColor(s.Color),
			Population:  s.Population,
			Percentage:  pct,
		}
	}
	return out
}

// ParseHexColor parses "#RRGGBB" or "#RGB"; the leading '#' is optional.
func ParseHexColor(s string) (mmcq.Pixel, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return mmcq.Pixel{}, fmt.Errorf("invalid hex color %q: want #RGB or #RRGGBB", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return mmcq.Pixel{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return mmcq.Pixel{R: r, G: g, B: b}, nil
}

func toColorful(p mmcq.Pixel) colorful.Color {
	return colorful.Color{
		R: float64(p.R) / 255.0,
		G: float64(p.G) / 255.0,
		B: float64(p.B) / 255.0,
	}
}
