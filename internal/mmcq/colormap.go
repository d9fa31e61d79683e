package mmcq

import "sort"

// Swatch is one palette entry with the number of samples it represents.
type Swatch struct {
	Color      Pixel `json:"color"`
	Population int   `json:"population"`
}

// ColorMap is the finalized set of boxes of a quantization run.
//
// Entries are ordered by descending population; boxes of equal population
// keep their working-set order. A ColorMap is immutable and safe for
// concurrent use.
type ColorMap struct {
	swatches []Swatch
	total    int
}

func newColorMap(boxes []*VBox) *ColorMap {
	sorted := make([]*VBox, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Population() > sorted[j].Population()
	})

	m := &ColorMap{swatches: make([]Swatch, len(sorted))}
	for i, box := range sorted {
		m.swatches[i] = Swatch{Color: box.Average(), Population: box.Population()}
		m.total += box.Population()
	}
	return m
}

// Len returns the number of palette entries.
func (m *ColorMap) Len() int { return len(m.swatches) }

// Population returns the number of samples covered by the map.
func (m *ColorMap) Population() int { return m.total }

// Palette returns the average color of every entry, most dominant first.
func (m *ColorMap) Palette() []Pixel {
	palette := make([]Pixel, len(m.swatches))
	for i, s := range m.swatches {
		palette[i] = s.Color
	}
	return palette
}

// Swatches returns a copy of the entries, most dominant first.
func (m *ColorMap) Swatches() []Swatch {
	out := make([]Swatch, len(m.swatches))
	copy(out, m.swatches)
	return out
}

// Dominant returns the most populated entry.
func (m *ColorMap) Dominant() (Swatch, bool) {
	if len(m.swatches) == 0 {
		return Swatch{}, false
	}
	return m.swatches[0], true
}

// Nearest maps p to the palette color at the smallest Euclidean RGB
// distance. Equal distances resolve to the more dominant entry.
func (m *ColorMap) Nearest(p Pixel) (Pixel, bool) {
	if len(m.swatches) == 0 {
		return Pixel{}, false
	}
	best, bestDist := 0, -1
	for i, s := range m.swatches {
		d := distanceSquared(p, s.Color)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return m.swatches[best].Color, true
}

func distanceSquared(a, b Pixel) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}
