package mmcq

import "sort"

// VBox is an axis-aligned box over the reduced color space.
//
// Ranges are inclusive on every channel. Population, average and
// splittability are derived from the shared histogram on first use and
// memoized; the ranges never change after construction. A VBox is owned
// by a single quantization run and is not safe for concurrent use until it
// has been finalized into a ColorMap.
type VBox struct {
	hist *Histogram
	lo   [3]int
	hi   [3]int

	scanned    bool
	population int
	occupied   int
	sum        [3]int
}

func newVBox(h *Histogram, lo, hi [3]int) *VBox {
	return &VBox{hist: h, lo: lo, hi: hi}
}

// Range returns the inclusive reduced range of the box on channel c.
func (v *VBox) Range(c Channel) (lo, hi int) {
	return v.lo[c], v.hi[c]
}

// each calls fn for every non-empty bucket inside the box, in key order.
func (v *VBox) each(fn func(key [3]int, b bucket)) {
	h := v.hist
	for r := v.lo[Red]; r <= v.hi[Red]; r++ {
		for g := v.lo[Green]; g <= v.hi[Green]; g++ {
			for b := v.lo[Blue]; b <= v.hi[Blue]; b++ {
				bk := h.buckets[h.index(r, g, b)]
				if bk.count == 0 {
					continue
				}
				fn([3]int{r, g, b}, bk)
			}
		}
	}
}

func (v *VBox) scan() {
	if v.scanned {
		return
	}
	v.scanned = true
	v.each(func(_ [3]int, b bucket) {
		v.population += b.count
		v.occupied++
		for _, c := range channels {
			v.sum[c] += b.sum[c]
		}
	})
}

// Population returns the number of samples whose bucket lies in the box.
func (v *VBox) Population() int {
	v.scan()
	return v.population
}

// Volume returns the number of reduced colors the box spans.
func (v *VBox) Volume() int {
	vol := 1
	for _, c := range channels {
		vol *= v.width(c) + 1
	}
	return vol
}

// Average returns the population-weighted mean color of the box.
//
// The mean is taken over the original 8-bit samples, so a box holding a
// single color reproduces it exactly. An empty box falls back to its
// geometric midpoint scaled back to 8 bits.
func (v *VBox) Average() Pixel {
	v.scan()
	if v.population == 0 {
		return v.midpoint()
	}
	avg := func(c Channel) uint8 {
		return uint8((v.sum[c] + v.population/2) / v.population)
	}
	return Pixel{R: avg(Red), G: avg(Green), B: avg(Blue)}
}

func (v *VBox) midpoint() Pixel {
	mult := 1 << uint(8-v.hist.sigBits)
	mid := func(c Channel) uint8 {
		m := mult * (v.lo[c] + v.hi[c] + 1) / 2
		if m > 255 {
			m = 255
		}
		return uint8(m)
	}
	return Pixel{R: mid(Red), G: mid(Green), B: mid(Blue)}
}

func (v *VBox) width(c Channel) int {
	return v.hi[c] - v.lo[c]
}

// WidestChannel returns the channel with the largest range. Ties go to
// red, then green, then blue.
func (v *VBox) WidestChannel() Channel {
	widest := Red
	for _, c := range channels[1:] {
		if v.width(c) > v.width(widest) {
			widest = c
		}
	}
	return widest
}

// Splittable reports whether the box holds more than one occupied bucket.
func (v *VBox) Splittable() bool {
	v.scan()
	return v.occupied > 1
}

// channelsByWidth returns the channels widest first, keeping the
// red-green-blue priority between equal widths.
func (v *VBox) channelsByWidth() []Channel {
	order := []Channel{Red, Green, Blue}
	sort.SliceStable(order, func(i, j int) bool {
		return v.width(order[i]) > v.width(order[j])
	})
	return order
}

// split cuts the box at the population median of its widest channel.
//
// When every sample shares one slice of the widest channel (possible once
// a box inherits ranges from its parent), the next widest channel is used
// instead. Both children always receive population. ok is false for a box
// that cannot be split.
func (v *VBox) split() (left, right *VBox, ok bool) {
	if !v.Splittable() {
		return nil, nil, false
	}
	for _, c := range v.channelsByWidth() {
		cut, found := v.medianCut(c)
		if !found {
			continue
		}
		leftHi, rightLo := v.hi, v.lo
		leftHi[c] = cut
		rightLo[c] = cut + 1
		return newVBox(v.hist, v.lo, leftHi), newVBox(v.hist, rightLo, v.hi), true
	}
	return nil, nil, false
}

// medianCut returns the last slice of the lower child along c. The cut
// leaves the cumulative population closest to half the total while keeping
// population on both sides; the lowest such cut wins ties.
func (v *VBox) medianCut(c Channel) (int, bool) {
	slices := make([]int, v.width(c)+1)
	v.each(func(key [3]int, b bucket) {
		slices[key[c]-v.lo[c]] += b.count
	})

	total := v.Population()
	best, bestDist := -1, 0
	cum := 0
	for i := 0; i < len(slices)-1; i++ {
		cum += slices[i]
		if cum == 0 {
			continue
		}
		if cum == total {
			break
		}
		dist := 2*cum - total
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return 0, false
	}
	return v.lo[c] + best, true
}
