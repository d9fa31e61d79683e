package mmcq

import (
	"fmt"
	"math"
	"sort"
)

// MaxColors is the largest palette Quantize will build.
const MaxColors = 256

// Defaults for Options fields left at their zero value.
const (
	DefaultFractionByPopulation = 0.75
	DefaultMaxIterations        = 1000
)

// Options tunes a quantization run. Zero fields take the package defaults.
type Options struct {
	// SigBits is the histogram precision in bits per channel.
	SigBits int

	// FractionByPopulation is the share of the requested count reached by
	// splitting on population alone, in (0, 1].
	FractionByPopulation float64

	// MaxIterations caps the number of splits in each pass.
	MaxIterations int
}

// DefaultOptions returns the standard MMCQ parameters.
func DefaultOptions() Options {
	return Options{
		SigBits:              DefaultSigBits,
		FractionByPopulation: DefaultFractionByPopulation,
		MaxIterations:        DefaultMaxIterations,
	}
}

func (o Options) withDefaults() (Options, error) {
	if o.SigBits == 0 {
		o.SigBits = DefaultSigBits
	}
	if o.FractionByPopulation == 0 {
		o.FractionByPopulation = DefaultFractionByPopulation
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.FractionByPopulation < 0 || o.FractionByPopulation > 1 {
		return o, fmt.Errorf("%w: fraction by population %g not in (0, 1]", ErrInvalidArgument, o.FractionByPopulation)
	}
	return o, nil
}

// Quantize builds a color map of at most maxColors entries from pixels.
//
// Parameters:
//   - pixels: Filtered samples, in a stable order.
//   - maxColors: Requested palette size in [1, MaxColors]. A count of 1
//     returns the average of all samples without splitting.
//   - opts: Tuning parameters; the zero value means DefaultOptions.
//
// Returns:
//   - *ColorMap: The finalized boxes. It may hold fewer than maxColors
//     entries when the histogram has fewer distinct colors.
//   - bool: False when pixels is empty; the color map is nil then.
//   - error: Non-nil for invalid arguments, checked before any
//     histogram work.
func Quantize(pixels []Pixel, maxColors int, opts Options) (*ColorMap, bool, error) {
	if maxColors < 1 || maxColors > MaxColors {
		return nil, false, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidColorCount, maxColors, MaxColors)
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, false, err
	}

	hist, ok, err := NewHistogram(pixels, opts.SigBits)
	if err != nil || !ok {
		return nil, false, err
	}

	boxes := workingSet{hist.Root()}
	if maxColors > 1 {
		target := int(math.Ceil(opts.FractionByPopulation * float64(maxColors)))
		boxes = splitByPopulation(boxes, target, opts.MaxIterations)
		boxes = splitByPopulationVolume(boxes, maxColors, opts.MaxIterations)
	}

	return newColorMap(boxes), true, nil
}

// workingSet is the collection of live boxes during splitting.
type workingSet []*VBox

// splitByPopulation repeatedly splits the most populated box until the set
// holds target boxes or nothing is left to split.
func splitByPopulation(ws workingSet, target, maxIterations int) workingSet {
	for i := 0; i < maxIterations && len(ws) < target; i++ {
		sort.SliceStable(ws, func(a, b int) bool {
			return ws[a].Population() > ws[b].Population()
		})
		next, ok := ws.splitFirst()
		if !ok {
			break
		}
		ws = next
	}
	return ws
}

// splitByPopulationVolume repeatedly splits the box with the largest
// population times volume until the set holds target boxes or nothing is
// left to split.
func splitByPopulationVolume(ws workingSet, target, maxIterations int) workingSet {
	for i := 0; i < maxIterations && len(ws) < target; i++ {
		sort.SliceStable(ws, func(a, b int) bool {
			return ws[a].Population()*ws[a].Volume() > ws[b].Population()*ws[b].Volume()
		})
		next, ok := ws.splitFirst()
		if !ok {
			break
		}
		ws = next
	}
	return ws
}

// splitFirst replaces the first splittable box with its two children.
func (ws workingSet) splitFirst() (workingSet, bool) {
	for i, box := range ws {
		left, right, ok := box.split()
		if !ok {
			continue
		}
		next := make(workingSet, 0, len(ws)+1)
		next = append(next, ws[:i]...)
		next = append(next, left, right)
		return append(next, ws[i+1:]...), true
	}
	return ws, false
}
