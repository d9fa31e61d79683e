package mmcq

import (
	"errors"
	"fmt"
)

// Reduction precision bounds, in bits per channel.
const (
	DefaultSigBits = 5
	MinSigBits     = 1
	MaxSigBits     = 6
)

var (
	// ErrInvalidArgument is wrapped by every argument validation error.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidColorCount is returned for a requested palette size outside [1, MaxColors].
	ErrInvalidColorCount = fmt.Errorf("%w: color count", ErrInvalidArgument)

	// ErrInvalidSigBits is returned for a reduction precision outside [MinSigBits, MaxSigBits].
	ErrInvalidSigBits = fmt.Errorf("%w: histogram precision", ErrInvalidArgument)
)

// Pixel is an 8-bit RGB sample.
type Pixel struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Channel identifies one axis of the RGB cube.
type Channel int

// Channels in tie-break priority order.
const (
	Red Channel = iota
	Green
	Blue
)

var channels = [3]Channel{Red, Green, Blue}

func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// bucket holds the population of one reduced color and the exact channel
// sums of the samples that fell into it.
type bucket struct {
	count int
	sum   [3]int
}

// Histogram is a population count over the reduced color space.
//
// Buckets live in a flat slice indexed by the reduced color key, so every
// scan visits them in the same order. The histogram also tracks the
// observed reduced range of each channel, which seeds the root VBox.
//
// A Histogram is read-only once built and may be shared by any number of
// VBoxes.
type Histogram struct {
	sigBits int
	buckets []bucket
	total   int
	min     [3]int
	max     [3]int
}

// NewHistogram reduces pixels into a histogram of the given precision.
//
// Parameters:
//   - pixels: Samples in caller order. The caller has already applied any
//     filtering (transparency, near-white).
//   - sigBits: Bits kept per channel, in [MinSigBits, MaxSigBits].
//
// Returns:
//   - *Histogram: The reduced histogram, nil when ok is false.
//   - bool: False when pixels is empty. There is no degenerate empty
//     histogram.
//   - error: ErrInvalidSigBits when sigBits is out of range.
func NewHistogram(pixels []Pixel, sigBits int) (*Histogram, bool, error) {
	if sigBits < MinSigBits || sigBits > MaxSigBits {
		return nil, false, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSigBits, sigBits, MinSigBits, MaxSigBits)
	}
	if len(pixels) == 0 {
		return nil, false, nil
	}

	h := &Histogram{
		sigBits: sigBits,
		buckets: make([]bucket, 1<<(3*sigBits)),
		total:   len(pixels),
		min:     [3]int{255, 255, 255},
	}

	shift := uint(8 - sigBits)
	for _, p := range pixels {
		key := [3]int{int(p.R >> shift), int(p.G >> shift), int(p.B >> shift)}
		for c, v := range key {
			if v < h.min[c] {
				h.min[c] = v
			}
			if v > h.max[c] {
				h.max[c] = v
			}
		}

		b := &h.buckets[h.index(key[Red], key[Green], key[Blue])]
		b.count++
		b.sum[Red] += int(p.R)
		b.sum[Green] += int(p.G)
		b.sum[Blue] += int(p.B)
	}

	return h, true, nil
}

// index maps reduced channel values to a bucket position.
func (h *Histogram) index(r, g, b int) int {
	return r<<(2*h.sigBits) | g<<h.sigBits | b
}

// SigBits returns the reduction precision.
func (h *Histogram) SigBits() int { return h.sigBits }

// Total returns the number of samples in the histogram.
func (h *Histogram) Total() int { return h.total }

// Count returns the population of the bucket that p reduces to.
func (h *Histogram) Count(p Pixel) int {
	shift := uint(8 - h.sigBits)
	return h.buckets[h.index(int(p.R>>shift), int(p.G>>shift), int(p.B>>shift))].count
}

// Distinct returns the number of non-empty buckets.
func (h *Histogram) Distinct() int {
	n := 0
	for _, b := range h.buckets {
		if b.count > 0 {
			n++
		}
	}
	return n
}

// Root returns the box spanning the observed range of every channel.
func (h *Histogram) Root() *VBox {
	return newVBox(h, h.min, h.max)
}
