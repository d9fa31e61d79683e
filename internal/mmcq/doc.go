// Package mmcq implements modified median cut color quantization.
//
// Given a sequence of RGB samples, the quantizer reduces them into a
// fixed-precision histogram, wraps the observed color range in a single
// VBox and repeatedly splits boxes at the population-weighted median of
// their widest channel until the requested number of boxes exists or no
// box can be split any further. The resulting boxes form a ColorMap whose
// palette is ordered by population, most dominant color first.
//
// # Reduced Color Space
//
// Each 8-bit channel is shifted right by 8-SigBits bits. With the default
// precision of 5 bits there are 32 levels per channel and 32768 histogram
// buckets, independent of the source image resolution. The histogram is a
// flat slice indexed by
//
//	(r << (2 * sigBits)) | (g << sigBits) | b
//
// so bucket scans always run in the same order.
//
// # Algorithm
//
// Splitting runs in two passes over the working set of live boxes:
//
//  1. By population, until the box count reaches FractionByPopulation of
//     the requested count (0.75 by default).
//  2. By population multiplied by volume, until the box count reaches the
//     requested count.
//
// A box whose population sits in a single histogram bucket cannot be split
// and stays in the working set as a final palette entry. Inputs with fewer
// distinct buckets than requested therefore yield a shorter palette.
//
// # Determinism and Thread Safety
//
// The package holds no global mutable state. Identical input order and
// options produce identical palettes, and independent calls may run
// concurrently.
package mmcq
