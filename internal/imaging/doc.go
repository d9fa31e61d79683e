// Package imaging acquires images for palette extraction and formats colors
// for output.
//
// # Image Sources
//
// A source string is resolved by its prefix:
//   - "data:image/<type>;base64,<payload>": decoded in memory
//   - "http://", "https://": downloaded with a bounded timeout and body size
//   - anything else: a local file path, optionally prefixed with "file://"
//
// PNG, JPEG and GIF are supported through the standard library, WebP, BMP and
// TIFF through golang.org/x/image. In-memory data is decoded with EXIF
// auto-orientation.
//
// # Cropping
//
// CropToSize keeps a width x height region anchored at the image origin.
// Zero on either axis means the source extent on that axis, so (0, 0)
// leaves the image untouched and (w, 0) keeps the full height.
//
// # Error Handling
//
// Acquisition errors wrap ErrFetch, ErrDecode or ErrInvalidDataURI so that
// callers can tell a missing image apart from an invalid request with
// errors.Is. Missing files return the underlying *fs.PathError.
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB"
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging
