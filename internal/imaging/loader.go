package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// DefaultFetchTimeout bounds a single URL download.
const DefaultFetchTimeout = 15 * time.Second

// MaxFetchBytes caps the size of a downloaded image body.
const MaxFetchBytes = 32 << 20

var (
	// ErrFetch reports a network failure or a non-2xx response.
	ErrFetch = errors.New("failed to fetch image")

	// ErrDecode reports image data in an unknown or corrupt format.
	ErrDecode = errors.New("failed to decode image")

	// ErrInvalidDataURI reports a malformed data:image URI.
	ErrInvalidDataURI = errors.New("invalid data URI")
)

// SourceKind tells how an image source string is resolved.
type SourceKind int

const (
	// SourceFile is a local path, optionally prefixed with file://.
	SourceFile SourceKind = iota
	// SourceURL is an http:// or https:// address.
	SourceURL
	// SourceDataURI is an inline data:image/...;base64, payload.
	SourceDataURI
)

func (k SourceKind) String() string {
	switch k {
	case SourceURL:
		return "url"
	case SourceDataURI:
		return "data"
	default:
		return "file"
	}
}

// ClassifySource returns the kind of an image source string.
func ClassifySource(source string) SourceKind {
	lower := strings.ToLower(source)
	switch {
	case strings.HasPrefix(lower, "data:image"):
		return SourceDataURI
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceURL
	default:
		return SourceFile
	}
}

// cachedImage is a decoded image together with its detected format.
type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of acquired images.
//
// Sources are resolved by kind:
//   - File paths are opened from disk.
//   - http(s) URLs are downloaded with the cache's HTTP client.
//   - data:image URIs are base64-decoded in place.
//
// File and URL images are cached by their exact source string. Data URIs
// carry their own bytes and are never cached. Only decoded images are kept;
// palettes computed from them are not.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load(ctx, "https://example.com/cover.jpg")
//	if err != nil {
//	    return err
//	}
//	cache.Evict("https://example.com/cover.jpg") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
	client *http.Client
}

// NewImageCache creates an empty cache whose downloads time out after
// DefaultFetchTimeout.
func NewImageCache() *ImageCache {
	return NewImageCacheWithClient(&http.Client{Timeout: DefaultFetchTimeout})
}

// NewImageCacheWithClient creates an empty cache that downloads URL sources
// with client. A nil client means http.DefaultClient.
func NewImageCacheWithClient(client *http.Client) *ImageCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageCache{
		images: make(map[string]cachedImage),
		client: client,
	}
}

// Load retrieves an image from the cache or acquires it from its source.
//
// Parameters:
//   - ctx: Bounds URL downloads. Ignored for files and data URIs.
//   - source: A file path, an http(s) URL or a data:image URI.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: Non-nil if the source cannot be read, fetched or decoded.
//     Network failures wrap ErrFetch, undecodable data wraps ErrDecode and
//     malformed data URIs wrap ErrInvalidDataURI.
func (c *ImageCache) Load(ctx context.Context, source string) (image.Image, error) {
	entry, err := c.load(ctx, source)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(ctx context.Context, source string) (cachedImage, error) {
	kind := ClassifySource(source)
	if kind == SourceDataURI {
		return decodeDataURI(source)
	}

	c.mu.RLock()
	if entry, ok := c.images[source]; ok {
		c.mu.RUnlock()
		return entry, nil
	}
	c.mu.RUnlock()

	var entry cachedImage
	var err error
	if kind == SourceURL {
		entry, err = c.fetch(ctx, source)
	} else {
		entry, err = openFile(source)
	}
	if err != nil {
		return cachedImage{}, err
	}

	c.mu.Lock()
	c.images[source] = entry
	c.mu.Unlock()

	return entry, nil
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its source string.
func (c *ImageCache) Evict(source string) {
	c.mu.Lock()
	delete(c.images, source)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func (c *ImageCache) fetch(ctx context.Context, url string) (cachedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return cachedImage{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return cachedImage{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return cachedImage{}, fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchBytes))
	if err != nil {
		return cachedImage{}, fmt.Errorf("%w: reading body: %v", ErrFetch, err)
	}
	return decodeBytes(data)
}

func openFile(source string) (cachedImage, error) {
	path := strings.TrimPrefix(source, "file://")
	if _, err := os.Stat(path); err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}

	img, err := imgio.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cachedImage{img: img, format: formatFromExtension(path)}, nil
}

// decodeDataURI decodes "data:image/<type>;base64,<payload>".
func decodeDataURI(source string) (cachedImage, error) {
	header, payload, ok := strings.Cut(source, ",")
	if !ok {
		return cachedImage{}, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}
	if !strings.HasSuffix(strings.ToLower(header), ";base64") {
		return cachedImage{}, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURI)
	}

	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		if err != nil {
			return cachedImage{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
		}
	}
	return decodeBytes(data)
}

// decodeBytes decodes an in-memory image, applying EXIF orientation.
func decodeBytes(data []byte) (cachedImage, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return cachedImage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return cachedImage{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cachedImage{img: img, format: format}, nil
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	}
	return "unknown"
}

// ImageInfo contains metadata about an acquired image.
type ImageInfo struct {
	// Source is the kind of source the image came from: "file", "url" or "data".
	Source string `json:"source"`

	// Width is the image width in pixels before cropping.
	Width int `json:"width"`

	// Height is the image height in pixels before cropping.
	Height int `json:"height"`

	// CroppedWidth and CroppedHeight are the dimensions after CropToSize.
	CroppedWidth  int `json:"cropped_width"`
	CroppedHeight int `json:"cropped_height"`

	// Format is the detected image format. File sources are detected by
	// extension, downloaded and inline images by content.
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`
}

// LoadImageInfo acquires an image and describes it, including the
// dimensions the given crop would produce.
//
// Parameters:
//   - ctx: Bounds URL downloads.
//   - cache: The image cache to use for loading. Must not be nil.
//   - source: A file path, an http(s) URL or a data:image URI.
//   - width, height: Crop size as accepted by CropToSize.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be acquired or the crop is invalid.
func LoadImageInfo(ctx context.Context, cache *ImageCache, source string, width, height int) (*ImageInfo, error) {
	entry, err := cache.load(ctx, source)
	if err != nil {
		return nil, err
	}

	cropped, err := CropToSize(entry.img, width, height)
	if err != nil {
		return nil, err
	}

	hasAlpha := false
	switch entry.img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		hasAlpha = true
	}

	bounds := entry.img.Bounds()
	return &ImageInfo{
		Source:        ClassifySource(source).String(),
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		CroppedWidth:  cropped.Bounds().Dx(),
		CroppedHeight: cropped.Bounds().Dy(),
		Format:        entry.format,
		HasAlpha:      hasAlpha,
	}, nil
}
