package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"os"
	"strings"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-derive-mcp/internal/placement"
)

// ErrSourceUnavailable reports a source image that could not be opened or decoded.
var ErrSourceUnavailable = errors.New("source image unavailable")

// ImageCache provides thread-safe caching of decoded images to avoid redundant disk reads.
//
// The cache stores decoded images keyed by their file path. Load always returns
// a fresh Surface copied from the cached pixels, so operations that draw onto
// their source in place (text overlays) never leak into later loads.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
// For long-running processes handling many images, consider periodic cleanup to
// prevent unbounded memory growth.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	src, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(src.Dimensions())
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns a private Surface holding the image at path, decoding it from
// disk only the first time the path is seen.
//
// Supported formats are PNG, JPEG, BMP and GIF (first frame). Failures wrap
// ErrSourceUnavailable.
func (c *ImageCache) Load(path string) (*Surface, error) {
	img, err := c.decoded(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

func (c *ImageCache) decoded(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %w", ErrSourceUnavailable, path, err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Clear removes all images from the cache, freeing the associated memory,
// and reports how many were dropped.
func (c *ImageCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.images)
	c.images = make(map[string]image.Image)
	return n
}

// Evict removes a specific image from the cache by its path.
//
// Callers that overwrite a file they previously loaded should evict it so the
// next Load sees the new contents.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format implied by the file extension: "png", "jpeg", "gif",
	// "bmp", "tiff", or "unknown".
	Format string `json:"format"`

	// MimeType is the MIME type derived results default to when saved next to
	// the source.
	MimeType string `json:"mime_type"`

	// HasAlpha indicates whether any pixel is not fully opaque.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and returns its metadata.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.decoded(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	if f, err := imaging.FormatFromFilename(path); err == nil {
		format = strings.ToLower(f.String())
	}

	hasAlpha := false
	if o, ok := img.(interface{ Opaque() bool }); ok {
		hasAlpha = !o.Opaque()
	}

	b := img.Bounds()
	return &ImageInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        format,
		MimeType:      MimeTypeForPath(path),
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*placement.Dimensions, error) {
	img, err := cache.decoded(path)
	if err != nil {
		return nil, err
	}
	d := placement.DimensionsOf(img.Bounds())
	return &d, nil
}
