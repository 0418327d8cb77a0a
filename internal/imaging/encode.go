package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when a caller leaves the quality at zero.
const DefaultJPEGQuality = 85

// ErrUnsupportedEncoder reports a MIME type with no matching encoder.
var ErrUnsupportedEncoder = errors.New("unsupported encoder")

// EncoderFor returns the encoder registered for mimeType. The second result is
// false when no encoder matches; callers check it before writing anything.
//
// quality only affects image/jpeg and is clamped to 1-100, with 0 meaning
// DefaultJPEGQuality.
func EncoderFor(mimeType string, quality int) (imgio.Encoder, bool) {
	switch strings.ToLower(strings.TrimSpace(mimeType)) {
	case "image/jpeg", "image/jpg":
		return imgio.JPEGEncoder(clampQuality(quality)), true
	case "image/png":
		return imgio.PNGEncoder(), true
	case "image/bmp":
		return imgio.BMPEncoder(), true
	}
	return nil, false
}

// MimeTypeForPath guesses a MIME type from a file extension, falling back to
// image/jpeg for unknown extensions.
func MimeTypeForPath(path string) string {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "image/jpeg"
	}
	switch format {
	case imaging.PNG:
		return "image/png"
	case imaging.BMP:
		return "image/bmp"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	}
	return "image/jpeg"
}

// Encode renders s with the encoder for mimeType.
func Encode(s *Surface, mimeType string, quality int) ([]byte, error) {
	enc, ok := EncoderFor(mimeType, quality)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoder, mimeType)
	}
	var buf bytes.Buffer
	if err := enc(&buf, s.img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes s with the encoder for mimeType and writes it to path,
// creating parent directories as needed. Nothing is written when the MIME type
// has no encoder.
func Save(s *Surface, path, mimeType string, quality int) error {
	enc, ok := EncoderFor(mimeType, quality)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedEncoder, mimeType)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imgio.Save(path, s.img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func clampQuality(q int) int {
	switch {
	case q == 0:
		return DefaultJPEGQuality
	case q < 1:
		return 1
	case q > 100:
		return 100
	}
	return q
}
