package derive

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ironsheep/image-derive-mcp/internal/imaging"
)

// DefaultMimeType is the output format when OutputOptions names none.
const DefaultMimeType = "image/jpeg"

// OutputOptions controls how a Result is encoded.
type OutputOptions struct {
	// Path is the destination file for Save. Encode ignores it.
	Path string

	// MimeType selects the encoder: image/jpeg (default), image/png or image/bmp.
	MimeType string

	// JPEGQuality is 1-100; zero means imaging.DefaultJPEGQuality.
	JPEGQuality int
}

func (o OutputOptions) withDefaults() OutputOptions {
	o.MimeType = strings.ToLower(strings.TrimSpace(o.MimeType))
	if o.MimeType == "" {
		o.MimeType = DefaultMimeType
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = imaging.DefaultJPEGQuality
	}
	return o
}

// Save writes the derived image to opts.Path. An unsupported MIME type is
// rejected with imaging.ErrUnsupportedEncoder before anything touches disk.
func (r *Result) Save(opts OutputOptions) error {
	opts = opts.withDefaults()
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if _, ok := imaging.EncoderFor(opts.MimeType, opts.JPEGQuality); !ok {
		return fmt.Errorf("%w: %q", imaging.ErrUnsupportedEncoder, opts.MimeType)
	}
	return imaging.Save(r.Surface, opts.Path, opts.MimeType, opts.JPEGQuality)
}

// Encode returns the derived image encoded per opts.
func (r *Result) Encode(opts OutputOptions) ([]byte, error) {
	opts = opts.withDefaults()
	return imaging.Encode(r.Surface, opts.MimeType, opts.JPEGQuality)
}

// EncodeBase64 is Encode with the bytes base64-encoded, as returned by the MCP
// tools when no output path is given.
func (r *Result) EncodeBase64(opts OutputOptions) (string, error) {
	data, err := r.Encode(opts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
