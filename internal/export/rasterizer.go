// Package export turns rendered visual documents into downloadable
// artifacts: a page-fit A4 PDF and a small preview thumbnail. Rasterization
// is behind an interface so the pipeline and its failure handling can be
// tested without a browser.
package export

import "context"

// Capture scales. The PDF export doubles the virtual page resolution so text
// stays sharp after page fitting; thumbnails shrink it and accept heavy JPEG
// compression.
const (
	PDFScale         = 2.0
	ThumbnailScale   = 0.4
	ThumbnailQuality = 60
)

// CaptureOptions controls one rasterization pass.
type CaptureOptions struct {
	// Scale multiplies the virtual page dimensions.
	Scale float64
	// Quality selects JPEG output at the given quality when below 100;
	// 100 produces lossless PNG.
	Quality int
}

// Bitmap is a rasterized page image.
type Bitmap struct {
	Data   []byte
	Format string // "png" or "jpeg"
	Width  int
	Height int
}

// Rasterizer converts a self-contained HTML page of known pixel dimensions
// into a bitmap.
type Rasterizer interface {
	Capture(ctx context.Context, html string, width, height int, opts CaptureOptions) (*Bitmap, error)
}
