package export

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-studio/internal/render"
)

// Exporter runs the capture-and-compose pipeline over rendered documents.
type Exporter struct {
	rast Rasterizer
}

// NewExporter returns an exporter backed by the given rasterizer.
func NewExporter(r Rasterizer) *Exporter {
	return &Exporter{rast: r}
}

// PDF captures the visual document at double resolution and composes it onto
// an A4 page. Any capture or composition failure aborts the export; no
// partial artifact is produced.
func (e *Exporter) PDF(ctx context.Context, doc *render.Document) ([]byte, error) {
	bmp, err := e.rast.Capture(ctx, doc.HTML, doc.Width, doc.Height, CaptureOptions{
		Scale:   PDFScale,
		Quality: 100,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to capture page: %w", err)
	}

	out, err := ComposePDF(bmp)
	if err != nil {
		return nil, fmt.Errorf("failed to compose pdf: %w", err)
	}
	return out, nil
}

// Thumbnail captures a small low-quality preview of the visual document.
// Thumbnails are decorative, so any failure is logged and swallowed; the
// caller gets nil and proceeds without one.
func (e *Exporter) Thumbnail(ctx context.Context, doc *render.Document) []byte {
	bmp, err := e.rast.Capture(ctx, doc.HTML, doc.Width, doc.Height, CaptureOptions{
		Scale:   ThumbnailScale,
		Quality: ThumbnailQuality,
	})
	if err != nil {
		log.Printf("thumbnail capture failed, continuing without one: %v", err)
		return nil
	}
	return bmp.Data
}
