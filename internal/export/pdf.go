package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// A4 page size in points.
const (
	pageWidthPt  = 595.28
	pageHeightPt = 841.89
)

// ComposePDF places a rasterized page bitmap onto a single A4 portrait page.
// The bitmap is scaled uniformly to fit inside the page and anchored at the
// top-left corner, so the aspect ratio of the virtual page is preserved.
func ComposePDF(bmp *Bitmap) ([]byte, error) {
	if bmp == nil || len(bmp.Data) == 0 {
		return nil, fmt.Errorf("empty bitmap")
	}
	if bmp.Width <= 0 || bmp.Height <= 0 {
		return nil, fmt.Errorf("invalid bitmap dimensions %dx%d", bmp.Width, bmp.Height)
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: strings.ToUpper(bmp.Format)}
	pdf.RegisterImageOptionsReader("page", opts, bytes.NewReader(bmp.Data))

	ratio := FitRatio(bmp.Width, bmp.Height)
	w := float64(bmp.Width) * ratio
	h := float64(bmp.Height) * ratio
	pdf.ImageOptions("page", 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FitRatio returns the uniform scale factor that fits a bitmap of the given
// pixel dimensions inside an A4 page without cropping.
func FitRatio(width, height int) float64 {
	rw := pageWidthPt / float64(width)
	rh := pageHeightPt / float64(height)
	if rh < rw {
		return rh
	}
	return rw
}

// Filename derives the download name of an exported PDF from the profile's
// full name, falling back to a generic name when it is blank.
func Filename(fullName string) string {
	name := strings.TrimSpace(fullName)
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}
