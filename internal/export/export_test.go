package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/render"
)

// fakeRasterizer returns a real encoded PNG so composition can run end to
// end, and records the options of every capture.
type fakeRasterizer struct {
	calls []CaptureOptions
	fail  error
}

func (f *fakeRasterizer) Capture(_ context.Context, _ string, width, height int, opts CaptureOptions) (*Bitmap, error) {
	f.calls = append(f.calls, opts)
	if f.fail != nil {
		return nil, f.fail
	}
	w := int(float64(width) * opts.Scale)
	h := int(float64(height) * opts.Scale)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &Bitmap{Data: buf.Bytes(), Format: "png", Width: w, Height: h}, nil
}

func visualDoc() *render.Document {
	return &render.Document{
		Template: render.KeyModern,
		Width:    render.PageWidth,
		Height:   render.PageHeight,
		HTML:     "<html><body>page</body></html>",
	}
}

func TestPDFCapturesAtDoubleResolution(t *testing.T) {
	fake := &fakeRasterizer{}
	out, err := NewExporter(fake).PDF(context.Background(), visualDoc())
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, PDFScale, fake.calls[0].Scale)
	assert.Equal(t, 100, fake.calls[0].Quality)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFAbortsWhenCaptureFails(t *testing.T) {
	fake := &fakeRasterizer{fail: errors.New("browser gone")}
	out, err := NewExporter(fake).PDF(context.Background(), visualDoc())
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "failed to capture page")
}

func TestThumbnailUsesPreviewSettings(t *testing.T) {
	fake := &fakeRasterizer{}
	data := NewExporter(fake).Thumbnail(context.Background(), visualDoc())
	require.NotNil(t, data)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, ThumbnailScale, fake.calls[0].Scale)
	assert.Equal(t, ThumbnailQuality, fake.calls[0].Quality)
}

func TestThumbnailSwallowsFailures(t *testing.T) {
	fake := &fakeRasterizer{fail: errors.New("browser gone")}
	data := NewExporter(fake).Thumbnail(context.Background(), visualDoc())
	assert.Nil(t, data)
}

func TestFitRatioPicksLimitingDimension(t *testing.T) {
	// Double-resolution A4 page: height is the limiting dimension.
	ratio := FitRatio(1190, 1684)
	assert.InDelta(t, 841.89/1684.0, ratio, 1e-9)
	assert.LessOrEqual(t, 1190.0*ratio, 595.28+1e-6)

	// Very wide image: width limits.
	ratio = FitRatio(2000, 100)
	assert.InDelta(t, 595.28/2000.0, ratio, 1e-9)
}

func TestComposePDFRejectsEmptyBitmaps(t *testing.T) {
	_, err := ComposePDF(nil)
	assert.Error(t, err)
	_, err = ComposePDF(&Bitmap{Format: "png"})
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "Jane Doe.pdf", Filename("Jane Doe"))
	assert.Equal(t, "resume.pdf", Filename(""))
	assert.Equal(t, "resume.pdf", Filename("   "))
}
