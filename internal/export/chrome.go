package export

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultCaptureTimeout bounds a single rasterization pass, including
// browser startup.
const DefaultCaptureTimeout = 60 * time.Second

// ChromeRasterizer rasterizes HTML pages with a headless Chrome instance.
// Each capture runs in a fresh browser context; the page is written to a
// temporary file and loaded over file:// so embedded data URIs and inline
// styles resolve without a server.
type ChromeRasterizer struct {
	// ExecPath overrides the Chrome binary location. Empty means let
	// chromedp find one.
	ExecPath string
	// Timeout bounds a single capture. Zero means DefaultCaptureTimeout.
	Timeout time.Duration
}

// NewChromeRasterizer returns a rasterizer using the Chrome binary at
// execPath, or an auto-detected one when execPath is empty.
func NewChromeRasterizer(execPath string) *ChromeRasterizer {
	return &ChromeRasterizer{ExecPath: execPath}
}

// Capture renders html at width x height CSS pixels and returns a bitmap
// scaled by opts.Scale. Quality below 100 produces JPEG, 100 produces PNG.
func (r *ChromeRasterizer) Capture(ctx context.Context, html string, width, height int, opts CaptureOptions) (*Bitmap, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 100
	}

	tmpDir, err := os.MkdirTemp("", "resume-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "page.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write page file: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultCaptureTimeout
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	var shot []byte
	err = chromedp.Run(runCtx,
		chromedp.EmulateViewport(int64(width), int64(height), chromedp.EmulateScale(opts.Scale)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.FullScreenshot(&shot, opts.Quality),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize page: %w", err)
	}

	format := "png"
	if opts.Quality < 100 {
		format = "jpeg"
	}
	return &Bitmap{
		Data:   shot,
		Format: format,
		Width:  int(math.Round(float64(width) * opts.Scale)),
		Height: int(math.Round(float64(height) * opts.Scale)),
	}, nil
}
