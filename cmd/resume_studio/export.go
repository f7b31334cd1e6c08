package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/export"
	"github.com/jonathan/resume-studio/internal/render"
	"github.com/jonathan/resume-studio/internal/resume"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a résumé document to PDF",
	Long:  "Renders a résumé document JSON file with the chosen template and writes a print-quality PDF, optionally alongside a JPEG preview.",
	RunE:  runExport,
}

var (
	exportDocFile    string
	exportTemplate   string
	exportOutputFile string
	exportPreview    bool
	exportChromePath string
)

func init() {
	exportCmd.Flags().StringVarP(&exportDocFile, "doc", "d", "", "Path to résumé document JSON file (required)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "modern", "Template key (modern, classic, creative)")
	exportCmd.Flags().StringVarP(&exportOutputFile, "out", "o", "", "Path to output PDF file (default: derived from the document name)")
	exportCmd.Flags().BoolVar(&exportPreview, "preview", false, "Also write a JPEG preview next to the PDF")
	exportCmd.Flags().StringVar(&exportChromePath, "chrome", "", "Path to the Chrome/Chromium binary (default: auto-detect)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportDocFile == "" {
		return fmt.Errorf("--doc is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	content, err := os.ReadFile(exportDocFile)
	if err != nil {
		return fmt.Errorf("failed to read document file: %w", err)
	}

	doc, err := resume.Decode(content)
	if err != nil {
		return fmt.Errorf("failed to parse document JSON: %w", err)
	}

	visual, err := render.Render(doc, render.ParseKey(exportTemplate))
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	exporter := export.NewExporter(export.NewChromeRasterizer(exportChromePath))

	outputFile := exportOutputFile
	if outputFile == "" {
		outputFile = export.Filename(doc.Profile.FullName)
	}

	var pdf, preview []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pdf, err = exporter.PDF(gctx, visual)
		return err
	})
	if exportPreview {
		g.Go(func() error {
			preview = exporter.Thumbnail(gctx, visual)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}

	outputDir := filepath.Dir(outputFile)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputFile, pdf, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Output: %s\n", outputFile)

	if exportPreview {
		if preview == nil {
			fmt.Fprintln(os.Stderr, "Warning: preview capture failed, skipping")
			return nil
		}
		previewFile := outputFile[:len(outputFile)-len(filepath.Ext(outputFile))] + ".jpg"
		if err := os.WriteFile(previewFile, preview, 0644); err != nil {
			return fmt.Errorf("failed to write preview file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Preview: %s\n", previewFile)
	}

	return nil
}
