package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg" // register JPEG decoder

	"github.com/ledongthuc/pdf"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"pdf":  {},
}

// AllowedFile reports whether the filename carries a supported extension.
// The check is case-insensitive and requires an actual extension.
func AllowedFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}
	_, ok := allowedExtensions[strings.TrimPrefix(ext, ".")]
	return ok
}

// Extractor pulls plain text out of uploaded files: the embedded text layer
// for PDFs, tesseract OCR for images.
type Extractor struct {
	tesseract string
	runner    Runner
}

// NewExtractor constructs an Extractor driving the given tesseract binary.
func NewExtractor(tesseractPath string) *Extractor {
	if tesseractPath == "" {
		tesseractPath = "tesseract"
	}
	return &Extractor{tesseract: tesseractPath, runner: execRunner{}}
}

// Extract returns the trimmed plain text of the uploaded payload.
// Decode and OCR failures are wrapped into a single error carrying the cause.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract text from %s: %w", filename, err)
		}
		return text, nil
	}
	text, err := e.extractImage(ctx, data)
	if err != nil {
		return "", fmt.Errorf("extract text from %s: %w", filename, err)
	}
	return text, nil
}

// extractPDF concatenates the text layer of every page in page order.
// Pages without an extractable text layer contribute an empty string.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String()), nil
}

// extractImage decodes the image, converts it to greyscale, and runs OCR.
func (e *Extractor) extractImage(ctx context.Context, data []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	grey := toGreyscale(img)

	tmp, err := os.CreateTemp("", "docproc-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmp, grey); err != nil {
		tmp.Close()
		return "", fmt.Errorf("encode greyscale image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.tesseract, tmpPath, "stdout", "-l", "eng")
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(stderr)))
	}
	return strings.TrimSpace(string(stdout)), nil
}

func toGreyscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	grey := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			grey.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return grey
}
