// Package normalize converts an uploaded document file into the
// representation the model API consumes: inline base64 image parts for
// images and PDFs, or extracted text for plain-text files.
package normalize

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"strings"

	"github.com/gen2brain/go-fitz"

	"docverify/internal/domain"
	"docverify/internal/port"
)

// DefaultPDFScale is the rasterization scale factor applied to PDF pages,
// relative to the 72 DPI page size.
const DefaultPDFScale = 1.5

const jpegQuality = 85

// Prepared is the model-ready form of one file: either a sequence of image
// parts (images, PDF pages in page order) or extracted text, never both.
type Prepared struct {
	Parts []port.ImagePart
	Text  string
}

// Normalizer converts file content into model input parts.
type Normalizer struct {
	pdfScale float64
}

// New creates a Normalizer. A zero or negative scale falls back to
// DefaultPDFScale.
func New(pdfScale float64) *Normalizer {
	if pdfScale <= 0 {
		pdfScale = DefaultPDFScale
	}
	return &Normalizer{pdfScale: pdfScale}
}

// Normalize prepares file content for the model API based on its declared
// content type. Unsupported types fail with an error naming the type; a
// failure on any PDF page aborts the whole file with no partial output.
func (n *Normalizer) Normalize(content []byte, contentType string) (*Prepared, error) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return &Prepared{
			Parts: []port.ImagePart{{
				Data:     base64.StdEncoding.EncodeToString(content),
				MIMEType: contentType,
			}},
		}, nil

	case contentType == "application/pdf":
		parts, err := n.rasterizePDF(content)
		if err != nil {
			return nil, err
		}
		return &Prepared{Parts: parts}, nil

	case contentType == "text/plain":
		return &Prepared{Text: string(content)}, nil

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, contentType)
	}
}

// rasterizePDF renders each page to a JPEG image part, in page order. Pages
// are rendered sequentially; the pixel data of a page must be read back
// before the next render starts.
func (n *Normalizer) rasterizePDF(content []byte) ([]port.ImagePart, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return nil, fmt.Errorf("opening pdf with rasterizer: %w", err)
	}
	defer func() { _ = doc.Close() }()

	numPages := doc.NumPage()
	parts := make([]port.ImagePart, 0, numPages)

	for page := 0; page < numPages; page++ {
		// go-fitz renders at 72 DPI per unit scale.
		img, err := doc.ImageDPI(page, 72*n.pdfScale)
		if err != nil {
			return nil, fmt.Errorf("rendering pdf page %d: %w", page+1, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("encoding pdf page %d: %w", page+1, err)
		}

		parts = append(parts, port.ImagePart{
			Data:     base64.StdEncoding.EncodeToString(buf.Bytes()),
			MIMEType: "image/jpeg",
		})
	}

	return parts, nil
}
