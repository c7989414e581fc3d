// Package pages normalizes uploaded study material (single images or
// multi-page PDFs) into an ordered sequence of rendered page images.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// Kind is the declared type of an uploaded document.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"

	// PDF pages are rasterized at 150 DPI: legible for handwriting and
	// diagrams without inflating the model request payload.
	renderDPI = 150
)

// Document is a transient uploaded file. It lives only for the duration of
// one extraction.
type Document struct {
	Kind Kind
	Data []byte
}

// PageImage is one rendered page, PNG-encoded. Number is zero-based and
// follows document order.
type PageImage struct {
	Number int
	Width  int
	Height int
	PNG    []byte
}

// ErrUnsupportedFormat is returned when the declared kind is neither a
// recognized image type nor PDF.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// DecodeError indicates the bytes could not be parsed as the declared kind.
type DecodeError struct {
	Kind Kind
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s document: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Extract converts a document into its ordered page images. An image yields
// exactly one page; a PDF yields one page per document page, in order. A PDF
// with no pages yields an empty slice and no error.
func Extract(doc Document) ([]PageImage, error) {
	switch doc.Kind {
	case KindImage:
		return extractImage(doc.Data)
	case KindPDF:
		return extractPDF(doc.Data)
	default:
		return nil, ErrUnsupportedFormat
	}
}

func extractImage(data []byte) ([]PageImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Kind: KindImage, Err: err}
	}

	page, err := encodePage(0, img)
	if err != nil {
		return nil, &DecodeError{Kind: KindImage, Err: err}
	}
	return []PageImage{page}, nil
}

func extractPDF(data []byte) ([]PageImage, error) {
	pdf, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &DecodeError{Kind: KindPDF, Err: err}
	}
	defer pdf.Close()

	result := make([]PageImage, 0, pdf.NumPage())
	for n := 0; n < pdf.NumPage(); n++ {
		img, err := pdf.ImageDPI(n, renderDPI)
		if err != nil {
			return nil, &DecodeError{Kind: KindPDF, Err: fmt.Errorf("page %d: %w", n, err)}
		}
		page, err := encodePage(n, img)
		if err != nil {
			return nil, &DecodeError{Kind: KindPDF, Err: fmt.Errorf("page %d: %w", n, err)}
		}
		result = append(result, page)
	}
	return result, nil
}

func encodePage(number int, img image.Image) (PageImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return PageImage{}, err
	}
	bounds := img.Bounds()
	return PageImage{
		Number: number,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		PNG:    buf.Bytes(),
	}, nil
}
