package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Default page size (US Letter) used when a page carries no MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// baselineRatio places the baseline at 80% of the font height.
	baselineRatio = 0.8
)

// document implements the Document interface for the text backends
type document struct {
	closer   io.Closer
	filepath string
	pages    []Page
}

// GetPages returns all pages in the document
func (d *document) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *document) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *document) PageCount() int {
	return len(d.pages)
}

// Path returns the file the document was opened from
func (d *document) Path() string {
	return d.filepath
}

// Close releases resources associated with the document
func (d *document) Close() error {
	d.pages = nil
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// NewDocument wraps already decoded pages, e.g. for callers that build pages with NewPage.
func NewDocument(path string, pages ...Page) Document {
	return &document{filepath: path, pages: pages}
}

// textItem is the backend-neutral shape of a positioned text run
type textItem struct {
	Font     string
	FontSize float64
	X        float64
	Y        float64
	W        float64
	S        string
}

// mediaBox is a page's MediaBox in PDF user space (bottom-left origin)
type mediaBox struct {
	X0, Y0, X1, Y1 float64
}

func defaultMediaBox() mediaBox {
	return mediaBox{X1: defaultPageWidth, Y1: defaultPageHeight}
}

// charsFromText converts text runs to characters in top-left page coordinates.
// PDF user space grows upward from the bottom of the MediaBox, the page model
// grows downward from its top.
func charsFromText(items []textItem, box mediaBox) []CharObject {
	var chars []CharObject
	for _, text := range items {
		runes := []rune(text.S)
		if len(runes) == 0 {
			continue
		}

		fontHeight := text.FontSize
		top := box.Y1 - (text.Y + fontHeight*baselineRatio)
		charWidth := text.W / float64(len(runes))
		x := text.X - box.X0

		for _, ch := range runes {
			// Spaces only separate words; the gap is kept by advancing x
			if ch != ' ' && ch != '\n' && ch != '\r' {
				chars = append(chars, CharObject{
					Text:     string(ch),
					Font:     text.Font,
					FontSize: text.FontSize,
					X0:       x,
					Y0:       top,
					X1:       x + charWidth,
					Y1:       top + fontHeight,
					Width:    charWidth,
					Height:   fontHeight,
				})
			}
			x += charWidth
		}
	}
	return chars
}

// decodePage runs a backend decode step, converting panics raised by the
// content stream interpreters into errors.
func decodePage(pageNumber int, decode func() (Page, error)) (page Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			page = nil
			err = fmt.Errorf("failed to decode page %d: %v", pageNumber, r)
		}
	}()
	return decode()
}

// Validate checks that the file is a structurally valid PDF and returns its page count.
func Validate(filepath string) (int, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}

	return ctx.PageCount, nil
}
