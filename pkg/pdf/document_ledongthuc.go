package pdf

import (
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library.
// This provides the most accurate text extraction with proper coordinates.
func OpenWithLedongthuc(filepath string) (Document, error) {
	f, r, err := lpdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with ledongthuc: %w", err)
	}

	doc := &document{
		closer:   f,
		filepath: filepath,
	}

	pageCount := r.NumPage()
	doc.pages = make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := decodePage(i, func() (Page, error) {
			return newLedongthucPage(r, i)
		})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		doc.pages = append(doc.pages, page)
	}

	return doc, nil
}

// newLedongthucPage decodes one page's text runs into a charPage
func newLedongthucPage(reader *lpdf.Reader, pageNumber int) (Page, error) {
	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	box := ledongthucMediaBox(page.V)

	content := page.Content()
	items := make([]textItem, 0, len(content.Text))
	for _, text := range content.Text {
		items = append(items, textItem{
			Font:     text.Font,
			FontSize: text.FontSize,
			X:        text.X,
			Y:        text.Y,
			W:        text.W,
			S:        text.S,
		})
	}

	return NewPage(pageNumber, box.X1-box.X0, box.Y1-box.Y0, charsFromText(items, box)), nil
}

// ledongthucMediaBox resolves the MediaBox, following Parent links for inherited values
func ledongthucMediaBox(v lpdf.Value) mediaBox {
	for depth := 0; depth < maxInheritDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == lpdf.Array && box.Len() == 4 {
			return mediaBox{
				X0: box.Index(0).Float64(),
				Y0: box.Index(1).Float64(),
				X1: box.Index(2).Float64(),
				Y1: box.Index(3).Float64(),
			}
		}
		v = v.Key("Parent")
	}
	return defaultMediaBox()
}
