package pdf

import (
	"fmt"

	gopdf "github.com/dslipak/pdf"
)

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (Document, error) {
	r, err := gopdf.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF with dslipak: %w", err)
	}

	doc := &document{filepath: filepath}

	pageCount := r.NumPage()
	doc.pages = make([]Page, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		page, err := decodePage(i, func() (Page, error) {
			return newDslipakPage(r, i)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize page %d: %w", i, err)
		}
		doc.pages = append(doc.pages, page)
	}

	return doc, nil
}

// newDslipakPage decodes one page's text runs into a charPage
func newDslipakPage(reader *gopdf.Reader, pageNumber int) (Page, error) {
	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil, fmt.Errorf("invalid page number: %d", pageNumber)
	}

	box := dslipakMediaBox(page.V)

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

// maxInheritDepth bounds the walk up the page tree when resolving an inherited MediaBox
const maxInheritDepth = 8

// dslipakMediaBox resolves the MediaBox, following Parent links for inherited values
func dslipakMediaBox(v gopdf.Value) mediaBox {
	for depth := 0; depth < maxInheritDepth && !v.IsNull(); depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == gopdf.Array && box.Len() == 4 {
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
