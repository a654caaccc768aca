// Package classification reads the finishing order of a race from its
// classification sheet.
package classification

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pyhub-apps/motopace/pkg/pdf"
)

// Row is one classified finisher.
type Row struct {
	Position int
	Number   string
	Name     string
}

// Template locates the classification table and names its columns.
type Template struct {
	Region      pdf.Region `koanf:"region"`
	PositionCol int        `koanf:"position_col"`
	NumberCol   int        `koanf:"number_col"`
	NameCol     int        `koanf:"name_col"`
}

// DefaultTemplate returns the layout of the race classification sheets
// published since 2013: the table sits on page one and its columns are
// position, points, number, rider name, nation.
func DefaultTemplate() Template {
	return Template{
		Region: pdf.Region{
			Name:     "classification",
			Area:     pdf.Area(120, 0, 500, 222),
			Columns:  []float64{72, 78, 90, 110},
			MaxPages: 1,
		},
		PositionCol: 0,
		NumberCol:   2,
		NameCol:     3,
	}
}

// Parser extracts classification rows from a race document.
type Parser struct {
	extractor pdf.Extractor
	template  Template
}

// NewParser creates a Parser reading template's region with extractor.
func NewParser(extractor pdf.Extractor, template Template) *Parser {
	return &Parser{
		extractor: extractor,
		template:  template,
	}
}

// Parse returns the finishers in sheet order. Rows whose position cell is
// not a positive integer (headers, footnotes, non-finishers) are dropped.
func (p *Parser) Parse(doc pdf.Document) ([]Row, error) {
	region := p.template.Region

	tables, err := p.extractor.Extract(doc, region)
	if err != nil {
		if errors.Is(err, pdf.ErrExtraction) {
			return nil, err
		}
		return nil, pdf.NewExtractionError(doc.Path(), region.Name, "region extraction failed", err)
	}

	var rows []Row
	for _, cells := range pdf.Rows(tables) {
		position, err := strconv.Atoi(cell(cells, p.template.PositionCol))
		if err != nil || position < 1 {
			continue
		}
		rows = append(rows, Row{
			Position: position,
			Number:   cell(cells, p.template.NumberCol),
			Name:     cell(cells, p.template.NameCol),
		})
	}

	if len(rows) == 0 {
		return nil, pdf.NewExtractionError(doc.Path(), region.Name, "no rows with a numeric position", nil)
	}
	return rows, nil
}

func cell(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}
