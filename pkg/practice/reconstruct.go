package practice

import (
	"errors"

	"github.com/pyhub-apps/motopace/pkg/pdf"
)

// Reconstructor rebuilds the lap table of a free-practice analysis sheet.
type Reconstructor struct {
	extractor pdf.Extractor
	template  Template
}

// NewReconstructor creates a Reconstructor reading the template's regions with extractor.
func NewReconstructor(extractor pdf.Extractor, template Template) *Reconstructor {
	return &Reconstructor{
		extractor: extractor,
		template:  template,
	}
}

// Reconstruct reads both column blocks of every page, left block first, and
// walks the combined rows into per-rider lap columns.
func (r *Reconstructor) Reconstruct(doc pdf.Document) (LapTable, error) {
	left, err := r.extract(doc, r.template.Left)
	if err != nil {
		return LapTable{}, err
	}
	right, err := r.extract(doc, r.template.Right)
	if err != nil {
		return LapTable{}, err
	}

	rows := interleave(left, right)
	if len(rows) == 0 {
		return LapTable{}, pdf.NewExtractionError(doc.Path(), "", "no rows in either practice region", nil)
	}

	table := walk(rows, r.template.DropFirstLap)
	if len(table.Riders) == 0 {
		return LapTable{}, pdf.NewExtractionError(doc.Path(), "", "no rider markers found", nil)
	}

	return table, nil
}

func (r *Reconstructor) extract(doc pdf.Document, region pdf.Region) ([]pdf.PageTable, error) {
	tables, err := r.extractor.Extract(doc, region)
	if err == nil {
		return tables, nil
	}
	if errors.Is(err, pdf.ErrExtraction) {
		return nil, err
	}
	return nil, pdf.NewExtractionError(doc.Path(), region.Name, "region extraction failed", err)
}

// interleave orders rows page by page, the left block of a page before its right block.
func interleave(left, right []pdf.PageTable) [][]string {
	var rows [][]string
	for i := 0; i < max(len(left), len(right)); i++ {
		if i < len(left) {
			rows = append(rows, left[i].Rows...)
		}
		if i < len(right) {
			rows = append(rows, right[i].Rows...)
		}
	}
	return rows
}
