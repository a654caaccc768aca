package pdf

import (
	"fmt"
	"sort"
	"strings"
)

// RegionExtractor implements Extractor by cutting a fixed area out of each
// page and splitting its text lines into cells at fixed x boundaries.
type RegionExtractor struct {
	xTolerance float64
	yTolerance float64
}

// NewRegionExtractor creates a region extractor with default tolerances
func NewRegionExtractor(opts ...WordExtractionOption) *RegionExtractor {
	config := newWordExtractionConfig(opts)
	return &RegionExtractor{
		xTolerance: config.XTolerance,
		yTolerance: config.YTolerance,
	}
}

// Extract returns one PageTable per selected page.
// Pages whose area holds no text, or lies off the page, yield a PageTable
// without rows.
func (re *RegionExtractor) Extract(doc Document, region Region) ([]PageTable, error) {
	if region.Area.Empty() {
		return nil, fmt.Errorf("region %q has an empty area", region.Name)
	}

	pages := doc.GetPages()
	if len(pages) == 0 {
		return nil, NewExtractionError(doc.Path(), region.Name, "document has no pages", nil)
	}
	if region.MaxPages > 0 && region.MaxPages < len(pages) {
		pages = pages[:region.MaxPages]
	}

	columns := make([]float64, len(region.Columns))
	copy(columns, region.Columns)
	sort.Float64s(columns)

	tables := make([]PageTable, 0, len(pages))
	for _, page := range pages {
		table := PageTable{Page: page.GetPageNumber()}
		if !region.Area.Intersects(page.GetBBox()) {
			tables = append(tables, table)
			continue
		}
		chars := page.WithinBBox(region.Area).Chars
		for _, line := range groupCharsIntoLines(chars, re.yTolerance) {
			table.Rows = append(table.Rows, re.splitLine(line, columns))
		}
		tables = append(tables, table)
	}

	return tables, nil
}

// splitLine assigns each character of an x-sorted line to a cell.
// A character belongs to the first cell whose right boundary lies beyond its
// centre, so a word straddling a boundary is split between two cells.
func (re *RegionExtractor) splitLine(line []CharObject, columns []float64) []string {
	buckets := make([][]CharObject, len(columns)+1)
	for _, char := range line {
		cx, _ := char.Center()
		idx := sort.Search(len(columns), func(i int) bool {
			return columns[i] > cx
		})
		buckets[idx] = append(buckets[idx], char)
	}

	row := make([]string, len(buckets))
	for i, bucket := range buckets {
		row[i] = strings.TrimSpace(joinChars(bucket, re.xTolerance))
	}
	return row
}

// Rows flattens page tables into a single row sequence, page order preserved.
func Rows(tables []PageTable) [][]string {
	var rows [][]string
	for _, table := range tables {
		rows = append(rows, table.Rows...)
	}
	return rows
}
