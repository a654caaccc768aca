// Package motopace compares free-practice pace with race results using the
// official MotoGP timing sheets.
//
// The sub-packages hold the pipeline stages; this package re-exports the
// types and entry points most callers need.
package motopace

import (
	"github.com/pyhub-apps/motopace/pkg/classification"
	"github.com/pyhub-apps/motopace/pkg/event"
	"github.com/pyhub-apps/motopace/pkg/laptime"
	"github.com/pyhub-apps/motopace/pkg/pdf"
	"github.com/pyhub-apps/motopace/pkg/practice"
	"github.com/pyhub-apps/motopace/pkg/reconcile"
)

// Re-export types from the pipeline packages for the public API
type (
	Document             = pdf.Document
	Page                 = pdf.Page
	BoundingBox          = pdf.BoundingBox
	Region               = pdf.Region
	PageTable            = pdf.PageTable
	WordExtractionOption = pdf.WordExtractionOption
	ExtractionError      = pdf.ExtractionError

	ClassificationRow = classification.Row
	LapTable          = practice.LapTable
	LapRecord         = practice.LapRecord
	RiderAverage      = practice.RiderAverage
	Pair              = reconcile.Pair
	EventKey          = event.Key
)

// Re-export functions
var (
	Area           = pdf.Area
	WithXTolerance = pdf.WithXTolerance
	WithYTolerance = pdf.WithYTolerance
	ErrExtraction  = pdf.ErrExtraction

	ParseLapTime  = laptime.Parse
	FormatLapTime = laptime.Format
	FilterLaps    = practice.FilterLaps
	Aggregate     = practice.Aggregate
	Merge         = reconcile.Merge
)

// Open opens a PDF file and returns a Document
func Open(filepath string) (Document, error) {
	return pdf.Open(filepath)
}

// OpenWithDslipak opens a PDF file using the dslipak/pdf library
func OpenWithDslipak(filepath string) (Document, error) {
	return pdf.OpenWithDslipak(filepath)
}

// OpenWithLedongthuc opens a PDF file using the ledongthuc/pdf library
func OpenWithLedongthuc(filepath string) (Document, error) {
	return pdf.OpenWithLedongthuc(filepath)
}

// ParseClassification reads the finishing order from a race classification
// sheet laid out like the ones published since 2013.
func ParseClassification(doc Document) ([]ClassificationRow, error) {
	return classification.NewParser(pdf.NewRegionExtractor(), classification.DefaultTemplate()).Parse(doc)
}

// PracticePace reads a free-practice analysis sheet and returns the riders'
// averages fastest first, plus the riders without a qualifying lap.
func PracticePace(doc Document) ([]RiderAverage, []string, error) {
	table, err := practice.NewReconstructor(pdf.NewRegionExtractor(), practice.DefaultTemplate()).Reconstruct(doc)
	if err != nil {
		return nil, nil, err
	}
	averages, degenerate := practice.Aggregate(practice.FilterTable(table), practice.DefaultThresholdFactor)
	return averages, degenerate, nil
}
