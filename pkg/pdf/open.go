package pdf

import (
	"errors"
)

// Opener opens a document from a file path.
type Opener func(path string) (Document, error)

// Open decodes a document with ledongthuc/pdf and falls back to dslipak/pdf
// when the first backend cannot read it. When neither can, the result is an
// *ExtractionError carrying both causes.
func Open(path string) (Document, error) {
	doc, primaryErr := OpenWithLedongthuc(path)
	if primaryErr == nil {
		return doc, nil
	}

	doc, fallbackErr := OpenWithDslipak(path)
	if fallbackErr == nil {
		return doc, nil
	}

	return nil, NewExtractionError(path, "", "cannot decode document", errors.Join(primaryErr, fallbackErr))
}
