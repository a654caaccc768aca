package pdf

import (
	"errors"
	"fmt"
)

// ErrExtraction matches every *ExtractionError via errors.Is.
var ErrExtraction = errors.New("pdf: extraction failed")

// ExtractionError reports that a document does not match the fixed layout a
// region template expects, or could not be decoded at all.
type ExtractionError struct {
	Path   string
	Region string
	Reason string
	Err    error
}

// NewExtractionError builds an ExtractionError for the given document and region.
func NewExtractionError(path, region, reason string, err error) *ExtractionError {
	return &ExtractionError{Path: path, Region: region, Reason: reason, Err: err}
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("pdf: extracting %q", e.Path)
	if e.Region != "" {
		msg += fmt.Sprintf(" region %q", e.Region)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrExtraction.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
