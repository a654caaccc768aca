package metrics

import (
	"errors"
)

// ErrExport is returned when the metrics textfile cannot be written.
var ErrExport = errors.New("metrics export failed")
