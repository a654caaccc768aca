package batch

import (
	"errors"
)

// Systemic failures. They stop a run, unlike per-event failures which are
// reported as an Outcome.
var (
	ErrDataDir     = errors.New("batch: data directory unavailable")
	ErrWriteOutput = errors.New("batch: cannot write output")
)
