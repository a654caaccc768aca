package fetch

import (
	"errors"
	"fmt"
)

// ErrFetch matches every *FetchError via errors.Is.
var ErrFetch = errors.New("fetch: download failed")

// FetchError reports a document that could not be stored: the request
// failed, the server answered with a non-2xx status, or the body was not a
// valid PDF. Nothing is left at Path or in the staging area.
type FetchError struct {
	URL  string
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch: %s -> %s: %v", e.URL, e.Path, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// StatusError is the cause of a FetchError for a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.StatusCode)
}
