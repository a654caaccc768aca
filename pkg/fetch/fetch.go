// Package fetch downloads timing documents into the local data directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pyhub-apps/motopace/pkg/event"
	"github.com/pyhub-apps/motopace/pkg/logger"
	"github.com/pyhub-apps/motopace/pkg/metrics"
	"github.com/pyhub-apps/motopace/pkg/pdf"
)

const (
	defaultTimeout = 60 * time.Second
	stagingPattern = ".fetch-*.pdf"
)

// Fetcher stores one document at a time: download to a staging file in the
// data directory, validate it, then move it into place.
type Fetcher struct {
	dataDir   string
	client    *http.Client
	userAgent string
	validate  func(path string) (int, error)
	log       logger.Logger
	metrics   *metrics.Manager
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout sets the timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client = &http.Client{Timeout: timeout}
		}
	}
}

// WithUserAgent sets the User-Agent request header.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		f.userAgent = userAgent
	}
}

// WithValidator replaces pdf.Validate as the check applied to staged files.
func WithValidator(validate func(path string) (int, error)) Option {
	return func(f *Fetcher) {
		if validate != nil {
			f.validate = validate
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// WithMetrics records downloads on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// NewFetcher creates a Fetcher storing documents under dataDir.
func NewFetcher(dataDir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		dataDir:  dataDir,
		client:   &http.Client{Timeout: defaultTimeout},
		validate: pdf.Validate,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns where a document of kind named filename is stored.
func (f *Fetcher) Path(kind event.Kind, filename string) string {
	return filepath.Join(f.dataDir, kind.Dir(), filename)
}

// Fetch downloads url and stores it as filename in kind's directory,
// replacing any previous copy. On failure the staging file is removed and a
// *FetchError is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string, kind event.Kind, filename string) error {
	start := time.Now()
	dest := f.Path(kind, filename)

	err := f.fetch(ctx, url, dest)
	f.metrics.RecordFetch(string(kind), err, time.Since(start))
	if err != nil {
		return &FetchError{URL: url, Path: dest, Err: err}
	}
	return nil
}

func (f *Fetcher) fetch(ctx context.Context, url, dest string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	staging, err := os.CreateTemp(f.dataDir, stagingPattern)
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	stagingPath := staging.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(stagingPath)
		}
	}()

	n, err := f.download(ctx, url, staging)
	if closeErr := staging.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close staging file: %w", closeErr)
	}
	if err != nil {
		return err
	}
	f.metrics.AddFetchedBytes(n)

	pages, err := f.validate(stagingPath)
	if err != nil {
		return err
	}

	if err := os.Rename(stagingPath, dest); err != nil {
		return fmt.Errorf("failed to move document into place: %w", err)
	}

	f.log.Debug(ctx, "document stored",
		logger.String("url", url),
		logger.String("path", dest),
		logger.Int("pages", pages),
		logger.Int("bytes", int(n)))
	return nil
}

func (f *Fetcher) download(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{StatusCode: resp.StatusCode}
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to read response body: %w", err)
	}
	return n, nil
}
