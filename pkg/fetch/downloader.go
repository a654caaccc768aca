package fetch

import (
	"context"

	"github.com/pyhub-apps/motopace/pkg/event"
	"github.com/pyhub-apps/motopace/pkg/logger"
)

// Report summarizes a DownloadAll run.
type Report struct {
	Attempted int
	Stored    int
	Failed    int
}

// Downloader fetches the race and practice documents of every event in a universe.
type Downloader struct {
	fetcher *Fetcher
	baseURL string
	series  string
	log     logger.Logger
}

// NewDownloader creates a Downloader building URLs from baseURL and series.
func NewDownloader(fetcher *Fetcher, baseURL, series string, log logger.Logger) *Downloader {
	if log == nil {
		log = logger.Nop()
	}
	return &Downloader{
		fetcher: fetcher,
		baseURL: baseURL,
		series:  series,
		log:     log,
	}
}

// DownloadAll walks the universe season by season. Both documents of an
// event are attempted independently; a failed download is logged and
// skipped. Only cancellation of ctx stops the walk early.
func (d *Downloader) DownloadAll(ctx context.Context, universe event.Universe) (Report, error) {
	var report Report

	for _, season := range seasons(universe.Keys()) {
		d.log.Info(ctx, "downloading season", logger.Int("year", season[0].Year))

		for _, key := range season {
			for _, kind := range []event.Kind{event.Race, event.Practice} {
				if err := d.download(ctx, key, kind, &report); err != nil {
					return report, err
				}
			}
		}
	}

	d.log.Info(ctx, "download complete",
		logger.Int("attempted", report.Attempted),
		logger.Int("stored", report.Stored),
		logger.Int("failed", report.Failed))
	return report, nil
}

// download fetches one document. It returns an error only when ctx is done.
func (d *Downloader) download(ctx context.Context, key event.Key, kind event.Kind, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	report.Attempted++

	err := d.fetcher.Fetch(ctx, key.URL(d.baseURL, d.series, kind), kind, key.Filename(kind))
	switch {
	case err == nil:
		report.Stored++
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	}

	report.Failed++
	d.log.Warn(ctx, "document not available",
		logger.String("event", key.String()),
		logger.String("kind", string(kind)),
		logger.Error(err))
	return nil
}

// seasons splits year-ordered keys into one slice per year.
func seasons(keys []event.Key) [][]event.Key {
	var out [][]event.Key
	for i, key := range keys {
		if i == 0 || key.Year != keys[i-1].Year {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], key)
	}
	return out
}
