// Package batch runs the practice-versus-race pipeline over every event
// found in the data directory.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pyhub-apps/motopace/pkg/classification"
	"github.com/pyhub-apps/motopace/pkg/event"
	"github.com/pyhub-apps/motopace/pkg/logger"
	"github.com/pyhub-apps/motopace/pkg/metrics"
	"github.com/pyhub-apps/motopace/pkg/pdf"
	"github.com/pyhub-apps/motopace/pkg/practice"
	"github.com/pyhub-apps/motopace/pkg/reconcile"
)

// Driver processes events one after another. A failure confined to one
// event becomes that event's Outcome; anything else ends the run.
type Driver struct {
	dataDir   string
	open      pdf.Opener
	extractor pdf.Extractor

	classificationTemplate classification.Template
	practiceTemplate       practice.Template
	factor                 float64

	universe *event.Universe
	runID    string
	log      logger.Logger
	metrics  *metrics.Manager
}

// Option configures a Driver.
type Option func(*Driver)

// WithOpener replaces pdf.Open.
func WithOpener(open pdf.Opener) Option {
	return func(d *Driver) {
		if open != nil {
			d.open = open
		}
	}
}

// WithExtractor replaces the default region extractor.
func WithExtractor(extractor pdf.Extractor) Option {
	return func(d *Driver) {
		if extractor != nil {
			d.extractor = extractor
		}
	}
}

// WithClassificationTemplate sets the race sheet layout.
func WithClassificationTemplate(t classification.Template) Option {
	return func(d *Driver) { d.classificationTemplate = t }
}

// WithPracticeTemplate sets the practice sheet layout.
func WithPracticeTemplate(t practice.Template) Option {
	return func(d *Driver) { d.practiceTemplate = t }
}

// WithThresholdFactor sets the lap threshold factor of the aggregation.
func WithThresholdFactor(factor float64) Option {
	return func(d *Driver) { d.factor = factor }
}

// WithUniverse restricts the run to events of u.
func WithUniverse(u event.Universe) Option {
	return func(d *Driver) { d.universe = &u }
}

// WithRunID sets the run identifier instead of a random UUID.
func WithRunID(id string) Option {
	return func(d *Driver) { d.runID = id }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

// WithMetrics records the run on m.
func WithMetrics(m *metrics.Manager) Option {
	return func(d *Driver) { d.metrics = m }
}

// NewDriver creates a Driver reading from and writing to dataDir.
func NewDriver(dataDir string, opts ...Option) *Driver {
	d := &Driver{
		dataDir:                dataDir,
		open:                   pdf.Open,
		extractor:              pdf.NewRegionExtractor(),
		classificationTemplate: classification.DefaultTemplate(),
		practiceTemplate:       practice.DefaultTemplate(),
		factor:                 practice.DefaultThresholdFactor,
		log:                    logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes every available event and writes one CSV per successful
// event. The returned error is non-nil only for systemic failures: the data
// directory cannot be listed, an output file cannot be written, or ctx ends.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: d.runID}
	if report.RunID == "" {
		report.RunID = uuid.NewString()
	}
	log := d.log.With(logger.String("run_id", report.RunID))

	info, err := os.Stat(d.dataDir)
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrDataDir, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s is not a directory", ErrDataDir, d.dataDir)
	}

	keys, err := ListEvents(d.dataDir)
	if err != nil {
		return report, err
	}
	if d.universe != nil {
		keys = filterKeys(keys, *d.universe)
	}
	log.Info(ctx, "preprocessing started", logger.Int("events", len(keys)))

	parser := classification.NewParser(d.extractor, d.classificationTemplate)
	reconstructor := practice.NewReconstructor(d.extractor, d.practiceTemplate)

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		start := time.Now()
		outcome, err := d.processEvent(ctx, log, key, parser, reconstructor)
		if err != nil {
			return report, err
		}
		d.metrics.RecordEvent(string(outcome.Status), time.Since(start))
		report.Outcomes = append(report.Outcomes, outcome)
	}

	log.Info(ctx, "preprocessing finished",
		logger.Int("ok", report.Count(StatusOK)),
		logger.Int("race_failed", report.Count(StatusRaceFailed)),
		logger.Int("practice_failed", report.Count(StatusPracticeFailed)))
	return report, nil
}

func (d *Driver) processEvent(ctx context.Context, log logger.Logger, key event.Key,
	parser *classification.Parser, reconstructor *practice.Reconstructor) (Outcome, error) {
	outcome := Outcome{Event: key}
	log = log.With(logger.String("event", key.String()))

	race, err := d.readRace(key, parser)
	if err != nil {
		outcome.Status, outcome.Err = StatusRaceFailed, err
		log.Warn(ctx, "race classification skipped", logger.Error(err))
		return outcome, nil
	}

	riders, err := d.readPractice(key, reconstructor)
	if err != nil {
		outcome.Status, outcome.Err = StatusPracticeFailed, err
		log.Warn(ctx, "practice analysis skipped", logger.Error(err))
		return outcome, nil
	}

	averages, degenerate := practice.Aggregate(riders, d.factor)
	d.metrics.RecordRiders(len(averages), len(degenerate))
	if len(degenerate) > 0 {
		log.Debug(ctx, "riders without a qualifying lap", logger.Any("riders", degenerate))
	}

	pairs := reconcile.Merge(averages, race)
	output := filepath.Join(d.dataDir, key.CSVName())
	if err := WriteCSV(output, pairs); err != nil {
		return outcome, err
	}
	d.metrics.RecordPairs(len(pairs))

	outcome.Status = StatusOK
	outcome.Output = output
	outcome.Pairs = len(pairs)
	outcome.Degenerate = degenerate
	log.Info(ctx, "event processed",
		logger.Int("pairs", len(pairs)),
		logger.Int("degenerate", len(degenerate)))
	return outcome, nil
}

func (d *Driver) readRace(key event.Key, parser *classification.Parser) ([]classification.Row, error) {
	doc, err := d.open(filepath.Join(d.dataDir, event.Race.Dir(), key.Filename(event.Race)))
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return parser.Parse(doc)
}

func (d *Driver) readPractice(key event.Key, reconstructor *practice.Reconstructor) ([]practice.RiderLaps, error) {
	doc, err := d.open(filepath.Join(d.dataDir, event.Practice.Dir(), key.Filename(event.Practice)))
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	table, err := reconstructor.Reconstruct(doc)
	if err != nil {
		return nil, err
	}
	return practice.FilterTable(table), nil
}

func filterKeys(keys []event.Key, u event.Universe) []event.Key {
	kept := keys[:0:0]
	for _, key := range keys {
		if u.Contains(key) {
			kept = append(kept, key)
		}
	}
	return kept
}
