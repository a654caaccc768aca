// Package practice rebuilds per-rider lap times from a free-practice analysis
// sheet and reduces them to a representative pace per rider.
package practice

import (
	"github.com/pyhub-apps/motopace/pkg/pdf"
)

// LapTable is the ragged lap table of a session: one column of raw lap-time
// cells per rider, columns in order of first appearance on the sheet.
type LapTable struct {
	Riders []string
	Laps   map[string][]string
}

// Column returns the raw cells recorded for rider.
func (t LapTable) Column(rider string) []string {
	return t.Laps[rider]
}

// Len returns the number of lap positions, i.e. the longest rider column.
func (t LapTable) Len() int {
	n := 0
	for _, laps := range t.Laps {
		n = max(n, len(laps))
	}
	return n
}

// LapRecord is one lap of one rider after validity filtering.
type LapRecord struct {
	Rider   string
	Seconds float64
	Valid   bool
}

// RiderLaps holds a rider's filtered laps in session order.
type RiderLaps struct {
	Rider string
	Laps  []LapRecord
}

// RiderAverage is a rider's representative pace for the session.
type RiderAverage struct {
	Rider          string
	AverageSeconds float64
}

// Template locates the two lap-time column blocks of an analysis sheet.
type Template struct {
	Left  pdf.Region `koanf:"left"`
	Right pdf.Region `koanf:"right"`

	// DropFirstLap discards the first lap after every rider marker (the out-lap).
	DropFirstLap bool `koanf:"drop_first_lap"`
}

// DefaultTemplate returns the regions of the FP analysis sheets published since 2013.
func DefaultTemplate() Template {
	return Template{
		Left: pdf.Region{
			Name:    "practice-left",
			Area:    pdf.Area(20, 0, 730, 133),
			Columns: []float64{79},
		},
		Right: pdf.Region{
			Name:    "practice-right",
			Area:    pdf.Area(20, 318, 730, 399),
			Columns: []float64{340},
		},
		DropFirstLap: true,
	}
}
