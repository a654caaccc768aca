package practice

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pyhub-apps/motopace/pkg/laptime"
)

// rowKind is the role a sheet row plays in the lap stream
type rowKind int

const (
	// rowNoise has no digit in its lap field or nothing in its time field
	rowNoise rowKind = iota
	// rowMarker opens the lap block of the rider whose number it carries
	rowMarker
	// rowLap carries a lap time for the current rider
	rowLap
	// rowIgnored is neither a marker nor a lap
	rowIgnored
)

type classifiedRow struct {
	kind  rowKind
	value string
}

// classify decides the role of a {lapNumberOrMarker, lapTimeOrRiderNumber} row.
func classify(lapField, timeField string) classifiedRow {
	lapField = strings.TrimSpace(lapField)
	timeField = strings.TrimSpace(timeField)

	if !strings.ContainsFunc(lapField, unicode.IsDigit) || timeField == "" {
		return classifiedRow{kind: rowNoise}
	}

	if _, err := strconv.ParseFloat(lapField, 64); err != nil {
		if number := digitsOnly(timeField); number != "" {
			return classifiedRow{kind: rowMarker, value: number}
		}
	}

	if laptime.Pattern.MatchString(timeField) {
		return classifiedRow{kind: rowLap, value: timeField}
	}

	return classifiedRow{kind: rowIgnored}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// walkState is the state of the lap-stream walker
type walkState int

const (
	awaitingRider walkState = iota
	collecting
)

// walker consumes classified rows in sheet order and buckets lap cells by rider.
//
//	awaitingRider --marker--> collecting
//	collecting    --marker--> collecting (new or re-opened rider)
//	collecting    --lap-----> collecting (append)
//	any           --other---> unchanged
//
// With dropFirst set, the first lap after every marker is the out-lap of
// that block and is not kept.
type walker struct {
	state     walkState
	current   string
	dropFirst bool
	skipLap   bool
	table     LapTable
}

func newWalker(dropFirst bool) *walker {
	return &walker{
		state:     awaitingRider,
		dropFirst: dropFirst,
		table:     LapTable{Laps: map[string][]string{}},
	}
}

func (w *walker) step(row classifiedRow) {
	switch row.kind {
	case rowMarker:
		w.open(row.value)
	case rowLap:
		if w.state != collecting {
			return
		}
		if w.skipLap {
			w.skipLap = false
			return
		}
		w.table.Laps[w.current] = append(w.table.Laps[w.current], row.value)
	}
}

// open starts a marker block for the rider. A rider listed twice, e.g.
// continued on a new page, keeps appending to the same bucket; each block
// loses its own out-lap.
func (w *walker) open(rider string) {
	if _, seen := w.table.Laps[rider]; !seen {
		w.table.Riders = append(w.table.Riders, rider)
		w.table.Laps[rider] = nil
	}
	w.current = rider
	w.state = collecting
	w.skipLap = w.dropFirst
}

// walk classifies every row and feeds the walker.
func walk(rows [][]string, dropFirst bool) LapTable {
	w := newWalker(dropFirst)
	for _, row := range rows {
		var lapField, timeField string
		if len(row) > 0 {
			lapField = row[0]
		}
		if len(row) > 1 {
			timeField = row[1]
		}
		w.step(classify(lapField, timeField))
	}
	return w.table
}
