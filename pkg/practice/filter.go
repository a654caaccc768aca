package practice

import (
	"strings"

	"github.com/pyhub-apps/motopace/pkg/laptime"
)

const (
	// pitMarker flags a lap ending in the pit lane
	pitMarker = "P"
	// cancelledMarker flags a lap cancelled by race direction
	cancelledMarker = "*"
)

// FilterLaps turns a rider's raw lap cells into lap records.
//
// A pit lap is invalid and so is the lap right after it (the out-lap).
// Cancelled laps are invalid. The out-lap rule wins over a cancellation mark
// on the same cell. Cells from which no lap time can be read are invalid.
func FilterLaps(rider string, cells []string) []LapRecord {
	records := make([]LapRecord, len(cells))
	afterPit := false

	for i, cell := range cells {
		record := LapRecord{Rider: rider}

		switch {
		case strings.Contains(cell, pitMarker):
			afterPit = true
		case afterPit:
			afterPit = false
		case strings.Contains(cell, cancelledMarker):
		default:
			if lap, ok := laptime.Find(cell); ok {
				if seconds, err := laptime.Parse(lap); err == nil {
					record.Seconds = seconds
					record.Valid = true
				}
			}
		}

		records[i] = record
	}

	return records
}

// FilterTable applies FilterLaps to every rider column of table, in column order.
func FilterTable(table LapTable) []RiderLaps {
	riders := make([]RiderLaps, 0, len(table.Riders))
	for _, rider := range table.Riders {
		riders = append(riders, RiderLaps{
			Rider: rider,
			Laps:  FilterLaps(rider, table.Column(rider)),
		})
	}
	return riders
}
