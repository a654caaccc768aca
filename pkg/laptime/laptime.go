// Package laptime converts between the M'SS.mmm lap-time notation used on
// timing sheets and seconds.
package laptime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	separator     = "'"
	secondsPerMin = 60
	millisPerSec  = 1000
)

// Pattern matches a lap time anywhere inside a timing-sheet cell.
var Pattern = regexp.MustCompile(`\d{0,2}'\d\d\.\d\d\d`)

// Find returns the first lap time embedded in cell.
func Find(cell string) (string, bool) {
	match := Pattern.FindString(cell)
	return match, match != ""
}

// Parse converts "M'SS.mmm" to seconds rounded to the millisecond.
// An empty minutes part counts as zero.
func Parse(lap string) (float64, error) {
	minPart, secPart, ok := strings.Cut(strings.TrimSpace(lap), separator)
	if !ok {
		return 0, fmt.Errorf("laptime: %q has no minute separator", lap)
	}

	minutes := 0
	if minPart != "" {
		m, err := strconv.Atoi(minPart)
		if err != nil {
			return 0, fmt.Errorf("laptime: invalid minutes in %q: %w", lap, err)
		}
		minutes = m
	}

	seconds, err := strconv.ParseFloat(secPart, 64)
	if err != nil {
		return 0, fmt.Errorf("laptime: invalid seconds in %q: %w", lap, err)
	}
	if minutes < 0 || seconds < 0 {
		return 0, fmt.Errorf("laptime: negative component in %q", lap)
	}

	return Round(float64(minutes*secondsPerMin) + seconds), nil
}

// Format converts seconds back to "M'SS.mmm".
func Format(seconds float64) string {
	millis := int64(math.Round(seconds * millisPerSec))
	if millis < 0 {
		millis = 0
	}
	minutes := millis / (secondsPerMin * millisPerSec)
	rest := float64(millis%(secondsPerMin*millisPerSec)) / millisPerSec
	return fmt.Sprintf("%d%s%06.3f", minutes, separator, rest)
}

// Round rounds seconds to millisecond precision.
func Round(seconds float64) float64 {
	return math.Round(seconds*millisPerSec) / millisPerSec
}
