// Package event identifies Grand Prix events and derives every file name and
// URL that belongs to one.
package event

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Kind is the session document type of an event.
type Kind string

const (
	// Race is the race classification sheet.
	Race Kind = "RAC"
	// Practice is the fourth free-practice analysis sheet.
	Practice Kind = "FP4"
)

// Dir returns the data sub-directory holding documents of this kind.
func (k Kind) Dir() string {
	if k == Race {
		return "Race"
	}
	return "FP"
}

// Document returns the published document name for this kind.
func (k Kind) Document() string {
	if k == Race {
		return "Classification.pdf"
	}
	return "Analysis.pdf"
}

// Key identifies one event.
type Key struct {
	Year int
	Code string
}

// String returns "YYYY-CCC".
func (k Key) String() string {
	return fmt.Sprintf("%04d-%s", k.Year, k.Code)
}

// Filename returns the local document name, e.g. "2021-QAT-RAC.pdf".
func (k Key) Filename(kind Kind) string {
	return fmt.Sprintf("%s-%s.pdf", k, kind)
}

// CSVName returns the output file name, e.g. "2021-QAT.csv".
func (k Key) CSVName() string {
	return k.String() + ".csv"
}

// URL returns the download location of the event's document of kind.
func (k Key) URL(baseURL, series string, kind Kind) string {
	return fmt.Sprintf("%s/%d/%s/%s/%s/%s",
		strings.TrimRight(baseURL, "/"), k.Year, k.Code, series, kind, kind.Document())
}

var filenamePattern = regexp.MustCompile(`^(\d{4})-([A-Z]{3})-(RAC|FP4)\.pdf$`)

// ParseFilename is the inverse of Key.Filename. Names outside the scheme
// report ok=false.
func ParseFilename(name string) (key Key, kind Kind, ok bool) {
	m := filenamePattern.FindStringSubmatch(name)
	if m == nil {
		return Key{}, "", false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return Key{}, "", false
	}
	return Key{Year: year, Code: m[2]}, Kind(m[3]), true
}

// Compare orders keys by year, then code.
func Compare(a, b Key) int {
	if a.Year != b.Year {
		return a.Year - b.Year
	}
	return strings.Compare(a.Code, b.Code)
}

// DefaultCodes returns the event codes used on the results server between 2013 and 2022.
func DefaultCodes() []string {
	return []string{
		"QAT", "POR", "AME", "ARG", "ESP", "FRA", "ITA", "CAT", "NED", "GER",
		"USA", "INP", "AUT", "CZE", "GBR", "RSM", "ARA", "JPN", "THA", "INA",
		"AUS", "MAL", "VAL", "ANC", "STY", "EMI", "TER", "EUR", "DOH", "ALR",
	}
}

const (
	DefaultStartYear = 2013
	DefaultEndYear   = 2022
)

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Universe is the fixed set of events a run considers: every code in every
// year of an inclusive range.
type Universe struct {
	startYear int
	endYear   int
	codes     []string
}

// NewUniverse validates and builds a Universe.
func NewUniverse(startYear, endYear int, codes []string) (Universe, error) {
	if startYear > endYear {
		return Universe{}, fmt.Errorf("event: start year %d after end year %d", startYear, endYear)
	}
	if len(codes) == 0 {
		return Universe{}, fmt.Errorf("event: no event codes")
	}
	for _, code := range codes {
		if !codePattern.MatchString(code) {
			return Universe{}, fmt.Errorf("event: invalid event code %q", code)
		}
	}
	return Universe{startYear: startYear, endYear: endYear, codes: slices.Clone(codes)}, nil
}

// DefaultUniverse returns seasons 2013-2022 over DefaultCodes.
func DefaultUniverse() Universe {
	u, _ := NewUniverse(DefaultStartYear, DefaultEndYear, DefaultCodes())
	return u
}

// Keys enumerates the universe year by year, codes in configured order.
func (u Universe) Keys() []Key {
	keys := make([]Key, 0, (u.endYear-u.startYear+1)*len(u.codes))
	for year := u.startYear; year <= u.endYear; year++ {
		for _, code := range u.codes {
			keys = append(keys, Key{Year: year, Code: code})
		}
	}
	return keys
}

// Contains reports whether key belongs to the universe.
func (u Universe) Contains(key Key) bool {
	return key.Year >= u.startYear && key.Year <= u.endYear && slices.Contains(u.codes, key.Code)
}

// Codes returns a copy of the event codes.
func (u Universe) Codes() []string {
	return slices.Clone(u.codes)
}

// Years returns the inclusive year range.
func (u Universe) Years() (start, end int) {
	return u.startYear, u.endYear
}
