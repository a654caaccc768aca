// Package reconcile lines up practice pace against the race result.
package reconcile

import (
	"github.com/pyhub-apps/motopace/pkg/classification"
	"github.com/pyhub-apps/motopace/pkg/practice"
)

// Pair is one output row: the i-th practice rider next to the i-th finisher.
type Pair struct {
	FP   string
	Race string
}

// Merge keeps the practice riders who were classified in the race and the
// finishers who set a practice pace, then pairs the two lists by index.
//
// Rows are paired positionally, not by rider number: row i holds the i-th
// fastest practice rider and the rider who finished i-th, so the output
// compares practice rank with race rank.
func Merge(fp []practice.RiderAverage, race []classification.Row) []Pair {
	inRace := make(map[string]struct{}, len(race))
	for _, row := range race {
		if row.Number != "" {
			inRace[row.Number] = struct{}{}
		}
	}
	inPractice := make(map[string]struct{}, len(fp))
	for _, avg := range fp {
		inPractice[avg.Rider] = struct{}{}
	}

	var practiceOrder []string
	for _, avg := range fp {
		if _, ok := inRace[avg.Rider]; ok {
			practiceOrder = append(practiceOrder, avg.Rider)
		}
	}
	var raceOrder []string
	for _, row := range race {
		if _, ok := inPractice[row.Number]; ok && row.Number != "" {
			raceOrder = append(raceOrder, row.Number)
		}
	}

	n := min(len(practiceOrder), len(raceOrder))
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		pairs = append(pairs, Pair{FP: practiceOrder[i], Race: raceOrder[i]})
	}
	return pairs
}
