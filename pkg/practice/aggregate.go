package practice

import (
	"sort"

	"github.com/pyhub-apps/motopace/pkg/laptime"
)

// DefaultThresholdFactor keeps laps within 2% of a rider's best lap.
const DefaultThresholdFactor = 1.02

// Aggregate computes each rider's average over the valid laps no slower than
// factor times the rider's best valid lap. A non-positive factor selects
// DefaultThresholdFactor.
//
// Riders left without a qualifying lap are returned in degenerate instead of
// producing an average. Averages are sorted fastest first on the exact mean
// and then rounded to the millisecond; riders with equal means keep their
// input order.
func Aggregate(riders []RiderLaps, factor float64) (averages []RiderAverage, degenerate []string) {
	if factor <= 0 {
		factor = DefaultThresholdFactor
	}

	for _, rider := range riders {
		avg, ok := average(rider.Laps, factor)
		if !ok {
			degenerate = append(degenerate, rider.Rider)
			continue
		}
		averages = append(averages, RiderAverage{Rider: rider.Rider, AverageSeconds: avg})
	}

	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].AverageSeconds < averages[j].AverageSeconds
	})
	for i := range averages {
		averages[i].AverageSeconds = laptime.Round(averages[i].AverageSeconds)
	}

	return averages, degenerate
}

func average(laps []LapRecord, factor float64) (float64, bool) {
	best, found := 0.0, false
	for _, lap := range laps {
		if lap.Valid && (!found || lap.Seconds < best) {
			best, found = lap.Seconds, true
		}
	}
	if !found {
		return 0, false
	}

	threshold := best * factor
	sum, n := 0.0, 0
	for _, lap := range laps {
		if lap.Valid && lap.Seconds <= threshold {
			sum += lap.Seconds
			n++
		}
	}
	if n == 0 {
		return 0, false
	}

	return sum / float64(n), true
}
