package reconcile

import (
	"reflect"
	"testing"

	"github.com/pyhub-apps/motopace/pkg/classification"
	"github.com/pyhub-apps/motopace/pkg/practice"
)

func averages(riders ...string) []practice.RiderAverage {
	out := make([]practice.RiderAverage, len(riders))
	for i, r := range riders {
		out[i] = practice.RiderAverage{Rider: r, AverageSeconds: 100 + float64(i)}
	}
	return out
}

func finishers(numbers ...string) []classification.Row {
	out := make([]classification.Row, len(numbers))
	for i, n := range numbers {
		out[i] = classification.Row{Position: i + 1, Number: n}
	}
	return out
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		fp   []practice.RiderAverage
		race []classification.Row
		want []Pair
	}{
		{
			name: "positional pairing after intersection",
			fp:   averages("11", "22", "33"),
			race: finishers("33", "11", "99"),
			want: []Pair{{FP: "11", Race: "33"}, {FP: "33", Race: "11"}},
		},
		{
			name: "identical sets keep both orders",
			fp:   averages("1", "2", "3"),
			race: finishers("3", "1", "2"),
			want: []Pair{{FP: "1", Race: "3"}, {FP: "2", Race: "1"}, {FP: "3", Race: "2"}},
		},
		{
			name: "empty race number ignored",
			fp:   averages("5", ""),
			race: finishers("", "5"),
			want: []Pair{{FP: "5", Race: "5"}},
		},
		{
			name: "disjoint",
			fp:   averages("1"),
			race: finishers("2"),
			want: []Pair{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.fp, tt.race)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
