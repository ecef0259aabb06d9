package analysis

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/census-cli/internal/dataset"
)

// CategoryCount is one row of a frequency table.
type CategoryCount struct {
	Value string
	Count int
}

// ValueCounts counts occurrences per value, ordered by count descending and
// then by value ascending.
func ValueCounts(vals []string) []CategoryCount {
	counts := make(map[string]int)
	for _, v := range vals {
		counts[v]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sortCounts(out)
	return out
}

// LabelCounts counts occurrences of each label, keeping labels that never occur
// (count 0). Ordered by count descending; ties keep label order.
func LabelCounts(vals []string, labels []string) []CategoryCount {
	counts := make(map[string]int, len(labels))
	for _, v := range vals {
		counts[v]++
	}
	out := make([]CategoryCount, len(labels))
	for i, l := range labels {
		out[i] = CategoryCount{Value: l, Count: counts[l]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func sortCounts(out []CategoryCount) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
}

// Stats describes a numeric column. Std is the sample standard deviation
// (n-1 divisor); it is 0 for a single value.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
}

// Describe computes Stats over vals.
func Describe(vals []float64) (Stats, error) {
	if len(vals) == 0 {
		return Stats{}, ErrNoValues
	}
	s := stats.Sample{Xs: sortedCopy(vals), Sorted: true}
	lo, hi := s.Bounds()
	return Stats{
		Count:  len(vals),
		Mean:   s.Mean(),
		Median: quantile(s.Xs, 0.5),
		Std:    s.StdDev(),
		Min:    lo,
		Max:    hi,
	}, nil
}

// Round rounds to the nearest integer, halves to even.
func Round(x float64) float64 { return math.RoundToEven(x) }

// DistinctSorted returns the distinct values in ascending order.
func DistinctSorted(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0)
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// GroupTotal is the sum of a numeric column over one group key.
type GroupTotal struct {
	Key   string
	Total float64
}

// SumBy sums vals per key and sorts descending, ties by key. keys and vals
// must have the same length.
func SumBy(keys []string, vals []float64) []GroupTotal {
	sums := make(map[string]float64)
	for i, k := range keys {
		sums[k] += vals[i]
	}
	out := make([]GroupTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, GroupTotal{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total == out[j].Total {
			return out[i].Key < out[j].Key
		}
		return out[i].Total > out[j].Total
	})
	return out
}

// TopAreas sums Total_Persons per Area and keeps the first n of SumBy's
// ordering; n <= 0 keeps all.
func TopAreas(t *dataset.Table, n int) []GroupTotal {
	keys := make([]string, len(t.Records))
	vals := make([]float64, len(t.Records))
	for i, r := range t.Records {
		keys[i], vals[i] = r.Area, r.TotalPersons
	}
	out := SumBy(keys, vals)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
