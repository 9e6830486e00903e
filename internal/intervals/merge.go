// Package intervals merges half-open coordinate intervals.
package intervals

import (
	"cmp"
	"fmt"
	"slices"
)

// Interval is a half-open range [Start, End).
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// New returns the interval spanning start and end, whichever order they
// arrive in.
func New(start, end int) Interval {
	if end < start {
		start, end = end, start
	}
	return Interval{Start: start, End: end}
}

// Len returns the number of coordinates covered.
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// Overlaps reports whether iv and other share or abut at a coordinate.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start <= other.End && other.Start <= iv.End
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d)", iv.Start, iv.End)
}

// Merge sorts the intervals, fuses overlapping or abutting ones and returns
// the merged list together with the total number of covered coordinates.
// The input slice is not modified.
func Merge(ivs []Interval) ([]Interval, int) {
	if len(ivs) == 0 {
		return nil, 0
	}

	sorted := make([]Interval, len(ivs))
	for i, iv := range ivs {
		sorted[i] = New(iv.Start, iv.End)
	}
	slices.SortFunc(sorted, func(a, b Interval) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	merged := []Interval{sorted[0]}
	for _, next := range sorted[1:] {
		current := &merged[len(merged)-1]
		if next.Start <= current.End {
			if next.End > current.End {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, next)
	}

	total := 0
	for _, iv := range merged {
		total += iv.Len()
	}
	return merged, total
}
