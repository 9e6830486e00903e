package alignment

import (
	"encoding/json"
	"slices"
)

// Positions is a set of query coordinates, kept sorted and free of
// duplicates.
type Positions struct {
	values []int
}

// NewPositions builds a set from arbitrary values; order and duplicates in
// the input are irrelevant.
func NewPositions(values ...int) Positions {
	v := slices.Clone(values)
	slices.Sort(v)
	return Positions{values: slices.Compact(v)}
}

// Len returns the number of distinct coordinates.
func (p Positions) Len() int {
	return len(p.values)
}

// Values returns the coordinates in ascending order.
func (p Positions) Values() []int {
	return slices.Clone(p.values)
}

// Contains reports whether pos is in the set.
func (p Positions) Contains(pos int) bool {
	_, found := slices.BinarySearch(p.values, pos)
	return found
}

// CountIn returns how many coordinates fall in the half-open interval
// [start, end).
func (p Positions) CountIn(start, end int) int {
	if end <= start {
		return 0
	}
	lo, _ := slices.BinarySearch(p.values, start)
	hi, _ := slices.BinarySearch(p.values, end)
	return hi - lo
}

// Union returns the set of coordinates present in either p or other.
func (p Positions) Union(other Positions) Positions {
	merged := make([]int, 0, len(p.values)+len(other.values))
	i, j := 0, 0
	for i < len(p.values) && j < len(other.values) {
		switch {
		case p.values[i] < other.values[j]:
			merged = append(merged, p.values[i])
			i++
		case p.values[i] > other.values[j]:
			merged = append(merged, other.values[j])
			j++
		default:
			merged = append(merged, p.values[i])
			i++
			j++
		}
	}
	merged = append(merged, p.values[i:]...)
	merged = append(merged, other.values[j:]...)
	return Positions{values: merged}
}

// IsSubsetOf reports whether every coordinate of p is also in other.
func (p Positions) IsSubsetOf(other Positions) bool {
	for _, v := range p.values {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as an ascending array.
func (p Positions) MarshalJSON() ([]byte, error) {
	if p.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.values)
}

// UnmarshalJSON accepts any integer array.
func (p *Positions) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*p = NewPositions(values...)
	return nil
}

// project maps a coverage index onto original query coordinates: the index
// expands into multiplier consecutive offsets, which are then placed on the
// strand relative to the query interval.
func project(k, multiplier int, strand Strand, start, end int, emit func(int)) {
	for j := 0; j < multiplier; j++ {
		offset := k*multiplier + j
		if strand == Reverse {
			emit(end - offset)
		} else {
			emit(start + offset)
		}
	}
}
