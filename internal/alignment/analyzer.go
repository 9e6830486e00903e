package alignment

import (
	"fmt"
	"strings"
)

// AlignedTriple is one alignment record: the gapped query and hit rows, the
// similarity annotation and the query coordinates it covers.
//
// QueryStart and QueryEnd live in the same coordinate space as QueryLength.
// Multiplier expands one aligned query column into that many original
// coordinates (3 when a translated search is reported in nucleotides); zero
// is read as 1.
type AlignedTriple struct {
	Query       string `json:"query"`
	Hit         string `json:"hit"`
	Similarity  string `json:"similarity"`
	QueryStart  int    `json:"query_start"`
	QueryEnd    int    `json:"query_end"`
	QueryLength int    `json:"query_length"`
	QueryFrame  int    `json:"query_frame"`
	Multiplier  int    `json:"multiplier,omitempty"`
}

// Columns returns the number of alignment columns.
func (t *AlignedTriple) Columns() int {
	return len(t.Query)
}

// Strand returns the reading direction implied by the query frame.
func (t *AlignedTriple) Strand() Strand {
	return StrandOf(t.QueryFrame)
}

func (t *AlignedTriple) multiplier() int {
	if t.Multiplier == 0 {
		return 1
	}
	return t.Multiplier
}

// Coverage returns the number of ungapped query positions, in alignment
// units, that the triple claims to cover.
func (t *AlignedTriple) Coverage() (int, error) {
	m := t.multiplier()
	if m < 1 {
		return 0, &ShapeMismatchError{Reason: "coordinate multiplier must be positive", Expected: 1, Actual: m}
	}
	span := t.QueryEnd - t.QueryStart
	if span < 0 {
		return 0, &ShapeMismatchError{Reason: "query end precedes query start", Expected: t.QueryEnd, Actual: t.QueryStart}
	}
	coverage := span / m
	if coverage == 0 {
		return 0, t.empty(coverage)
	}
	if coverage > t.QueryLength {
		return 0, &ShapeMismatchError{Reason: "coverage exceeds query length", Expected: t.QueryLength, Actual: coverage}
	}
	return coverage, nil
}

func (t *AlignedTriple) empty(coverage int) *EmptyAlignmentError {
	return &EmptyAlignmentError{
		Query:      t.Query,
		Hit:        t.Hit,
		Similarity: t.Similarity,
		Coverage:   coverage,
	}
}

// Result is the decoded form of an AlignedTriple.
type Result struct {
	MatchLine      string           `json:"match"`
	Classification []Classification `json:"classification"`
	Identical      Positions        `json:"identical_positions"`
	Positive       Positions        `json:"positive_positions"`
}

// Analyze classifies every column of t, projects identical and positive
// residues onto original query coordinates and builds the match line.
//
// A query residue is consumed by identical, positive, hit-gap and mismatch
// columns; query-gap and double-gap columns consume nothing. Identity is
// checked before the positive marker, so a '+' on an identical column still
// counts as identical.
func Analyze(t *AlignedTriple) (*Result, error) {
	if len(t.Query) == 0 || len(t.Hit) == 0 || len(t.Similarity) == 0 {
		return nil, t.empty(0)
	}
	if len(t.Hit) != len(t.Query) {
		return nil, &ShapeMismatchError{Reason: "hit row length differs from query row", Expected: len(t.Query), Actual: len(t.Hit)}
	}
	if len(t.Similarity) != len(t.Query) {
		return nil, &ShapeMismatchError{Reason: "similarity row length differs from query row", Expected: len(t.Query), Actual: len(t.Similarity)}
	}

	coverage, err := t.Coverage()
	if err != nil {
		return nil, err
	}

	classes := make([]Classification, coverage)
	match := make([]byte, len(t.Query))
	consumed := 0

	mark := func(c Classification) {
		if consumed < coverage {
			classes[consumed] = c
		}
		consumed++
	}

	for i := 0; i < len(t.Query); i++ {
		q, h := t.Query[i], t.Hit[i]

		switch {
		case q == GapMarker && h == GapMarker:
			match[i] = SymbolDoubleGap
		case q == h:
			match[i] = SymbolIdentical
			mark(Identical)
		case t.Similarity[i] == PositiveMarker:
			match[i] = SymbolPositive
			mark(Positive)
		case q == GapMarker:
			if h == MaskedMarker {
				match[i] = SymbolMasked
			} else {
				match[i] = SymbolQueryGap
			}
		case h == GapMarker:
			if q == MaskedMarker {
				match[i] = SymbolMasked
			} else {
				match[i] = SymbolHitGap
			}
			mark(Mismatch)
		default:
			match[i] = SymbolMismatch
			mark(Mismatch)
		}
	}

	if consumed > coverage {
		return nil, &ShapeMismatchError{Reason: "alignment consumes more query residues than its coverage", Expected: coverage, Actual: consumed}
	}

	identical, positive := collect(classes, t.multiplier(), t.Strand(), t.QueryStart, t.QueryEnd)

	return &Result{
		MatchLine:      string(match),
		Classification: classes,
		Identical:      identical,
		Positive:       positive,
	}, nil
}

// collect gathers the identical (class >= Identical) and positive
// (class >= Positive) coverage indices and projects them.
func collect(classes []Classification, multiplier int, strand Strand, start, end int) (Positions, Positions) {
	var identical, positive []int
	for k, c := range classes {
		if c >= Positive {
			project(k, multiplier, strand, start, end, func(pos int) {
				positive = append(positive, pos)
			})
		}
		if c >= Identical {
			project(k, multiplier, strand, start, end, func(pos int) {
				identical = append(identical, pos)
			})
		}
	}
	return NewPositions(identical...), NewPositions(positive...)
}

// Length returns the number of alignment columns.
func (r *Result) Length() int {
	return len(r.MatchLine)
}

// IdenticalCount returns the number of identical columns.
func (r *Result) IdenticalCount() int {
	return strings.Count(r.MatchLine, string(SymbolIdentical))
}

// PositiveCount returns the number of identical or positive columns.
func (r *Result) PositiveCount() int {
	return r.IdenticalCount() + strings.Count(r.MatchLine, string(SymbolPositive))
}

// MismatchCount returns the number of substitution columns without a
// positive annotation.
func (r *Result) MismatchCount() int {
	return strings.Count(r.MatchLine, string(SymbolMismatch))
}

// QueryGaps returns the number of columns with a gap in the query only.
func (r *Result) QueryGaps() int {
	return strings.Count(r.MatchLine, string(SymbolQueryGap))
}

// HitGaps returns the number of columns with a gap in the hit only.
func (r *Result) HitGaps() int {
	return strings.Count(r.MatchLine, string(SymbolHitGap))
}

// GapOpenings counts runs of consecutive query-gap or hit-gap columns.
func (r *Result) GapOpenings() int {
	openings := 0
	var prev byte
	for i := 0; i < len(r.MatchLine); i++ {
		c := r.MatchLine[i]
		if (c == SymbolQueryGap || c == SymbolHitGap) && c != prev {
			openings++
		}
		prev = c
	}
	return openings
}

// Format returns the match line between the aligned rows, one row per line.
func (r *Result) Format(t *AlignedTriple) string {
	return fmt.Sprintf("Query: %s\n       %s\nHit:   %s\nIdentical: %d/%d\nPositive:  %d/%d",
		t.Query, r.MatchLine, t.Hit,
		r.IdenticalCount(), r.Length(), r.PositiveCount(), r.Length())
}

func (r *Result) String() string {
	return fmt.Sprintf("Result { length: %d, identical: %d, positive: %d }",
		r.Length(), r.Identical.Len(), r.Positive.Len())
}
