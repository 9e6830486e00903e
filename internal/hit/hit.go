package hit

import (
	"errors"
	"fmt"
	"math"

	"github.com/aria-lang/hspflow/internal/alignment"
	"github.com/aria-lang/hspflow/internal/intervals"
)

var (
	// ErrNoHSPs is returned when a hit carries no alignment records.
	ErrNoHSPs = errors.New("hit has no HSPs")
	// ErrUnknownFlavour is returned for a search flavour without known multipliers.
	ErrUnknownFlavour = errors.New("unknown search flavour")
)

// ExcessPositionsError is returned when a hit reports more identical or
// positive query positions than it has aligned query coordinates.
type ExcessPositionsError struct {
	Kind    string
	Count   int
	Aligned int
}

func (e *ExcessPositionsError) Error() string {
	return fmt.Sprintf("number of %s positions (%d) greater than number of aligned positions (%d)",
		e.Kind, e.Count, e.Aligned)
}

// Hit is every HSP between one query and one target.
type Hit struct {
	QueryID      string `json:"query_id"`
	TargetID     string `json:"target_id"`
	QueryLength  int    `json:"query_length,omitempty"`
	TargetLength int    `json:"target_length,omitempty"`
	HSPs         []HSP  `json:"hsps"`
}

// Summary is the hit-level view used by transcript scoring.
type Summary struct {
	QueryID             string        `json:"query_id"`
	TargetID            string        `json:"target_id"`
	QueryAlignedLength  int           `json:"query_aligned_length"`
	QueryStart          int           `json:"query_start"`
	QueryEnd            int           `json:"query_end"`
	TargetAlignedLength int           `json:"target_aligned_length"`
	TargetStart         int           `json:"target_start"`
	TargetEnd           int           `json:"target_end"`
	GlobalIdentity      float64       `json:"global_identity"`
	GlobalPositives     float64       `json:"global_positives"`
	EValue              float64       `json:"evalue"`
	BitScore            float64       `json:"bits"`
	HSPs                []*HSPSummary `json:"hsps"`

	Identical alignment.Positions `json:"identical_positions"`
	Positive  alignment.Positions `json:"positive_positions"`
}

// Prepare decodes every HSP of h and folds them into a hit summary.
//
// HSPs without their own multiplier or query length inherit m.Query and
// h.QueryLength. Query and target intervals are merged before computing
// aligned lengths, so overlapping HSPs are not counted twice.
func Prepare(h *Hit, m Multipliers) (*Summary, error) {
	if len(h.HSPs) == 0 {
		return nil, fmt.Errorf("%s vs %s: %w", h.QueryID, h.TargetID, ErrNoHSPs)
	}
	if m.Query < 1 {
		m.Query = 1
	}
	if m.Target < 1 {
		m.Target = 1
	}

	sum := &Summary{
		QueryID:  h.QueryID,
		TargetID: h.TargetID,
		HSPs:     make([]*HSPSummary, 0, len(h.HSPs)),
		EValue:   math.Inf(1),
		BitScore: math.Inf(-1),
	}

	qIntervals := make([]intervals.Interval, 0, len(h.HSPs))
	tIntervals := make([]intervals.Interval, 0, len(h.HSPs))

	for i := range h.HSPs {
		hsp := h.HSPs[i]
		if hsp.Multiplier == 0 {
			hsp.Multiplier = m.Query
		}
		if hsp.QueryLength == 0 {
			hsp.QueryLength = h.QueryLength
		}
		if err := checkTarget(&hsp, h.TargetLength, m.Target); err != nil {
			return nil, fmt.Errorf("hsp %d: %w", i+1, err)
		}

		hs, err := PrepareHSP(&hsp, i)
		if err != nil {
			return nil, fmt.Errorf("hsp %d: %w", i+1, err)
		}

		sum.HSPs = append(sum.HSPs, hs)
		sum.Identical = sum.Identical.Union(hs.Identical)
		sum.Positive = sum.Positive.Union(hs.Positive)
		if better(hs.EValue, hs.BitScore, sum.EValue, sum.BitScore) {
			sum.EValue, sum.BitScore = hs.EValue, hs.BitScore
		}

		qIntervals = append(qIntervals, intervals.New(hsp.QueryStart, hsp.QueryEnd))
		tIntervals = append(tIntervals, intervals.New(hsp.TargetStart, hsp.TargetEnd))
	}

	qMerged, qAligned := intervals.Merge(qIntervals)
	sum.QueryAlignedLength = qAligned
	sum.QueryStart, sum.QueryEnd = qMerged[0].Start, qMerged[len(qMerged)-1].End

	if sum.Identical.Len() > qAligned {
		return nil, &ExcessPositionsError{Kind: "identical", Count: sum.Identical.Len(), Aligned: qAligned}
	}
	if sum.Positive.Len() > qAligned {
		return nil, &ExcessPositionsError{Kind: "positive", Count: sum.Positive.Len(), Aligned: qAligned}
	}

	tMerged, tAligned := intervals.Merge(tIntervals)
	sum.TargetAlignedLength = tAligned
	sum.TargetStart, sum.TargetEnd = tMerged[0].Start, tMerged[len(tMerged)-1].End

	sum.GlobalIdentity = percent(sum.Identical.Len(), qAligned)
	sum.GlobalPositives = percent(sum.Positive.Len(), qAligned)

	return sum, nil
}

// better orders HSPs by lowest e-value, then highest bit score.
func better(evalue, bits, bestEValue, bestBits float64) bool {
	if evalue != bestEValue {
		return evalue < bestEValue
	}
	return bits > bestBits
}

func checkTarget(h *HSP, targetLength, multiplier int) error {
	if targetLength <= 0 {
		return nil
	}
	span := intervals.New(h.TargetStart, h.TargetEnd).Len() / multiplier
	if span > targetLength {
		return &alignment.ShapeMismatchError{Reason: "target coverage exceeds target length", Expected: targetLength, Actual: span}
	}
	return nil
}

// Best returns the summary of the HSP with the lowest e-value, breaking ties
// by bit score.
func (s *Summary) Best() *HSPSummary {
	var best *HSPSummary
	for _, hs := range s.HSPs {
		if best == nil || better(hs.EValue, hs.BitScore, best.EValue, best.BitScore) {
			best = hs
		}
	}
	return best
}
