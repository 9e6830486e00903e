// Package stats provides identity and similarity summaries over query
// coordinates and across batches of hits.
//
// Region statistics intersect the identical and positive position sets with
// a query sub-interval; batch statistics aggregate hit summaries.
package stats

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/aria-lang/hspflow/internal/alignment"
	"github.com/aria-lang/hspflow/internal/hit"
)

// RegionStats represents identity and similarity over one query interval.
//
// Invariants:
//
//	Identical <= Positive <= Length
//	0 <= Identity <= Similarity <= 1
type RegionStats struct {
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Strand     string  `json:"strand"`
	Length     int     `json:"length"`
	Identical  int     `json:"identical"`
	Positive   int     `json:"positive"`
	Identity   float64 `json:"identity"`
	Similarity float64 `json:"similarity"`
}

// Region intersects the position sets with the query interval start..end
// read on strand: [start, end) forward, (start, end] reverse, matching the
// coordinates Analyze projects for an HSP with the same bounds.
func Region(identical, positive alignment.Positions, start, end int, strand alignment.Strand) (*RegionStats, error) {
	if end <= start {
		return nil, fmt.Errorf("region %d..%d is empty", start, end)
	}

	lo, hi := strand.Span(start, end)
	length := end - start
	ident := identical.CountIn(lo, hi)
	pos := positive.CountIn(lo, hi)

	return &RegionStats{
		Start:      start,
		End:        end,
		Strand:     strand.String(),
		Length:     length,
		Identical:  ident,
		Positive:   pos,
		Identity:   float64(ident) / float64(length),
		Similarity: float64(pos) / float64(length),
	}, nil
}

func (r *RegionStats) String() string {
	return fmt.Sprintf("RegionStats { %d..%d (%s) identity: %.1f%%, similarity: %.1f%% }",
		r.Start, r.End, r.Strand, r.Identity*100, r.Similarity*100)
}

// Profile classifies every coordinate of the interval, in ascending order,
// using the same strand convention as Region: Identical when the coordinate
// is in the identical set, Positive when only in the positive set, Mismatch
// otherwise.
func Profile(identical, positive alignment.Positions, start, end int, strand alignment.Strand) []alignment.Classification {
	if end <= start {
		return nil
	}
	lo, hi := strand.Span(start, end)
	profile := make([]alignment.Classification, hi-lo)
	for i := range profile {
		pos := lo + i
		switch {
		case identical.Contains(pos):
			profile[i] = alignment.Identical
		case positive.Contains(pos):
			profile[i] = alignment.Positive
		}
	}
	return profile
}

// ProfileLine renders Profile as match-line symbols, one per coordinate.
func ProfileLine(identical, positive alignment.Positions, start, end int, strand alignment.Strand) string {
	profile := Profile(identical, positive, start, end, strand)
	line := make([]byte, len(profile))
	for i, c := range profile {
		line[i] = c.Symbol()
	}
	return string(line)
}

// BatchStats represents aggregated statistics for a collection of hits.
type BatchStats struct {
	Count             int     `json:"count"`
	HSPCount          int     `json:"hsp_count"`
	MeanIdentity      float64 `json:"mean_identity"`
	StdDevIdentity    float64 `json:"stddev_identity"`
	MedianIdentity    float64 `json:"median_identity"`
	MeanPositives     float64 `json:"mean_positives"`
	StdDevPositives   float64 `json:"stddev_positives"`
	MinIdentity       float64 `json:"min_identity"`
	MaxIdentity       float64 `json:"max_identity"`
	TotalAlignedQuery int     `json:"total_aligned_query"`
}

// FromSummaries aggregates global identity and positive percentages over
// hit summaries.
func FromSummaries(summaries []*hit.Summary) (*BatchStats, error) {
	if len(summaries) == 0 {
		return nil, fmt.Errorf("summary list cannot be empty")
	}

	count := len(summaries)
	identities := make([]float64, count)
	positives := make([]float64, count)
	hsps, aligned := 0, 0

	for i, s := range summaries {
		identities[i] = s.GlobalIdentity
		positives[i] = s.GlobalPositives
		hsps += len(s.HSPs)
		aligned += s.QueryAlignedLength
	}

	meanIdent, stdIdent := stat.MeanStdDev(identities, nil)
	meanPos, stdPos := stat.MeanStdDev(positives, nil)
	if count == 1 {
		stdIdent, stdPos = 0, 0
	}

	sorted := slices.Clone(identities)
	slices.Sort(sorted)

	return &BatchStats{
		Count:             count,
		HSPCount:          hsps,
		MeanIdentity:      meanIdent,
		StdDevIdentity:    stdIdent,
		MedianIdentity:    stat.Quantile(0.5, stat.Empirical, sorted, nil),
		MeanPositives:     meanPos,
		StdDevPositives:   stdPos,
		MinIdentity:       sorted[0],
		MaxIdentity:       sorted[count-1],
		TotalAlignedQuery: aligned,
	}, nil
}

func (b *BatchStats) String() string {
	return fmt.Sprintf(`BatchStats {
  hits: %d (HSPs: %d)
  identity: mean %.2f%%, sd %.2f, median %.2f%%, range %.2f%% - %.2f%%
  positives: mean %.2f%%, sd %.2f
  aligned query: %d
}`, b.Count, b.HSPCount,
		b.MeanIdentity, b.StdDevIdentity, b.MedianIdentity, b.MinIdentity, b.MaxIdentity,
		b.MeanPositives, b.StdDevPositives, b.TotalAlignedQuery)
}
