// Package hspflow provides a high-level API for decoding alignment records.
//
// An aligned triple (query row, hit row, similarity annotation) together
// with its query coordinates is turned into a match line and the sets of
// query positions that are identical or positive.
//
// Example usage:
//
//	res, err := hspflow.Analyze(&hspflow.AlignedTriple{
//	    Query: "MKLV", Hit: "MRLV", Similarity: "M+LV",
//	    QueryStart: 0, QueryEnd: 4, QueryLength: 4, QueryFrame: 1,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.MatchLine) // |+||
//
//	sum, err := hspflow.PrepareHit(hit, "blastx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("identity: %.2f%%\n", sum.GlobalIdentity)
package hspflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aria-lang/hspflow/internal/alignment"
	"github.com/aria-lang/hspflow/internal/batch"
	"github.com/aria-lang/hspflow/internal/hit"
	"github.com/aria-lang/hspflow/internal/records"
	"github.com/aria-lang/hspflow/internal/sequence"
	"github.com/aria-lang/hspflow/internal/stats"
)

// Re-export types for convenience
type (
	AlignedTriple       = alignment.AlignedTriple
	Result              = alignment.Result
	Positions           = alignment.Positions
	Classification      = alignment.Classification
	EmptyAlignmentError = alignment.EmptyAlignmentError
	ShapeMismatchError  = alignment.ShapeMismatchError
	HSP                 = hit.HSP
	HSPSummary          = hit.HSPSummary
	Hit                 = hit.Hit
	HitSummary          = hit.Summary
	Multipliers         = hit.Multipliers
	RegionStats         = stats.RegionStats
	BatchReport         = batch.Report
	BatchOptions        = batch.Options
)

// Classifications
const (
	Mismatch  = alignment.Mismatch
	Positive  = alignment.Positive
	Identical = alignment.Identical
)

// Analyze decodes a single aligned triple.
func Analyze(t *AlignedTriple) (*Result, error) {
	return alignment.Analyze(t)
}

// NewPositions builds a position set from coordinates in any order.
func NewPositions(values ...int) Positions {
	return alignment.NewPositions(values...)
}

// PrepareHSP decodes one HSP. counter is its zero-based rank in the hit.
func PrepareHSP(h *HSP, counter int) (*HSPSummary, error) {
	return hit.PrepareHSP(h, counter)
}

// MultipliersFor returns the query and target coordinate multipliers of a
// search flavour such as "blastx".
func MultipliersFor(flavour string) (Multipliers, error) {
	return hit.MultipliersFor(flavour)
}

// PrepareHit decodes every HSP of h using the multipliers of flavour.
func PrepareHit(h *Hit, flavour string) (*HitSummary, error) {
	m, err := hit.MultipliersFor(flavour)
	if err != nil {
		return nil, err
	}
	return hit.Prepare(h, m)
}

// Region computes identity and similarity over the query interval
// start..end of an HSP read in frame. A negative frame counts (start, end],
// the coordinates a reverse-strand HSP projects onto.
func Region(identical, positive Positions, start, end, frame int) (*RegionStats, error) {
	return stats.Region(identical, positive, start, end, alignment.StrandOf(frame))
}

// ProfileLine renders the classification of every coordinate of the
// interval as match-line symbols, using the same strand convention as Region.
func ProfileLine(identical, positive Positions, start, end, frame int) string {
	return stats.ProfileLine(identical, positive, start, end, alignment.StrandOf(frame))
}

// ValidateRows checks that query and hit rows hold only residues, gaps and
// masked markers.
func ValidateRows(query, hitRow string) error {
	return sequence.ValidateRows(query, hitRow)
}

// IsAnalysisError reports whether err means a record could not be decoded,
// as opposed to a malformed request or an I/O failure.
func IsAnalysisError(err error) bool {
	var (
		analysis alignment.AnalysisError
		excess   *hit.ExcessPositionsError
	)
	return errors.As(err, &analysis) || errors.As(err, &excess) || errors.Is(err, hit.ErrNoHSPs)
}

// ReadHits reads JSON Lines hit records.
func ReadHits(r io.Reader) ([]*Hit, error) {
	return records.Read(r, records.Options{})
}

// RunBatch prepares hits concurrently. A nil logger uses slog.Default.
func RunBatch(ctx context.Context, hits []*Hit, opts BatchOptions, logger *slog.Logger) (*BatchReport, error) {
	return batch.NewRunner(opts, logger).Run(ctx, hits)
}

// Version returns the hspflow version.
func Version() string {
	return "1.0.0"
}

// Info returns information about hspflow.
func Info() string {
	return fmt.Sprintf(`hspflow v%s - Alignment Match Analyzer

Decodes local alignment records into match lines and query position sets.

Features:
  - Match line decoding of query/hit/similarity triples
  - Identical and positive query positions for both strands
  - Codon expansion for translated searches
  - HSP and hit summaries with merged aligned lengths
  - Global identity and positives per hit
  - Region identity and similarity over query intervals
  - Concurrent batch preparation of JSON Lines records
`, Version())
}
