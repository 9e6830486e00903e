package alignment

import "fmt"

// AnalysisError is the base error type for alignment analysis.
type AnalysisError interface {
	error
	IsAnalysisError()
}

// EmptyAlignmentError is returned when a triple has no usable columns or
// covers no query residues. The raw rows are kept for diagnostics.
type EmptyAlignmentError struct {
	Query      string
	Hit        string
	Similarity string
	Coverage   int
}

func (e *EmptyAlignmentError) Error() string {
	if len(e.Query) == 0 || len(e.Hit) == 0 || len(e.Similarity) == 0 {
		return fmt.Sprintf("empty alignment (query %q, hit %q, similarity %q)",
			e.Query, e.Hit, e.Similarity)
	}
	return fmt.Sprintf("alignment covers no query residues (coverage %d; query %q, hit %q, similarity %q)",
		e.Coverage, e.Query, e.Hit, e.Similarity)
}

func (e *EmptyAlignmentError) IsAnalysisError() {}

// ShapeMismatchError is returned when the coordinate metadata disagrees with
// the aligned rows.
type ShapeMismatchError struct {
	Reason   string
	Expected int
	Actual   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %s (expected at most %d, got %d)",
		e.Reason, e.Expected, e.Actual)
}

func (e *ShapeMismatchError) IsAnalysisError() {}
