package handlers

import (
	"net/http"

	"github.com/aria-lang/hspflow/pkg/hspflow"
)

// AnalyzeRequest represents a single aligned triple to decode.
type AnalyzeRequest struct {
	hspflow.AlignedTriple
	Strict bool `json:"strict,omitempty"`
}

// AnalyzeResponse represents the decoded triple.
type AnalyzeResponse struct {
	MatchLine      string            `json:"match_line"`
	Identical      hspflow.Positions `json:"identical_positions"`
	Positive       hspflow.Positions `json:"positive_positions"`
	Length         int               `json:"length"`
	IdenticalCount int               `json:"identical"`
	PositiveCount  int               `json:"positive"`
	MismatchCount  int               `json:"mismatches"`
	QueryGaps      int               `json:"query_gaps"`
	HitGaps        int               `json:"hit_gaps"`
	GapOpenings    int               `json:"gap_openings"`
	Alignment      string            `json:"alignment"`
}

// AnalyzeHSPHandler handles match line decoding requests.
func AnalyzeHSPHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Strict {
		if err := hspflow.ValidateRows(req.Query, req.Hit); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	res, err := hspflow.Analyze(&req.AlignedTriple)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		MatchLine:      res.MatchLine,
		Identical:      res.Identical,
		Positive:       res.Positive,
		Length:         res.Length(),
		IdenticalCount: res.IdenticalCount(),
		PositiveCount:  res.PositiveCount(),
		MismatchCount:  res.MismatchCount(),
		QueryGaps:      res.QueryGaps(),
		HitGaps:        res.HitGaps(),
		GapOpenings:    res.GapOpenings(),
		Alignment:      res.Format(&req.AlignedTriple),
	})
}
