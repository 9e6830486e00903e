package handlers

import (
	"fmt"
	"net/http"

	"github.com/aria-lang/hspflow/pkg/hspflow"
)

// PrepareHitRequest represents a hit to summarize.
type PrepareHitRequest struct {
	Flavour string      `json:"flavour"`
	Strict  bool        `json:"strict,omitempty"`
	Hit     hspflow.Hit `json:"hit"`
}

// PrepareHitResponse represents a hit summary and its best HSP.
type PrepareHitResponse struct {
	*hspflow.HitSummary
	BestHSP int `json:"best_hsp"`
}

// PrepareHitHandler handles hit summary requests.
func PrepareHitHandler(w http.ResponseWriter, r *http.Request) {
	var req PrepareHitRequest
	if !decode(w, r, &req) {
		return
	}

	if req.Strict {
		for i, h := range req.Hit.HSPs {
			if err := hspflow.ValidateRows(h.Query, h.Hit); err != nil {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("hsp %d: %v", i+1, err))
				return
			}
		}
	}

	sum, err := hspflow.PrepareHit(&req.Hit, req.Flavour)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PrepareHitResponse{
		HitSummary: sum,
		BestHSP:    sum.Best().Counter,
	})
}
