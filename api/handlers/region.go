package handlers

import (
	"net/http"

	"github.com/aria-lang/hspflow/pkg/hspflow"
)

// RegionRequest represents position sets and the query interval to inspect.
// Frame is the query frame of the HSP the sets came from; a negative frame
// reads the interval as (start, end].
type RegionRequest struct {
	Identical hspflow.Positions `json:"identical_positions"`
	Positive  hspflow.Positions `json:"positive_positions"`
	Start     int               `json:"start"`
	End       int               `json:"end"`
	Frame     int               `json:"frame"`
}

// RegionResponse represents region statistics and a per-coordinate profile.
type RegionResponse struct {
	*hspflow.RegionStats
	Profile string `json:"profile"`
}

// RegionHandler handles region identity requests.
func RegionHandler(w http.ResponseWriter, r *http.Request) {
	var req RegionRequest
	if !decode(w, r, &req) {
		return
	}

	rs, err := hspflow.Region(req.Identical, req.Positive, req.Start, req.End, req.Frame)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, RegionResponse{
		RegionStats: rs,
		Profile:     hspflow.ProfileLine(req.Identical, req.Positive, req.Start, req.End, req.Frame),
	})
}
