// Package handlers provides HTTP handlers for the hspflow API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aria-lang/hspflow/pkg/hspflow"
)

// maxBodyBytes bounds request bodies. Alignment rows of long HSPs are large.
const maxBodyBytes = 32 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeFailure answers 422 when the record itself cannot be decoded and 400
// for anything wrong with the request.
func writeFailure(w http.ResponseWriter, err error) {
	if hspflow.IsAnalysisError(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
