// Package records reads hit records from JSON Lines input.
//
// Each non-blank line holds one hit with its HSPs. Lines starting with '#'
// are comments. Query lengths missing from a record may be filled from a
// FASTA index.
package records

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aria-lang/hspflow/internal/hit"
	"github.com/aria-lang/hspflow/internal/sequence"
)

// maxLine bounds a single JSONL record. Long alignment rows need room.
const maxLine = 64 << 20

// Options controls how records are read.
type Options struct {
	// QueryLengths fills Hit.QueryLength when a record omits it.
	QueryLengths map[string]int
	// Strict validates every aligned row against the residue alphabet.
	Strict bool
}

// LineError locates a decoding or validation failure in the input.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Read decodes every hit record from r.
func Read(r io.Reader, opts Options) ([]*hit.Hit, error) {
	hits := make([]*hit.Hit, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		h, err := Decode([]byte(text), opts)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		hits = append(hits, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return hits, nil
}

// ReadFile decodes every hit record from a file.
func ReadFile(filename string, opts Options) ([]*hit.Hit, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Read(file, opts)
}

// Decode parses a single record and applies opts to it.
func Decode(data []byte, opts Options) (*hit.Hit, error) {
	var h hit.Hit
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decoding hit: %w", err)
	}
	if h.QueryID == "" {
		return nil, fmt.Errorf("record has no query_id")
	}
	if h.QueryLength == 0 && opts.QueryLengths != nil {
		if n, ok := opts.QueryLengths[h.QueryID]; ok {
			h.QueryLength = n
		}
	}
	if opts.Strict {
		for i := range h.HSPs {
			if err := sequence.ValidateRows(h.HSPs[i].Query, h.HSPs[i].Hit); err != nil {
				return nil, fmt.Errorf("%s vs %s hsp %d: %w", h.QueryID, h.TargetID, i+1, err)
			}
		}
	}
	return &h, nil
}
