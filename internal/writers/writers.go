// Package writers serializes hit summaries.
//
// Formats are looked up by name so the CLI flag maps straight to a writer.
package writers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/aria-lang/hspflow/internal/hit"
)

// WriteFunc writes summaries to w.
type WriteFunc func(w io.Writer, summaries []*hit.Summary) error

var registry = map[string]WriteFunc{
	"jsonl": WriteJSONL,
	"tsv":   WriteTSV,
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, summaries []*hit.Summary) error {
	fn, ok := registry[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return fn(w, summaries)
}

// IsBrokenPipe reports whether err comes from a reader closing early, as
// `head` does.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// WriteJSONL writes one summary per line.
func WriteJSONL(w io.Writer, summaries []*hit.Summary) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	enc := json.NewEncoder(bw)
	for _, s := range summaries {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TSVHeader is the column layout written by WriteTSV.
var TSVHeader = []string{
	"query_id", "target_id",
	"query_start", "query_end", "query_aligned_length",
	"target_start", "target_end", "target_aligned_length",
	"global_identity", "global_positives",
	"evalue", "bits", "hsps",
}

// WriteTSV writes a header and one tab-separated row per summary.
func WriteTSV(w io.Writer, summaries []*hit.Summary) error {
	bw := bufio.NewWriterSize(w, 64<<10)
	if _, err := bw.WriteString(strings.Join(TSVHeader, "\t") + "\n"); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.QueryID, s.TargetID,
			strconv.Itoa(s.QueryStart), strconv.Itoa(s.QueryEnd), strconv.Itoa(s.QueryAlignedLength),
			strconv.Itoa(s.TargetStart), strconv.Itoa(s.TargetEnd), strconv.Itoa(s.TargetAlignedLength),
			strconv.FormatFloat(s.GlobalIdentity, 'f', 2, 64),
			strconv.FormatFloat(s.GlobalPositives, 'f', 2, 64),
			strconv.FormatFloat(s.EValue, 'g', 3, 64),
			strconv.FormatFloat(s.BitScore, 'f', 1, 64),
			strconv.Itoa(len(s.HSPs)),
		}
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
