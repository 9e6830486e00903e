// Package sequence describes the residue alphabet of aligned rows and the
// query records that alignments refer to.
//
// Aligned rows carry residues (letters), the gap marker and the masked
// marker. Query lengths are read from FASTA so that alignment records which
// omit them can still be checked against the full query.
package sequence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row markers.
const (
	Gap      byte = '-'
	Masked   byte = '*'
	Positive byte = '+'
)

// Record is a FASTA entry reduced to what alignment bookkeeping needs.
type Record struct {
	ID          string
	Description string
	Length      int
}

// ParseFASTA reads FASTA records from r, keeping identifiers and ungapped
// lengths only. Whitespace inside sequence lines is ignored.
func ParseFASTA(r io.Reader) ([]Record, error) {
	records := make([]Record, 0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var current *Record

	flush := func() {
		if current != nil {
			records = append(records, *current)
			current = nil
		}
	}

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		if line[0] == '>' {
			flush()
			header := strings.TrimSpace(line[1:])
			if header == "" {
				return nil, fmt.Errorf("line %d: empty FASTA header", lineNum)
			}
			current = &Record{ID: header}
			if i := strings.IndexAny(header, " \t"); i >= 0 {
				current.ID = header[:i]
				current.Description = strings.TrimSpace(header[i+1:])
			}
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("line %d: sequence data before first header", lineNum)
		}
		current.Length += len(strings.Join(strings.Fields(line), ""))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading FASTA: %w", err)
	}
	flush()

	return records, nil
}

// ReadFASTA reads FASTA records from a file.
func ReadFASTA(filename string) ([]Record, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return ParseFASTA(file)
}

// Lengths indexes records by identifier. Later duplicates win.
func Lengths(records []Record) map[string]int {
	lengths := make(map[string]int, len(records))
	for _, rec := range records {
		lengths[rec.ID] = rec.Length
	}
	return lengths
}

// ReadLengths reads a FASTA file and indexes its sequence lengths by
// identifier.
func ReadLengths(filename string) (map[string]int, error) {
	records, err := ReadFASTA(filename)
	if err != nil {
		return nil, err
	}
	return Lengths(records), nil
}
