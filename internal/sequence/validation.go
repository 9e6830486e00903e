package sequence

import "fmt"

// SequenceError is the base error type for row validation.
type SequenceError interface {
	error
	IsSequenceError()
}

// EmptyRowError is returned when an aligned row is empty.
type EmptyRowError struct {
	Row string
}

func (e *EmptyRowError) Error() string {
	return fmt.Sprintf("%s row must have at least one column", e.Row)
}

func (e *EmptyRowError) IsSequenceError() {}

// InvalidResidueError is returned when a row holds a character that is
// neither a residue nor a marker.
type InvalidResidueError struct {
	Row      string
	Position int
	Found    byte
}

func (e *InvalidResidueError) Error() string {
	return fmt.Sprintf("%s row: invalid residue %q at column %d", e.Row, e.Found, e.Position)
}

func (e *InvalidResidueError) IsSequenceError() {}

// IsResidue reports whether c is a residue letter.
func IsResidue(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// IsAlignedChar reports whether c may appear in a query or hit row.
func IsAlignedChar(c byte) bool {
	return IsResidue(c) || c == Gap || c == Masked
}

// ValidateAligned checks that every character of an aligned row is a
// residue, a gap or a masked marker. name labels the row in errors.
func ValidateAligned(name, row string) error {
	if len(row) == 0 {
		return &EmptyRowError{Row: name}
	}
	for i := 0; i < len(row); i++ {
		if !IsAlignedChar(row[i]) {
			return &InvalidResidueError{Row: name, Position: i, Found: row[i]}
		}
	}
	return nil
}

// ValidateRows validates a query row and a hit row together.
func ValidateRows(query, hit string) error {
	if err := ValidateAligned("query", query); err != nil {
		return err
	}
	return ValidateAligned("hit", hit)
}
