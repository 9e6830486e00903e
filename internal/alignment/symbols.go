// Package alignment decodes pairwise alignment records (HSPs).
//
// This package classifies every alignment column of a query/hit/similarity
// triple, projects identical and positive residues back onto ungapped query
// coordinates and renders a compacted match line.
package alignment

import "github.com/aria-lang/hspflow/internal/sequence"

// Alignment markers found in the query, hit and similarity rows.
const (
	GapMarker      = sequence.Gap
	MaskedMarker   = sequence.Masked
	PositiveMarker = sequence.Positive
)

// Symbols written to the compacted match line.
const (
	SymbolIdentical byte = '|'
	SymbolPositive  byte = '+'
	SymbolQueryGap  byte = '-'
	SymbolHitGap    byte = '_'
	SymbolMasked    byte = '*'
	SymbolMismatch  byte = '/'
	SymbolDoubleGap byte = '\\'
)

// Classification is the per-residue outcome for one ungapped query position.
type Classification uint8

const (
	// Mismatch represents an unmatched residue (substitution or hit gap)
	Mismatch Classification = iota
	// Positive represents a favorable non-identical substitution
	Positive
	// Identical represents an exact residue match
	Identical
)

func (c Classification) String() string {
	switch c {
	case Mismatch:
		return "mismatch"
	case Positive:
		return "positive"
	case Identical:
		return "identical"
	default:
		return "unknown"
	}
}

// Symbol returns the match-line symbol of c.
func (c Classification) Symbol() byte {
	switch c {
	case Identical:
		return SymbolIdentical
	case Positive:
		return SymbolPositive
	default:
		return SymbolMismatch
	}
}

// Strand is the reading direction of the query inside an alignment.
type Strand int

const (
	// Forward shifts projected offsets by the query start
	Forward Strand = iota
	// Reverse mirrors projected offsets around the query end
	Reverse
)

// StrandOf maps a search-tool frame onto a strand. Untranslated searches
// report frame 0, which reads forward.
func StrandOf(frame int) Strand {
	if frame < 0 {
		return Reverse
	}
	return Forward
}

// Span returns the half-open bounds [lo, hi) holding the coordinates that
// projection emits for the query interval start..end. Forward positions fill
// [start, end); reverse positions are mirrored from end and fill
// (start, end].
func (s Strand) Span(start, end int) (lo, hi int) {
	if s == Reverse {
		return start + 1, end + 1
	}
	return start, end
}

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	default:
		return "?"
	}
}
