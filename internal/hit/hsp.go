// Package hit summarizes alignment records at the HSP and hit level.
//
// An HSP summary carries the decoded match line, identity and positive
// percentages over the alignment span and the projected position sets. A hit
// summary merges the HSPs of one query/target pair into aligned lengths and
// global identity and positive percentages over the query.
package hit

import (
	"fmt"
	"strings"

	"github.com/aria-lang/hspflow/internal/alignment"
)

// HSP is one alignment record between a query and a target.
type HSP struct {
	alignment.AlignedTriple
	TargetStart int     `json:"target_start"`
	TargetEnd   int     `json:"target_end"`
	TargetFrame int     `json:"target_frame"`
	BitScore    float64 `json:"bits"`
	EValue      float64 `json:"evalue"`
}

// HSPSummary is the decoded, ready-to-store form of an HSP.
type HSPSummary struct {
	Counter     int     `json:"counter"`
	QueryStart  int     `json:"query_hsp_start"`
	QueryEnd    int     `json:"query_hsp_end"`
	QueryFrame  int     `json:"query_frame"`
	TargetStart int     `json:"target_hsp_start"`
	TargetEnd   int     `json:"target_hsp_end"`
	TargetFrame int     `json:"target_frame"`
	Identity    float64 `json:"hsp_identity"`
	Positives   float64 `json:"hsp_positives"`
	Match       string  `json:"match"`
	Length      int     `json:"hsp_length"`
	BitScore    float64 `json:"hsp_bits"`
	EValue      float64 `json:"hsp_evalue"`

	Identical alignment.Positions `json:"-"`
	Positive  alignment.Positions `json:"-"`
}

// PrepareHSP decodes h. counter is the zero-based rank of the HSP inside its
// hit; summaries number HSPs from 1.
func PrepareHSP(h *HSP, counter int) (*HSPSummary, error) {
	res, err := alignment.Analyze(&h.AlignedTriple)
	if err != nil {
		return nil, err
	}

	span := res.Length()
	return &HSPSummary{
		Counter:     counter + 1,
		QueryStart:  h.QueryStart,
		QueryEnd:    h.QueryEnd,
		QueryFrame:  h.QueryFrame,
		TargetStart: h.TargetStart,
		TargetEnd:   h.TargetEnd,
		TargetFrame: h.TargetFrame,
		Identity:    percent(res.IdenticalCount(), span),
		Positives:   percent(res.PositiveCount(), span),
		Match:       res.MatchLine,
		Length:      span,
		BitScore:    h.BitScore,
		EValue:      h.EValue,
		Identical:   res.Identical,
		Positive:    res.Positive,
	}, nil
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Multipliers expand alignment columns into original coordinates on the
// query and target side.
type Multipliers struct {
	Query  int `json:"query"`
	Target int `json:"target"`
}

// Supported search flavours.
const (
	FlavourBlastn  = "blastn"
	FlavourBlastp  = "blastp"
	FlavourBlastx  = "blastx"
	FlavourTblastn = "tblastn"
	FlavourTblastx = "tblastx"
)

// MultipliersFor returns the coordinate multipliers of a search flavour:
// translated sides are reported in nucleotides, three per aligned residue.
func MultipliersFor(flavour string) (Multipliers, error) {
	m := Multipliers{Query: 1, Target: 1}
	switch strings.ToLower(flavour) {
	case FlavourBlastn, FlavourBlastp, "":
	case FlavourBlastx:
		m.Query = 3
	case FlavourTblastn:
		m.Target = 3
	case FlavourTblastx:
		m.Query, m.Target = 3, 3
	default:
		return Multipliers{}, fmt.Errorf("%w: %q", ErrUnknownFlavour, flavour)
	}
	return m, nil
}
