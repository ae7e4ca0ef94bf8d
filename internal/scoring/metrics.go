package scoring

import (
	"unicode/utf8"

	"github.com/joelkehle/patentgrade/internal/patentdoc"
)

// MetricSet is the fixed set of quantitative document features the category
// scorers consume. It is derived once per Record and never recomputed.
//
// TotalClaims is the extractor's authoritative claim count; IndependentCount
// and DependentCount are structural counts from claim classification. The
// two conventions can legitimately disagree when the extractor counted
// claims it could not fully parse, so both are carried.
type MetricSet struct {
	IPCCount          int     `json:"ipc_count"`
	IndependentCount  int     `json:"independent_claims"`
	DependentCount    int     `json:"dependent_claims"`
	TotalClaims       int     `json:"total_claims"`
	IndependentAvgLen float64 `json:"independent_avg_length"`
	DependentAvgLen   float64 `json:"dependent_avg_length"`
	DrawingCount      int     `json:"drawing_count"`
	TitleLength       int     `json:"title_length"`
	ClaimSeriesCount  int     `json:"claim_series"`
	InventorCount     int     `json:"inventor_count"`

	// InventorFallbackApplied is set when the extractor supplied no
	// inventors and the count was defaulted to 1. A patent always names at
	// least one inventor, so an empty list means extraction failed, not a
	// zero-inventor document; the flag keeps that substitution traceable.
	InventorFallbackApplied bool `json:"inventor_fallback_applied,omitempty"`
}

// ComputeMetrics derives the full metric set from one document record.
func ComputeMetrics(rec patentdoc.Record) MetricSet {
	independent, dependent := ClassifyClaims(rec.Claims)

	m := MetricSet{
		IPCCount:          len(rec.IPCCodes),
		IndependentCount:  len(independent),
		DependentCount:    len(dependent),
		TotalClaims:       rec.ClaimCount,
		IndependentAvgLen: averageRuneLength(independent),
		DependentAvgLen:   averageRuneLength(dependent),
		DrawingCount:      rec.DrawingCount,
		TitleLength:       utf8.RuneCountInString(rec.Title),
		ClaimSeriesCount:  len(independent),
		InventorCount:     len(rec.Inventors),
	}
	if m.InventorCount == 0 {
		m.InventorCount = 1
		m.InventorFallbackApplied = true
	}
	return m
}

// averageRuneLength is the arithmetic mean of the rune counts of the given
// claims, 0 for an empty list. Lengths are rune counts, not byte counts:
// the length thresholds in the scoring curves were calibrated on Korean
// character counts.
func averageRuneLength(claims []string) float64 {
	if len(claims) == 0 {
		return 0
	}
	total := 0
	for _, c := range claims {
		total += utf8.RuneCountInString(c)
	}
	return float64(total) / float64(len(claims))
}
