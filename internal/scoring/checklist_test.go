package scoring

import "testing"

func TestChecklistStrongDocument(t *testing.T) {
	m := MetricSet{
		IPCCount:          6,
		IndependentCount:  3,
		DependentCount:    12,
		TotalClaims:       15,
		IndependentAvgLen: 180,
		DependentAvgLen:   90,
		DrawingCount:      8,
		TitleLength:       25,
		ClaimSeriesCount:  3,
		InventorCount:     4,
	}
	checks := Checklist(m, ApplicantMajor, TechFieldHigh)
	for name, pass := range checks {
		if !pass {
			t.Fatalf("expected all checks to pass for strong document, %s failed", name)
		}
	}
}

func TestChecklistEmptyDocument(t *testing.T) {
	checks := Checklist(MetricSet{InventorCount: 1, InventorFallbackApplied: true}, ApplicantUnknown, TechFieldUnknown)
	wantFalse := []string{
		"has_sufficient_drawings", "has_clear_title", "has_claim_series",
		"has_multiple_ipc", "has_sufficient_claims", "has_independent_claim",
		"has_detailed_independent_claim", "claims_length_balanced",
		"has_multiple_inventors", "is_major_company", "is_growing_field",
	}
	for _, name := range wantFalse {
		if checks[name] {
			t.Fatalf("expected %s to fail for empty document", name)
		}
	}
	// vacuously true with zero counts
	if !checks["has_dependent_hierarchy"] {
		t.Fatal("has_dependent_hierarchy should hold at 0 >= 0")
	}
	if !checks["title_not_too_long"] {
		t.Fatal("title_not_too_long should hold for empty title")
	}
}

func TestClaimsLengthBalancedEdges(t *testing.T) {
	cases := []struct {
		indep, dep float64
		want       bool
	}{
		{0, 80, false},   // no independent length to compare against
		{200, 49, false}, // dependents too thin
		{200, 50, true},  // lower bound inclusive
		{200, 200, true}, // upper bound inclusive
		{200, 201, false},
	}
	for _, c := range cases {
		m := MetricSet{IndependentAvgLen: c.indep, DependentAvgLen: c.dep}
		if got := claimsLengthBalanced(m); got != c.want {
			t.Fatalf("balanced(%v, %v): got %v want %v", c.indep, c.dep, got, c.want)
		}
	}
}
