package scoring

// Checklist derives the pass/fail audit facts from an already-computed
// metric set and the assigned market tiers. The checklist is explanatory
// output for the report; none of these booleans feed back into any score.
func Checklist(m MetricSet, applicant ApplicantTier, field TechFieldTier) map[string]bool {
	return map[string]bool{
		// Technology
		"has_sufficient_drawings": m.DrawingCount >= 3,
		"has_clear_title":         m.TitleLength >= 10 && m.TitleLength <= 100,
		"has_claim_series":        m.ClaimSeriesCount >= 1,
		"title_not_too_long":      m.TitleLength <= 100,

		// Rights
		"has_multiple_ipc":                m.IPCCount >= 2,
		"has_sufficient_claims":           m.TotalClaims >= 10,
		"has_independent_claim":           m.IndependentCount >= 1,
		"has_detailed_independent_claim":  m.IndependentAvgLen >= 100,
		"has_dependent_hierarchy":         m.DependentCount >= m.IndependentCount,
		"claims_length_balanced":          claimsLengthBalanced(m),

		// Market
		"has_multiple_inventors": m.InventorCount >= 2,
		"is_major_company":       applicant == ApplicantMajor || applicant == ApplicantMedium,
		"is_growing_field":       field == TechFieldHigh || field == TechFieldMedium,
	}
}

// claimsLengthBalanced holds when dependent claims average between 50
// characters and the independent average, meaning dependents are substantive
// but still narrower than what they depend on. Vacuously false with no
// independent length to compare against.
func claimsLengthBalanced(m MetricSet) bool {
	if m.IndependentAvgLen <= 0 {
		return false
	}
	return m.DependentAvgLen >= 50 && m.DependentAvgLen <= m.IndependentAvgLen
}
