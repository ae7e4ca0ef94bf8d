package scoring

import "math"

// Category identifies one of the three evaluation axes.
type Category string

const (
	CategoryTechnology Category = "technology"
	CategoryRights     Category = "rights"
	CategoryMarket     Category = "market"
)

// Breakdown is the quantitative side of one category: each component's
// curve-mapped 0-100 score and their fixed-weight combination.
type Breakdown struct {
	Components        map[string]float64 `json:"components"`
	QuantitativeTotal float64            `json:"quantitative_total"`
}

// TechnologyScore maps drawing count, title length and claim series count
// through their curves and combines them 0.4/0.3/0.3.
func TechnologyScore(m MetricSet) Breakdown {
	drawing := drawingCurve.Score(float64(m.DrawingCount))
	title := titleLengthScore(m.TitleLength)
	series := claimSeriesCurve.Score(float64(m.ClaimSeriesCount))

	return Breakdown{
		Components: map[string]float64{
			"drawing_score": drawing,
			"title_score":   title,
			"series_score":  series,
		},
		QuantitativeTotal: round1(drawing*0.4 + title*0.3 + series*0.3),
	}
}

// RightsScore combines IPC coverage, claim count, independent claim length
// and claim hierarchy depth 0.25/0.30/0.25/0.20.
func RightsScore(m MetricSet) Breakdown {
	ipc := ipcCurve.Score(float64(m.IPCCount))
	claimCount := claimCountCurve.Score(float64(m.TotalClaims))
	claimLength := claimLengthCurve.Score(m.IndependentAvgLen)

	// The classifier guarantees at least one independent claim for any
	// non-empty claim list, so the zero branch covers only a fully empty
	// document.
	hierarchy := 0.0
	if m.IndependentCount > 0 {
		ratio := float64(m.DependentCount) / float64(m.IndependentCount)
		hierarchy = hierarchyCurve.Score(ratio)
	}

	return Breakdown{
		Components: map[string]float64{
			"ipc_score":           ipc,
			"claims_count_score":  claimCount,
			"claims_length_score": claimLength,
			"hierarchy_score":     hierarchy,
		},
		QuantitativeTotal: round1(ipc*0.25 + claimCount*0.30 + claimLength*0.25 + hierarchy*0.20),
	}
}

// MarketScore combines inventor count with the externally assigned applicant
// and technology-field tiers 0.30/0.40/0.30.
func MarketScore(m MetricSet, applicant ApplicantTier, field TechFieldTier) Breakdown {
	inventor := inventorCurve.Score(float64(m.InventorCount))
	applicantScore := applicantTierScore(applicant)
	fieldScore := techFieldTierScore(field)

	return Breakdown{
		Components: map[string]float64{
			"inventor_score":   inventor,
			"applicant_score":  applicantScore,
			"tech_field_score": fieldScore,
		},
		QuantitativeTotal: round1(inventor*0.30 + applicantScore*0.40 + fieldScore*0.30),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
