package scoring

// WeightSet holds the top-level category weights used to combine the three
// blended category scores into one overall score.
type WeightSet struct {
	Technology float64
	Rights     float64
	Market     float64
}

// GradeThreshold maps a lower score bound to a grade label. Thresholds are
// checked in descending order; the first bound at or below the score wins.
type GradeThreshold struct {
	Label string
	Min   float64
}

// BlendRatio is the fixed quantitative/qualitative mix for one category.
type BlendRatio struct {
	Quantitative float64
	Qualitative  float64
}

// Config is the complete, immutable weight and threshold configuration for
// one evaluation. Callers that want different weights (A/B threshold trials,
// re-grading historical runs) construct their own Config; there is no
// package-level mutable state.
type Config struct {
	NormalWeights WeightSet
	ReEvalWeights WeightSet

	// ReEvalThreshold triggers the second aggregation pass: when the
	// overall score under NormalWeights falls below it, the score is
	// recomputed under ReEvalWeights and that result is authoritative.
	ReEvalThreshold float64

	GradeThresholds []GradeThreshold

	TechnologyBlend BlendRatio
	RightsBlend     BlendRatio
	MarketBlend     BlendRatio
}

// DefaultConfig returns the R&D evaluation weights: technology-led overall
// weighting, quantitative-led blends.
func DefaultConfig() Config {
	return Config{
		NormalWeights:   WeightSet{Technology: 0.45, Rights: 0.35, Market: 0.20},
		ReEvalWeights:   WeightSet{Technology: 0.50, Rights: 0.35, Market: 0.15},
		ReEvalThreshold: 55,
		GradeThresholds: []GradeThreshold{
			{"AAA", 90},
			{"AA", 85},
			{"A", 80},
			{"BBB", 75},
			{"BB", 70},
			{"B", 65},
			{"CCC", 60},
			{"CC", 57},
			{"C", 55},
			{GradeBelowMinimum, 0},
		},
		TechnologyBlend: BlendRatio{Quantitative: 0.6, Qualitative: 0.4},
		RightsBlend:     BlendRatio{Quantitative: 0.7, Qualitative: 0.3},
		MarketBlend:     BlendRatio{Quantitative: 0.7, Qualitative: 0.3},
	}
}

// GradeBelowMinimum is the label for scores under every graded threshold.
// The Korean label is kept from the source evaluation standard.
const GradeBelowMinimum = "미달"
