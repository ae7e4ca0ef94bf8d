package scoring

import "math"

// Composite is the terminal scoring output for one document.
//
// When the normal-weight score falls below the re-evaluation threshold the
// aggregation is repeated under the re-evaluation weights and that pass is
// authoritative; NormalScore keeps the first-pass value as a diagnostic.
type Composite struct {
	OverallScore float64   `json:"overall_score"`
	NormalScore  float64   `json:"normal_score"`
	Grade        string    `json:"grade"`
	Reevaluated  bool      `json:"reevaluated"`
	Weights      WeightSet `json:"weights"`
	Percentile   float64   `json:"percentile"`
}

// Aggregate combines the three blended category scores into the overall
// score and grade.
func Aggregate(tech, rights, market float64, cfg Config) Composite {
	normal := weighted(tech, rights, market, cfg.NormalWeights)

	out := Composite{
		OverallScore: normal,
		NormalScore:  normal,
		Grade:        GradeOf(normal, cfg),
		Weights:      cfg.NormalWeights,
	}
	if normal < cfg.ReEvalThreshold {
		re := weighted(tech, rights, market, cfg.ReEvalWeights)
		out.OverallScore = re
		out.Grade = GradeOf(re, cfg)
		out.Reevaluated = true
		out.Weights = cfg.ReEvalWeights
	}
	out.Percentile = Percentile(out.OverallScore)
	return out
}

func weighted(tech, rights, market float64, w WeightSet) float64 {
	return tech*w.Technology + rights*w.Rights + market*w.Market
}

// GradeOf maps a score to its grade label: descending threshold scan, first
// lower bound at or below the score wins.
func GradeOf(score float64, cfg Config) string {
	for _, t := range cfg.GradeThresholds {
		if score >= t.Min {
			return t.Label
		}
	}
	return GradeBelowMinimum
}

// Percentile estimates where a score sits against the historical population,
// assuming scores distribute normally with mean 70 and standard deviation
// 10. Informational only; a real percentile needs the archive of past
// evaluations.
func Percentile(score float64) float64 {
	cdf := 0.5 * (1 + math.Erf((score-70)/(10*math.Sqrt2)))
	return round1(cdf * 100)
}
