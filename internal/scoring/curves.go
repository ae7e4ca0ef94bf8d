package scoring

import "fmt"

// stepCurve is a monotonic non-decreasing step function from a raw metric to
// a 0-100 score. Steps are ordered by descending Min; the first step whose
// Min the value reaches wins, otherwise Floor applies. All category scorers
// share this one shape so the monotonicity guarantee holds uniformly instead
// of per hand-written branch ladder.
type stepCurve struct {
	Steps []scoreStep
	Floor float64
}

type scoreStep struct {
	Min   float64
	Score float64
}

func (c stepCurve) Score(v float64) float64 {
	for _, s := range c.Steps {
		if v >= s.Min {
			return s.Score
		}
	}
	return c.Floor
}

var (
	drawingCurve = stepCurve{Steps: []scoreStep{
		{10, 100}, {5, 75}, {3, 60}, {1, 40},
	}}
	claimSeriesCurve = stepCurve{Steps: []scoreStep{
		{3, 100}, {2, 70}, {1, 40},
	}}
	ipcCurve = stepCurve{Steps: []scoreStep{
		{10, 100}, {5, 75}, {2, 60}, {1, 40},
	}}
	// A document with any claims at all never scores zero on claim count.
	claimCountCurve = stepCurve{Steps: []scoreStep{
		{30, 100}, {20, 80}, {10, 60}, {5, 40},
	}, Floor: 20}
	claimLengthCurve = stepCurve{Steps: []scoreStep{
		{200, 100}, {100, 70}, {50, 40},
	}, Floor: 20}
	hierarchyCurve = stepCurve{Steps: []scoreStep{
		{5, 100}, {3, 75}, {1, 50},
	}, Floor: 30}
	inventorCurve = stepCurve{Steps: []scoreStep{
		{8, 100}, {5, 80}, {2, 60}, {1, 40},
	}}
)

// titleLengthScore is the one curve that is not monotonic: an ideal title is
// neither too short nor too long. The narrow ideal band is checked before
// the wider acceptable band.
func titleLengthScore(length int) float64 {
	switch {
	case length >= 20 && length <= 80:
		return 100
	case length >= 10 && length <= 100:
		return 70
	case length > 0:
		return 40
	default:
		return 0
	}
}

// ApplicantTier is the applicant's market standing, assigned outside the
// scoring core (company list plus web search). The core only consumes the
// label.
type ApplicantTier string

const (
	ApplicantMajor   ApplicantTier = "Major"
	ApplicantMedium  ApplicantTier = "Medium"
	ApplicantSmall   ApplicantTier = "Small"
	ApplicantUnknown ApplicantTier = "Unknown"
)

// TechFieldTier is the growth outlook of the document's primary technology
// field, likewise assigned outside the core.
type TechFieldTier string

const (
	TechFieldHigh    TechFieldTier = "High"
	TechFieldMedium  TechFieldTier = "Medium"
	TechFieldLow     TechFieldTier = "Low"
	TechFieldUnknown TechFieldTier = "Unknown"
)

var applicantTierScores = map[ApplicantTier]float64{
	ApplicantMajor:   100,
	ApplicantMedium:  70,
	ApplicantSmall:   40,
	ApplicantUnknown: 20,
}

var techFieldTierScores = map[TechFieldTier]float64{
	TechFieldHigh:    100,
	TechFieldMedium:  70,
	TechFieldLow:     40,
	TechFieldUnknown: 20,
}

// applicantTierScore panics on a label outside the enumeration: an unknown
// tier is a caller contract violation, not a data-quality condition, and
// must not silently score as anything.
func applicantTierScore(tier ApplicantTier) float64 {
	s, ok := applicantTierScores[tier]
	if !ok {
		panic(fmt.Sprintf("scoring: invalid applicant tier %q", tier))
	}
	return s
}

func techFieldTierScore(tier TechFieldTier) float64 {
	s, ok := techFieldTierScores[tier]
	if !ok {
		panic(fmt.Sprintf("scoring: invalid tech field tier %q", tier))
	}
	return s
}
