package qualitative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joelkehle/patentgrade/internal/patentdoc"
	"github.com/joelkehle/patentgrade/internal/scoring"
)

// FallbackScore is the neutral qualitative score substituted when the
// assessment stage cannot complete.
const FallbackScore = 60

// Assessment is the qualitative side of one category evaluation. Score is
// always set; the narrative fields depend on the category (competitive
// analysis for technology, legal risk for rights, commercialization for
// market) and stay empty otherwise.
type Assessment struct {
	Score      float64  `json:"qualitative_score"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`

	CompetitiveAnalysis string `json:"competitive_analysis,omitempty"`
	RnDRecommendation   string `json:"rnd_recommendation,omitempty"`

	LegalRisk       string `json:"legal_risk,omitempty"`
	DefenseStrategy string `json:"defense_strategy,omitempty"`
	PortfolioFit    string `json:"portfolio_fit,omitempty"`

	ApplicabilitySummary     string `json:"applicability_summary,omitempty"`
	MarketFitSummary         string `json:"market_fit_summary,omitempty"`
	CommercializationSummary string `json:"commercialization_summary,omitempty"`

	// FallbackUsed marks an assessment that carries the fixed fallback
	// score instead of a model judgment.
	FallbackUsed bool `json:"fallback_used,omitempty"`
}

// Fallback returns the neutral assessment used when the model is
// unavailable or its output never validated.
func Fallback(category scoring.Category) Assessment {
	a := Assessment{
		Score:        FallbackScore,
		Strengths:    []string{"평가 실패 - 기본값"},
		Weaknesses:   []string{"평가 실패 - 기본값"},
		FallbackUsed: true,
	}
	switch category {
	case scoring.CategoryTechnology:
		a.CompetitiveAnalysis = "평가 실패"
		a.RnDRecommendation = "평가 실패"
	case scoring.CategoryRights:
		a.LegalRisk = "평가 실패"
		a.DefenseStrategy = "평가 실패"
		a.PortfolioFit = "평가 실패"
	case scoring.CategoryMarket:
		a.ApplicabilitySummary = "평가 실패 - 기본값"
		a.MarketFitSummary = "평가 실패 - 기본값"
		a.CommercializationSummary = "평가 실패 - 기본값"
	}
	return a
}

var categoryFields = map[scoring.Category]string{
	scoring.CategoryTechnology: `"competitive_analysis": "<how this filing compares technically to the field>",
  "rnd_recommendation": "<concrete R&D follow-up recommendation>"`,
	scoring.CategoryRights: `"legal_risk": "<invalidation and design-around exposure>",
  "defense_strategy": "<how the claim structure defends the invention>",
  "portfolio_fit": "<role of this filing in a patent portfolio>"`,
	scoring.CategoryMarket: `"applicability_summary": "<industrial applicability of the invention>",
  "market_fit_summary": "<market demand and timing assessment>",
  "commercialization_summary": "<licensing and commercialization outlook>"`,
}

var categoryFocus = map[scoring.Category]string{
	scoring.CategoryTechnology: "technical maturity, inventiveness and implementation depth",
	scoring.CategoryRights:     "claim breadth, enforceability and resistance to design-around",
	scoring.CategoryMarket:     "industrial applicability, market demand and commercialization potential",
}

// Assessor runs the per-category qualitative stages against one caller.
type Assessor struct {
	exec *StageExecutor
}

func NewAssessor(caller LLMCaller) *Assessor {
	return &Assessor{exec: NewStageExecutor(caller)}
}

// Assess produces the qualitative assessment for one category. The caller
// decides what to do on error; the intended recovery is Fallback(category).
func (a *Assessor) Assess(ctx context.Context, category scoring.Category, rec patentdoc.Record, quant scoring.Breakdown, contextText string) (Assessment, StageAttemptMetrics, error) {
	prompt, err := buildPrompt(category, rec, quant, contextText)
	if err != nil {
		return Assessment{}, StageAttemptMetrics{}, err
	}

	var out Assessment
	metrics, err := a.exec.Run(ctx, string(category)+"-qualitative", prompt, &out, func() error {
		if out.Score < 0 || out.Score > 100 {
			return fmt.Errorf("qualitative_score %v out of range 0-100", out.Score)
		}
		return nil
	})
	if err != nil {
		return Assessment{}, metrics, err
	}
	out.FallbackUsed = false
	return out, metrics, nil
}

const maxContextRunes = 5000

func buildPrompt(category scoring.Category, rec patentdoc.Record, quant scoring.Breakdown, contextText string) (string, error) {
	fields, ok := categoryFields[category]
	if !ok {
		return "", fmt.Errorf("unknown category %q", category)
	}

	quantJSON, err := json.MarshalIndent(quant, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal quantitative breakdown: %w", err)
	}

	excerpt := []rune(contextText)
	if len(excerpt) > maxContextRunes {
		excerpt = excerpt[:maxContextRunes]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Assess the %s of the following Korean patent filing, focusing on %s.\n\n", category, categoryFocus[category])
	fmt.Fprintf(&sb, "Patent number: %s\nTitle: %s\nApplicant: %s\n\n", rec.Number, rec.Title, rec.Applicant)
	fmt.Fprintf(&sb, "Quantitative breakdown (already computed, do not recompute):\n%s\n\n", quantJSON)
	fmt.Fprintf(&sb, "--- FILING EXCERPTS ---\n%s\n--- END EXCERPTS ---\n\n", string(excerpt))
	fmt.Fprintf(&sb, `The JSON must have these exact fields:
{
  "qualitative_score": <float between 0 and 100>,
  "strengths": ["<strength 1>", ...],
  "weaknesses": ["<weakness 1>", ...],
  %s
}`, fields)
	return sb.String(), nil
}
