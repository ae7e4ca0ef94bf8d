package qualitative

import (
	"context"
	"strings"
	"testing"

	"github.com/joelkehle/patentgrade/internal/patentdoc"
	"github.com/joelkehle/patentgrade/internal/scoring"
)

func sampleRecord() patentdoc.Record {
	return patentdoc.Record{
		Number:    "10-2023-0123456",
		Title:     "신경망 가속 장치",
		Applicant: "삼성전자 주식회사",
	}
}

func sampleBreakdown() scoring.Breakdown {
	return scoring.Breakdown{
		Components:        map[string]float64{"drawing_score": 75},
		QuantitativeTotal: 90,
	}
}

func TestAssessParsesFencedResponse(t *testing.T) {
	caller := &scriptedCaller{responses: []string{
		"```json\n{\"qualitative_score\": 82, \"strengths\": [\"구현 상세\"], \"weaknesses\": [\"좁은 권리범위\"], \"competitive_analysis\": \"경쟁 우위\", \"rnd_recommendation\": \"후속 출원\"}\n```",
	}}
	a := NewAssessor(caller)

	got, metrics, err := a.Assess(context.Background(), scoring.CategoryTechnology, sampleRecord(), sampleBreakdown(), "본문 발췌")
	if err != nil {
		t.Fatal(err)
	}
	if metrics.Attempts != 1 {
		t.Fatalf("metrics: %+v", metrics)
	}
	if got.Score != 82 || got.FallbackUsed {
		t.Fatalf("assessment: %+v", got)
	}
	if got.CompetitiveAnalysis != "경쟁 우위" {
		t.Fatalf("narrative: %+v", got)
	}
}

func TestAssessRejectsOutOfRangeScore(t *testing.T) {
	caller := &scriptedCaller{responses: []string{
		`{"qualitative_score": 150}`,
		`{"qualitative_score": 150}`,
		`{"qualitative_score": 150}`,
	}}
	a := NewAssessor(caller)

	_, _, err := a.Assess(context.Background(), scoring.CategoryRights, sampleRecord(), sampleBreakdown(), "")
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !strings.Contains(err.Error(), "rights-qualitative") {
		t.Fatalf("error should name the stage: %v", err)
	}
}

func TestAssessUnknownCategory(t *testing.T) {
	a := NewAssessor(&scriptedCaller{})
	if _, _, err := a.Assess(context.Background(), scoring.Category("quality"), sampleRecord(), sampleBreakdown(), ""); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestBuildPromptCarriesInputs(t *testing.T) {
	prompt, err := buildPrompt(scoring.CategoryMarket, sampleRecord(), sampleBreakdown(), "시장 관련 본문")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"10-2023-0123456",
		"신경망 가속 장치",
		"drawing_score",
		"시장 관련 본문",
		"commercialization_summary",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "legal_risk") {
		t.Fatal("market prompt should not ask for rights fields")
	}
}

func TestBuildPromptTruncatesContext(t *testing.T) {
	long := strings.Repeat("나", maxContextRunes+500)
	prompt, err := buildPrompt(scoring.CategoryTechnology, sampleRecord(), sampleBreakdown(), long)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(prompt, "나") != maxContextRunes {
		t.Fatalf("context not truncated to %d runes", maxContextRunes)
	}
}

func TestFallbackPerCategory(t *testing.T) {
	tech := Fallback(scoring.CategoryTechnology)
	if tech.Score != FallbackScore || !tech.FallbackUsed || tech.RnDRecommendation == "" {
		t.Fatalf("technology fallback: %+v", tech)
	}
	rights := Fallback(scoring.CategoryRights)
	if rights.LegalRisk == "" || rights.PortfolioFit == "" {
		t.Fatalf("rights fallback: %+v", rights)
	}
	market := Fallback(scoring.CategoryMarket)
	if market.CommercializationSummary == "" || market.LegalRisk != "" {
		t.Fatalf("market fallback: %+v", market)
	}
}
