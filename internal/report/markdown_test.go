package report

import (
	"strings"
	"testing"
	"time"

	"github.com/joelkehle/patentgrade/internal/evaluate"
	"github.com/joelkehle/patentgrade/internal/markettier"
	"github.com/joelkehle/patentgrade/internal/patentdoc"
	"github.com/joelkehle/patentgrade/internal/qualitative"
	"github.com/joelkehle/patentgrade/internal/scoring"
)

func sampleResult() evaluate.Result {
	return evaluate.Result{
		RunID: "run-001",
		Document: patentdoc.Record{
			Number:    "10-2023-0123456",
			Title:     "신경망 가속 장치 및 그 동작 방법",
			Applicant: "삼성전자 주식회사",
			IPCCodes:  []string{"G06N3/08", "G06F17/16"},
		},
		Metrics: scoring.MetricSet{
			IPCCount:          2,
			IndependentCount:  3,
			DependentCount:    12,
			TotalClaims:       15,
			IndependentAvgLen: 210,
			DependentAvgLen:   60,
			DrawingCount:      8,
			TitleLength:       25,
			ClaimSeriesCount:  3,
			InventorCount:     4,
		},
		Technology: evaluate.CategoryEvaluation{
			Quantitative: scoring.Breakdown{
				Components: map[string]float64{
					"drawing_score": 75, "title_score": 100, "series_score": 100,
				},
				QuantitativeTotal: 90.0,
			},
			Qualitative: qualitative.Assessment{
				Score:               80,
				Strengths:           []string{"구현 방법이 구체적임"},
				Weaknesses:          []string{"실험 데이터 부족"},
				CompetitiveAnalysis: "유사 가속기 대비 차별성이 있음",
			},
			Blended: 86.0,
		},
		Rights: evaluate.CategoryEvaluation{
			Quantitative: scoring.Breakdown{
				Components: map[string]float64{
					"ipc_score": 60, "claims_count_score": 60,
					"claims_length_score": 100, "hierarchy_score": 100,
				},
				QuantitativeTotal: 78.0,
			},
			Qualitative: qualitative.Assessment{Score: 75},
			Blended:     77.1,
		},
		Market: evaluate.CategoryEvaluation{
			Quantitative: scoring.Breakdown{
				Components: map[string]float64{
					"inventor_score": 60, "applicant_score": 100, "tech_field_score": 100,
				},
				QuantitativeTotal: 88.0,
			},
			Qualitative: qualitative.Assessment{
				Score:                    70,
				ApplicabilitySummary:     "엣지 디바이스에 즉시 적용 가능",
				CommercializationSummary: "양산 공정 검증 필요",
			},
			Blended: 82.6,
		},
		ApplicantTier: markettier.ApplicantResult{
			Tier:    scoring.ApplicantMajor,
			Summary: "주요 대기업 (삼성전자 주식회사)",
		},
		TechFieldTier: markettier.TechFieldResult{
			Tier:    scoring.TechFieldHigh,
			Summary: "고성장 기술 분야 (IPC: G06N)",
		},
		Checklist: map[string]bool{
			"has_sufficient_drawings": true,
			"has_multiple_ipc":        true,
			"has_sufficient_claims":   true,
			"claims_length_balanced":  true,
			"has_multiple_inventors":  true,
			"is_major_company":        true,
			"is_growing_field":        true,
		},
		Composite: scoring.Composite{
			OverallScore: 82.6,
			NormalScore:  82.6,
			Grade:        "A",
			Percentile:   89.6,
		},
		Metadata: evaluate.Metadata{
			CompletedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		},
	}
}

func TestBuildMarkdownSections(t *testing.T) {
	md := BuildMarkdown(sampleResult())

	for _, want := range []string{
		"# 특허 기술 평가 보고서",
		"- 특허번호: 10-2023-0123456",
		"## Executive Summary",
		"- 종합 점수: **82.6점 (A)**",
		"## 기술성 평가",
		"### 최종 점수: 86.0/100",
		"| X7. 도면 수 | 8개 | 75.0점 |",
		"정량 점수 = X7(도면) × 0.4 + X8(명칭) × 0.3 + X9(계열) × 0.3",
		"= 75.0 × 0.4 + 100.0 × 0.3 + 100.0 × 0.3",
		"## 권리성 평가",
		"| X5. 독립항 평균 길이 | 210.0자 | 100.0점 |",
		"정량 = IPC(25%) + 청구항개수(30%) + 청구항길이(25%) + 계층구조(20%)",
		"## 활용성 평가",
		"- 출원인 시장 지위: **Major** → 100.0점",
		"고성장 기술 분야 (IPC: G06N)",
		"## 종합 평가 및 제언",
		"매우 우수한 특허",
		"## Reference - 참고 문서",
		"## Appendix",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q", want)
		}
	}
}

func TestBuildMarkdownChecklistMarks(t *testing.T) {
	md := BuildMarkdown(sampleResult())

	if !strings.Contains(md, "✓ has_sufficient_drawings") {
		t.Fatal("passing check not marked")
	}
	// has_clear_title is absent from the map and renders as failed.
	if !strings.Contains(md, "✗ has_clear_title") {
		t.Fatal("failing check not marked")
	}
}

func TestBuildMarkdownNarrativesSkipEmpty(t *testing.T) {
	md := BuildMarkdown(sampleResult())

	if !strings.Contains(md, "경쟁 기술 분석:") {
		t.Fatal("technology narrative missing")
	}
	if !strings.Contains(md, "실무 적용성:") {
		t.Fatal("market narrative missing")
	}
	// Rights assessment carries no narrative fields in the sample.
	if strings.Contains(md, "법적 리스크:") {
		t.Fatal("empty narrative rendered")
	}
}

func TestBuildMarkdownReevaluatedNote(t *testing.T) {
	res := sampleResult()
	res.Composite.Reevaluated = true
	res.Composite.NormalScore = 54.2
	res.Composite.OverallScore = 56.1
	res.Composite.Grade = "미달"

	md := BuildMarkdown(res)
	if !strings.Contains(md, "재평가 적용: 1차 점수 54.2점") {
		t.Fatal("re-evaluation note missing")
	}
}

func TestBuildMarkdownLowScoresGetRecommendations(t *testing.T) {
	res := sampleResult()
	res.Technology.Blended = 62.0
	res.Rights.Blended = 65.0
	res.Market.Blended = 68.0

	md := BuildMarkdown(res)
	for _, want := range []string{"기술성 강화", "권리성 강화", "활용성 강화"} {
		if !strings.Contains(md, want) {
			t.Fatalf("recommendation missing %q", want)
		}
	}
}

func TestBuildMarkdownFallbackNote(t *testing.T) {
	res := sampleResult()
	res.Rights.Qualitative = qualitative.Fallback(scoring.CategoryRights)

	md := BuildMarkdown(res)
	if !strings.Contains(md, "기본 점수 60.0점이 적용되었습니다") {
		t.Fatal("fallback note missing")
	}
}

func TestBuildHTMLDocument(t *testing.T) {
	res := sampleResult()
	html, err := BuildHTML(res, BuildMarkdown(res))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"<!doctype html>",
		"<title>신경망 가속 장치 및 그 동작 방법</title>",
		"<strong>등급:</strong> A (82.6점)",
		"기술성 평가</h2>",
		"<table>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}
