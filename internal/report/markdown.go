// Package report renders an evaluation result as a Korean assessment
// report: markdown first, then HTML and PDF from the markdown.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/patentgrade/internal/evaluate"
	"github.com/joelkehle/patentgrade/internal/qualitative"
	"github.com/joelkehle/patentgrade/internal/scoring"
)

// Checklist keys grouped per category, in presentation order. Ranging over
// the checklist map directly would shuffle the report between runs.
var (
	technologyChecks = []string{
		"has_sufficient_drawings", "has_clear_title", "has_claim_series", "title_not_too_long",
	}
	rightsChecks = []string{
		"has_multiple_ipc", "has_sufficient_claims", "has_independent_claim",
		"has_detailed_independent_claim", "has_dependent_hierarchy", "claims_length_balanced",
	}
	marketChecks = []string{
		"has_multiple_inventors", "is_major_company", "is_growing_field",
	}
)

// BuildMarkdown renders the full report for one evaluation.
func BuildMarkdown(res evaluate.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 특허 기술 평가 보고서\n\n")
	fmt.Fprintf(&b, "- 발명명칭: %s\n", res.Document.Title)
	fmt.Fprintf(&b, "- 특허번호: %s\n", res.Document.Number)
	fmt.Fprintf(&b, "- 출원인: %s\n", res.Document.Applicant)
	fmt.Fprintf(&b, "- 평가일: %s\n", res.Metadata.CompletedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Run ID: `%s`\n\n", res.RunID)

	appendExecutiveSummary(&b, res)
	appendCategory(&b, "기술성 평가", res.Technology, res, technologySection)
	appendCategory(&b, "권리성 평가", res.Rights, res, rightsSection)
	appendCategory(&b, "활용성 평가", res.Market, res, marketSection)
	appendRecommendations(&b, res)
	appendReferences(&b, res)
	appendAppendix(&b, res)

	return b.String()
}

func appendExecutiveSummary(b *strings.Builder, res evaluate.Result) {
	fmt.Fprintf(b, "## Executive Summary\n\n")
	fmt.Fprintf(b, "### 1. 종합 평가\n\n")
	fmt.Fprintf(b, "- 종합 점수: **%.1f점 (%s)**\n", res.Composite.OverallScore, res.Composite.Grade)
	fmt.Fprintf(b, "- 기술성: %.1f점\n", res.Technology.Blended)
	fmt.Fprintf(b, "- 권리성: %.1f점\n", res.Rights.Blended)
	fmt.Fprintf(b, "- 활용성: %.1f점\n", res.Market.Blended)
	fmt.Fprintf(b, "- 추정 백분위: 상위 %.1f%%\n", 100-res.Composite.Percentile)
	if res.Composite.Reevaluated {
		fmt.Fprintf(b, "- 재평가 적용: 1차 점수 %.1f점이 기준에 미달하여 재평가 가중치로 산정\n", res.Composite.NormalScore)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "### 2. 평가 방법\n\n")
	fmt.Fprintf(b, "본 평가는 정량평가 중심으로 수행되었습니다:\n\n")
	fmt.Fprintf(b, "- 기술성: 정량 60%% + 정성(LLM) 40%%\n")
	fmt.Fprintf(b, "- 권리성: 정량 70%% + 정성(LLM) 30%%\n")
	fmt.Fprintf(b, "- 활용성: 정량+웹서치 70%% + 정성(LLM) 30%%\n\n")

	fmt.Fprintf(b, "### 3. 특허 기본 정보\n\n")
	fmt.Fprintf(b, "- 청구항 수: %d개\n", res.Metrics.TotalClaims)
	ipc := res.Document.IPCCodes
	if len(ipc) > 5 {
		ipc = ipc[:5]
	}
	fmt.Fprintf(b, "- IPC 코드: %s\n", strings.Join(ipc, ", "))
	fmt.Fprintf(b, "- 발명자 수: %d명\n\n", res.Metrics.InventorCount)
}

type sectionFn func(b *strings.Builder, ce evaluate.CategoryEvaluation, res evaluate.Result)

func appendCategory(b *strings.Builder, title string, ce evaluate.CategoryEvaluation, res evaluate.Result, fn sectionFn) {
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "### 최종 점수: %.1f/100\n\n", ce.Blended)
	fn(b, ce, res)

	fmt.Fprintf(b, "#### 정성 평가 (LLM)\n\n")
	if ce.Qualitative.FallbackUsed {
		fmt.Fprintf(b, "정성 평가를 수행할 수 없어 기본 점수 %.1f점이 적용되었습니다.\n\n", ce.Qualitative.Score)
	}
	if len(ce.Qualitative.Strengths) > 0 {
		fmt.Fprintf(b, "강점:\n\n")
		for _, s := range ce.Qualitative.Strengths {
			fmt.Fprintf(b, "- %s\n", sanitizeLine(s))
		}
		b.WriteString("\n")
	}
	if len(ce.Qualitative.Weaknesses) > 0 {
		fmt.Fprintf(b, "약점:\n\n")
		for _, w := range ce.Qualitative.Weaknesses {
			fmt.Fprintf(b, "- %s\n", sanitizeLine(w))
		}
		b.WriteString("\n")
	}
	appendNarratives(b, ce.Qualitative)
}

func technologySection(b *strings.Builder, ce evaluate.CategoryEvaluation, res evaluate.Result) {
	m := res.Metrics
	c := ce.Quantitative.Components

	fmt.Fprintf(b, "- 정량 평가 (60%%): %.1f점\n", ce.Quantitative.QuantitativeTotal)
	fmt.Fprintf(b, "- 정성 평가 (40%%): %.1f점\n\n", ce.Qualitative.Score)

	fmt.Fprintf(b, "#### 정량 지표 (PDF 원문 기반)\n\n")
	fmt.Fprintf(b, "| 지표 | 값 | 점수 |\n|---|---|---|\n")
	fmt.Fprintf(b, "| X7. 도면 수 | %d개 | %.1f점 |\n", m.DrawingCount, c["drawing_score"])
	fmt.Fprintf(b, "| X8. 발명명칭 길이 | %d자 | %.1f점 |\n", m.TitleLength, c["title_score"])
	fmt.Fprintf(b, "| X9. 청구항 계열 수 | %d개 | %.1f점 |\n\n", m.ClaimSeriesCount, c["series_score"])

	fmt.Fprintf(b, "#### 구조방정식 모델\n\n")
	fmt.Fprintf(b, "```\n")
	fmt.Fprintf(b, "정량 점수 = X7(도면) × 0.4 + X8(명칭) × 0.3 + X9(계열) × 0.3\n")
	fmt.Fprintf(b, "          = %.1f × 0.4 + %.1f × 0.3 + %.1f × 0.3\n", c["drawing_score"], c["title_score"], c["series_score"])
	fmt.Fprintf(b, "          = %.1f점\n\n", ce.Quantitative.QuantitativeTotal)
	fmt.Fprintf(b, "최종 점수 = 정량(%.1f) × 60%% + 정성(%.1f) × 40%%\n", ce.Quantitative.QuantitativeTotal, ce.Qualitative.Score)
	fmt.Fprintf(b, "          = %.1f점\n", ce.Blended)
	fmt.Fprintf(b, "```\n\n")

	appendChecklist(b, res.Checklist, technologyChecks)
}

func rightsSection(b *strings.Builder, ce evaluate.CategoryEvaluation, res evaluate.Result) {
	m := res.Metrics
	c := ce.Quantitative.Components

	fmt.Fprintf(b, "- 정량 평가 (70%%): %.1f점\n", ce.Quantitative.QuantitativeTotal)
	fmt.Fprintf(b, "- 정성 평가 (30%%): %.1f점\n\n", ce.Qualitative.Score)

	fmt.Fprintf(b, "#### 정량 지표 (PDF 원문 기반)\n\n")
	fmt.Fprintf(b, "| 지표 | 값 | 점수 |\n|---|---|---|\n")
	fmt.Fprintf(b, "| X1. IPC 수 | %d개 | %.1f점 |\n", m.IPCCount, c["ipc_score"])
	fmt.Fprintf(b, "| X2. 독립항 수 | %d개 | - |\n", m.IndependentCount)
	fmt.Fprintf(b, "| X3. 종속항 수 | %d개 | - |\n", m.DependentCount)
	fmt.Fprintf(b, "| X4. 전체 청구항 수 | %d개 | %.1f점 |\n", m.TotalClaims, c["claims_count_score"])
	fmt.Fprintf(b, "| X5. 독립항 평균 길이 | %.1f자 | %.1f점 |\n", m.IndependentAvgLen, c["claims_length_score"])
	fmt.Fprintf(b, "| X6. 종속항 평균 길이 | %.1f자 | - |\n\n", m.DependentAvgLen)

	fmt.Fprintf(b, "#### 구조방정식 모델\n\n")
	fmt.Fprintf(b, "```\n")
	fmt.Fprintf(b, "정량 = IPC(25%%) + 청구항개수(30%%) + 청구항길이(25%%) + 계층구조(20%%)\n")
	fmt.Fprintf(b, "     = %.1f × 0.25 + %.1f × 0.30 + %.1f × 0.25 + %.1f × 0.20\n",
		c["ipc_score"], c["claims_count_score"], c["claims_length_score"], c["hierarchy_score"])
	fmt.Fprintf(b, "     = %.1f점\n\n", ce.Quantitative.QuantitativeTotal)
	fmt.Fprintf(b, "최종 = 정량(%.1f) × 70%% + 정성(%.1f) × 30%%\n", ce.Quantitative.QuantitativeTotal, ce.Qualitative.Score)
	fmt.Fprintf(b, "     = %.1f점\n", ce.Blended)
	fmt.Fprintf(b, "```\n\n")

	appendChecklist(b, res.Checklist, rightsChecks)
}

func marketSection(b *strings.Builder, ce evaluate.CategoryEvaluation, res evaluate.Result) {
	m := res.Metrics
	c := ce.Quantitative.Components

	fmt.Fprintf(b, "- 정량+웹서치 (70%%): %.1f점\n", ce.Quantitative.QuantitativeTotal)
	fmt.Fprintf(b, "- 정성 평가 (30%%): %.1f점\n\n", ce.Qualitative.Score)

	fmt.Fprintf(b, "#### 정량 지표 (PDF 원문 기반)\n\n")
	fmt.Fprintf(b, "| 지표 | 값 | 점수 |\n|---|---|---|\n")
	fmt.Fprintf(b, "| X10. 발명자 수 | %d명 | %.1f점 |\n\n", m.InventorCount, c["inventor_score"])

	fmt.Fprintf(b, "#### 웹 서치 결과\n\n")
	fmt.Fprintf(b, "- 출원인 시장 지위: **%s** → %.1f점\n", res.ApplicantTier.Tier, c["applicant_score"])
	fmt.Fprintf(b, "  - %s\n", orNA(res.ApplicantTier.Summary))
	fmt.Fprintf(b, "- 기술 분야 성장성: **%s** → %.1f점\n", res.TechFieldTier.Tier, c["tech_field_score"])
	fmt.Fprintf(b, "  - %s\n\n", orNA(res.TechFieldTier.Summary))

	fmt.Fprintf(b, "#### 구조방정식 모델\n\n")
	fmt.Fprintf(b, "```\n")
	fmt.Fprintf(b, "정량+웹서치 = 발명자(30%%) + 출원인(40%%) + 기술분야(30%%)\n")
	fmt.Fprintf(b, "            = %.1f × 0.30 + %.1f × 0.40 + %.1f × 0.30\n",
		c["inventor_score"], c["applicant_score"], c["tech_field_score"])
	fmt.Fprintf(b, "            = %.1f점\n\n", ce.Quantitative.QuantitativeTotal)
	fmt.Fprintf(b, "최종 = (정량+웹서치)(%.1f) × 70%% + 정성(%.1f) × 30%%\n", ce.Quantitative.QuantitativeTotal, ce.Qualitative.Score)
	fmt.Fprintf(b, "     = %.1f점\n", ce.Blended)
	fmt.Fprintf(b, "```\n\n")

	appendChecklist(b, res.Checklist, marketChecks)
}

func appendChecklist(b *strings.Builder, checks map[string]bool, keys []string) {
	fmt.Fprintf(b, "#### Binary 체크리스트\n\n")
	for _, k := range keys {
		status := "✗"
		if checks[k] {
			status = "✓"
		}
		fmt.Fprintf(b, "- %s %s\n", status, k)
	}
	b.WriteString("\n")
}

// Narrative blocks present in the assessment, labelled the way the
// assessors name them. Absent fields are skipped rather than shown as N/A.
func appendNarratives(b *strings.Builder, a qualitative.Assessment) {
	blocks := []struct {
		label string
		text  string
	}{
		{"경쟁 기술 분석", a.CompetitiveAnalysis},
		{"R&D 제언", a.RnDRecommendation},
		{"법적 리스크", a.LegalRisk},
		{"방어 전략", a.DefenseStrategy},
		{"포트폴리오 적합성", a.PortfolioFit},
		{"실무 적용성", a.ApplicabilitySummary},
		{"시장 적합성", a.MarketFitSummary},
		{"상용화 가능성", a.CommercializationSummary},
	}
	for _, blk := range blocks {
		if strings.TrimSpace(blk.text) == "" {
			continue
		}
		fmt.Fprintf(b, "%s:\n\n%s\n\n", blk.label, sanitizeLine(blk.text))
	}
}

func appendRecommendations(b *strings.Builder, res evaluate.Result) {
	fmt.Fprintf(b, "## 종합 평가 및 제언\n\n")
	fmt.Fprintf(b, "### 1. 종합 의견\n\n")
	fmt.Fprintf(b, "본 특허는 종합 %.1f점(%s)으로 평가되었습니다. %s\n\n",
		res.Composite.OverallScore, res.Composite.Grade, overallOpinion(res.Composite.OverallScore))

	fmt.Fprintf(b, "### 2. 제언\n\n")
	wrote := false
	if res.Technology.Blended < 70 {
		fmt.Fprintf(b, "- 기술성 강화: 구현 방법 상세화, 실험 데이터 추가\n")
		wrote = true
	}
	if res.Rights.Blended < 70 {
		fmt.Fprintf(b, "- 권리성 강화: 청구항 보완, 종속항 추가\n")
		wrote = true
	}
	if res.Market.Blended < 70 {
		fmt.Fprintf(b, "- 활용성 강화: 시장 검증, POC 수행\n")
		wrote = true
	}
	if !wrote {
		fmt.Fprintf(b, "- 세 평가 영역 모두 양호하여 별도의 보완 제언이 없습니다.\n")
	}
	b.WriteString("\n")
}

func overallOpinion(score float64) string {
	switch {
	case score >= 80:
		return "매우 우수한 특허로서 기술성, 권리성, 활용성 모든 면에서 높은 점수를 받았습니다."
	case score >= 70:
		return "우수한 특허로서 활용 가치가 높습니다."
	case score >= 60:
		return "양호한 특허이나 일부 개선이 필요합니다."
	default:
		return "개선이 필요한 특허입니다."
	}
}

func appendReferences(b *strings.Builder, res evaluate.Result) {
	fmt.Fprintf(b, "## Reference - 참고 문서\n\n")
	fmt.Fprintf(b, "### 1. 특허 원문\n\n")
	fmt.Fprintf(b, "- 특허번호: %s\n", orNA(res.Document.Number))
	fmt.Fprintf(b, "- 발명명칭: %s\n", orNA(res.Document.Title))
	fmt.Fprintf(b, "- 출원인: %s\n\n", orNA(res.Document.Applicant))

	fmt.Fprintf(b, "### 2. 웹 서치 출처\n\n")
	fmt.Fprintf(b, "- 출원인 정보: %s\n", orNA(res.ApplicantTier.Summary))
	fmt.Fprintf(b, "- 기술 분야 정보: %s\n\n", orNA(res.TechFieldTier.Summary))
}

func appendAppendix(b *strings.Builder, res evaluate.Result) {
	fmt.Fprintf(b, "## Appendix\n\n")
	fmt.Fprintf(b, "### 평가 결과 (JSON)\n\n```json\n%s\n```\n\n", prettyJSON(appendixView(res)))
	fmt.Fprintf(b, "### 파이프라인 메타데이터 (JSON)\n\n```json\n%s\n```\n", prettyJSON(res.Metadata))
}

// appendixView drops the document full text from the appendix; the report
// should not embed the entire gazette.
func appendixView(res evaluate.Result) map[string]any {
	return map[string]any{
		"run_id":    res.RunID,
		"metrics":   res.Metrics,
		"composite": res.Composite,
		"checklist": res.Checklist,
		"category_scores": map[string]float64{
			string(scoring.CategoryTechnology): res.Technology.Blended,
			string(scoring.CategoryRights):     res.Rights.Blended,
			string(scoring.CategoryMarket):     res.Market.Blended,
		},
	}
}

func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func sanitizeLine(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if s == "" {
		return "-"
	}
	return s
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
