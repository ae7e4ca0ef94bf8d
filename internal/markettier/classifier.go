// Package markettier assigns the externally-derived market tiers: the
// applicant tier (company scale) and the technology-field tier (market
// growth). Known majors and growth IPC prefixes classify offline; everything
// else goes through a web search keyword scan, degrading to Unknown when the
// search yields nothing.
package markettier

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/joelkehle/patentgrade/internal/scoring"
)

// Result is one web search hit.
type Result struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Searcher is the web search dependency; see HTTPSearcher for the real one.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

var majorCompanies = []string{
	"삼성", "samsung", "lg", "엘지", "현대", "hyundai",
	"sk", "네이버", "naver", "카카오", "kakao",
	"한화", "hanwha", "포스코", "posco", "롯데", "lotte",
}

var mediumCompanyKeywords = []string{"대기업", "상장", "kospi", "코스피"}

var growthIPCPrefixes = []string{"G06N", "G06F16", "G06Q", "H04L", "H01L", "C12N", "A61K"}

var growthKeywords = []string{"성장", "growth", "증가"}

// Classifier resolves both tiers for one document. A nil Searcher is valid
// and skips the web lookups, leaving non-obvious cases at Unknown.
type Classifier struct {
	searcher Searcher
}

func NewClassifier(searcher Searcher) *Classifier {
	return &Classifier{searcher: searcher}
}

// ApplicantResult pairs the tier with a short human-readable rationale for
// the report.
type ApplicantResult struct {
	Tier    scoring.ApplicantTier
	Summary string
}

// TechFieldResult pairs the field tier with its rationale.
type TechFieldResult struct {
	Tier    scoring.TechFieldTier
	Summary string
}

// ClassifyApplicant grades the applicant's company scale. The known-major
// list decides without a lookup; otherwise a company search is scanned for
// listing keywords.
func (c *Classifier) ClassifyApplicant(ctx context.Context, applicant string) ApplicantResult {
	name := strings.TrimSpace(applicant)
	if name == "" || name == "Unknown" || name == "N/A" {
		return ApplicantResult{Tier: scoring.ApplicantUnknown, Summary: "출원인 정보 없음"}
	}

	lowered := strings.ToLower(name)
	for _, major := range majorCompanies {
		if strings.Contains(lowered, major) {
			return ApplicantResult{Tier: scoring.ApplicantMajor, Summary: fmt.Sprintf("%s은(는) 주요 대기업", name)}
		}
	}

	if c.searcher == nil {
		return ApplicantResult{Tier: scoring.ApplicantUnknown, Summary: fmt.Sprintf("%s (검색 미사용)", name)}
	}

	results, err := c.searcher.Search(ctx, fmt.Sprintf("%s 기업 정보 시가총액", name), 3)
	if err != nil {
		log.Printf("markettier applicant search failed applicant=%q err=%v", name, err)
		return ApplicantResult{Tier: scoring.ApplicantUnknown, Summary: fmt.Sprintf("%s (검색 실패)", name)}
	}
	if len(results) == 0 {
		return ApplicantResult{Tier: scoring.ApplicantUnknown, Summary: fmt.Sprintf("%s (정보 부족)", name)}
	}

	if containsAnyKeyword(results, mediumCompanyKeywords) {
		return ApplicantResult{Tier: scoring.ApplicantMedium, Summary: fmt.Sprintf("%s은(는) 중견 기업", name)}
	}
	return ApplicantResult{Tier: scoring.ApplicantSmall, Summary: fmt.Sprintf("%s은(는) 일반 기업", name)}
}

// ClassifyTechField grades the market outlook of the filing's primary IPC
// subclass, the part before the slash of the first code.
func (c *Classifier) ClassifyTechField(ctx context.Context, ipcCodes []string) TechFieldResult {
	if len(ipcCodes) == 0 {
		return TechFieldResult{Tier: scoring.TechFieldUnknown, Summary: "IPC 정보 없음"}
	}

	main := strings.TrimSpace(ipcCodes[0])
	if idx := strings.Index(main, "/"); idx >= 0 {
		main = main[:idx]
	}
	mainUpper := strings.ToUpper(strings.ReplaceAll(main, " ", ""))
	for _, prefix := range growthIPCPrefixes {
		if strings.HasPrefix(mainUpper, prefix) {
			return TechFieldResult{Tier: scoring.TechFieldHigh, Summary: fmt.Sprintf("%s 기술 분야는 성장 중", main)}
		}
	}

	if c.searcher == nil {
		return TechFieldResult{Tier: scoring.TechFieldUnknown, Summary: fmt.Sprintf("%s (검색 미사용)", main)}
	}

	results, err := c.searcher.Search(ctx, fmt.Sprintf("%s 기술 분야 시장 전망", main), 2)
	if err != nil {
		log.Printf("markettier tech field search failed ipc=%q err=%v", main, err)
		return TechFieldResult{Tier: scoring.TechFieldUnknown, Summary: fmt.Sprintf("%s (검색 실패)", main)}
	}
	if len(results) == 0 {
		return TechFieldResult{Tier: scoring.TechFieldUnknown, Summary: fmt.Sprintf("%s (정보 부족)", main)}
	}

	if containsAnyKeyword(results, growthKeywords) {
		return TechFieldResult{Tier: scoring.TechFieldMedium, Summary: fmt.Sprintf("%s 기술 분야는 성장 가능성", main)}
	}
	return TechFieldResult{Tier: scoring.TechFieldLow, Summary: fmt.Sprintf("%s 기술 분야 (정보 부족)", main)}
}

func containsAnyKeyword(results []Result, keywords []string) bool {
	var sb strings.Builder
	for _, r := range results {
		sb.WriteString(r.Title)
		sb.WriteString(" ")
		sb.WriteString(r.Body)
		sb.WriteString(" ")
	}
	text := strings.ToLower(sb.String())
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
