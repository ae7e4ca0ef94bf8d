package markettier

import (
	"context"
	"errors"
	"testing"

	"github.com/joelkehle/patentgrade/internal/scoring"
)

type fakeSearcher struct {
	results []Result
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int) ([]Result, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func TestClassifyApplicantKnownMajorSkipsSearch(t *testing.T) {
	s := &fakeSearcher{}
	c := NewClassifier(s)

	got := c.ClassifyApplicant(context.Background(), "삼성전자 주식회사")
	if got.Tier != scoring.ApplicantMajor {
		t.Fatalf("tier: got %q", got.Tier)
	}
	if len(s.queries) != 0 {
		t.Fatal("known major should not hit the searcher")
	}
}

func TestClassifyApplicantMajorCaseInsensitive(t *testing.T) {
	c := NewClassifier(nil)
	if got := c.ClassifyApplicant(context.Background(), "Samsung Electronics Co."); got.Tier != scoring.ApplicantMajor {
		t.Fatalf("tier: got %q", got.Tier)
	}
}

func TestClassifyApplicantMediumFromListingKeywords(t *testing.T) {
	s := &fakeSearcher{results: []Result{
		{Title: "회사 소개", Body: "코스피 상장 기업으로 ..."},
	}}
	c := NewClassifier(s)

	got := c.ClassifyApplicant(context.Background(), "주식회사 미래기술")
	if got.Tier != scoring.ApplicantMedium {
		t.Fatalf("tier: got %q", got.Tier)
	}
}

func TestClassifyApplicantSmallWithoutKeywords(t *testing.T) {
	s := &fakeSearcher{results: []Result{
		{Title: "지역 소식", Body: "소프트웨어 개발 전문"},
	}}
	c := NewClassifier(s)

	if got := c.ClassifyApplicant(context.Background(), "주식회사 미래기술"); got.Tier != scoring.ApplicantSmall {
		t.Fatalf("tier: got %q", got.Tier)
	}
}

func TestClassifyApplicantUnknownPaths(t *testing.T) {
	c := NewClassifier(&fakeSearcher{err: errors.New("search down")})
	if got := c.ClassifyApplicant(context.Background(), "주식회사 미래기술"); got.Tier != scoring.ApplicantUnknown {
		t.Fatalf("search failure: got %q", got.Tier)
	}

	c = NewClassifier(&fakeSearcher{})
	if got := c.ClassifyApplicant(context.Background(), "주식회사 미래기술"); got.Tier != scoring.ApplicantUnknown {
		t.Fatalf("no results: got %q", got.Tier)
	}

	if got := c.ClassifyApplicant(context.Background(), ""); got.Tier != scoring.ApplicantUnknown {
		t.Fatalf("empty applicant: got %q", got.Tier)
	}

	c = NewClassifier(nil)
	if got := c.ClassifyApplicant(context.Background(), "주식회사 미래기술"); got.Tier != scoring.ApplicantUnknown {
		t.Fatalf("nil searcher: got %q", got.Tier)
	}
}

func TestClassifyTechFieldGrowthPrefix(t *testing.T) {
	c := NewClassifier(nil)

	got := c.ClassifyTechField(context.Background(), []string{"G06N3/08", "B60K1/00"})
	if got.Tier != scoring.TechFieldHigh {
		t.Fatalf("tier: got %q", got.Tier)
	}

	// Only the first code decides; a growth code in second place does not.
	got = c.ClassifyTechField(context.Background(), []string{"B60K1/00", "G06N3/08"})
	if got.Tier == scoring.TechFieldHigh {
		t.Fatalf("secondary code should not classify: got %q", got.Tier)
	}
}

func TestClassifyTechFieldSearchKeywords(t *testing.T) {
	s := &fakeSearcher{results: []Result{
		{Title: "시장 동향", Body: "해당 분야는 연평균 성장 중"},
	}}
	c := NewClassifier(s)

	if got := c.ClassifyTechField(context.Background(), []string{"B60K1/00"}); got.Tier != scoring.TechFieldMedium {
		t.Fatalf("tier: got %q", got.Tier)
	}

	s.results = []Result{{Title: "일반 기사", Body: "정체된 시장"}}
	if got := c.ClassifyTechField(context.Background(), []string{"B60K1/00"}); got.Tier != scoring.TechFieldLow {
		t.Fatalf("tier: got %q", got.Tier)
	}
}

func TestClassifyTechFieldNoCodes(t *testing.T) {
	c := NewClassifier(&fakeSearcher{})
	if got := c.ClassifyTechField(context.Background(), nil); got.Tier != scoring.TechFieldUnknown {
		t.Fatalf("tier: got %q", got.Tier)
	}
}
