// Package evaluate orchestrates one full document evaluation: metrics and
// category scoring from the deterministic core, market tiers from the
// classifier, qualitative assessments from the LLM, then the blend,
// aggregation and checklist. The deterministic stages never fail; the
// collaborator stages degrade (tier Unknown, qualitative fallback) instead
// of aborting the run.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/joelkehle/patentgrade/internal/markettier"
	"github.com/joelkehle/patentgrade/internal/patentdoc"
	"github.com/joelkehle/patentgrade/internal/qualitative"
	"github.com/joelkehle/patentgrade/internal/retrieval"
	"github.com/joelkehle/patentgrade/internal/scoring"
)

const tracerName = "patentgrade/evaluate"

// CategoryEvaluation is the complete outcome for one category.
type CategoryEvaluation struct {
	Quantitative scoring.Breakdown      `json:"quantitative"`
	Qualitative  qualitative.Assessment `json:"qualitative"`
	Blended      float64                `json:"blended_score"`
}

// Metadata describes how the run went, independent of what it concluded.
type Metadata struct {
	StartedAt            time.Time      `json:"started_at"`
	CompletedAt          time.Time      `json:"completed_at"`
	StagesExecuted       []string       `json:"stages_executed"`
	StageAttempts        map[string]int `json:"stage_attempts,omitempty"`
	StageContentRetries  map[string]int `json:"stage_content_retries,omitempty"`
	QualitativeFallbacks []string       `json:"qualitative_fallbacks,omitempty"`
	ExtractionMethod     string         `json:"extraction_method,omitempty"`
	ExtractionTruncated  bool           `json:"extraction_truncated,omitempty"`
}

// Result is the full evaluation envelope for one document.
type Result struct {
	RunID    string            `json:"run_id"`
	Document patentdoc.Record  `json:"document"`
	Metrics  scoring.MetricSet `json:"metrics"`

	Technology CategoryEvaluation `json:"technology"`
	Rights     CategoryEvaluation `json:"rights"`
	Market     CategoryEvaluation `json:"market"`

	ApplicantTier markettier.ApplicantResult `json:"applicant_tier"`
	TechFieldTier markettier.TechFieldResult `json:"tech_field_tier"`

	Checklist map[string]bool   `json:"checklist"`
	Composite scoring.Composite `json:"composite"`
	Metadata  Metadata          `json:"metadata"`
}

// ProgressFn receives stage transitions for interactive callers.
type ProgressFn func(stage, message string)

// Pipeline runs evaluations. Assessor and classifier may be nil: a nil
// assessor means every qualitative stage uses the fallback, a nil
// classifier is replaced with an offline one that resolves only the
// built-in company and IPC lists.
type Pipeline struct {
	assessor   *qualitative.Assessor
	classifier *markettier.Classifier
	cfg        scoring.Config
	tracer     trace.Tracer
}

func NewPipeline(assessor *qualitative.Assessor, classifier *markettier.Classifier, cfg scoring.Config) *Pipeline {
	if classifier == nil {
		classifier = markettier.NewClassifier(nil)
	}
	return &Pipeline{
		assessor:   assessor,
		classifier: classifier,
		cfg:        cfg,
		tracer:     otel.Tracer(tracerName),
	}
}

// per-category retrieval queries, tuned to what each assessor needs to see
var categoryQueries = map[scoring.Category]string{
	scoring.CategoryTechnology: "발명의 구성 구현 기술적 특징 효과",
	scoring.CategoryRights:     "청구범위 청구항 권리 범위",
	scoring.CategoryMarket:     "산업상 이용 가능성 시장 적용 분야",
}

const contextChunks = 5

// Run evaluates one extracted document.
func (p *Pipeline) Run(ctx context.Context, rec patentdoc.Record, progress ProgressFn) (Result, error) {
	if len(rec.Claims) == 0 && rec.ClaimCount == 0 {
		return Result{}, errors.New("document has no claims to evaluate")
	}

	ctx, span := p.tracer.Start(ctx, "evaluate.run")
	defer span.End()

	res := Result{
		RunID:    uuid.NewString(),
		Document: rec,
		Metadata: Metadata{
			StartedAt:           time.Now(),
			StageAttempts:       map[string]int{},
			StageContentRetries: map[string]int{},
			ExtractionMethod:    rec.Extraction.Method,
			ExtractionTruncated: rec.Extraction.Truncated,
		},
	}

	emit(progress, "metrics", "Computing quantitative metrics...")
	_, metricsSpan := p.tracer.Start(ctx, "evaluate.metrics")
	res.Metrics = scoring.ComputeMetrics(rec)
	metricsSpan.End()
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "metrics")

	emit(progress, "tiers", "Classifying applicant and technology field...")
	tierCtx, tierSpan := p.tracer.Start(ctx, "evaluate.tiers")
	res.ApplicantTier = p.classifier.ClassifyApplicant(tierCtx, rec.Applicant)
	res.TechFieldTier = p.classifier.ClassifyTechField(tierCtx, rec.IPCCodes)
	tierSpan.End()
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "tiers")

	emit(progress, "quantitative", "Scoring categories...")
	res.Technology.Quantitative = scoring.TechnologyScore(res.Metrics)
	res.Rights.Quantitative = scoring.RightsScore(res.Metrics)
	res.Market.Quantitative = scoring.MarketScore(res.Metrics, res.ApplicantTier.Tier, res.TechFieldTier.Tier)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "quantitative")

	index := retrieval.NewIndex(rec.FullText)
	res.Technology.Qualitative = p.assess(ctx, &res, scoring.CategoryTechnology, rec, res.Technology.Quantitative, index, progress)
	res.Rights.Qualitative = p.assess(ctx, &res, scoring.CategoryRights, rec, res.Rights.Quantitative, index, progress)
	res.Market.Qualitative = p.assess(ctx, &res, scoring.CategoryMarket, rec, res.Market.Quantitative, index, progress)

	emit(progress, "aggregate", "Blending and aggregating...")
	res.Technology.Blended = scoring.Blend(res.Technology.Quantitative.QuantitativeTotal, res.Technology.Qualitative.Score, scoring.CategoryTechnology, p.cfg)
	res.Rights.Blended = scoring.Blend(res.Rights.Quantitative.QuantitativeTotal, res.Rights.Qualitative.Score, scoring.CategoryRights, p.cfg)
	res.Market.Blended = scoring.Blend(res.Market.Quantitative.QuantitativeTotal, res.Market.Qualitative.Score, scoring.CategoryMarket, p.cfg)
	res.Composite = scoring.Aggregate(res.Technology.Blended, res.Rights.Blended, res.Market.Blended, p.cfg)
	res.Checklist = scoring.Checklist(res.Metrics, res.ApplicantTier.Tier, res.TechFieldTier.Tier)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "aggregate")

	res.Metadata.CompletedAt = time.Now()
	emit(progress, "done", fmt.Sprintf("Grade %s (%.1f) in %s", res.Composite.Grade, res.Composite.OverallScore,
		res.Metadata.CompletedAt.Sub(res.Metadata.StartedAt).Round(time.Millisecond)))
	return res, nil
}

func (p *Pipeline) assess(ctx context.Context, res *Result, category scoring.Category, rec patentdoc.Record, quant scoring.Breakdown, index *retrieval.Index, progress ProgressFn) qualitative.Assessment {
	stage := string(category) + "-qualitative"
	emit(progress, stage, fmt.Sprintf("Assessing %s qualitatively...", category))
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, stage)

	if p.assessor == nil {
		res.Metadata.QualitativeFallbacks = append(res.Metadata.QualitativeFallbacks, stage)
		return qualitative.Fallback(category)
	}

	chunks := index.Search(categoryQueries[category], contextChunks)
	if len(chunks) == 0 {
		chunks = index.Head(contextChunks)
	}

	stageCtx, span := p.tracer.Start(ctx, "evaluate."+stage)
	assessment, metrics, err := p.assessor.Assess(stageCtx, category, rec, quant, retrieval.ContextText(chunks))
	span.End()

	res.Metadata.StageAttempts[stage] = metrics.Attempts
	res.Metadata.StageContentRetries[stage] = metrics.ContentRetries
	if err != nil {
		log.Printf("evaluate %s failed, using fallback score: %v", stage, err)
		res.Metadata.QualitativeFallbacks = append(res.Metadata.QualitativeFallbacks, stage)
		return qualitative.Fallback(category)
	}
	return assessment
}

func emit(progress ProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
