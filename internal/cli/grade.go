package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joelkehle/patentgrade/internal/evaluate"
	"github.com/joelkehle/patentgrade/internal/markettier"
	"github.com/joelkehle/patentgrade/internal/patentdoc"
	"github.com/joelkehle/patentgrade/internal/qualitative"
	"github.com/joelkehle/patentgrade/internal/report"
	"github.com/joelkehle/patentgrade/internal/scoring"
	"github.com/joelkehle/patentgrade/internal/store"
)

var (
	gradeTimeout time.Duration
	gradeNoLLM   bool
	gradeNoSave  bool
	gradePDF     bool
	gradeOutDir  string
)

var gradeCmd = &cobra.Command{
	Use:   "grade <pdf>...",
	Short: "Evaluate patent gazette PDFs and write their reports",
	Long: `Grade extracts the gazette text, computes the quantitative metrics,
runs the qualitative assessments and writes a Korean markdown report
per document.

Example:
  patentgrade grade 10-2023-0123456.pdf
  patentgrade grade gazette.pdf --pdf --out reports/
  patentgrade grade *.pdf --no-llm --no-save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGrade,
}

func init() {
	rootCmd.AddCommand(gradeCmd)

	gradeCmd.Flags().DurationVar(&gradeTimeout, "timeout", 5*time.Minute, "overall evaluation timeout")
	gradeCmd.Flags().BoolVar(&gradeNoLLM, "no-llm", false, "skip qualitative assessments (fallback scores)")
	gradeCmd.Flags().BoolVar(&gradeNoSave, "no-save", false, "do not archive the evaluation")
	gradeCmd.Flags().BoolVar(&gradePDF, "pdf", false, "also render the report as PDF (needs Chromium)")
	gradeCmd.Flags().StringVar(&gradeOutDir, "out", "", "report output directory (default: report_dir config)")
}

func runGrade(cmd *cobra.Command, args []string) error {
	pipeline := evaluate.NewPipeline(buildAssessor(), buildClassifier(), scoring.DefaultConfig())

	var progress evaluate.ProgressFn
	if verbose {
		progress = func(stage, message string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", stage, message)
		}
	}

	for _, path := range args {
		if err := gradeOne(cmd.Context(), pipeline, path, progress); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func gradeOne(parent context.Context, pipeline *evaluate.Pipeline, path string, progress evaluate.ProgressFn) error {
	ctx, cancel := context.WithTimeout(parent, gradeTimeout)
	defer cancel()

	rec, err := patentdoc.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %s via %s (%d claims)\n",
			rec.Identifier, rec.Extraction.Method, len(rec.Claims))
	}

	res, err := pipeline.Run(ctx, rec, progress)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	fmt.Printf("%s\n", rec.Identifier)
	fmt.Printf("종합 점수: %.1f점 (%s)\n", res.Composite.OverallScore, res.Composite.Grade)
	fmt.Printf("기술성 %.1f / 권리성 %.1f / 활용성 %.1f\n",
		res.Technology.Blended, res.Rights.Blended, res.Market.Blended)

	if !gradeNoSave {
		if err := archiveResult(res); err != nil {
			return fmt.Errorf("archive: %w", err)
		}
	}
	return writeReports(ctx, res)
}

// buildAssessor returns nil when the LLM is unavailable; the pipeline then
// substitutes fallback assessments.
func buildAssessor() *qualitative.Assessor {
	if gradeNoLLM {
		return nil
	}
	caller, err := qualitative.NewAnthropicCallerFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Qualitative assessments disabled: %v\n", err)
		return nil
	}
	return qualitative.NewAssessor(caller)
}

func buildClassifier() *markettier.Classifier {
	searcher, err := markettier.NewHTTPSearcherFromEnv()
	if err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Web search disabled: %v\n", err)
		}
		return markettier.NewClassifier(nil)
	}
	return markettier.NewClassifier(searcher)
}

func archiveResult(res evaluate.Result) error {
	archive, err := store.Open(viper.GetString("db_path"))
	if err != nil {
		return err
	}
	defer archive.Close()

	payload, err := json.Marshal(res)
	if err != nil {
		return err
	}
	ev := store.Evaluation{
		RunID:        res.RunID,
		DocumentID:   res.Document.Identifier,
		PatentNumber: res.Document.Number,
		Title:        res.Document.Title,
		Applicant:    res.Document.Applicant,
		OverallScore: res.Composite.OverallScore,
		NormalScore:  res.Composite.NormalScore,
		Grade:        res.Composite.Grade,
		Reevaluated:  res.Composite.Reevaluated,
		Percentile:   res.Composite.Percentile,
		Result:       payload,
		CreatedAt:    res.Metadata.CompletedAt,
	}
	if err := archive.Save(ev); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Archived run %s\n", res.RunID)
	}
	return nil
}

func writeReports(ctx context.Context, res evaluate.Result) error {
	outDir := gradeOutDir
	if outDir == "" {
		outDir = viper.GetString("report_dir")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	markdown := report.BuildMarkdown(res)
	mdPath := filepath.Join(outDir, res.RunID+".md")
	if err := os.WriteFile(mdPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	fmt.Printf("보고서: %s\n", mdPath)

	if !gradePDF {
		return nil
	}
	pdf, err := report.NewChromiumPDFRenderer().Render(ctx, res, markdown)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	pdfPath := filepath.Join(outDir, res.RunID+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	fmt.Printf("보고서(PDF): %s\n", pdfPath)
	return nil
}
