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
	"github.com/joelkehle/patentgrade/internal/report"
	"github.com/joelkehle/patentgrade/internal/store"
)

var (
	renderFormat string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render <run-id>",
	Short: "Re-render the report for an archived evaluation",
	Long: `Render rebuilds the report for a past run from the archive, without
re-evaluating the document.

Example:
  patentgrade render 4f7c… --format pdf --out report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderFormat, "format", "md", "output format: md, html or pdf")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output path (default: <run-id>.<format>)")
}

func runRender(cmd *cobra.Command, args []string) error {
	runID := args[0]

	archive, err := store.Open(viper.GetString("db_path"))
	if err != nil {
		return err
	}
	defer archive.Close()

	ev, ok, err := archive.Get(runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found in archive", runID)
	}

	var res evaluate.Result
	if err := json.Unmarshal(ev.Result, &res); err != nil {
		return fmt.Errorf("decode archived result: %w", err)
	}

	markdown := report.BuildMarkdown(res)
	out := renderOut
	if out == "" {
		out = runID + "." + renderFormat
	}

	var payload []byte
	switch renderFormat {
	case "md":
		payload = []byte(markdown)
	case "html":
		html, err := report.BuildHTML(res, markdown)
		if err != nil {
			return err
		}
		payload = []byte(html)
	case "pdf":
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		payload, err = report.NewChromiumPDFRenderer().Render(ctx, res, markdown)
		if err != nil {
			return fmt.Errorf("render pdf: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (md, html or pdf)", renderFormat)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(out, payload, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("보고서: %s\n", out)
	return nil
}
