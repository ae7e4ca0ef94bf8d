package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joelkehle/patentgrade/internal/evaluate"
)

const styleCSS = `
body{font-family:'Noto Sans KR','Malgun Gothic',sans-serif;color:#1c1917;line-height:1.6;font-size:0.9rem;}
h1{font-size:1.5rem;border-bottom:2px solid #92400e;padding-bottom:0.3rem;}
h2{font-size:1.2rem;margin-top:1.6rem;border-bottom:1px solid #d6d3d1;padding-bottom:0.2rem;}
h3{font-size:1.0rem;margin-top:1.2rem;}
h4{font-size:0.9rem;margin-top:1.0rem;}
code{background:#f5f5f4;padding:0.1rem 0.25rem;border-radius:3px;font-size:0.85em;}
pre{background:#f5f5f4;border:1px solid #d6d3d1;border-radius:4px;padding:0.6rem;overflow-x:auto;font-size:0.78rem;}
pre code{background:none;padding:0;}
table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;margin:0.6rem 0;}
th,td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
thead th{background:#f1f5f9;font-weight:700;}
`

// ChromiumPDFRenderer converts a markdown report to PDF through headless
// Chromium. HTML conversion happens in-process; only the print step needs
// the browser.
type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	return &ChromiumPDFRenderer{chromePath: detectChromePath()}
}

// BuildHTML converts the report markdown to a full printable HTML document.
func BuildHTML(res evaluate.Result, markdown string) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>" +
		html.EscapeString(res.Document.Title) + "</title>" +
		"<style>" + styleCSS +
		"html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;} " +
		"body{background:#fff !important;padding:0.6rem;} .pdf-wrap{max-width:1000px;margin:0 auto;} " +
		"h2{break-before:auto;} " +
		"@media print{ @page{size:A4;margin:12mm;} body{padding:0;} .pdf-wrap{max-width:none;} }" +
		"</style></head><body>" +
		"<div class='pdf-wrap'><div class='report-meta'>" + buildMetaHTML(res) + "</div>" +
		"<div class='report-html'>" + content.String() + "</div></div>" +
		"</body></html>", nil
}

func buildMetaHTML(res evaluate.Result) string {
	var out strings.Builder
	if res.RunID != "" {
		out.WriteString("<div><strong>Run:</strong> " + html.EscapeString(res.RunID) + "</div>")
	}
	if g := res.Composite.Grade; g != "" {
		out.WriteString(fmt.Sprintf("<div><strong>등급:</strong> %s (%.1f점)</div>",
			html.EscapeString(g), res.Composite.OverallScore))
	}
	if !res.Metadata.CompletedAt.IsZero() {
		out.WriteString("<div><strong>평가일:</strong> " +
			html.EscapeString(res.Metadata.CompletedAt.Format("2006-01-02 15:04")) + "</div>")
	}
	return out.String()
}

// Render prints the markdown report to PDF bytes.
func (r *ChromiumPDFRenderer) Render(ctx context.Context, res evaluate.Result, markdown string) ([]byte, error) {
	htmlDoc, err := BuildHTML(res, markdown)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func detectChromePath() string {
	candidates := []string{
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/usr/bin/google-chrome",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
