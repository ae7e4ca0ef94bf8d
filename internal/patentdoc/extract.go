// Package patentdoc extracts structured records from Korean patent
// publication PDFs. Extraction is two-staged: pull text out of the PDF,
// then parse the gazette layout into a Record.
package patentdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	maxPDFBytes = 20 * 1024 * 1024
	maxTextRun  = 200000
)

// ExtractText pulls plain text out of the PDF at path. It prefers the
// pdftotext tool in layout mode, which preserves the gazette's columnar
// field structure; when the tool is missing or produces nothing it falls
// back to scanning the raw bytes for printable runs.
func ExtractText(ctx context.Context, path string) (string, ExtractionInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", ExtractionInfo{}, err
	}
	if info.Size() > maxPDFBytes {
		return "", ExtractionInfo{}, fmt.Errorf("pdf too large: %d bytes", info.Size())
	}

	if text, err := runPdfToText(ctx, path); err == nil && strings.TrimSpace(text) != "" {
		return truncateText(text, "pdftotext")
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return "", ExtractionInfo{}, err
	}
	fallback := extractPrintableText(blob)
	if strings.TrimSpace(fallback) == "" {
		return "", ExtractionInfo{}, errors.New("no extractable text found")
	}
	return truncateText(fallback, "byte-fallback")
}

// Load extracts and parses the PDF at path into a complete Record. The
// record identifier is the file name without extension.
func Load(ctx context.Context, path string) (Record, error) {
	text, info, err := ExtractText(ctx, path)
	if err != nil {
		return Record{}, fmt.Errorf("extract %s: %w", path, err)
	}
	rec := Parse(text)
	base := filepath.Base(path)
	rec.Identifier = strings.TrimSuffix(base, filepath.Ext(base))
	rec.Extraction = info
	return rec, nil
}

func runPdfToText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func extractPrintableText(blob []byte) string {
	var runs []string
	var b strings.Builder
	flush := func() {
		s := strings.TrimSpace(b.String())
		if len(s) >= 24 {
			runs = append(runs, s)
		}
		b.Reset()
	}
	for _, c := range blob {
		r := rune(c)
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	joined := strings.Join(runs, "\n")
	joined = strings.ReplaceAll(joined, "\x00", "")
	return strings.TrimSpace(joined)
}

func truncateText(text, method string) (string, ExtractionInfo, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= maxTextRun {
		return trimmed, ExtractionInfo{Method: method}, nil
	}
	prefix := trimmed[:maxTextRun]
	// Avoid cutting in the middle of a rune sequence.
	prefix = string(bytes.Runes([]byte(prefix)))
	return prefix, ExtractionInfo{Method: method, Truncated: true}, nil
}
