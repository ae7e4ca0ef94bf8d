package patentdoc

import (
	"regexp"
	"strconv"
	"strings"
)

// Field patterns follow the KIPO gazette layout: INID-coded header fields
// like (54) for the title and (72) for inventors, followed by the claims
// section introduced by 청구범위.
var (
	publicationNumberPattern  = regexp.MustCompile(`공개번호\s*(\d{2}-\d{4}-\d{7})`)
	applicationNumberPattern  = regexp.MustCompile(`출원번호\s*(\d{2}-\d{4}-\d{7})`)
	registrationNumberPattern = regexp.MustCompile(`등록번호\s*(\d{2}-\d{7})`)

	titleINIDPattern  = regexp.MustCompile(`\(54\)\s*발명의\s*명칭\s*(.+)`)
	titlePlainPattern = regexp.MustCompile(`발명의\s*명칭\s*[)）]?\s*(.+)`)
	titleParenPattern = regexp.MustCompile(`[\(（].+?[\)）]`)

	applicantINIDPattern  = regexp.MustCompile(`\(71\)\s*출원인\s*(.+)`)
	applicantPlainPattern = regexp.MustCompile(`출원인\s*[：:]\s*(.+)`)

	inventorINIDPattern  = regexp.MustCompile(`(?s)\(72\)\s*발명자\s*(.+?)(?:\n\(|$)`)
	inventorPlainPattern = regexp.MustCompile(`발명자\s*[：:]\s*(.+)`)
	koreanNamePattern    = regexp.MustCompile(`^([가-힣]{2,4})`)

	ipcSectionPattern = regexp.MustCompile(`(?s)\(51\)\s*국제특허분류.*?\n(.+?)(?:\n\(|$)`)
	ipcCodePattern    = regexp.MustCompile(`[A-H]\d{2}[A-Z]\s*\d+/\d+`)

	drawingSectionPattern = regexp.MustCompile(`(?s)도면의\s*간단한\s*설명.*?\n(.+?)(?:\n\n|발명을\s*실시하기)`)
	figureNumberPattern   = regexp.MustCompile(`도\s*(\d+)`)

	claimSectionPattern = regexp.MustCompile(`(?s)청구범위\s*(.+?)(?:명\s*세\s*서|발명의\s*설명|$)`)
	claimHeaderPattern  = regexp.MustCompile(`청구항\s*\d+\s*`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Parse reads a gazette-formatted text dump into a Record. Every field is
// best-effort: a field the text does not carry is left at its zero value
// (or "Unknown" for the identifying strings, matching the gazette
// convention for unparseable filings) rather than failing the whole
// document.
func Parse(text string) Record {
	claims := parseClaims(text)
	return Record{
		Number:       parseNumber(text),
		Title:        parseTitle(text),
		Applicant:    parseApplicant(text),
		Inventors:    parseInventors(text),
		Claims:       claims,
		ClaimCount:   len(claims),
		IPCCodes:     parseIPCCodes(text),
		DrawingCount: parseDrawingCount(text),
		FullText:     text,
	}
}

func parseNumber(text string) string {
	for _, p := range []*regexp.Regexp{publicationNumberPattern, applicationNumberPattern, registrationNumberPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return "Unknown"
}

func parseTitle(text string) string {
	for _, p := range []*regexp.Regexp{titleINIDPattern, titlePlainPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			title := strings.TrimSpace(m[1])
			// The title line often repeats itself in English inside
			// parentheses; keep only the Korean name.
			title = strings.TrimSpace(titleParenPattern.ReplaceAllString(title, ""))
			if title != "" {
				return title
			}
		}
	}
	return "Unknown"
}

func parseApplicant(text string) string {
	for _, p := range []*regexp.Regexp{applicantINIDPattern, applicantPlainPattern} {
		if m := p.FindStringSubmatch(text); m != nil {
			if applicant := strings.TrimSpace(m[1]); applicant != "" {
				return applicant
			}
		}
	}
	return "Unknown"
}

// parseInventors collects the distinct Korean names under the (72) field.
// Each inventor line starts with a 2-4 syllable name followed by an
// address, which is dropped.
func parseInventors(text string) []string {
	var inventors []string
	seen := make(map[string]bool)
	for _, p := range []*regexp.Regexp{inventorINIDPattern, inventorPlainPattern} {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		for _, line := range strings.Split(m[1], "\n") {
			name := koreanNamePattern.FindString(strings.TrimSpace(line))
			if name != "" && !seen[name] {
				seen[name] = true
				inventors = append(inventors, name)
			}
		}
		if len(inventors) > 0 {
			break
		}
	}
	return inventors
}

func parseIPCCodes(text string) []string {
	m := ipcSectionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var codes []string
	seen := make(map[string]bool)
	for _, raw := range ipcCodePattern.FindAllString(m[1], -1) {
		code := strings.ReplaceAll(raw, " ", "")
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

// parseDrawingCount takes the highest figure number referenced in the
// drawing-description section, falling back to the whole text. Figures are
// numbered densely in practice, so the maximum is the count.
func parseDrawingCount(text string) int {
	if m := drawingSectionPattern.FindStringSubmatch(text); m != nil {
		if n := maxFigureNumber(m[1]); n > 0 {
			return n
		}
	}
	return maxFigureNumber(text)
}

func maxFigureNumber(section string) int {
	max := 0
	for _, m := range figureNumberPattern.FindAllStringSubmatch(section, -1) {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > max {
			max = n
		}
	}
	return max
}

// parseClaims splits the 청구범위 section on 청구항 N headers: each claim
// body runs from its header to the next header or the end of the section.
func parseClaims(text string) []string {
	m := claimSectionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	section := m[1]

	headers := claimHeaderPattern.FindAllStringIndex(section, -1)
	var claims []string
	for i, h := range headers {
		end := len(section)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		body := strings.TrimSpace(section[h[1]:end])
		body = whitespacePattern.ReplaceAllString(body, " ")
		if body != "" {
			claims = append(claims, body)
		}
	}
	return claims
}
