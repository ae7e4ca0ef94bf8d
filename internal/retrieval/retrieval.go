// Package retrieval selects context snippets from extracted patent text for
// the qualitative assessor prompts. It chunks deterministically and ranks by
// keyword overlap; there is no embedding model in the loop, so the same
// document and query always pick the same snippets.
package retrieval

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunk is one overlapping window of document text.
type Chunk struct {
	Index int
	Text  string
}

// Index holds the chunked text of one document, ready for ranking.
type Index struct {
	chunks []Chunk
}

// Split cuts text into rune-windowed chunks of the given size with the given
// overlap between consecutive chunks. Sizes are rune counts; a chunk never
// splits a rune.
func Split(text string, size, overlap int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var chunks []Chunk
	step := size - overlap
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// NewIndex chunks text with the default window parameters.
func NewIndex(text string) *Index {
	return &Index{chunks: Split(text, DefaultChunkSize, DefaultChunkOverlap)}
}

// Len reports the number of chunks in the index.
func (ix *Index) Len() int { return len(ix.chunks) }

// Search returns the k chunks with the highest keyword overlap against
// query, best first. Ties keep document order, so results are stable across
// runs. Chunks with no overlap at all are never returned.
func (ix *Index) Search(query string, k int) []Chunk {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || k <= 0 {
		return nil
	}

	type scored struct {
		chunk Chunk
		score int
	}
	var candidates []scored
	for _, c := range ix.chunks {
		s := overlapScore(queryTokens, c.Text)
		if s > 0 {
			candidates = append(candidates, scored{chunk: c, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]Chunk, 0, k)
	for _, c := range candidates[:k] {
		out = append(out, c.chunk)
	}
	return out
}

// Head returns the first n chunks in document order, used as a summary
// context when no sharper query is available.
func (ix *Index) Head(n int) []Chunk {
	if n > len(ix.chunks) {
		n = len(ix.chunks)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Chunk, n)
	copy(out, ix.chunks[:n])
	return out
}

// ContextText joins chunks into one prompt-ready block.
func ContextText(chunks []Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n\n")
}

// tokenize splits on anything that is not a letter or digit and keeps
// lowercased tokens of at least two runes. Single syllables match too
// freely in Korean to be useful ranking signals.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var tokens []string
	seen := make(map[string]bool)
	for _, f := range fields {
		t := strings.ToLower(f)
		if utf8.RuneCountInString(t) < 2 || seen[t] {
			continue
		}
		seen[t] = true
		tokens = append(tokens, t)
	}
	return tokens
}

func overlapScore(queryTokens []string, text string) int {
	lowered := strings.ToLower(text)
	score := 0
	for _, t := range queryTokens {
		if strings.Contains(lowered, t) {
			score++
		}
	}
	return score
}
