package retrieval

import (
	"strings"
	"testing"
)

func TestSplitWindowing(t *testing.T) {
	text := strings.Repeat("가", 2500)
	chunks := Split(text, 1000, 200)

	// steps of 800: [0,1000) [800,1800) [1600,2500)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if n := len([]rune(chunks[0].Text)); n != 1000 {
		t.Fatalf("chunk 0 length: got %d", n)
	}
	if n := len([]rune(chunks[2].Text)); n != 900 {
		t.Fatalf("chunk 2 length: got %d", n)
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has index %d", i, c.Index)
		}
	}
}

func TestSplitShortText(t *testing.T) {
	chunks := Split("짧은 본문", 1000, 200)
	if len(chunks) != 1 || chunks[0].Text != "짧은 본문" {
		t.Fatalf("got %v", chunks)
	}
}

func TestSplitEmpty(t *testing.T) {
	if chunks := Split("   ", 1000, 200); chunks != nil {
		t.Fatalf("got %v, want nil", chunks)
	}
}

func TestSearchRanksByOverlap(t *testing.T) {
	text := strings.Join([]string{
		strings.Repeat("배경기술에 관한 일반적인 설명이다. ", 40),
		strings.Repeat("신경망 가속기의 연산부 구조를 설명한다. ", 40),
		strings.Repeat("신경망 모델의 학습과 가속기 추론 연산부 및 출력부를 설명한다. ", 40),
	}, "\n")

	ix := NewIndex(text)
	got := ix.Search("신경망 가속기 연산부 출력부", 2)
	if len(got) != 2 {
		t.Fatalf("got %d results", len(got))
	}
	// The richest chunk mentions all four keywords and must rank first.
	if !strings.Contains(got[0].Text, "출력부") {
		t.Fatalf("best chunk missing keyword: %q", got[0].Text[:60])
	}
}

func TestSearchNoOverlap(t *testing.T) {
	ix := NewIndex("전혀 다른 주제의 본문이다.")
	if got := ix.Search("양자컴퓨터", 3); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}

func TestSearchDeterministicOnTies(t *testing.T) {
	// Two identical chunks tie; document order decides.
	ix := &Index{chunks: []Chunk{
		{Index: 0, Text: "연산부 설명"},
		{Index: 1, Text: "연산부 설명"},
	}}
	got := ix.Search("연산부", 2)
	if len(got) != 2 || got[0].Index != 0 || got[1].Index != 1 {
		t.Fatalf("got %v", got)
	}
}

func TestHeadAndContextText(t *testing.T) {
	ix := &Index{chunks: []Chunk{
		{Index: 0, Text: "하나"},
		{Index: 1, Text: "둘"},
		{Index: 2, Text: "셋"},
	}}
	head := ix.Head(2)
	if len(head) != 2 {
		t.Fatalf("got %d", len(head))
	}
	if joined := ContextText(head); joined != "하나\n\n둘" {
		t.Fatalf("got %q", joined)
	}
}
