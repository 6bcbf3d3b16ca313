package summarize

import (
	"strings"
	"testing"
)

func TestSummarizeShortTextReflows(t *testing.T) {
	input := "One.\nTwo is here.\n\nThree!"
	got := Summarize(input, 3)
	if got != "One. Two is here. Three!" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize("", 3); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestSummarizeDefaultMax(t *testing.T) {
	input := "A. Bb. Ccc. Dddd."
	got := Summarize(input, 0)
	if got != "Dddd.\n\nCcc.\n\nBb." {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestSummarizeRanksByLengthInRankOrder(t *testing.T) {
	input := "Short one. This is the longest sentence of them all. Medium length here. Tiny. Also medium size."
	got := Summarize(input, 3)
	parts := strings.Split(got, "\n\n")
	want := []string{
		"This is the longest sentence of them all.",
		"Medium length here.",
		"Also medium size.",
	}
	if len(parts) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %q", len(want), len(parts), got)
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], parts[i])
		}
	}
}

func TestSummarizeStableTieBreak(t *testing.T) {
	input := "Aaa. Bbb. Ccc. Ddd. E."
	got := Summarize(input, 3)
	if got != "Aaa.\n\nBbb.\n\nCcc." {
		t.Fatalf("expected earlier sentences to win ties, got %q", got)
	}
}

func TestSummarizeDrawsFromSentenceList(t *testing.T) {
	input := "Fees may change at any time. We share data with partners. You can cancel by email. Disputes go to arbitration in Delaware."
	sentences := Sentences(input)
	got := strings.Split(Summarize(input, 3), "\n\n")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(got))
	}
	for _, s := range got {
		found := false
		for _, candidate := range sentences {
			if s == candidate {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("summary sentence %q not in source", s)
		}
	}
}

func TestSummarizeNoBreakSpaceSeparators(t *testing.T) {
	input := "Fees may change.\u00a0We share your data with partners.\u00a0You can cancel.\u00a0Disputes go to binding arbitration."
	got := strings.Split(Summarize(input, 3), "\n\n")
	want := []string{
		"Disputes go to binding arbitration.",
		"We share your data with partners.",
		"Fees may change.",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sentences, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
