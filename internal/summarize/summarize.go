package summarize

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const DefaultMaxSentences = 3

// Summarize picks up to maxSentences sentences from text. Short inputs are
// returned reflowed in document order. Longer inputs keep the longest
// sentences, joined by a blank line in rank order; equal lengths keep
// document order.
func Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	sentences := Sentences(text)
	if len(sentences) <= maxSentences {
		return strings.Join(sentences, " ")
	}

	ranked := make([]string, len(sentences))
	copy(ranked, sentences)
	sort.SliceStable(ranked, func(i, j int) bool {
		return utf8.RuneCountInString(ranked[i]) > utf8.RuneCountInString(ranked[j])
	})
	return strings.Join(ranked[:maxSentences], "\n\n")
}
