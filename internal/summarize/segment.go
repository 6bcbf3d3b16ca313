package summarize

import (
	"regexp"
	"strings"
)

var (
	newlineRunRE = regexp.MustCompile(`[\r\n]+`)
	boundaryRE   = regexp.MustCompile(`[.!?][\s\p{Zs}]+`)
)

// Sentences splits text into trimmed, non-empty sentences in document order.
// A boundary is any whitespace run, including no-break and other Unicode
// spaces, that directly follows '.', '!' or '?'.
func Sentences(text string) []string {
	flat := newlineRunRE.ReplaceAllString(text, " ")
	var out []string
	start := 0
	for _, loc := range boundaryRE.FindAllStringIndex(flat, -1) {
		// keep the punctuation mark with its sentence
		out = appendTrimmed(out, flat[start:loc[0]+1])
		start = loc[1]
	}
	return appendTrimmed(out, flat[start:])
}

func appendTrimmed(out []string, piece string) []string {
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return out
	}
	return append(out, piece)
}
