package translate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const DefaultLanguage = "en"

type Phrase struct {
	Source      string
	Translation string
}

// Dictionary maps a language code to phrase pairs applied in slice order.
type Dictionary map[string][]Phrase

// Languages returns the codes with registered phrases, sorted.
func (d Dictionary) Languages() []string {
	codes := lo.Keys(d)
	sort.Strings(codes)
	return codes
}

func IsDefault(lang string) bool {
	lang = normalize(lang)
	return lang == "" || lang == DefaultLanguage
}

// Marker is appended when no registered phrase was found in the text.
func Marker(lang string) string {
	return fmt.Sprintf("\n\n[approximate translation: %s]", normalize(lang))
}

// Translate uses the built-in phrase dictionary.
func Translate(text string, lang string) string {
	return Phrases.Translate(text, lang)
}

// Translate replaces every literal occurrence of each registered phrase.
// Unknown languages behave as an empty phrase list.
func (d Dictionary) Translate(text string, lang string) string {
	if IsDefault(lang) {
		return text
	}
	out := text
	for _, phrase := range d[normalize(lang)] {
		out = strings.ReplaceAll(out, phrase.Source, phrase.Translation)
	}
	if out == text {
		return text + Marker(lang)
	}
	return out
}

func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
