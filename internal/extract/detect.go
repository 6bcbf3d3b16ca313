package extract

import (
	"net/url"
	"sort"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// LegalKeywords are the phrases that mark a terms or privacy page.
var LegalKeywords = []string{
	"terms of service",
	"terms of use",
	"terms and conditions",
	"privacy policy",
	"privacy notice",
	"cookie policy",
	"user agreement",
	"end user license agreement",
	"acceptable use policy",
}

var legalPathSegments = map[string]bool{
	"terms":      true,
	"tos":        true,
	"privacy":    true,
	"legal":      true,
	"eula":       true,
	"policy":     true,
	"policies":   true,
	"conditions": true,
}

const (
	bodyScanRunes  = 4000
	legalThreshold = 2
)

type Detection struct {
	Legal   bool     `json:"legal"`
	Host    string   `json:"host,omitempty"`
	Score   int      `json:"score"`
	Signals []string `json:"signals"`
}

type Detector struct {
	matcher *goahocorasick.Machine
}

func NewDetector(keywords []string) (*Detector, error) {
	normalized := lo.Uniq(lo.FilterMap(keywords, func(k string, _ int) (string, bool) {
		k = normalizeForMatch(k)
		return k, k != ""
	}))
	sort.Strings(normalized)
	patterns := make([][]rune, len(normalized))
	for i, k := range normalized {
		patterns[i] = []rune(k)
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Detector{matcher: m}, nil
}

var defaultDetector = func() *Detector {
	d, err := NewDetector(LegalKeywords)
	if err != nil {
		panic(err)
	}
	return d
}()

// Detect reports whether a page looks like terms or a privacy policy using
// the built-in keyword list.
func Detect(rawURL, title, text string) Detection {
	return defaultDetector.Detect(rawURL, title, text)
}

// Detect scores title and URL matches at 2 and body matches at 1. A page is
// legal at a score of 2 or more.
func (d *Detector) Detect(rawURL, title, text string) Detection {
	det := Detection{Signals: []string{}}
	if host, err := CanonicalHost(rawURL); err == nil {
		det.Host = host
	}

	for _, kw := range d.search(title) {
		det.Score += 2
		det.Signals = append(det.Signals, "title:"+kw)
	}
	urlPath := pathOf(rawURL)
	for _, kw := range d.search(urlPath) {
		det.Score += 2
		det.Signals = append(det.Signals, "url:"+kw)
	}
	for _, segment := range strings.Fields(urlPath) {
		if legalPathSegments[segment] {
			det.Score += 2
			det.Signals = append(det.Signals, "path:"+segment)
		}
	}
	for _, kw := range d.search(head(text, bodyScanRunes)) {
		det.Score++
		det.Signals = append(det.Signals, "body:"+kw)
	}
	det.Signals = lo.Uniq(det.Signals)
	det.Legal = det.Score >= legalThreshold
	return det
}

func (d *Detector) search(s string) []string {
	s = normalizeForMatch(s)
	if s == "" {
		return nil
	}
	hits := d.matcher.MultiPatternSearch([]rune(s), false)
	words := make([]string, 0, len(hits))
	for _, hit := range hits {
		words = append(words, string(hit.Word))
	}
	return lo.Uniq(words)
}

func pathOf(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return normalizeForMatch(u.Path)
}

// normalizeForMatch lowercases and turns punctuation runs into single spaces
// so "terms-of-service" and "Terms of Service" match the same keyword.
func normalizeForMatch(s string) string {
	var sb strings.Builder
	space := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(unicode.ToLower(r))
			space = false
			continue
		}
		if !space {
			sb.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(sb.String())
}

func head(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
