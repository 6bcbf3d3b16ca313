package rewrite

import (
	"regexp"
	"strings"
)

// Rule replaces every case-insensitive match of Pattern with Replacement.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

func newRule(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(`(?i)` + pattern), Replacement: replacement}
}

// Rules run in slice order and each rule sees the output of the rules before
// it. Reordering changes results.
var Rules = []Rule{
	newRule(`you (agree|acknowledge|consent) to`, "you agree to"),
	newRule(`hereby`, "this means"),
	newRule(`to the extent permitted by law`, "if the law allows it"),
	newRule(`in the event of`, "if"),
	newRule(`may (be )?liable for`, "could be responsible for"),
	newRule(`third[- ]?party( data| services| providers)?`, "other companies"),
	newRule(`auto-?renew(al)?`, "auto-renewal (automatic renewal of service or payment)"),
	newRule(`terminate(ion|ing)?`, "end/stop"),
}

var whitespaceRunRE = regexp.MustCompile(`[\s\p{Zs}]{2,}`)

// Rewrite applies Rules to text and normalizes whitespace. It is not
// idempotent: the auto-renewal rule matches its own replacement.
func Rewrite(text string) string {
	return Apply(Rules, text)
}

func Apply(rules []Rule, text string) string {
	for _, rule := range rules {
		text = rule.Pattern.ReplaceAllLiteralString(text, rule.Replacement)
	}
	text = whitespaceRunRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
