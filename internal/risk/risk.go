package risk

import (
	"regexp"
)

type Severity string

const (
	SeveritySafe    Severity = "safe"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Rank orders severities: safe < warning < danger.
func (s Severity) Rank() int {
	switch s {
	case SeverityDanger:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

const (
	CategoryAutoRenew   = "auto-renew"
	CategoryFees        = "fees"
	CategoryDataSharing = "data-sharing"
	CategoryWaiver      = "waiver"
	CategoryDispute     = "dispute"
)

type Finding struct {
	Category    string   `json:"category"`
	Severity    Severity `json:"severity"`
	Explanation string   `json:"explanation"`
}

type Result struct {
	Overall Severity  `json:"overall"`
	Items   []Finding `json:"items"`
}

type Check struct {
	Category    string
	Severity    Severity
	Explanation string
	Trigger     *regexp.Regexp
}

// Checks are evaluated in order and findings keep that order.
var Checks = []Check{
	{
		Category:    CategoryAutoRenew,
		Severity:    SeverityDanger,
		Explanation: "Mentions automatic renewal of subscription or payment",
		Trigger:     regexp.MustCompile(`(?i)auto-?renew|renewal`),
	},
	{
		Category:    CategoryFees,
		Severity:    SeverityWarning,
		Explanation: "Mentions fees, charges or billing terms",
		Trigger:     regexp.MustCompile(`(?i)fee|charge|cost|billing`),
	},
	{
		Category:    CategoryDataSharing,
		Severity:    SeverityWarning,
		Explanation: "Mentions sharing or processing of personal data with third parties",
		Trigger:     regexp.MustCompile(`(?i)share your data|third[- ]?party|personal data|process personal data`),
	},
	{
		Category:    CategoryWaiver,
		Severity:    SeverityDanger,
		Explanation: "Mentions waiver of rights or limitation of liability",
		Trigger:     regexp.MustCompile(`(?i)waive|waiver|limit liability|limitation of liability`),
	},
	{
		Category:    CategoryDispute,
		Severity:    SeverityWarning,
		Explanation: "Mentions arbitration or dispute resolution terms",
		Trigger:     regexp.MustCompile(`(?i)arbitration|dispute resolution|class action waiver`),
	},
}

// Classify runs every check against text. Each category yields at most one
// finding no matter how often its trigger matches.
func Classify(text string) Result {
	res := Result{Overall: SeveritySafe, Items: []Finding{}}
	if text == "" {
		return res
	}
	for _, check := range Checks {
		if !check.Trigger.MatchString(text) {
			continue
		}
		res.Items = append(res.Items, Finding{
			Category:    check.Category,
			Severity:    check.Severity,
			Explanation: check.Explanation,
		})
		if check.Severity.Rank() > res.Overall.Rank() {
			res.Overall = check.Severity
		}
	}
	return res
}

// Explanations lists the fixed explanation phrases in check order.
func Explanations() []string {
	out := make([]string, 0, len(Checks))
	for _, check := range Checks {
		out = append(out, check.Explanation)
	}
	return out
}
