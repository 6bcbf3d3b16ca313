package risk

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyEmpty(t *testing.T) {
	got := Classify("")
	if got.Overall != SeveritySafe {
		t.Fatalf("expected safe, got %s", got.Overall)
	}
	if got.Items == nil || len(got.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", got.Items)
	}
}

func TestClassifyAutoRenewAndArbitration(t *testing.T) {
	got := Classify("This agreement will auto-renew annually and requires binding arbitration.")
	want := Result{
		Overall: SeverityDanger,
		Items: []Finding{
			{Category: CategoryAutoRenew, Severity: SeverityDanger, Explanation: "Mentions automatic renewal of subscription or payment"},
			{Category: CategoryDispute, Severity: SeverityWarning, Explanation: "Mentions arbitration or dispute resolution terms"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifyCategories(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		overall  Severity
		category []string
	}{
		{name: "plain text", input: "Welcome to our website.", overall: SeveritySafe},
		{name: "fees only", input: "A monthly FEE applies.", overall: SeverityWarning, category: []string{CategoryFees}},
		{name: "third party", input: "We work with third-party vendors.", overall: SeverityWarning, category: []string{CategoryDataSharing}},
		{name: "waiver", input: "You waive all claims.", overall: SeverityDanger, category: []string{CategoryWaiver}},
		{name: "renewal word", input: "Renewal happens yearly.", overall: SeverityDanger, category: []string{CategoryAutoRenew}},
		{
			name:     "all five",
			input:    "Auto-renewal, billing, personal data, limitation of liability and dispute resolution.",
			overall:  SeverityDanger,
			category: []string{CategoryAutoRenew, CategoryFees, CategoryDataSharing, CategoryWaiver, CategoryDispute},
		},
		{name: "repeated matches count once", input: "fee fee fee charge cost", overall: SeverityWarning, category: []string{CategoryFees}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.input)
			if got.Overall != tc.overall {
				t.Fatalf("expected overall %s, got %s", tc.overall, got.Overall)
			}
			var categories []string
			for _, item := range got.Items {
				categories = append(categories, item.Category)
			}
			if diff := cmp.Diff(tc.category, categories); diff != "" {
				t.Fatalf("categories mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeverityRank(t *testing.T) {
	if !(SeveritySafe.Rank() < SeverityWarning.Rank() && SeverityWarning.Rank() < SeverityDanger.Rank()) {
		t.Fatalf("unexpected severity ordering")
	}
}
