package extract

import (
	"strings"
	"testing"
)

const termsPage = `<!doctype html>
<html><head><title> Acme Terms of Service </title><script>var x = 1;</script></head>
<body>
<header><nav>Home | Pricing</nav></header>
<div class="sidebar">Related links</div>
<div id="terms-body" class="legal">
  <h1>Terms of Service</h1>
  <p>By using Acme you   agree to these terms.</p>
  <p>Your plan will auto-renew each month.</p>
  <ul><li>Fees are billed monthly</li><li>Disputes go to arbitration</li></ul>
</div>
<footer>Copyright Acme</footer>
</body></html>`

func TestExtractHTMLPrefersLegalContainer(t *testing.T) {
	doc, err := ExtractHTML(termsPage)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Title != "Acme Terms of Service" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	for _, want := range []string{"Terms of Service", "By using Acme you agree to these terms.", "auto-renew", "Fees are billed monthly"} {
		if !strings.Contains(doc.Text, want) {
			t.Fatalf("text missing %q:\n%s", want, doc.Text)
		}
	}
	for _, unwanted := range []string{"Home | Pricing", "Copyright Acme", "Related links", "var x"} {
		if strings.Contains(doc.Text, unwanted) {
			t.Fatalf("text should not contain %q:\n%s", unwanted, doc.Text)
		}
	}
	if strings.Contains(doc.Text, "\n\n\n") {
		t.Fatalf("expected newline runs to be collapsed")
	}
}

func TestExtractHTMLFallsBackToBody(t *testing.T) {
	doc, err := ExtractHTML(`<html><body><p>Only paragraph.</p><footer>foot</footer></body></html>`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if doc.Text != "Only paragraph." {
		t.Fatalf("unexpected text %q", doc.Text)
	}
	if doc.Title != "" {
		t.Fatalf("expected empty title, got %q", doc.Title)
	}
}

func TestExtractHTMLPicksLongestContainer(t *testing.T) {
	page := `<html><body>
<main>Short main.</main>
<section class="privacy-policy"><p>We process personal data to run the service.</p><p>We keep it for two years.</p></section>
</body></html>`
	doc, err := ExtractHTML(page)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.HasPrefix(doc.Text, "We process personal data") {
		t.Fatalf("expected privacy section, got %q", doc.Text)
	}
}
