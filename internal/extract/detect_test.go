package extract

import (
	"slices"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		title   string
		text    string
		legal   bool
		signals []string
	}{
		{
			name:    "terms url and title",
			url:     "https://www.Example.com/legal/terms-of-service",
			title:   "Terms of Service | Example",
			legal:   true,
			signals: []string{"title:terms of service", "url:terms of service", "path:legal", "path:terms"},
		},
		{
			name:    "privacy path only",
			url:     "https://shop.example.com/privacy",
			legal:   true,
			signals: []string{"path:privacy"},
		},
		{
			name:    "body mention alone is not enough",
			url:     "https://blog.example.com/posts/launch",
			title:   "We launched",
			text:    "Read our privacy policy for details.",
			legal:   false,
			signals: []string{"body:privacy policy"},
		},
		{
			name:    "two body keywords",
			url:     "https://example.com/help",
			text:    "This user agreement and the cookie policy apply to you.",
			legal:   true,
			signals: []string{"body:cookie policy", "body:user agreement"},
		},
		{
			name:    "plain page",
			url:     "https://example.com/pricing",
			title:   "Pricing",
			text:    "Pick a plan.",
			legal:   false,
			signals: []string{},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			det := Detect(tc.url, tc.title, tc.text)
			if det.Legal != tc.legal {
				t.Fatalf("legal = %v, want %v (score %d, signals %v)", det.Legal, tc.legal, det.Score, det.Signals)
			}
			for _, want := range tc.signals {
				if !slices.Contains(det.Signals, want) {
					t.Fatalf("missing signal %q in %v", want, det.Signals)
				}
			}
			if len(tc.signals) == 0 && len(det.Signals) != 0 {
				t.Fatalf("expected no signals, got %v", det.Signals)
			}
		})
	}
}

func TestDetectHost(t *testing.T) {
	det := Detect("https://WWW.Example.com:443/tos", "", "")
	if det.Host != "www.example.com" {
		t.Fatalf("unexpected host %q", det.Host)
	}
	if Detect("not a url", "", "").Host != "" {
		t.Fatalf("expected empty host for invalid url")
	}
}

func TestNormalizeForMatch(t *testing.T) {
	if got := normalizeForMatch("/Terms-of_Service.html"); got != "terms of service html" {
		t.Fatalf("unexpected normalization %q", got)
	}
}
