package extract

import "testing"

func TestCanonicalHost(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "https://Example.COM/terms", want: "example.com"},
		{input: "http://sub.example.co.uk.:8080/x", want: "sub.example.co.uk"},
		{input: "  https://acme.com  ", want: "acme.com"},
		{input: "http://localhost:8089/privacy", want: "localhost"},
		{input: "http://127.0.0.1:1234/", want: "127.0.0.1"},
		{input: "http://[::1]:80/", want: "::1"},

		{input: "ftp://example.com", wantErr: true},
		{input: "example.com/terms", wantErr: true},
		{input: "https://", wantErr: true},
		{input: "https://-bad.com", wantErr: true},
		{input: "https://acme.c", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := CanonicalHost(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("CanonicalHost(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
