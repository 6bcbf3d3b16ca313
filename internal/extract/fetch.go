package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedContent = errors.New("unsupported content type")

const (
	defaultMaxBytes  = 2 << 20
	defaultUserAgent = "termslens/0.1"
)

type Page struct {
	URL         string `json:"url"`
	Host        string `json:"host"`
	Title       string `json:"title,omitempty"`
	Text        string `json:"text"`
	ContentType string `json:"content_type"`
}

type Fetcher struct {
	Client    *http.Client
	MaxBytes  int64
	UserAgent string
}

func NewFetcher(timeout time.Duration, maxBytes int64, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		MaxBytes:  maxBytes,
		UserAgent: userAgent,
	}
}

// Fetch downloads an http(s) page and returns its readable text. HTML is
// reduced to the most likely legal container; plain text is returned as-is.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	host, err := CanonicalHost(rawURL)
	if err != nil {
		return Page{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, err
	}
	userAgent := f.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", host, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Page{}, fmt.Errorf("fetch %s: status %d", host, resp.StatusCode)
	}

	maxBytes := f.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return Page{}, fmt.Errorf("read %s: %w", host, err)
	}

	page := Page{URL: rawURL, Host: host}
	switch contentKind(resp.Header.Get("Content-Type"), body) {
	case "text/html":
		doc, err := ExtractHTML(string(body))
		if err != nil {
			return Page{}, fmt.Errorf("parse %s: %w", host, err)
		}
		page.ContentType = "text/html"
		page.Title = doc.Title
		page.Text = doc.Text
	case "text/plain":
		page.ContentType = "text/plain"
		page.Text = strings.TrimSpace(string(body))
	default:
		return Page{}, fmt.Errorf("%w: %s", ErrUnsupportedContent, mimetype.Detect(body).String())
	}
	return page, nil
}

// contentKind trusts sniffed HTML first, then a declared text type, then a
// sniffed plain text body.
func contentKind(header string, body []byte) string {
	detected := mimetype.Detect(body)
	if detected.Is("text/html") {
		return "text/html"
	}
	declared, _, _ := mime.ParseMediaType(header)
	switch declared {
	case "text/html", "application/xhtml+xml":
		if detected.Is("text/plain") || detected.Is("text/xml") || detected.Is("application/xml") {
			return "text/html"
		}
	case "text/plain":
		if detected.Is("text/plain") {
			return "text/plain"
		}
	}
	if declared == "" && detected.Is("text/plain") {
		return "text/plain"
	}
	return ""
}
