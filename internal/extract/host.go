package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var validHostnameRE = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// CanonicalHost parses an http(s) URL and returns its host lowercased,
// without port or trailing dot. localhost and IP hosts are accepted as-is.
func CanonicalHost(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme: %q", u.Scheme)
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return "", fmt.Errorf("url has no host: %q", rawURL)
	}
	if host == "localhost" || isIP(host) {
		return host, nil
	}
	if !validHostnameRE.MatchString(host) {
		return "", fmt.Errorf("invalid host: %q", host)
	}
	return host, nil
}

func isIP(host string) bool {
	if strings.Contains(host, ":") {
		return true
	}
	for _, r := range host {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
