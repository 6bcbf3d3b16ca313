package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// containerHints mark elements that usually wrap the body of a legal page.
var containerHints = []string{"terms", "privacy", "legal", "policy", "tos", "agreement", "content", "article", "main"}

const maxDepth = 200

type Document struct {
	Title string
	Text  string
}

// ExtractHTML returns the page title and the text of the most likely legal
// container, falling back to the whole body.
func ExtractHTML(htmlContent string) (Document, error) {
	root, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return Document{}, err
	}
	doc := Document{Title: cleanText(collectTitle(root))}

	var best string
	for _, candidate := range findContainers(root, 0) {
		text := renderText(candidate)
		if len(text) > len(best) {
			best = text
		}
	}
	if best == "" {
		best = renderText(root)
	}
	doc.Text = best
	return doc, nil
}

func collectTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := collectTitle(c); title != "" {
			return title
		}
	}
	return ""
}

func findContainers(n *html.Node, depth int) []*html.Node {
	if depth > maxDepth {
		return nil
	}
	if n.Type == html.ElementNode && isContainer(n) {
		return []*html.Node{n}
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findContainers(c, depth+1)...)
	}
	return out
}

func isContainer(n *html.Node) bool {
	switch n.Data {
	case "main", "article":
		return true
	case "div", "section":
	default:
		return false
	}
	if getAttr(n, "role") == "main" {
		return true
	}
	marker := strings.ToLower(getAttr(n, "id") + " " + getAttr(n, "class"))
	for _, hint := range containerHints {
		if strings.Contains(marker, hint) {
			return true
		}
	}
	return false
}

func renderText(n *html.Node) string {
	var sb strings.Builder
	writeText(n, &sb, 0)
	return cleanText(sb.String())
}

func writeText(n *html.Node, sb *strings.Builder, depth int) {
	if depth > maxDepth {
		return
	}
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "iframe", "svg", "nav", "footer", "header", "form", "button", "title":
			return
		case "p", "div", "section", "article", "main", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "table", "tr":
			sb.WriteString("\n\n")
		case "br", "li":
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(c, sb, depth+1)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func cleanText(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
