package renderer

import (
	"strings"

	"golang.org/x/net/html"
)

// Excerpt extracts a plain-text excerpt from a rendered article body, used
// when the front matter carries no summary. It takes the text of the first
// paragraph, truncated to maxLen runes on a word boundary.
func Excerpt(fragment string, maxLen int) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}

	p := findFirst(node, "p")
	if p == nil {
		return ""
	}

	text := strings.Join(strings.Fields(collectText(p)), " ")
	runes := []rune(text)
	if maxLen <= 0 || len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if runes[maxLen] != ' ' {
		// Avoid splitting a word mid-way
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(collectText(c))
	}
	return b.String()
}
