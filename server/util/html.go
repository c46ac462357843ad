package util

import (
	"strings"

	"golang.org/x/net/html"
)

// HtmlToText extracts the visible text of an HTML fragment, capped at
// maxWords words. Plain strings pass through untouched apart from the cap.
func HtmlToText(fragment string, maxWords int) string {
	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return capWords(fragment, maxWords)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	return capWords(b.String(), maxWords)
}

func capWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}

	return strings.Join(words, " ")
}
