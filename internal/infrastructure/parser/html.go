package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup and entities from provider snippets and collapses whitespace.
// Text that does not look like HTML is only whitespace-normalized.
func PlainText(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return collapse(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return collapse(fragment)
	}

	doc.Find("script, style, noscript").Remove()
	return collapse(doc.Text())
}

// FirstImage returns the src of the first <img> in an HTML fragment, if any.
func FirstImage(fragment string) string {
	if !strings.Contains(fragment, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return strings.TrimSpace(src)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
