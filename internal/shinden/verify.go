package shinden

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// siteHeaderSelector matches the logo every real shinden page renders.
// Challenge and error pages served in its place do not have it.
const siteHeaderSelector = "header.logo"

// Verify reports whether html is a genuine shinden page
func Verify(html string) bool {
	if html == "" {
		return false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return doc.Find(siteHeaderSelector).Length() > 0
}
