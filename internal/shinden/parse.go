package shinden

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

func newDocument(html string, kind PageKind) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", kind)
	}
	return doc, nil
}

// cleanText collapses the whitespace goquery keeps from the markup
func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// parseRating reads the site's comma decimal format. Blank or non-numeric
// ratings ("brak", "-") read as zero.
func parseRating(text string) float64 {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	rating, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return rating
}

// parseCount reads counters that may carry thousands separators
func parseCount(text string) (int, error) {
	digits := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\n', '\t', '.', ',':
			return -1
		}
		return r
	}, text)
	if digits == "" {
		return 0, nil
	}
	return strconv.Atoi(digits)
}
