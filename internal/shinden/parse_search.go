package shinden

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const voidCover = "javascript:void(0)"

// parseSearchResults reads every result row. The first ul.div-row is the
// column header.
func parseSearchResults(doc *goquery.Document, base *url.URL) ([]SearchResult, error) {
	results := []SearchResult{}

	var err error
	doc.Find("ul.div-row").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true
		}
		var result SearchResult
		result, err = parseSearchRow(row, base)
		if err != nil {
			return false
		}
		results = append(results, result)
		return true
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func parseSearchRow(row *goquery.Selection, base *url.URL) (SearchResult, error) {
	desc := row.Find("li.desc-col")

	href, ok := desc.Find("a").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return SearchResult{}, missingField(PageSearch, "series link")
	}
	seriesURL, err := resolveAgainst(base, href)
	if err != nil {
		return SearchResult{}, err
	}

	imageURL, err := parseSearchCover(row, base)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		Title:     cleanText(desc.Find("h3").First()),
		Kind:      AnimeKind(cleanText(row.Find("li.title-kind-col"))),
		Status:    AnimeStatus(cleanText(row.Find("li.title-status-col"))),
		Rating:    parseRating(row.Find("li.rate-top").First().Text()),
		SeriesURL: seriesURL,
		ImageURL:  imageURL,
	}, nil
}

func parseSearchCover(row *goquery.Selection, base *url.URL) (*url.URL, error) {
	href := strings.TrimSpace(row.Find(".cover-col a").First().AttrOr("href", ""))
	if href == "" || href == voidCover {
		return url.Parse(PlaceholderImageURL)
	}
	return resolveAgainst(base, href)
}

// parseTotalPages reads the page parameter of the "last" pager link.
// Single-page results have no pager.
func parseTotalPages(doc *goquery.Document) int {
	href, ok := doc.Find(`a[rel="last"]`).First().Attr("href")
	if !ok {
		return 1
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return 1
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func resolveAgainst(base *url.URL, href string) (*url.URL, error) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid link %q", href)
	}
	return base.ResolveReference(ref), nil
}
