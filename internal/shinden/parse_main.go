package shinden

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

const minStats = 7

type mainPage struct {
	title       string
	description string
	rating      float64
	imageURL    *url.URL
	stats       AnimeStats
	details     AnimeDetails
}

// parseMainPage fills every main-page field in one pass. Covers of
// login-only series are hidden from guests, so those get the placeholder.
func parseMainPage(html string, base *url.URL, loginRequired bool) (mainPage, error) {
	var page mainPage

	doc, err := newDocument(html, PageMain)
	if err != nil {
		return page, err
	}

	description := doc.Find("#description")
	if description.Length() == 0 {
		return page, missingField(PageMain, "description")
	}
	page.description = strings.TrimSpace(description.Find("p").Text())

	title := doc.Find("span.title").First()
	if title.Length() == 0 {
		return page, missingField(PageMain, "title")
	}
	page.title = cleanText(title)

	rating := doc.Find("span.info-aside-rating-user").First()
	if rating.Length() == 0 {
		return page, missingField(PageMain, "rating")
	}
	page.rating = parseRating(rating.Text())

	if page.imageURL, err = parseCover(doc, base, loginRequired); err != nil {
		return page, err
	}
	if page.stats, err = parseStats(doc); err != nil {
		return page, err
	}
	if page.details, err = parseDetails(doc); err != nil {
		return page, err
	}

	return page, nil
}

func parseCover(doc *goquery.Document, base *url.URL, loginRequired bool) (*url.URL, error) {
	if loginRequired {
		return url.Parse(PlaceholderImageURL)
	}

	src, ok := doc.Find("section.title-cover img.info-aside-img").First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return nil, missingField(PageMain, "image")
	}
	return resolveAgainst(base, src)
}

func parseStats(doc *goquery.Document) (AnimeStats, error) {
	var counts []int
	var parseErr error

	doc.Find("section.title-stats dd").EachWithBreak(func(i int, s *goquery.Selection) bool {
		n, err := parseCount(s.Text())
		if err != nil {
			parseErr = errors.Wrapf(err, "error parsing %s: stat #%d", PageMain, i+1)
			return false
		}
		counts = append(counts, n)
		return true
	})
	if parseErr != nil {
		return AnimeStats{}, parseErr
	}
	if len(counts) < minStats {
		return AnimeStats{}, errors.Wrapf(missingField(PageMain, "stats"), "found %d of %d values", len(counts), minStats)
	}

	return AnimeStats{
		CurrentlyWatching: counts[0],
		Viewed:            counts[1],
		Skipped:           counts[2],
		OnHold:            counts[3],
		Abandoned:         counts[4],
		PlansToWatch:      counts[5],
		Likes:             counts[6],
	}, nil
}

// parseDetails pairs every dt with the dd at the same index
func parseDetails(doc *goquery.Document) (AnimeDetails, error) {
	var details AnimeDetails

	section := doc.Find("section.title-small-info")
	labels := section.Find("dt")
	values := section.Find("dd")
	if labels.Length() != values.Length() {
		return details, errors.Wrapf(missingField(PageMain, "details"),
			"%d labels but %d values", labels.Length(), values.Length())
	}

	var err error
	labels.EachWithBreak(func(i int, dt *goquery.Selection) bool {
		label := strings.TrimSpace(strings.Replace(dt.Text(), ":", "", 1))
		err = details.setDetail(label, values.Eq(i).Text())
		return err == nil
	})
	if err != nil {
		return AnimeDetails{}, errors.WithStack(err)
	}
	return details, nil
}
