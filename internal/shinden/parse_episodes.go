package shinden

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo/mutable"
	"github.com/samber/mo"
)

type episodeRow struct {
	title        string
	emissionDate string
	languages    []string
	playersURL   mo.Option[*url.URL]
}

// parseEpisodesPage returns the rows oldest first. The site lists the newest
// episode at the top.
func parseEpisodesPage(html string, base *url.URL) ([]episodeRow, error) {
	doc, err := newDocument(html, PageEpisodes)
	if err != nil {
		return nil, err
	}

	var rows []episodeRow
	doc.Find("tr[data-episode-no]").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		var row episodeRow
		row, err = parseEpisodeRow(tr, base)
		if err != nil {
			return false
		}
		rows = append(rows, row)
		return true
	})
	if err != nil {
		return nil, err
	}

	mutable.Reverse(rows)
	return rows, nil
}

func parseEpisodeRow(tr *goquery.Selection, base *url.URL) (episodeRow, error) {
	row := episodeRow{
		title:        cleanText(tr.Find("td.ep-title")),
		emissionDate: strings.TrimSpace(tr.Find("td.ep-date").Text()),
		languages:    []string{},
		playersURL:   mo.None[*url.URL](),
	}

	tr.Find("span.flag-icon").Each(func(_ int, flag *goquery.Selection) {
		if lang, ok := flag.Attr("title"); ok && lang != "" {
			row.languages = append(row.languages, lang)
		}
	})

	if href, ok := tr.Find("a.button.active.detail").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		playersURL, err := resolveAgainst(base, href)
		if err != nil {
			return row, err
		}
		row.playersURL = mo.Some(playersURL)
	}

	return row, nil
}
