package shinden

import (
	"context"
	"net/url"

	"github.com/alvarorichard/Goshinden/internal/util"
)

// Anime is one series. Fields are parsed from the main page or the episodes
// page on first access and kept until ClearCache.
//
// An Anime is not safe for concurrent use.
type Anime struct {
	series  SeriesRef
	fetcher *Fetcher

	mainParsed bool
	main       mainPage

	episodesParsed bool
	episodes       []*Episode
}

func newAnime(c *Client, series SeriesRef) *Anime {
	return &Anime{
		series:  series,
		fetcher: newFetcher(c, series),
	}
}

// checkAvailability fetches the main page once so the factory only hands out
// reachable series. The page stays cached for the first accessor.
func (a *Anime) checkAvailability(ctx context.Context) error {
	if _, err := a.fetcher.FetchPage(ctx, PageMain, nil); err != nil {
		util.Debug("Series unavailable", "url", a.series.String(), "error", err)
		return &UnavailableError{URL: a.series.String(), Err: err}
	}
	return nil
}

func (a *Anime) ensureMainPage(ctx context.Context) error {
	if a.mainParsed {
		return nil
	}

	html, err := a.fetcher.FetchPage(ctx, PageMain, nil)
	if err != nil {
		return err
	}
	page, err := parseMainPage(html, a.fetcher.client.base, a.series.LoginRequired())
	if err != nil {
		return err
	}

	a.main = page
	a.mainParsed = true
	return nil
}

func (a *Anime) ensureEpisodesPage(ctx context.Context) error {
	if a.episodesParsed {
		return nil
	}

	html, err := a.fetcher.FetchPage(ctx, PageEpisodes, nil)
	if err != nil {
		return err
	}
	rows, err := parseEpisodesPage(html, a.fetcher.client.base)
	if err != nil {
		return err
	}

	episodes := make([]*Episode, 0, len(rows))
	for _, row := range rows {
		episodes = append(episodes, newEpisode(a.fetcher, row))
	}

	a.episodes = episodes
	a.episodesParsed = true
	return nil
}

// Title returns the series title
func (a *Anime) Title(ctx context.Context) (string, error) {
	if err := a.ensureMainPage(ctx); err != nil {
		return "", err
	}
	return a.main.title, nil
}

// Rating returns the user rating, 0 when the series has none
func (a *Anime) Rating(ctx context.Context) (float64, error) {
	if err := a.ensureMainPage(ctx); err != nil {
		return 0, err
	}
	return a.main.rating, nil
}

// ImageURL returns the cover, or the placeholder for login-only series
func (a *Anime) ImageURL(ctx context.Context) (*url.URL, error) {
	if err := a.ensureMainPage(ctx); err != nil {
		return nil, err
	}
	u := *a.main.imageURL
	return &u, nil
}

// Description returns the synopsis, empty when the series has none
func (a *Anime) Description(ctx context.Context) (string, error) {
	if err := a.ensureMainPage(ctx); err != nil {
		return "", err
	}
	return a.main.description, nil
}

// Stats returns the user list counters
func (a *Anime) Stats(ctx context.Context) (AnimeStats, error) {
	if err := a.ensureMainPage(ctx); err != nil {
		return AnimeStats{}, err
	}
	return a.main.stats, nil
}

// Details returns a copy of the information box
func (a *Anime) Details(ctx context.Context) (AnimeDetails, error) {
	if err := a.ensureMainPage(ctx); err != nil {
		return AnimeDetails{}, err
	}
	details := a.main.details
	details.Producers = append([]string(nil), details.Producers...)
	return details, nil
}

// Episodes returns the episodes oldest first. The slice is shared with the
// Anime, so repeated calls return the same Episode values.
func (a *Anime) Episodes(ctx context.Context) ([]*Episode, error) {
	if err := a.ensureEpisodesPage(ctx); err != nil {
		return nil, err
	}
	return a.episodes, nil
}

// URL returns the series URL the Anime was created from
func (a *Anime) URL() *url.URL {
	return a.series.URL()
}

// EpisodesURL returns the URL of the episode list
func (a *Anime) EpisodesURL() *url.URL {
	return a.series.EpisodesURL()
}

// LoginRequired reports whether the series is only visible to logged-in users
func (a *Anime) LoginRequired() bool {
	return a.series.LoginRequired()
}

// ClearCache drops the cached pages and parsed fields, so the next accessor
// fetches again.
func (a *Anime) ClearCache() {
	a.fetcher.ClearCache()
	a.mainParsed = false
	a.main = mainPage{}
	a.episodesParsed = false
	a.episodes = nil
}
