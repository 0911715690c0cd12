package shinden

import (
	"context"
	"net/url"

	"github.com/alvarorichard/Goshinden/internal/util"
	"github.com/pkg/errors"
)

// PageKind names the page a fetch or a parse error refers to
type PageKind int

const (
	PageMain PageKind = iota
	PageEpisodes
	PagePlayers
	PageSearch
	PageEmbed
)

func (k PageKind) String() string {
	switch k {
	case PageMain:
		return "main page"
	case PageEpisodes:
		return "episodes page"
	case PagePlayers:
		return "players page"
	case PageSearch:
		return "search page"
	case PageEmbed:
		return "player embed"
	default:
		return "unknown page"
	}
}

type pageSlot struct {
	html    string
	healthy bool
}

// Fetcher caches the pages of one series. Main and episodes pages have a
// single slot each; players pages are keyed by their URL so that episodes
// never share a cached body.
//
// A Fetcher is not safe for concurrent use.
type Fetcher struct {
	client  *Client
	series  SeriesRef
	main    pageSlot
	episode pageSlot
	players map[string]*pageSlot
}

func newFetcher(c *Client, series SeriesRef) *Fetcher {
	return &Fetcher{
		client:  c,
		series:  series,
		players: make(map[string]*pageSlot),
	}
}

// FetchPage returns the verified HTML for kind, serving it from the cache
// when a healthy copy exists. PagePlayers requires an episode with a
// players link.
func (f *Fetcher) FetchPage(ctx context.Context, kind PageKind, episode *Episode) (string, error) {
	slot, target, err := f.slot(kind, episode)
	if err != nil {
		return "", err
	}

	if slot.healthy {
		util.Debug("Serving cached page", "page", kind.String(), "url", target)
		util.PerfCount("cache hits")
		return slot.html, nil
	}

	html, err := f.client.fetchVerified(ctx, target, kind)
	if err != nil {
		return "", err
	}

	slot.html = html
	slot.healthy = true
	return html, nil
}

func (f *Fetcher) slot(kind PageKind, episode *Episode) (*pageSlot, string, error) {
	switch kind {
	case PageMain:
		return &f.main, f.series.String(), nil
	case PageEpisodes:
		return &f.episode, f.series.EpisodesURL().String(), nil
	case PagePlayers:
		if episode == nil {
			return nil, "", errors.Wrap(ErrMissingArgument, "fetching a players page requires an episode")
		}
		playersURL, ok := episode.PlayersURL.Get()
		if !ok || playersURL == nil {
			return nil, "", errors.Wrapf(ErrMissingArgument, "episode %q has no players page", episode.Title)
		}
		key := playersURL.String()
		s, ok := f.players[key]
		if !ok {
			s = &pageSlot{}
			f.players[key] = s
		}
		return s, key, nil
	default:
		return nil, "", errors.Errorf("%s is not cached per series", kind)
	}
}

// ExternalPlayerURL asks the player API for the embed URL of p.
// It always performs network I/O; memoization lives on Player.
func (f *Fetcher) ExternalPlayerURL(ctx context.Context, p *Player) (*url.URL, error) {
	if p == nil {
		return nil, errors.Wrap(ErrMissingArgument, "player is nil")
	}
	return f.client.resolveExternalPlayer(ctx, p.OnlineID)
}

// ClearCache drops every cached page and health flag
func (f *Fetcher) ClearCache() {
	f.main = pageSlot{}
	f.episode = pageSlot{}
	f.players = make(map[string]*pageSlot)
}
