package shinden

import (
	"context"
	"net/url"

	"github.com/samber/mo"
)

// Episode is one row of the episodes page. Its players are fetched through
// the owning Anime's Fetcher on first access.
type Episode struct {
	Title        string
	EmissionDate string
	// Languages holds the flag titles in page order
	Languages  []string
	PlayersURL mo.Option[*url.URL]

	fetcher       *Fetcher
	playersParsed bool
	players       []*Player
}

func newEpisode(f *Fetcher, row episodeRow) *Episode {
	return &Episode{
		Title:        row.title,
		EmissionDate: row.emissionDate,
		Languages:    row.languages,
		PlayersURL:   row.playersURL,
		fetcher:      f,
	}
}

// Players returns the players listed for the episode in page order.
// Episodes without a players link fail with ErrMissingArgument.
func (e *Episode) Players(ctx context.Context) ([]*Player, error) {
	if e.playersParsed {
		return e.players, nil
	}

	html, err := e.fetcher.FetchPage(ctx, PagePlayers, e)
	if err != nil {
		return nil, err
	}
	players, err := parsePlayersPage(html)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		p.fetcher = e.fetcher
	}

	e.players = players
	e.playersParsed = true
	return players, nil
}
