package shinden

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/samber/mo"
)

// Player is one video source listed for an episode
type Player struct {
	OnlineID string
	// Service is the hosting service name, e.g. "cda"
	Service          string
	Username         string
	UserID           mo.Option[string]
	AudioLanguage    string
	SubtitleLanguage string
	MaxResolution    string
	SubtitleAuthor   string
	Added            string
	Source           string

	fetcher     *Fetcher
	externalURL *url.URL
}

// ExternalURL resolves the embed URL through the player API. The first call
// waits for the configured player load delay; later calls return the
// memoized URL.
func (p *Player) ExternalURL(ctx context.Context) (*url.URL, error) {
	if p.externalURL != nil {
		u := *p.externalURL
		return &u, nil
	}
	if p.fetcher == nil {
		return nil, errors.Wrap(ErrMissingArgument, "player is not attached to a series")
	}

	u, err := p.fetcher.ExternalPlayerURL(ctx, p)
	if err != nil {
		return nil, err
	}
	p.externalURL = u

	out := *u
	return &out, nil
}
