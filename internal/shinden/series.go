package shinden

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	seriesPathPrefix = "/series/"
	loginPathPrefix  = "/titles/"
	episodesSuffix   = "/all-episodes"
)

// SeriesRef is a validated series URL. It is immutable once created.
type SeriesRef struct {
	url           *url.URL
	loginRequired bool
}

// ParseSeriesURL checks that raw has the same origin as base and a path
// starting with /series/ or /titles/. The /titles/ form marks a series that
// is only visible to logged-in users.
func ParseSeriesURL(raw string, base *url.URL) (SeriesRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return SeriesRef{}, errors.Wrapf(ErrInvalidURL, "%q: %v", raw, err)
	}
	if origin(u) != origin(base) {
		return SeriesRef{}, errors.Wrapf(ErrInvalidURL, "%q: expected origin %s", raw, origin(base))
	}

	switch {
	case strings.HasPrefix(u.Path, seriesPathPrefix):
		return SeriesRef{url: u}, nil
	case strings.HasPrefix(u.Path, loginPathPrefix):
		return SeriesRef{url: u, loginRequired: true}, nil
	default:
		return SeriesRef{}, errors.Wrapf(ErrInvalidURL, "%q: path must start with %s or %s", raw, seriesPathPrefix, loginPathPrefix)
	}
}

// URL returns a copy of the series URL
func (s SeriesRef) URL() *url.URL {
	u := *s.url
	return &u
}

func (s SeriesRef) String() string {
	if s.url == nil {
		return ""
	}
	return s.url.String()
}

// LoginRequired reports whether the series lives under /titles/
func (s SeriesRef) LoginRequired() bool {
	return s.loginRequired
}

// EpisodesURL is the series URL with /all-episodes appended to its path
func (s SeriesRef) EpisodesURL() *url.URL {
	u := *s.url
	u.Path = strings.TrimSuffix(u.Path, "/") + episodesSuffix
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return &u
}

// origin is scheme://host with default ports dropped
func origin(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "https" && port == "443") || (scheme == "http" && port == "80") {
		port = ""
	}
	if port != "" {
		host += ":" + port
	}
	return scheme + "://" + host
}
