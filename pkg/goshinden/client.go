// Package goshinden provides a public API for browsing shinden.pl: series
// metadata, episode lists, player listings and search.
// This package can be used as a library in other Go projects.
package goshinden

import (
	"context"
	"net/http"
	"time"

	"github.com/alvarorichard/Goshinden/internal/shinden"
)

// Options configures a Client
type Options struct {
	// BaseURL is the site origin, https://shinden.pl by default
	BaseURL string
	// APIBaseURL hosts the external player API, https://api4.shinden.pl by default
	APIBaseURL string
	// MaxRetries is how many times a page is requested until it verifies
	MaxRetries int
	// RetryDelay is the pause between two attempts
	RetryDelay time.Duration
	// PlayerLoadDelay is the pause the player API needs before player_show.
	// Zero keeps the default, a negative value disables the pause.
	PlayerLoadDelay time.Duration
	// Timeout bounds each HTTP request. Zero keeps the default, a negative
	// value disables it.
	Timeout time.Duration
	// Transport replaces the HTTP transport (proxies, tests)
	Transport http.RoundTripper
	// BypassCloudflare wraps the transport with a Cloudflare-friendly profile
	BypassCloudflare bool
	// FrontendCookie is sent with every request when non-empty
	FrontendCookie string
}

// DefaultOptions returns the options used against the live site
func DefaultOptions() Options {
	cfg := shinden.DefaultConfig()
	return Options{
		BaseURL:         cfg.BaseURL,
		APIBaseURL:      cfg.APIBaseURL,
		MaxRetries:      cfg.MaxRetries,
		RetryDelay:      cfg.RetryDelay,
		PlayerLoadDelay: cfg.PlayerLoadDelay,
		Timeout:         cfg.Timeout,
	}
}

// Client is the main entry point of the library
type Client struct {
	inner *shinden.Client
}

// NewClient creates a client with DefaultOptions
func NewClient() (*Client, error) {
	return NewClientWithOptions(DefaultOptions())
}

// NewClientWithOptions creates a client from opts
func NewClientWithOptions(opts Options) (*Client, error) {
	inner, err := shinden.NewClient(shinden.Config{
		BaseURL:          opts.BaseURL,
		APIBaseURL:       opts.APIBaseURL,
		MaxRetries:       opts.MaxRetries,
		RetryDelay:       opts.RetryDelay,
		PlayerLoadDelay:  opts.PlayerLoadDelay,
		Timeout:          opts.Timeout,
		Cookie:           opts.FrontendCookie,
		BypassCloudflare: opts.BypassCloudflare,
		Transport:        opts.Transport,
	})
	if err != nil {
		return nil, err
	}
	return &Client{inner: inner}, nil
}

// PlayerLoadDelay returns the effective pause before player_show
func (c *Client) PlayerLoadDelay() time.Duration {
	return c.inner.Config().PlayerLoadDelay
}

// Anime opens a series by URL. It returns once the series main page has been
// fetched and verified; otherwise the error matches ErrUnavailable or
// ErrInvalidURL.
func (c *Client) Anime(ctx context.Context, seriesURL string) (*Anime, error) {
	return c.inner.Anime(ctx, seriesURL)
}

// Search returns the first page of results for query
func (c *Client) Search(ctx context.Context, query string) (*SearchPage, error) {
	return c.inner.Search(ctx, query)
}
