// Package shinden scrapes shinden.pl series, episode, player and search pages
// into typed values. Pages are fetched lazily, verified against the site
// header, retried a bounded number of times and cached per page kind.
package shinden

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/alvarorichard/Goshinden/internal/util"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Config tunes a Client. Start from DefaultConfig and override fields.
type Config struct {
	// BaseURL is the site origin series URLs are validated against
	BaseURL string
	// APIBaseURL hosts the external player endpoints
	APIBaseURL string
	// MaxRetries is the number of attempts made until a page verifies
	MaxRetries int
	// RetryDelay is a fixed pause between attempts
	RetryDelay time.Duration
	// PlayerLoadDelay is the pause the player API requires between
	// player_load and player_show. Zero means the default, a negative value
	// disables the pause.
	PlayerLoadDelay time.Duration
	// Timeout bounds every single request. Zero means the default, a
	// negative value disables it.
	Timeout time.Duration
	// Cookie is sent with both header profiles when non-empty
	Cookie string
	// BypassCloudflare wraps the transport with cloudflare-bp
	BypassCloudflare bool
	// Transport replaces the default HTTP transport, mostly for tests
	Transport http.RoundTripper
}

// DefaultConfig returns the settings used against the live site
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		APIBaseURL:      DefaultAPIBaseURL,
		MaxRetries:      5,
		PlayerLoadDelay: 5 * time.Second,
		Timeout:         30 * time.Second,
	}
}

// Client issues every request of the library. One Client may back any number
// of Anime and SearchPage values; they share its cookie jar.
type Client struct {
	http *resty.Client
	cfg  Config
	base *url.URL
}

// NewClient builds a Client from cfg. Unset fields take their DefaultConfig
// value.
func NewClient(cfg Config) (*Client, error) {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaults.APIBaseURL
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	cfg.PlayerLoadDelay = durationOrDefault(cfg.PlayerLoadDelay, defaults.PlayerLoadDelay)
	cfg.Timeout = durationOrDefault(cfg.Timeout, defaults.Timeout)
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("invalid base url %q", cfg.BaseURL)
	}

	hc, err := util.NewScrapingClient(util.ScrapingClientConfig{
		Timeout:          cfg.Timeout,
		Transport:        cfg.Transport,
		BypassCloudflare: cfg.BypassCloudflare,
	})
	if err != nil {
		return nil, err
	}

	return &Client{http: hc, cfg: cfg, base: base}, nil
}

// durationOrDefault maps zero to def and negative values to zero
func durationOrDefault(d, def time.Duration) time.Duration {
	switch {
	case d == 0:
		return def
	case d < 0:
		return 0
	default:
		return d
	}
}

// Config returns the effective configuration
func (c *Client) Config() Config {
	return c.cfg
}

// Anime validates rawURL and returns the Anime only once its main page has
// been fetched and verified.
func (c *Client) Anime(ctx context.Context, rawURL string) (*Anime, error) {
	series, err := ParseSeriesURL(rawURL, c.base)
	if err != nil {
		return nil, err
	}

	anime := newAnime(c, series)
	if err := anime.checkAvailability(ctx); err != nil {
		return nil, err
	}
	return anime, nil
}

// Search fetches the first result page for query
func (c *Client) Search(ctx context.Context, query string) (*SearchPage, error) {
	html, err := c.FetchSearchPage(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	return newFirstSearchPage(c, query, html)
}

// FetchSearchPage returns the verified HTML of one search result page.
// The page parameter is only sent for page > 1.
func (c *Client) FetchSearchPage(ctx context.Context, query string, page int) (string, error) {
	target := *c.base
	target.Path = "/series"
	params := url.Values{}
	params.Set("search", query)
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}
	target.RawQuery = params.Encode()

	return c.fetchVerified(ctx, target.String(), PageSearch)
}

// fetchVerified runs the bounded fetch/verify loop shared by every page kind.
// It stops at the first body carrying the site header.
func (c *Client) fetchVerified(ctx context.Context, target string, kind PageKind) (string, error) {
	var (
		res      *resty.Response
		html     string
		verified bool
	)
	defer util.Perf("fetch "+kind.String(), time.Now())

	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		r, err := c.http.R().
			SetContext(ctx).
			SetHeaders(frontendHeaders(c.cfg.BaseURL, c.cfg.Cookie)).
			Get(target)
		util.PerfCount("requests: " + kind.String())
		if err != nil {
			return "", errors.Wrapf(err, "failed to fetch %s", kind)
		}

		res = r
		html = string(r.Body())
		verified = Verify(html)

		util.Debug("Fetched page",
			"page", kind.String(),
			"url", target,
			"attempt", attempt,
			"status", r.StatusCode(),
			"verified", verified,
		)

		if verified {
			break
		}
		util.PerfCount("unverified responses")
		if attempt < c.cfg.MaxRetries {
			if err := sleep(ctx, c.cfg.RetryDelay); err != nil {
				return "", err
			}
		}
	}

	if !verified {
		return "", errors.Wrapf(ErrVerification, "%s: no verified response after %d attempts", kind, c.cfg.MaxRetries)
	}
	if !res.IsSuccess() {
		return "", errors.WithStack(&ResponseError{URL: target, StatusCode: res.StatusCode()})
	}
	return html, nil
}

// resolveExternalPlayer performs the player_load, pause, player_show sequence
// and returns the embedded iframe source.
func (c *Client) resolveExternalPlayer(ctx context.Context, onlineID string) (*url.URL, error) {
	id := url.PathEscape(onlineID)
	loadURL := fmt.Sprintf("%s/xhr/%s/player_load?auth=%s", c.cfg.APIBaseURL, id, apiAuthToken)
	showURL := fmt.Sprintf("%s/xhr/%s/player_show?auth=%s&width=0&height=-1", c.cfg.APIBaseURL, id, apiAuthToken)
	headers := apiHeaders(c.cfg.BaseURL, c.cfg.Cookie)
	defer util.Perf("resolve external player", time.Now())

	if _, err := c.http.R().SetContext(ctx).SetHeaders(headers).Get(loadURL); err != nil {
		return nil, errors.Wrapf(err, "player_load failed for %s", onlineID)
	}

	util.Debug("Waiting for player API", "online_id", onlineID, "delay", c.cfg.PlayerLoadDelay)
	if err := sleep(ctx, c.cfg.PlayerLoadDelay); err != nil {
		return nil, err
	}

	res, err := c.http.R().SetContext(ctx).SetHeaders(headers).Get(showURL)
	if err != nil {
		return nil, errors.Wrapf(err, "player_show failed for %s", onlineID)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse player_show response")
	}

	src, ok := doc.Find("iframe").First().Attr("src")
	if !ok || strings.TrimSpace(src) == "" {
		return nil, missingField(PageEmbed, "iframe src")
	}
	return normalizeEmbedURL(src)
}

// normalizeEmbedURL turns protocol-relative sources into https URLs
func normalizeEmbedURL(src string) (*url.URL, error) {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "//") {
		src = "https:" + src
	}
	u, err := url.Parse(src)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid embed url %q", src)
	}
	return u, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	case <-timer.C:
		return nil
	}
}
