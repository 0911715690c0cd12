package util

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// httpClientConfig holds the tuning knobs for the scraping transport
type httpClientConfig struct {
	maxIdleConns        int
	maxIdleConnsPerHost int
	maxConnsPerHost     int
	idleConnTimeout     time.Duration
	tlsHandshakeTimeout time.Duration
	expectContinue      time.Duration
	keepAlive           time.Duration
	dialTimeout         time.Duration
}

// defaultConfig returns the transport configuration for a single-site scraper.
// Requests are sequential, so the pool stays small.
func defaultConfig() httpClientConfig {
	return httpClientConfig{
		maxIdleConns:        20,
		maxIdleConnsPerHost: 4,
		maxConnsPerHost:     8,
		idleConnTimeout:     90 * time.Second,
		tlsHandshakeTimeout: 5 * time.Second,
		expectContinue:      1 * time.Second,
		keepAlive:           30 * time.Second,
		dialTimeout:         5 * time.Second,
	}
}

// createTransport creates an HTTP transport with the given config
func createTransport(cfg httpClientConfig) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.dialTimeout,
			KeepAlive: cfg.keepAlive,
		}).DialContext,
		MaxIdleConns:          cfg.maxIdleConns,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		MaxConnsPerHost:       cfg.maxConnsPerHost,
		IdleConnTimeout:       cfg.idleConnTimeout,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ExpectContinueTimeout: cfg.expectContinue,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// ScrapingClientConfig configures NewScrapingClient
type ScrapingClientConfig struct {
	// Timeout bounds every request, redirects included
	Timeout time.Duration
	// MaxRedirects caps the redirect chain followed per request
	MaxRedirects int
	// Transport replaces the tuned default transport when set
	Transport http.RoundTripper
	// BypassCloudflare wraps the transport with cloudflare-bp
	BypassCloudflare bool
}

// NewScrapingClient returns a resty client backed by its own cookie jar that
// follows redirects, which is what every shinden page request needs.
func NewScrapingClient(cfg ScrapingClientConfig) (*resty.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = createTransport(defaultConfig())
	}
	if cfg.BypassCloudflare {
		transport = cloudflarebp.AddCloudFlareByPass(transport)
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 10
	}

	client := resty.New()
	client.SetTransport(transport)
	client.SetCookieJar(jar)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		Debug("HTTP response",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"bytes", len(res.Body()),
			"elapsed", res.Time(),
		)
		return nil
	})

	return client, nil
}
