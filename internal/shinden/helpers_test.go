package shinden

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const siteHeader = `<header class="logo"><a href="/">Shinden</a></header>`

const mainPageHTML = `<html><body>` + siteHeader + `
<section class="title-cover"><img class="info-aside-img" src="/res/images/genuine/116.jpg"></section>
<h1><span class="title">Hunter x Hunter</span></h1>
<span class="info-aside-rating-user">8,91</span>
<div id="description"><p>Gon Freecss wyrusza na poszukiwanie ojca.</p></div>
<section class="title-small-info"><dl>
	<dt>Typ:</dt><dd>TV</dd>
	<dt>Status:</dt><dd>Zakończone</dd>
	<dt>Data emisji:</dt><dd>02.10.2011</dd>
	<dt>Koniec emisji:</dt><dd>24.09.2014</dd>
	<dt>Liczba odcinków:</dt><dd>148</dd>
	<dt>Studio:</dt><dd>Madhouse,
	VAP, , Madhouse</dd>
	<dt>Długość odcinka:</dt><dd>23min</dd>
	<dt>MPAA:</dt><dd>PG-13</dd>
</dl></section>
<section class="title-stats"><dl>
	<dt>Oglądający</dt><dd>1 204</dd>
	<dt>Obejrzane</dt><dd>25000</dd>
	<dt>Pominięte</dt><dd>31</dd>
	<dt>Wstrzymane</dt><dd>412</dd>
	<dt>Porzucone</dt><dd>87</dd>
	<dt>Planowane</dt><dd>3300</dd>
	<dt>Ulubione</dt><dd>1500</dd>
</dl></section>
</body></html>`

const episodesPageHTML = `<html><body>` + siteHeader + `
<table><tbody>
<tr data-episode-no="3">
	<td class="ep-title">Wyspa wielorybów</td>
	<td class="ep-date">2011-10-16</td>
	<td><span class="flag-icon" title="Polski"></span></td>
	<td><a class="button active detail" href="/episode/116-hunter-x-hunter/view/3">Zobacz</a></td>
</tr>
<tr data-episode-no="2">
	<td class="ep-title">Test na cierpliwość</td>
	<td class="ep-date">2011-10-09</td>
	<td><span class="flag-icon" title="Polski"></span><span class="flag-icon" title="Angielski"></span></td>
	<td><a class="button active detail" href="/episode/116-hunter-x-hunter/view/2">Zobacz</a></td>
</tr>
<tr data-episode-no="1">
	<td class="ep-title">Chłopiec wyrusza</td>
	<td class="ep-date">2011-10-02</td>
	<td></td>
	<td><span class="button">Brak</span></td>
</tr>
</tbody></table>
</body></html>`

func playersPageHTML(ids ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body>` + siteHeader + `<table>`)
	for _, id := range ids {
		fmt.Fprintf(&b, `<tr><td><a data-episode='{"online_id":%s,"player":"cda","username":"kuro","user_id":"42","lang_audio":"jp","lang_subs":"pl","max_res":"1080p","subs_author":"grupa","added":"2020-01-01","source":null}'>Pokaż</a></td></tr>`, id)
	}
	b.WriteString(`</table></body></html>`)
	return b.String()
}

func searchPageHTML(lastPage int, titles ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body>` + siteHeader)
	b.WriteString(`<ul class="div-row"><li class="desc-col">Tytuł</li><li class="title-kind-col">Typ</li></ul>`)
	for i, title := range titles {
		cover := fmt.Sprintf("/res/images/genuine/%d.jpg", i+1)
		if i == 0 {
			cover = voidCover
		}
		fmt.Fprintf(&b, `<ul class="div-row">
			<li class="cover-col"><a href="%s"></a></li>
			<li class="desc-col"><h3><a href="/series/%d-%s">%s</a></h3></li>
			<li class="title-kind-col">TV</li>
			<li class="title-status-col">Zakończone</li>
			<li class="rate-top">7,50</li>
		</ul>`, cover, i+1, strings.ToLower(strings.ReplaceAll(title, " ", "-")), title)
	}
	if lastPage > 1 {
		fmt.Fprintf(&b, `<div class="pagination"><a rel="last" href="/series?search=x&amp;page=%d">Ostatnia</a></div>`, lastPage)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

const challengeHTML = `<html><head><title>Just a moment...</title></head><body><div id="cf-wrapper"></div></body></html>`

// fakeSite serves fixed bodies per route and counts hits. A route key is the
// request path, plus "?page=N" when the query carries a page.
type fakeSite struct {
	server *httptest.Server

	mu     sync.Mutex
	routes map[string]string
	status map[string]int
	hits   map[string]int
}

func newFakeSite(t *testing.T, routes map[string]string) *fakeSite {
	t.Helper()

	site := &fakeSite{
		routes: routes,
		status: map[string]int{},
		hits:   map[string]int{},
	}
	site.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if page := r.URL.Query().Get("page"); page != "" {
			key += "?page=" + page
		}

		site.mu.Lock()
		site.hits[key]++
		body, ok := site.routes[key]
		status := site.status[key]
		site.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		if status != 0 {
			w.WriteHeader(status)
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(site.server.Close)
	return site
}

func (s *fakeSite) Hits(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

func (s *fakeSite) SetStatus(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[key] = status
}

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIBaseURL = baseURL
	cfg.MaxRetries = 3
	cfg.RetryDelay = 0
	cfg.PlayerLoadDelay = -1
	cfg.Timeout = 5 * time.Second
	return cfg
}

func newTestClient(t *testing.T, site *fakeSite) *Client {
	t.Helper()
	client, err := NewClient(testConfig(site.server.URL))
	require.NoError(t, err)
	return client
}

// scriptedTransport answers every request from respond and counts calls
type scriptedTransport struct {
	mu      sync.Mutex
	calls   int
	respond func(call int, req *http.Request) (*http.Response, error)
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	return s.respond(call, req)
}

func (s *scriptedTransport) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func htmlResponse(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
	}
}
