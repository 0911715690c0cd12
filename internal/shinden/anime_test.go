package shinden

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	seriesPath   = "/series/116-hunter-x-hunter"
	episodesPath = seriesPath + "/all-episodes"
)

func newSeriesSite(t *testing.T) *fakeSite {
	return newFakeSite(t, map[string]string{
		seriesPath:   mainPageHTML,
		episodesPath: episodesPageHTML,
		"/episode/116-hunter-x-hunter/view/3": playersPageHTML(`"1001"`, `"1002"`),
		"/episode/116-hunter-x-hunter/view/2": playersPageHTML(`"2001"`),
		"/xhr/1001/player_load":               "ok",
		"/xhr/1001/player_show":               `<iframe src="//ebd.cda.pl/620x368/123abc" width="620"></iframe>`,
	})
}

func TestAnimeFactoryProbesMainPage(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)

	anime, err := client.Anime(context.Background(), site.server.URL+seriesPath)
	require.NoError(t, err)
	assert.Equal(t, 1, site.Hits(seriesPath))
	assert.False(t, anime.LoginRequired())
	assert.Equal(t, site.server.URL+episodesPath, anime.EpisodesURL().String())

	title, err := anime.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hunter x Hunter", title)
	assert.Equal(t, 1, site.Hits(seriesPath), "probe result is reused by the first accessor")
}

func TestAnimeFactoryRejectsForeignURL(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)

	_, err := client.Anime(context.Background(), "https://example.com"+seriesPath)
	require.ErrorIs(t, err, ErrInvalidURL)
	assert.Zero(t, site.Hits(seriesPath))
}

func TestAnimeFactoryUnavailable(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t, map[string]string{seriesPath: challengeHTML})
	client := newTestClient(t, site)

	_, err := client.Anime(context.Background(), site.server.URL+seriesPath)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, ErrVerification)
	assert.Equal(t, 3, site.Hits(seriesPath))
}

func TestAnimeAccessorsAreIdempotent(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)

	for range 3 {
		rating, err := anime.Rating(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 8.91, rating, 0.0001)

		details, err := anime.Details(ctx)
		require.NoError(t, err)
		assert.Equal(t, AnimeKind("TV"), details.Kind)

		stats, err := anime.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1500, stats.Likes)

		episodes, err := anime.Episodes(ctx)
		require.NoError(t, err)
		assert.Len(t, episodes, 3)
	}

	assert.Equal(t, 1, site.Hits(seriesPath))
	assert.Equal(t, 1, site.Hits(episodesPath))
}

func TestAnimeClearCacheRefetches(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)
	_, err = anime.Description(ctx)
	require.NoError(t, err)
	_, err = anime.Episodes(ctx)
	require.NoError(t, err)

	anime.ClearCache()

	_, err = anime.Description(ctx)
	require.NoError(t, err)
	_, err = anime.Episodes(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, site.Hits(seriesPath))
	assert.Equal(t, 2, site.Hits(episodesPath))
}

func TestAnimeEpisodesOldestFirst(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)

	episodes, err := anime.Episodes(ctx)
	require.NoError(t, err)
	require.Len(t, episodes, 3)
	assert.Equal(t, "Chłopiec wyrusza", episodes[0].Title)
	assert.Equal(t, "Wyspa wielorybów", episodes[2].Title)
}

func TestEpisodePlayersAreCachedPerEpisode(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)
	episodes, err := anime.Episodes(ctx)
	require.NoError(t, err)

	third, err := episodes[2].Players(ctx)
	require.NoError(t, err)
	second, err := episodes[1].Players(ctx)
	require.NoError(t, err)

	require.Len(t, third, 2)
	require.Len(t, second, 1)
	assert.Equal(t, "1001", third[0].OnlineID)
	assert.Equal(t, "2001", second[0].OnlineID)

	_, err = episodes[2].Players(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, site.Hits("/episode/116-hunter-x-hunter/view/3"))
}

func TestEpisodeWithoutPlayersLink(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)
	episodes, err := anime.Episodes(ctx)
	require.NoError(t, err)

	_, err = episodes[0].Players(ctx)
	require.ErrorIs(t, err, ErrMissingArgument)

	_, err = anime.fetcher.FetchPage(ctx, PagePlayers, nil)
	require.ErrorIs(t, err, ErrMissingArgument)
}

func TestPlayerExternalURL(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)
	episodes, err := anime.Episodes(ctx)
	require.NoError(t, err)
	players, err := episodes[2].Players(ctx)
	require.NoError(t, err)

	u, err := players[0].ExternalURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://ebd.cda.pl/620x368/123abc", u.String())

	_, err = players[0].ExternalURL(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, site.Hits("/xhr/1001/player_load"))
	assert.Equal(t, 1, site.Hits("/xhr/1001/player_show"))
}

func TestPlayerExternalURLWithoutIframe(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	site.mu.Lock()
	site.routes["/xhr/1001/player_show"] = "<p>Brak odtwarzacza</p>"
	site.mu.Unlock()
	client := newTestClient(t, site)
	ctx := context.Background()

	anime, err := client.Anime(ctx, site.server.URL+seriesPath)
	require.NoError(t, err)
	episodes, err := anime.Episodes(ctx)
	require.NoError(t, err)
	players, err := episodes[2].Players(ctx)
	require.NoError(t, err)

	_, err = players[0].ExternalURL(ctx)
	require.ErrorIs(t, err, ErrMissingField)
}

func TestPlayerLoadDelayHonoursContext(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	cfg := testConfig(site.server.URL)
	cfg.PlayerLoadDelay = time.Hour
	client, err := NewClient(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	player := &Player{OnlineID: "1001", fetcher: newFetcher(client, SeriesRef{})}

	go func() {
		for site.Hits("/xhr/1001/player_load") == 0 {
			time.Sleep(time.Millisecond)
		}
		cancel()
	}()

	_, err = player.ExternalURL(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, site.Hits("/xhr/1001/player_show"))
}

func TestNewClientFillsUnsetDurations(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{BaseURL: DefaultBaseURL, APIBaseURL: DefaultAPIBaseURL, MaxRetries: 3})
	require.NoError(t, err)
	cfg := client.Config()
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.PlayerLoadDelay)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	client, err = NewClient(Config{PlayerLoadDelay: -1, Timeout: -1})
	require.NoError(t, err)
	assert.Zero(t, client.Config().PlayerLoadDelay)
	assert.Zero(t, client.Config().Timeout)
}

func TestPlayerExternalURLWaitsForLoadDelay(t *testing.T) {
	t.Parallel()

	site := newSeriesSite(t)
	cfg := testConfig(site.server.URL)
	cfg.PlayerLoadDelay = 200 * time.Millisecond
	client, err := NewClient(cfg)
	require.NoError(t, err)

	player := &Player{OnlineID: "1001", fetcher: newFetcher(client, SeriesRef{})}
	start := time.Now()
	_, err = player.ExternalURL(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), cfg.PlayerLoadDelay)
}

func TestDetachedPlayerExternalURL(t *testing.T) {
	t.Parallel()

	_, err := (&Player{OnlineID: "1"}).ExternalURL(context.Background())
	require.ErrorIs(t, err, ErrMissingArgument)
}

func TestFetchRetriesUntilVerified(t *testing.T) {
	t.Parallel()

	transport := &scriptedTransport{respond: func(call int, req *http.Request) (*http.Response, error) {
		if call < 3 {
			return htmlResponse(req, http.StatusServiceUnavailable, challengeHTML), nil
		}
		return htmlResponse(req, http.StatusOK, mainPageHTML), nil
	}}

	cfg := testConfig(DefaultBaseURL)
	cfg.MaxRetries = 5
	cfg.Transport = transport
	client, err := NewClient(cfg)
	require.NoError(t, err)

	anime, err := client.Anime(context.Background(), DefaultBaseURL+seriesPath)
	require.NoError(t, err)
	assert.Equal(t, 3, transport.Calls())

	title, err := anime.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hunter x Hunter", title)
	assert.Equal(t, 3, transport.Calls())
}

func TestFetchVerifiedErrorStatus(t *testing.T) {
	t.Parallel()

	site := newFakeSite(t, map[string]string{seriesPath: mainPageHTML})
	site.SetStatus(seriesPath, http.StatusInternalServerError)
	client := newTestClient(t, site)

	_, err := client.Anime(context.Background(), site.server.URL+seriesPath)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, ErrResponse)

	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	assert.Equal(t, 1, site.Hits(seriesPath))
}
