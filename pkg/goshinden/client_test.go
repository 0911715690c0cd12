package goshinden_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alvarorichard/Goshinden/pkg/goshinden"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<html><body>
<header class="logo"></header>
<ul class="div-row"><li class="desc-col">Tytuł</li></ul>
<ul class="div-row">
	<li class="cover-col"><a href="javascript:void(0)"></a></li>
	<li class="desc-col"><h3><a href="/series/1-naruto">Naruto</a></h3></li>
	<li class="title-kind-col">TV</li>
	<li class="title-status-col">Zakończone</li>
	<li class="rate-top">8,02</li>
</ul>
</body></html>`

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := goshinden.DefaultOptions()
	assert.Equal(t, "https://shinden.pl", opts.BaseURL)
	assert.Equal(t, "https://api4.shinden.pl", opts.APIBaseURL)
	assert.Equal(t, 5, opts.MaxRetries)
	assert.Positive(t, opts.PlayerLoadDelay)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	t.Parallel()

	opts := goshinden.DefaultOptions()
	opts.BaseURL = "not a url"
	_, err := goshinden.NewClientWithOptions(opts)
	require.Error(t, err)
}

func TestClientSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/series", r.URL.Path)
		assert.Equal(t, "naruto", r.URL.Query().Get("search"))
		_, _ = fmt.Fprint(w, searchPage)
	}))
	defer server.Close()

	opts := goshinden.DefaultOptions()
	opts.BaseURL = server.URL
	opts.MaxRetries = 1

	client, err := goshinden.NewClientWithOptions(opts)
	require.NoError(t, err)

	page, err := client.Search(context.Background(), "naruto")
	require.NoError(t, err)

	results, err := page.Results(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Naruto", results[0].Title)
	assert.Equal(t, server.URL+"/series/1-naruto", results[0].SeriesURL.String())
	assert.Equal(t, goshinden.PlaceholderImageURL, results[0].ImageURL.String())

	_, err = page.NextPage()
	require.ErrorIs(t, err, goshinden.ErrEndOfResults)
}

func TestClientAnimeInvalidURL(t *testing.T) {
	t.Parallel()

	client, err := goshinden.NewClient()
	require.NoError(t, err)

	_, err = client.Anime(context.Background(), "https://example.com/series/1-naruto")
	require.ErrorIs(t, err, goshinden.ErrInvalidURL)
}

func TestPartialOptionsKeepDefaultDelays(t *testing.T) {
	t.Parallel()

	client, err := goshinden.NewClientWithOptions(goshinden.Options{MaxRetries: 3})
	require.NoError(t, err)
	assert.Equal(t, goshinden.DefaultOptions().PlayerLoadDelay, client.PlayerLoadDelay())
}
