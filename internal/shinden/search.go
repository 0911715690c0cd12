package shinden

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
)

// SearchResult is one row of a search page
type SearchResult struct {
	Title     string
	Kind      AnimeKind
	Status    AnimeStatus
	Rating    float64
	SeriesURL *url.URL
	ImageURL  *url.URL
}

// SearchPage is one page of results for a query. Pages form a forward-only
// chain through NextPage; every page after the first fetches its HTML when
// Results is first called.
type SearchPage struct {
	client     *Client
	query      string
	index      int
	totalPages int

	parsed  bool
	results []SearchResult
}

func newFirstSearchPage(c *Client, query, html string) (*SearchPage, error) {
	doc, err := newDocument(html, PageSearch)
	if err != nil {
		return nil, err
	}
	results, err := parseSearchResults(doc, c.base)
	if err != nil {
		return nil, err
	}

	return &SearchPage{
		client:     c,
		query:      query,
		index:      1,
		totalPages: parseTotalPages(doc),
		parsed:     true,
		results:    results,
	}, nil
}

// Query returns the searched title
func (p *SearchPage) Query() string { return p.query }

// Index returns the 1-based page number
func (p *SearchPage) Index() int { return p.index }

// TotalPages returns the page count reported by the first page
func (p *SearchPage) TotalPages() int { return p.totalPages }

// IsFirst reports whether this is page 1
func (p *SearchPage) IsFirst() bool { return p.index == 1 }

// IsLast reports whether no page follows this one
func (p *SearchPage) IsLast() bool { return p.index >= p.totalPages }

// Results returns the rows of this page
func (p *SearchPage) Results(ctx context.Context) ([]SearchResult, error) {
	if p.parsed {
		return p.results, nil
	}
	if p.client == nil {
		return nil, errors.Wrap(ErrMissingArgument, "search page was not created by a client")
	}

	html, err := p.client.FetchSearchPage(ctx, p.query, p.index)
	if err != nil {
		return nil, err
	}
	doc, err := newDocument(html, PageSearch)
	if err != nil {
		return nil, err
	}
	results, err := parseSearchResults(doc, p.client.base)
	if err != nil {
		return nil, err
	}

	p.results = results
	p.parsed = true
	return results, nil
}

// NextPage returns the following page without fetching it
func (p *SearchPage) NextPage() (*SearchPage, error) {
	if p.IsLast() {
		return nil, errors.Wrapf(ErrEndOfResults, "page %d of %d", p.index, p.totalPages)
	}
	return &SearchPage{
		client:     p.client,
		query:      p.query,
		index:      p.index + 1,
		totalPages: p.totalPages,
	}, nil
}
