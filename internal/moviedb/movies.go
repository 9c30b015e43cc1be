package moviedb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/example/movieview/internal/pagination"
)

// SearchLimit is the fixed result cap for the global search box.
const SearchLimit = 48

func (c *Client) MostPopular(ctx context.Context, page, limit int) (pagination.Paged[MovieSummary], error) {
	return c.movieList(ctx, "/api/movies/most-popular", page, limit)
}

func (c *Client) TopRated(ctx context.Context, page, limit int) (pagination.Paged[MovieSummary], error) {
	return c.movieList(ctx, "/api/movies/top-rated", page, limit)
}

func (c *Client) movieList(ctx context.Context, path string, page, limit int) (pagination.Paged[MovieSummary], error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	raw, err := c.get(ctx, path, q, false)
	if err != nil {
		return pagination.Paged[MovieSummary]{}, err
	}
	return unwrapPage[MovieSummary](raw, page, limit)
}

func (c *Client) SearchMovies(ctx context.Context, query string, limit int) ([]MovieSummary, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	raw, err := c.get(ctx, "/api/movies/search", q, false)
	if err != nil {
		return nil, err
	}
	return unwrapList[MovieSummary](raw)
}

func (c *Client) Movie(ctx context.Context, id int) (*MovieDetail, error) {
	raw, err := c.get(ctx, fmt.Sprintf("/api/movies/%d", id), nil, false)
	if err != nil {
		return nil, err
	}
	var out MovieDetail
	if err := unwrapObject(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Reviews(ctx context.Context, movieID, page, limit int, sort string) (pagination.Paged[Review], error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if sort != "" {
		q.Set("sort", sort)
	}
	raw, err := c.get(ctx, fmt.Sprintf("/api/movies/%d/reviews", movieID), q, false)
	if err != nil {
		return pagination.Paged[Review]{}, err
	}
	return unwrapPage[Review](raw, page, limit)
}

// unwrapPage decodes a server-paginated envelope. Endpoints that ignore
// paging and answer with a bare array get metadata synthesized from the
// request so callers always see a valid page.
func unwrapPage[T any](raw []byte, requestedPage, limit int) (pagination.Paged[T], error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := decode(trimmed, &items); err != nil {
			return pagination.Paged[T]{}, err
		}
		p := pagination.Paged[T]{
			Items: items,
			Info: pagination.Info{
				CurrentPage: requestedPage,
				TotalPages:  requestedPage,
				TotalItems:  len(items),
				PageSize:    limit,
			},
		}
		p.Normalize()
		return p, nil
	}

	var env struct {
		Data  json.RawMessage `json:"data"`
		Items json.RawMessage `json:"items"`
		pagination.Info
	}
	if err := decode(trimmed, &env); err != nil {
		return pagination.Paged[T]{}, err
	}
	inner := env.Data
	if len(bytes.TrimSpace(inner)) == 0 {
		inner = env.Items
	}
	var items []T
	if len(bytes.TrimSpace(inner)) > 0 {
		if err := decode(inner, &items); err != nil {
			return pagination.Paged[T]{}, err
		}
	}
	p := pagination.Paged[T]{Items: items, Info: env.Info}
	if p.PageSize == 0 {
		p.PageSize = limit
	}
	if p.CurrentPage == 0 {
		p.CurrentPage = requestedPage
	}
	if p.TotalItems == 0 && len(items) > 0 {
		p.TotalItems = len(items)
	}
	p.Normalize()
	return p, nil
}

// unwrapObject decodes a single-entity response, tolerating the {data:{...}}
// wrapper some endpoints use.
func unwrapObject[T any](raw []byte, out *T) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(raw)
	if decode(trimmed, &env) == nil {
		t := bytes.TrimSpace(env.Data)
		if len(t) > 0 && t[0] == '{' {
			return decode(t, out)
		}
	}
	return decode(trimmed, out)
}
