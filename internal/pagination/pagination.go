// Package pagination holds the two paging strategies the catalogue uses:
// server-side lists that re-fetch per page and trust the metadata the API
// returns, and client-side lists fetched once and sliced locally.
package pagination

import (
	"context"
	"sync"
)

// Info is the paging metadata attached to every paged collection. For
// server-side lists it is taken verbatim from the API response; for
// client-side lists it is derived from the item count.
type Info struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PageSize    int `json:"page_size"`
}

// Normalize repairs metadata so that 1 <= CurrentPage <= TotalPages always
// holds. Empty collections come back from some endpoints with total_pages 0.
func (i *Info) Normalize() {
	if i.TotalPages < 1 {
		i.TotalPages = 1
	}
	i.CurrentPage = Clamp(i.CurrentPage, i.TotalPages)
	if i.TotalItems < 0 {
		i.TotalItems = 0
	}
}

// Clamp forces page into [1, totalPages]. Out-of-range page requests are
// clamped here rather than issued to the API.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paged is one page of items plus its metadata.
type Paged[T any] struct {
	Items []T `json:"items"`
	Info
}

// ServerSide re-fetches from the API on every page change. It remembers the
// last reported total so a follow-up request for an out-of-range page can be
// clamped before it goes on the wire. Safe for concurrent use; the fetch
// itself runs outside the lock.
type ServerSide[T any] struct {
	Fetch func(ctx context.Context, page int) (Paged[T], error)

	mu             sync.Mutex
	lastTotalPages int
}

func (s *ServerSide[T]) Page(ctx context.Context, page int) (Paged[T], error) {
	s.mu.Lock()
	if s.lastTotalPages > 0 {
		page = Clamp(page, s.lastTotalPages)
	} else if page < 1 {
		page = 1
	}
	s.mu.Unlock()

	res, err := s.Fetch(ctx, page)
	if err != nil {
		return Paged[T]{}, err
	}
	res.Normalize()

	s.mu.Lock()
	s.lastTotalPages = res.TotalPages
	s.mu.Unlock()
	return res, nil
}

// ClientSide slices an already-fetched collection locally. Changing page
// never re-fetches.
type ClientSide[T any] struct {
	Items    []T
	PageSize int
}

func (c ClientSide[T]) TotalPages() int {
	if c.PageSize <= 0 {
		return 1
	}
	n := (len(c.Items) + c.PageSize - 1) / c.PageSize
	if n < 1 {
		n = 1
	}
	return n
}

func (c ClientSide[T]) Page(page int) Paged[T] {
	total := c.TotalPages()
	page = Clamp(page, total)
	start := (page - 1) * c.PageSize
	end := start + c.PageSize
	if c.PageSize <= 0 || start >= len(c.Items) {
		start, end = len(c.Items), len(c.Items)
	} else if end > len(c.Items) {
		end = len(c.Items)
	}
	return Paged[T]{
		Items: c.Items[start:end],
		Info: Info{
			CurrentPage: page,
			TotalPages:  total,
			TotalItems:  len(c.Items),
			PageSize:    c.PageSize,
		},
	}
}
