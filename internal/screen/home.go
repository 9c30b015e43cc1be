package screen

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/pagination"
)

// CatalogAPI is the slice of the movie API the catalogue screens read.
type CatalogAPI interface {
	MostPopular(ctx context.Context, page, limit int) (pagination.Paged[moviedb.MovieSummary], error)
	TopRated(ctx context.Context, page, limit int) (pagination.Paged[moviedb.MovieSummary], error)
}

const (
	railPage  = 1
	railLimit = 30
)

// Home renders the two carousel rails. Each rail fails independently.
type Home struct {
	api CatalogAPI

	popular  Resource[[]moviedb.MovieSummary]
	topRated Resource[[]moviedb.MovieSummary]
}

func NewHome(api CatalogAPI) *Home {
	return &Home{api: api}
}

func (h *Home) Load(ctx context.Context) {
	commitPopular := h.popular.Begin()
	commitTopRated := h.topRated.Begin()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := h.api.MostPopular(ctx, railPage, railLimit)
		commitPopular(p.Items, err)
		return nil
	})
	g.Go(func() error {
		p, err := h.api.TopRated(ctx, railPage, railLimit)
		commitTopRated(p.Items, err)
		return nil
	})
	_ = g.Wait()
}

type RailView struct {
	Status string                 `json:"status"`
	Error  string                 `json:"error,omitempty"`
	Movies []moviedb.MovieSummary `json:"movies"`
}

type HomeView struct {
	Popular  RailView `json:"popular"`
	TopRated RailView `json:"top_rated"`
}

func (h *Home) View() HomeView {
	return HomeView{
		Popular:  railView(&h.popular),
		TopRated: railView(&h.topRated),
	}
}

func railView(r *Resource[[]moviedb.MovieSummary]) RailView {
	phase, movies, err := r.Snapshot()
	return RailView{
		Status: statusFor(phase, len(movies) == 0),
		Error:  errText(err),
		Movies: movies,
	}
}
