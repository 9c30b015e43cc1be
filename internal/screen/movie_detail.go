package screen

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/pagination"
)

// MovieAPI is the slice of the movie API the detail screen reads.
type MovieAPI interface {
	Movie(ctx context.Context, id int) (*moviedb.MovieDetail, error)
	Reviews(ctx context.Context, movieID, page, limit int, sort string) (pagination.Paged[moviedb.Review], error)
}

const reviewPageSize = 10

// MovieDetail owns one movie's detail plus its server-paginated reviews,
// keyed by movie id. Loading a different id supersedes any in-flight fetch
// for the previous one.
type MovieDetail struct {
	api MovieAPI

	mu    sync.Mutex
	id    int
	sort  string
	pager *pagination.ServerSide[moviedb.Review]

	movie   Resource[*moviedb.MovieDetail]
	reviews Resource[pagination.Paged[moviedb.Review]]
}

func NewMovieDetail(api MovieAPI) *MovieDetail {
	return &MovieDetail{api: api}
}

func (m *MovieDetail) Load(ctx context.Context, id, reviewPage int, sort string) {
	m.mu.Lock()
	if m.pager == nil || id != m.id || sort != m.sort {
		m.id = id
		m.sort = sort
		// Fresh pager: the old total_pages belongs to another list.
		m.pager = &pagination.ServerSide[moviedb.Review]{
			Fetch: func(ctx context.Context, page int) (pagination.Paged[moviedb.Review], error) {
				return m.api.Reviews(ctx, id, page, reviewPageSize, sort)
			},
		}
	}
	pager := m.pager
	m.mu.Unlock()

	commitMovie := m.movie.Begin()
	commitReviews := m.reviews.Begin()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detail, err := m.api.Movie(ctx, id)
		commitMovie(detail, err)
		return nil
	})
	g.Go(func() error {
		page, err := pager.Page(ctx, reviewPage)
		commitReviews(page, err)
		return nil
	})
	_ = g.Wait()
}

type ReviewsView struct {
	Status string             `json:"status"`
	Error  string             `json:"error,omitempty"`
	Items  []moviedb.Review   `json:"items"`
	Info   pagination.Info    `json:"info"`
	Pager  pagination.Control `json:"pager"`
}

type MovieDetailView struct {
	Status  string               `json:"status"`
	Error   string               `json:"error,omitempty"`
	Movie   *moviedb.MovieDetail `json:"movie,omitempty"`
	Reviews ReviewsView          `json:"reviews"`
}

func (m *MovieDetail) View() MovieDetailView {
	phase, detail, err := m.movie.Snapshot()
	v := MovieDetailView{
		Status: statusFor(phase, detail == nil),
		Error:  errText(err),
		Movie:  detail,
	}

	rPhase, page, rErr := m.reviews.Snapshot()
	v.Reviews = ReviewsView{
		Status: statusFor(rPhase, len(page.Items) == 0),
		Error:  errText(rErr),
		Items:  page.Items,
		Info:   page.Info,
		Pager:  pagination.Window(page.CurrentPage, page.TotalPages),
	}
	return v
}
