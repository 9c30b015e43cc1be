package screen

import (
	"context"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/store"
)

// Favorites lists the authenticated user's favorite movies through the
// session store, which re-fetches on every load.
type Favorites struct {
	session *store.Session

	list Resource[[]moviedb.MovieSummary]
}

func NewFavorites(session *store.Session) *Favorites {
	return &Favorites{session: session}
}

func (f *Favorites) Load(ctx context.Context) {
	commit := f.list.Begin()
	movies, err := f.session.Favorites(ctx)
	commit(movies, err)
}

type FavoritesView struct {
	Status string                 `json:"status"`
	Error  string                 `json:"error,omitempty"`
	Movies []moviedb.MovieSummary `json:"movies"`
}

func (f *Favorites) View() FavoritesView {
	phase, movies, err := f.list.Snapshot()
	return FavoritesView{
		Status: statusFor(phase, len(movies) == 0),
		Error:  errText(err),
		Movies: movies,
	}
}
