// Package shell is the navigable surface: it maps URL paths to screens and
// gates everything except login/signup behind an authenticated session.
package shell

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/movieview/internal/screen"
	"github.com/example/movieview/internal/store"
)

// API is the read-only catalogue surface the screens fetch from.
type API interface {
	screen.CatalogAPI
	screen.MovieAPI
	screen.PersonAPI
}

type Shell struct {
	log     *zap.Logger
	session *store.Session
	search  *store.Search

	home      *screen.Home
	movie     *screen.MovieDetail
	person    *screen.PersonDetail
	results   *screen.SearchResults
	favorites *screen.Favorites
	profile   *screen.Profile
	login     *screen.Login
	signup    *screen.Signup
}

func New(log *zap.Logger, api API, session *store.Session, search *store.Search) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{
		log:       log,
		session:   session,
		search:    search,
		home:      screen.NewHome(api),
		movie:     screen.NewMovieDetail(api),
		person:    screen.NewPersonDetail(api),
		results:   screen.NewSearchResults(search),
		favorites: screen.NewFavorites(session),
		profile:   screen.NewProfile(session),
		login:     screen.NewLogin(session),
		signup:    screen.NewSignup(session),
	}
}

func (s *Shell) Register(r chi.Router) {
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/signup", s.handleSignupPage)
	r.Post("/signup", s.handleSignup)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/", s.handleHome)
		r.Get("/search", s.handleSearch)
		r.Post("/search/clear", s.handleClearSearch)
		r.Get("/movie/{id}", s.handleMovie)
		r.Get("/person/{id}", s.handlePerson)
		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites/{id}", s.handleAddFavorite)
		r.Delete("/favorites/{id}", s.handleRemoveFavorite)
		r.Get("/profile", s.handleProfile)
		r.Patch("/profile", s.handleProfileUpdate)
		r.Post("/logout", s.handleLogout)
	})
}

// requireSession redirects unauthenticated visits to the login page.
func (s *Shell) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.session.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
