package shell

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/movieview/internal/forms"
	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/platform/api"
	"github.com/example/movieview/internal/platform/httpserver"
	"github.com/example/movieview/internal/screen"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// decodeJSON reads up to maxRequestBodyBytes from r.Body and decodes JSON
// into dst. On failure it writes a 400 response and returns false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, rid string, dst *T) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst); err != nil {
		api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
		return false
	}
	return true
}

func (s *Shell) handleHome(w http.ResponseWriter, r *http.Request) {
	s.home.Load(r.Context())
	api.WriteJSON(w, http.StatusOK, s.home.View())
}

func (s *Shell) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q != "" {
		s.search.PerformSearch(r.Context(), q)
	}
	api.WriteJSON(w, http.StatusOK, s.results.View())
}

func (s *Shell) handleClearSearch(w http.ResponseWriter, r *http.Request) {
	s.search.ClearSearch()
	api.WriteJSON(w, http.StatusOK, s.results.View())
}

func (s *Shell) handleMovie(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	id, ok := pathID(w, r, rid)
	if !ok {
		return
	}
	page := parseIntDefault(r.URL.Query().Get("reviews_page"), 1)
	sort := strings.TrimSpace(r.URL.Query().Get("sort"))
	s.movie.Load(r.Context(), id, page, sort)
	api.WriteJSON(w, http.StatusOK, s.movie.View())
}

func (s *Shell) handlePerson(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	id, ok := pathID(w, r, rid)
	if !ok {
		return
	}
	page := parseIntDefault(r.URL.Query().Get("known_for_page"), 1)
	s.person.Load(r.Context(), id)
	api.WriteJSON(w, http.StatusOK, s.person.View(page))
}

func (s *Shell) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.favorites.Load(r.Context())
	view := s.favorites.View()
	if view.Status == screen.StatusError && s.sessionExpired(w, r) {
		return
	}
	api.WriteJSON(w, http.StatusOK, view)
}

func (s *Shell) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	s.mutateFavorite(w, r, s.session.AddFavorite)
}

func (s *Shell) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	s.mutateFavorite(w, r, s.session.RemoveFavorite)
}

func (s *Shell) mutateFavorite(w http.ResponseWriter, r *http.Request, mutate func(ctx context.Context, movieID int) error) {
	rid := httpserver.RequestIDFromContext(r.Context())
	id, ok := pathID(w, r, rid)
	if !ok {
		return
	}
	if err := mutate(r.Context(), id); err != nil {
		if errors.Is(err, moviedb.ErrUnauthorized) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		api.WriteJSON(w, http.StatusOK, screen.FormResult{Message: moviedb.UserMessage(err, "Updating favorites failed")})
		return
	}
	api.WriteJSON(w, http.StatusOK, screen.FormResult{OK: true})
}

func (s *Shell) handleProfile(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, s.profile.View())
}

func (s *Shell) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	var form forms.ProfileForm
	if !decodeJSON(w, r, rid, &form) {
		return
	}
	res := s.profile.Submit(r.Context(), form)
	if !res.OK && s.sessionExpired(w, r) {
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

func (s *Shell) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": s.session.IsAuthenticated(),
	})
}

func (s *Shell) handleLogin(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	var form forms.LoginForm
	if !decodeJSON(w, r, rid, &form) {
		return
	}
	api.WriteJSON(w, http.StatusOK, s.login.Submit(r.Context(), form))
}

func (s *Shell) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": s.session.IsAuthenticated(),
	})
}

func (s *Shell) handleSignup(w http.ResponseWriter, r *http.Request) {
	rid := httpserver.RequestIDFromContext(r.Context())
	var form forms.SignupForm
	if !decodeJSON(w, r, rid, &form) {
		return
	}
	api.WriteJSON(w, http.StatusOK, s.signup.Submit(r.Context(), form))
}

func (s *Shell) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.session.Logout()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// sessionExpired redirects to the login page when the session store has been
// force-logged-out by a 401; the gate alone cannot catch this because the
// request was authenticated when it entered.
func (s *Shell) sessionExpired(w http.ResponseWriter, r *http.Request) bool {
	if s.session.IsAuthenticated() {
		return false
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, rid string) (int, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		api.BadRequest(w, "INVALID_ID", "Invalid id", rid, nil)
		return 0, false
	}
	return id, true
}

func parseIntDefault(v string, def int) int {
	if strings.TrimSpace(v) == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
