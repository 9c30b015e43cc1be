package shell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/pagination"
	"github.com/example/movieview/internal/storage"
	"github.com/example/movieview/internal/store"
)

// stubBackend stands in for the whole remote API: catalogue reads for the
// screens plus auth/favorites for the stores.
type stubBackend struct {
	searchResults []moviedb.MovieSummary
	searchErr     error
	movie         *moviedb.MovieDetail
	person        *moviedb.Person

	loginErr     error
	favorites    []moviedb.MovieSummary
	favoritesErr error
	addCalls     int32
}

func (s *stubBackend) MostPopular(_ context.Context, _, _ int) (pagination.Paged[moviedb.MovieSummary], error) {
	return pagination.Paged[moviedb.MovieSummary]{Items: []moviedb.MovieSummary{{ID: 1, Title: "Popular"}}}, nil
}

func (s *stubBackend) TopRated(_ context.Context, _, _ int) (pagination.Paged[moviedb.MovieSummary], error) {
	return pagination.Paged[moviedb.MovieSummary]{Items: []moviedb.MovieSummary{{ID: 2, Title: "Rated"}}}, nil
}

func (s *stubBackend) Movie(_ context.Context, id int) (*moviedb.MovieDetail, error) {
	if s.movie == nil {
		return nil, &moviedb.HTTPError{Status: 404, Body: "not found"}
	}
	return s.movie, nil
}

func (s *stubBackend) Reviews(_ context.Context, _, page, limit int, _ string) (pagination.Paged[moviedb.Review], error) {
	return pagination.Paged[moviedb.Review]{Info: pagination.Info{CurrentPage: page, TotalPages: 1, PageSize: limit}}, nil
}

func (s *stubBackend) Person(_ context.Context, id int) (*moviedb.Person, error) {
	if s.person == nil {
		return nil, &moviedb.HTTPError{Status: 404, Body: "not found"}
	}
	return s.person, nil
}

func (s *stubBackend) SearchMovies(_ context.Context, _ string, _ int) ([]moviedb.MovieSummary, error) {
	return s.searchResults, s.searchErr
}

func (s *stubBackend) Login(_ context.Context, username, _ string) (moviedb.Credentials, error) {
	if s.loginErr != nil {
		return moviedb.Credentials{}, s.loginErr
	}
	return moviedb.Credentials{User: moviedb.User{ID: 1, Username: username}, Token: "tok"}, nil
}

func (s *stubBackend) Register(_ context.Context, _ moviedb.RegisterRequest) error { return nil }

func (s *stubBackend) UpdateProfile(_ context.Context, _ moviedb.ProfilePatch) (*moviedb.User, error) {
	return &moviedb.User{}, nil
}

func (s *stubBackend) Favorites(_ context.Context) ([]moviedb.MovieSummary, error) {
	return s.favorites, s.favoritesErr
}

func (s *stubBackend) AddFavorite(_ context.Context, _ int) error {
	atomic.AddInt32(&s.addCalls, 1)
	return nil
}

func (s *stubBackend) RemoveFavorite(_ context.Context, _ int) error { return nil }

func newTestShell(t *testing.T, backend *stubBackend, authed bool) http.Handler {
	t.Helper()
	st, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	session := store.NewSession(backend, st, &moviedb.TokenHolder{}, zap.NewNop())
	if authed {
		if _, err := session.Login(context.Background(), "alice", "secret"); err != nil {
			t.Fatal(err)
		}
	}
	search := store.NewSearch(backend, zap.NewNop())

	r := chi.NewRouter()
	New(zap.NewNop(), backend, session, search).Register(r)
	return r
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	return rr
}

func TestGate_RedirectsUnauthenticated(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, false)
	for _, path := range []string{"/", "/search", "/movie/1", "/person/1", "/favorites", "/profile"} {
		rr := get(h, path)
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("%s: expected 303, got %d", path, rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "/login" {
			t.Fatalf("%s: expected redirect to /login, got %q", path, loc)
		}
	}
}

func TestGate_LoginAndSignupAreOpen(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, false)
	for _, path := range []string{"/login", "/signup"} {
		if rr := get(h, path); rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}
}

func TestLogin_FlowOpensGate(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, false)

	rr := postJSON(h, "/login", `{"username":"alice","password":"secret"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res struct {
		OK   bool          `json:"ok"`
		User *moviedb.User `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if !res.OK || res.User.Username != "alice" {
		t.Fatalf("unexpected login result: %+v", res)
	}

	if rr := get(h, "/"); rr.Code != http.StatusOK {
		t.Fatalf("expected gate open after login, got %d", rr.Code)
	}
}

func TestLogin_RejectedStaysClosed(t *testing.T) {
	backend := &stubBackend{loginErr: &moviedb.HTTPError{Status: 401, Body: `{"message":"bad credentials"}`}}
	h := newTestShell(t, backend, false)

	rr := postJSON(h, "/login", `{"username":"x","password":"bad"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var res struct {
		OK      bool   `json:"ok"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.OK || res.Message != "bad credentials" {
		t.Fatalf("unexpected result: %+v", res)
	}

	if rr := get(h, "/"); rr.Code != http.StatusSeeOther {
		t.Fatalf("expected gate still closed, got %d", rr.Code)
	}
}

func TestLogin_ValidationNeverHitsNetwork(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, false)
	rr := postJSON(h, "/login", `{"username":"","password":""}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var res struct {
		OK          bool              `json:"ok"`
		FieldErrors map[string]string `json:"field_errors"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.OK || len(res.FieldErrors) != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestLogin_MalformedJSON(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, false)
	if rr := postJSON(h, "/login", `{nope`); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSearch_EndToEnd(t *testing.T) {
	backend := &stubBackend{searchResults: []moviedb.MovieSummary{
		{ID: 1, Title: "The Matrix"},
		{ID: 2, Title: "The Matrix Reloaded"},
	}}
	h := newTestShell(t, backend, true)

	rr := get(h, "/search?q=matrix")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var view struct {
		Status string                 `json:"status"`
		Query  string                 `json:"query"`
		Movies []moviedb.MovieSummary `json:"movies"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Status != "ok" || view.Query != "matrix" || len(view.Movies) != 2 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestSearch_EmptyQueryRendersStoreState(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, true)
	rr := get(h, "/search")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var view struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Status != "idle" {
		t.Fatalf("expected idle, got %q", view.Status)
	}
}

func TestMovie_InvalidID(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, true)
	if rr := get(h, "/movie/abc"); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestMovie_RendersErrorStateNotBlank(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, true)
	rr := get(h, "/movie/99")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var view struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Status != "error" || view.Error == "" {
		t.Fatalf("expected rendered error state, got %+v", view)
	}
}

func TestFavorites_AddAndList(t *testing.T) {
	backend := &stubBackend{favorites: []moviedb.MovieSummary{{ID: 42, Title: "Heat"}}}
	h := newTestShell(t, backend, true)

	rr := postJSON(h, "/favorites/42", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if n := atomic.LoadInt32(&backend.addCalls); n != 1 {
		t.Fatalf("expected 1 add call, got %d", n)
	}

	rr = get(h, "/favorites")
	var view struct {
		Status string                 `json:"status"`
		Movies []moviedb.MovieSummary `json:"movies"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Status != "ok" || len(view.Movies) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestFavorites_ExpiredTokenRedirects(t *testing.T) {
	backend := &stubBackend{favoritesErr: &moviedb.HTTPError{Status: 401}}
	h := newTestShell(t, backend, true)

	rr := get(h, "/favorites")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 after forced logout, got %d", rr.Code)
	}

	// The session store was force-logged-out, so the gate is closed now.
	if rr := get(h, "/"); rr.Code != http.StatusSeeOther {
		t.Fatalf("expected gate closed, got %d", rr.Code)
	}
}

func TestLogout_ClosesGate(t *testing.T) {
	h := newTestShell(t, &stubBackend{}, true)

	rr := postJSON(h, "/logout", "")
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if rr := get(h, "/profile"); rr.Code != http.StatusSeeOther {
		t.Fatalf("expected gate closed, got %d", rr.Code)
	}
}
