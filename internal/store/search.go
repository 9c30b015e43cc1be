package store

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/example/movieview/internal/moviedb"
)

// Searcher is the slice of the movie API the search store drives.
type Searcher interface {
	SearchMovies(ctx context.Context, query string, limit int) ([]moviedb.MovieSummary, error)
}

// SearchState is the ambient global search state. Results always reflect the
// most recently initiated search that completed; superseded responses are
// discarded.
type SearchState struct {
	Active  bool
	Query   string
	Results []moviedb.MovieSummary
	Loading bool
	Err     string
}

type Search struct {
	api Searcher
	log *zap.Logger

	mu        sync.Mutex
	gen       uint64
	state     SearchState
	nextSubID int
	subs      map[int]func(SearchState)
}

func NewSearch(api Searcher, log *zap.Logger) *Search {
	if log == nil {
		log = zap.NewNop()
	}
	return &Search{
		api:  api,
		log:  log,
		subs: make(map[int]func(SearchState)),
	}
}

// PerformSearch runs a search and commits its result unless a later
// PerformSearch or ClearSearch superseded it. Blank queries are a no-op.
func (s *Search) PerformSearch(ctx context.Context, query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}

	s.mu.Lock()
	s.gen++
	mine := s.gen
	s.state.Active = true
	s.state.Query = q
	s.state.Loading = true
	s.state.Err = ""
	snap := s.state
	s.mu.Unlock()
	s.notify(snap)

	results, err := s.api.SearchMovies(ctx, q, moviedb.SearchLimit)

	s.mu.Lock()
	if s.gen != mine {
		// A newer search or a clear won; this result is stale.
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	if err != nil {
		s.log.Warn("search failed", zap.String("query", q), zap.Error(err))
		s.state.Err = moviedb.UserMessage(err, "Search failed")
		s.state.Results = nil
	} else {
		s.state.Err = ""
		s.state.Results = results
	}
	snap = s.state
	s.mu.Unlock()
	s.notify(snap)
}

// ClearSearch resets to the inactive zero state unconditionally. Bumping the
// generation also discards any in-flight search.
func (s *Search) ClearSearch() {
	s.mu.Lock()
	s.gen++
	s.state = SearchState{}
	snap := s.state
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Search) Snapshot() SearchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a change callback and returns its cancel func.
func (s *Search) Subscribe(fn func(SearchState)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Search) notify(snap SearchState) {
	s.mu.Lock()
	fns := make([]func(SearchState), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}
