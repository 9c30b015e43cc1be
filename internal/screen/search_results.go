package screen

import (
	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/store"
)

// SearchResults renders the ambient search store; it owns no fetch of its
// own. "No results" is rendered distinctly from a failed search.
type SearchResults struct {
	search *store.Search
}

func NewSearchResults(search *store.Search) *SearchResults {
	return &SearchResults{search: search}
}

type SearchResultsView struct {
	Status string                 `json:"status"`
	Query  string                 `json:"query"`
	Error  string                 `json:"error,omitempty"`
	Movies []moviedb.MovieSummary `json:"movies"`
}

func (s *SearchResults) View() SearchResultsView {
	snap := s.search.Snapshot()
	v := SearchResultsView{
		Query:  snap.Query,
		Error:  snap.Err,
		Movies: snap.Results,
	}
	switch {
	case snap.Loading:
		v.Status = StatusLoading
	case snap.Err != "":
		v.Status = StatusError
	case !snap.Active:
		v.Status = StatusIdle
	case len(snap.Results) == 0:
		v.Status = StatusEmpty
	default:
		v.Status = StatusOK
	}
	return v
}
