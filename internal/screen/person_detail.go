package screen

import (
	"context"

	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/pagination"
)

// PersonAPI is the slice of the movie API the person screen reads.
type PersonAPI interface {
	Person(ctx context.Context, id int) (*moviedb.Person, error)
}

// knownForPageSize pages the embedded "known for" list locally; the API
// returns the whole list in one response.
const knownForPageSize = 6

type PersonDetail struct {
	api PersonAPI

	person Resource[*moviedb.Person]
}

func NewPersonDetail(api PersonAPI) *PersonDetail {
	return &PersonDetail{api: api}
}

func (p *PersonDetail) Load(ctx context.Context, id int) {
	commit := p.person.Begin()
	person, err := p.api.Person(ctx, id)
	commit(person, err)
}

type KnownForView struct {
	Items []moviedb.MovieSummary `json:"items"`
	Info  pagination.Info        `json:"info"`
	Pager pagination.Control     `json:"pager"`
}

type PersonDetailView struct {
	Status   string          `json:"status"`
	Error    string          `json:"error,omitempty"`
	Person   *moviedb.Person `json:"person,omitempty"`
	KnownFor KnownForView    `json:"known_for"`
}

// View slices the known-for list client-side; changing page never
// re-fetches.
func (p *PersonDetail) View(knownForPage int) PersonDetailView {
	phase, person, err := p.person.Snapshot()
	v := PersonDetailView{
		Status: statusFor(phase, person == nil),
		Error:  errText(err),
		Person: person,
	}
	if person != nil {
		paged := pagination.ClientSide[moviedb.MovieSummary]{
			Items:    person.KnownFor,
			PageSize: knownForPageSize,
		}.Page(knownForPage)
		v.KnownFor = KnownForView{
			Items: paged.Items,
			Info:  paged.Info,
			Pager: pagination.Window(paged.CurrentPage, paged.TotalPages),
		}
	}
	return v
}
