package screen

import (
	"context"
	"errors"

	"github.com/example/movieview/internal/forms"
	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/store"
)

// Profile shows the authenticated user and applies profile patches.
type Profile struct {
	session *store.Session
}

func NewProfile(session *store.Session) *Profile {
	return &Profile{session: session}
}

type ProfileView struct {
	Status string        `json:"status"`
	User   *moviedb.User `json:"user,omitempty"`
}

func (p *Profile) View() ProfileView {
	snap := p.session.Snapshot()
	if snap.State != store.Authenticated || snap.User == nil {
		return ProfileView{Status: StatusEmpty}
	}
	return ProfileView{Status: StatusOK, User: snap.User}
}

func (p *Profile) Submit(ctx context.Context, form forms.ProfileForm) FormResult {
	if verr := form.Validate(); verr != nil {
		return FormResult{FieldErrors: verr.Fields}
	}
	user, err := p.session.UpdateProfile(ctx, form.Patch())
	if err != nil {
		if errors.Is(err, moviedb.ErrUnauthorized) {
			return FormResult{Message: "Your session has expired, please log in again"}
		}
		return FormResult{Message: moviedb.UserMessage(err, "Updating profile failed")}
	}
	return FormResult{OK: true, User: user}
}
