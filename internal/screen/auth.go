package screen

import (
	"context"
	"errors"

	"github.com/example/movieview/internal/forms"
	"github.com/example/movieview/internal/moviedb"
	"github.com/example/movieview/internal/store"
)

// FormResult is the outcome of a form submission: either field-level
// validation errors, or a user-facing message, or success.
type FormResult struct {
	OK          bool              `json:"ok"`
	Message     string            `json:"message,omitempty"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
	User        *moviedb.User     `json:"user,omitempty"`
}

// Login is the login form controller. Validation failures never reach the
// network; a pending submission makes further ones fail fast.
type Login struct {
	session *store.Session
}

func NewLogin(session *store.Session) *Login {
	return &Login{session: session}
}

func (l *Login) Submit(ctx context.Context, form forms.LoginForm) FormResult {
	if verr := form.Validate(); verr != nil {
		return FormResult{FieldErrors: verr.Fields}
	}
	res, err := l.session.Login(ctx, form.Username, form.Password)
	if errors.Is(err, store.ErrBusy) {
		return FormResult{Message: "A login is already in progress"}
	}
	if err != nil {
		return FormResult{Message: "Login failed, please try again"}
	}
	if !res.OK {
		return FormResult{Message: res.Message}
	}
	return FormResult{OK: true, User: res.User}
}

// Signup is the registration form controller. Success does not log the user
// in.
type Signup struct {
	session *store.Session
}

func NewSignup(session *store.Session) *Signup {
	return &Signup{session: session}
}

func (s *Signup) Submit(ctx context.Context, form forms.SignupForm) FormResult {
	if verr := form.Validate(); verr != nil {
		return FormResult{FieldErrors: verr.Fields}
	}
	res, err := s.session.Signup(ctx, form.Request())
	if errors.Is(err, store.ErrBusy) {
		return FormResult{Message: "A signup is already in progress"}
	}
	if err != nil {
		return FormResult{Message: "Signup failed, please try again"}
	}
	return FormResult{OK: res.OK, Message: res.Message}
}
