// Package forms is client-side validation for the login, signup and profile
// forms. A failed validation never reaches the network.
package forms

import (
	"regexp"
	"strings"
	"time"

	"github.com/example/movieview/internal/moviedb"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^[0-9+\-\s()]{10,15}$`)
)

// ValidationError maps field names to user-facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type fieldErrors map[string]string

func (f fieldErrors) toError() *ValidationError {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() *ValidationError {
	errs := fieldErrors{}
	if strings.TrimSpace(f.Username) == "" {
		errs["username"] = "Username is required"
	}
	if f.Password == "" {
		errs["password"] = "Password is required"
	}
	return errs.toError()
}

type SignupForm struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
	DOB             string `json:"dob"`
}

func (f SignupForm) Validate() *ValidationError {
	errs := fieldErrors{}
	username := strings.TrimSpace(f.Username)
	switch {
	case username == "":
		errs["username"] = "Username is required"
	case len(username) < 3:
		errs["username"] = "Username must be at least 3 characters"
	case len(username) > 30:
		errs["username"] = "Username must be at most 30 characters"
	}
	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailRe.MatchString(email):
		errs["email"] = "Email is invalid"
	}
	switch {
	case f.Password == "":
		errs["password"] = "Password is required"
	case len(f.Password) < 6:
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.ConfirmPassword == "" {
		errs["confirm_password"] = "Password confirmation is required"
	} else if f.Password != f.ConfirmPassword {
		errs["confirm_password"] = "Passwords do not match"
	}
	if f.Phone != "" && !phoneRe.MatchString(f.Phone) {
		errs["phone"] = "Phone number is invalid (10-15 digits)"
	}
	if f.DOB != "" && !validDate(f.DOB) {
		errs["dob"] = "Date of birth is invalid"
	}
	return errs.toError()
}

func (f SignupForm) Request() moviedb.RegisterRequest {
	return moviedb.RegisterRequest{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Phone:    strings.TrimSpace(f.Phone),
		DOB:      strings.TrimSpace(f.DOB),
	}
}

type ProfileForm struct {
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	DOB   *string `json:"dob,omitempty"`
}

func (f ProfileForm) Validate() *ValidationError {
	errs := fieldErrors{}
	if f.Email != nil && !emailRe.MatchString(strings.TrimSpace(*f.Email)) {
		errs["email"] = "Email is invalid"
	}
	if f.Phone != nil && *f.Phone != "" && !phoneRe.MatchString(*f.Phone) {
		errs["phone"] = "Phone number is invalid (10-15 digits)"
	}
	if f.DOB != nil && *f.DOB != "" && !validDate(*f.DOB) {
		errs["dob"] = "Date of birth is invalid"
	}
	return errs.toError()
}

func (f ProfileForm) Patch() moviedb.ProfilePatch {
	return moviedb.ProfilePatch{Email: f.Email, Phone: f.Phone, DOB: f.DOB}
}

func validDate(v string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
