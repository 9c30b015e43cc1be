package forms

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginForm_Validate(t *testing.T) {
	require.Nil(t, LoginForm{Username: "alice", Password: "x"}.Validate())

	verr := LoginForm{}.Validate()
	require.NotNil(t, verr)
	require.Contains(t, verr.Fields, "username")
	require.Contains(t, verr.Fields, "password")
}

func TestSignupForm_Validate(t *testing.T) {
	valid := SignupForm{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}

	tests := []struct {
		name   string
		mutate func(f *SignupForm)
		field  string
	}{
		{name: "username required", mutate: func(f *SignupForm) { f.Username = "" }, field: "username"},
		{name: "username too short", mutate: func(f *SignupForm) { f.Username = "ab" }, field: "username"},
		{name: "username too long", mutate: func(f *SignupForm) { f.Username = "abcdefghijklmnopqrstuvwxyz01234" }, field: "username"},
		{name: "email required", mutate: func(f *SignupForm) { f.Email = "" }, field: "email"},
		{name: "email invalid", mutate: func(f *SignupForm) { f.Email = "not-an-email" }, field: "email"},
		{name: "password too short", mutate: func(f *SignupForm) { f.Password = "abc"; f.ConfirmPassword = "abc" }, field: "password"},
		{name: "confirmation mismatch", mutate: func(f *SignupForm) { f.ConfirmPassword = "other1" }, field: "confirm_password"},
		{name: "phone invalid", mutate: func(f *SignupForm) { f.Phone = "123" }, field: "phone"},
		{name: "dob invalid", mutate: func(f *SignupForm) { f.DOB = "not-a-date" }, field: "dob"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			verr := f.Validate()
			require.NotNil(t, verr)
			require.Contains(t, verr.Fields, tt.field)
		})
	}

	require.Nil(t, valid.Validate())

	withOptionals := valid
	withOptionals.Phone = "+84 123 456 789"
	withOptionals.DOB = "1990-04-01"
	require.Nil(t, withOptionals.Validate())
}

func TestProfileForm_Validate(t *testing.T) {
	bad := "nope"
	good := "a@b.co"
	require.NotNil(t, ProfileForm{Email: &bad}.Validate())
	require.Nil(t, ProfileForm{Email: &good}.Validate())
	require.Nil(t, ProfileForm{}.Validate())
}

func TestSignupForm_RequestTrims(t *testing.T) {
	f := SignupForm{Username: "  alice  ", Email: " a@b.co ", Password: "secret1", ConfirmPassword: "secret1"}
	req := f.Request()
	require.Equal(t, "alice", req.Username)
	require.Equal(t, "a@b.co", req.Email)
}
