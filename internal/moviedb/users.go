package moviedb

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token. Some API deployments answer with
// only a token; the user is then backfilled from the submitted username.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	raw, err := c.send(ctx, http.MethodPost, "/api/users/login", loginRequest{Username: username, Password: password}, false)
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	if err := unwrapObject(raw, &creds); err != nil {
		return Credentials{}, err
	}
	if creds.User.Username == "" {
		creds.User.Username = username
	}
	return creds, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.send(ctx, http.MethodPost, "/api/users/register", req, false)
	return err
}

func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	raw, err := c.send(ctx, http.MethodPatch, "/api/users/profile", patch, true)
	if err != nil {
		return nil, err
	}
	var out User
	if err := unwrapObject(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
