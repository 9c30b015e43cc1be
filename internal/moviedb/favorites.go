package moviedb

import (
	"context"
	"fmt"
	"net/http"
)

type favoriteRequest struct {
	MovieID int `json:"movieId"`
}

// Favorites lists the authenticated user's favorite movies. Never cached:
// membership is always re-read from the API.
func (c *Client) Favorites(ctx context.Context) ([]MovieSummary, error) {
	raw, err := c.get(ctx, "/api/favorites", nil, true)
	if err != nil {
		return nil, err
	}
	return unwrapList[MovieSummary](raw)
}

func (c *Client) AddFavorite(ctx context.Context, movieID int) error {
	_, err := c.send(ctx, http.MethodPost, "/api/favorites", favoriteRequest{MovieID: movieID}, true)
	return err
}

func (c *Client) RemoveFavorite(ctx context.Context, movieID int) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", movieID), nil, true)
	return err
}
