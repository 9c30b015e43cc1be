package moviedb

import (
	"context"
	"fmt"
)

func (c *Client) Person(ctx context.Context, id int) (*Person, error) {
	raw, err := c.get(ctx, fmt.Sprintf("/api/persons/%d", id), nil, false)
	if err != nil {
		return nil, err
	}
	var out Person
	if err := unwrapObject(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
