package api

import (
	"context"
	"fmt"
	"net/url"
)

// SearchLeagues searches leagues and cups by name.
func (c *Client) SearchLeagues(ctx context.Context, name string) ([]LeagueEntry, error) {
	name, err := searchQuery(name)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("search", name)

	var resp LeaguesResponse
	if err := c.get(ctx, "/leagues", query, &resp); err != nil {
		return nil, fmt.Errorf("search leagues %q: %w", name, err)
	}

	return resp.Response, nil
}
