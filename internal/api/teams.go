package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// MinSearchLength is the shortest query the search endpoints accept.
const MinSearchLength = 3

// ErrQueryTooShort is returned for search queries under MinSearchLength.
var ErrQueryTooShort = errors.New("search query must be at least 3 characters")

// TeamsByLeague returns the teams of a league in one season.
func (c *Client) TeamsByLeague(ctx context.Context, leagueID, season int) ([]APITeam, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("invalid league id %d", leagueID)
	}

	query := url.Values{}
	query.Set("league", strconv.Itoa(leagueID))
	query.Set("season", strconv.Itoa(season))

	var resp TeamsResponse
	if err := c.get(ctx, "/teams", query, &resp); err != nil {
		return nil, fmt.Errorf("get teams for league %d: %w", leagueID, err)
	}

	return teamsOf(resp), nil
}

// SearchTeams searches teams by name.
func (c *Client) SearchTeams(ctx context.Context, name string) ([]APITeam, error) {
	name, err := searchQuery(name)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("search", name)

	var resp TeamsResponse
	if err := c.get(ctx, "/teams", query, &resp); err != nil {
		return nil, fmt.Errorf("search teams %q: %w", name, err)
	}

	return teamsOf(resp), nil
}

func teamsOf(resp TeamsResponse) []APITeam {
	teams := make([]APITeam, 0, len(resp.Response))
	for _, entry := range resp.Response {
		teams = append(teams, entry.Team)
	}
	return teams
}

// TeamNames returns the names of teams, skipping blanks.
func TeamNames(teams []APITeam) []string {
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		if name := strings.TrimSpace(t.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func searchQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSearchLength {
		return "", ErrQueryTooShort
	}
	return q, nil
}
