package api

// Paging from the response envelope.
type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// TeamsResponse from GET /teams
type TeamsResponse struct {
	Results  int         `json:"results"`
	Paging   Paging      `json:"paging"`
	Response []TeamEntry `json:"response"`
}

// TeamEntry is one element of a /teams response.
type TeamEntry struct {
	Team  APITeam  `json:"team"`
	Venue APIVenue `json:"venue"`
}

// APITeam represents a team from API-Football.
type APITeam struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Country  string `json:"country"`
	Founded  int    `json:"founded"`
	National bool   `json:"national"`
	Logo     string `json:"logo"`
}

// APIVenue is the home venue attached to a team.
type APIVenue struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// LeaguesResponse from GET /leagues
type LeaguesResponse struct {
	Results  int           `json:"results"`
	Paging   Paging        `json:"paging"`
	Response []LeagueEntry `json:"response"`
}

// LeagueEntry is one element of a /leagues response.
type LeagueEntry struct {
	League  APILeague   `json:"league"`
	Country APICountry  `json:"country"`
	Seasons []APISeason `json:"seasons"`
}

// APILeague represents a league or cup.
type APILeague struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Logo string `json:"logo"`
}

// APICountry of a league.
type APICountry struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

// APISeason of a league.
type APISeason struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

// League is a well-known league ID for quick reference.
type League struct {
	ID   int
	Name string
}

// CommonLeagues lists the league IDs the alias table is usually built from.
var CommonLeagues = []League{
	{ID: 39, Name: "Premier League"},
	{ID: 140, Name: "La Liga"},
	{ID: 78, Name: "Bundesliga"},
	{ID: 135, Name: "Serie A"},
	{ID: 61, Name: "Ligue 1"},
	{ID: 88, Name: "Eredivisie"},
	{ID: 94, Name: "Primeira Liga"},
	{ID: 203, Name: "Super Lig"},
	{ID: 279, Name: "Indonesia Liga 1"},
	{ID: 2, Name: "Champions League"},
	{ID: 3, Name: "Europa League"},
}
