package league

import "errors"

// ErrTeamNotFound is returned when a team id or name matches no team.
var ErrTeamNotFound = errors.New("team not found")

// PlayerLine is a roster entry with its derived tallies.
type PlayerLine struct {
	Player
	ScoredGoals int `json:"scoredGoals"`
	Yellow      int `json:"yellow"`
	Red         int `json:"red"`
}

// Detail is everything the team page shows.
type Detail struct {
	Team      *Team        `json:"team"`
	Record    TableEntry   `json:"record"`
	Position  int          `json:"position"`
	Players   []PlayerLine `json:"players"`
	TopScorer *Leader      `json:"topScorer,omitempty"`
	MostCards *Leader      `json:"mostCards,omitempty"`
	Results   []MatchView  `json:"results"`
	Fixtures  []MatchView  `json:"fixtures"`
}

// FindTeam looks a team up by id, then by name.
func FindTeam(teams []Team, key string) (*Team, error) {
	for i := range teams {
		if teams[i].ID == key {
			return &teams[i], nil
		}
	}
	for i := range teams {
		if teams[i].Name == key {
			return &teams[i], nil
		}
	}
	return nil, ErrTeamNotFound
}

// TeamDetail assembles the detail view of one team.
func TeamDetail(teams []Team, matches, upcoming []Match, key string, opts Options) (*Detail, error) {
	team, err := FindTeam(teams, key)
	if err != nil {
		return nil, err
	}
	d := &Detail{
		Team:   team,
		Record: TeamRecord(teams, matches, team),
	}

	// group position
	for _, g := range CalculateStandings(teams, matches, opts) {
		if g.Name != team.Group {
			continue
		}
		for _, e := range g.Table {
			if e.Team == team {
				d.Position = e.Position
			}
		}
	}

	// derived tallies, restricted to this roster
	scorers := scorerTally(teams, matches)
	cards := cardTally(teams, matches)
	for _, p := range team.Players {
		line := PlayerLine{Player: p}
		if scorers.roster[p.Name] == team {
			if r, ok := scorers.rows[p.Name]; ok {
				line.ScoredGoals = r.Tally
			}
			if r, ok := cards.rows[p.Name]; ok {
				line.Yellow, line.Red = r.Yellow, r.Red
			}
		}
		d.Players = append(d.Players, line)
	}
	if top := filterTeam(scorers.leaders(), team.Name); len(top) > 0 {
		d.TopScorer = &top[0]
	}
	if top := filterTeam(cards.leaders(), team.Name); len(top) > 0 {
		d.MostCards = &top[0]
	}

	// fixtures involving the team
	idx := newIndex(teams)
	involves := func(m *Match) bool {
		return idx.resolve(m.TeamA) == team || idx.resolve(m.TeamB) == team
	}
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].ID != "" && matches[i].Played() && involves(&matches[i]) {
			d.Results = append(d.Results, idx.view(&matches[i]))
		}
	}
	for i := range upcoming {
		if upcoming[i].ID != "" && involves(&upcoming[i]) {
			d.Fixtures = append(d.Fixtures, idx.view(&upcoming[i]))
		}
	}
	return d, nil
}
