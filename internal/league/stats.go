package league

import "sort"

// tally accumulates per-player counts in the order players are first seen.
type tally struct {
	roster map[string]*Team
	rows   map[string]*Leader
	order  []string
}

func newTally(teams []Team) *tally {
	t := &tally{
		roster: make(map[string]*Team),
		rows:   make(map[string]*Leader),
	}
	for i := range teams {
		team := &teams[i]
		for _, p := range team.Players {
			if _, ok := t.roster[p.Name]; !ok {
				t.roster[p.Name] = team
			}
		}
	}
	return t
}

// row returns the leaderboard row for a rostered player, or nil when the
// name is unknown.
func (t *tally) row(name string) *Leader {
	if r, ok := t.rows[name]; ok {
		return r
	}
	team, ok := t.roster[name]
	if !ok {
		return nil
	}
	r := &Leader{Player: name, Team: team.Name, TeamLogo: team.Logo}
	t.rows[name] = r
	t.order = append(t.order, name)
	return r
}

// leaders returns rows with a non-zero tally, highest first. Ties keep the
// order in which players were first encountered.
func (t *tally) leaders() []Leader {
	out := make([]Leader, 0, len(t.order))
	for _, name := range t.order {
		if r := t.rows[name]; r.Tally > 0 {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tally > out[j].Tally
	})
	return out
}

func scorerTally(teams []Team, matches []Match) *tally {
	t := newTally(teams)
	for i := range matches {
		m := &matches[i]
		for _, lists := range [][]string{m.Result.ScorersA, m.Result.ScorersB} {
			for _, s := range lists {
				name, goals := ParseScorer(s)
				if r := t.row(name); r != nil {
					r.Tally += goals
				}
			}
		}
	}
	return t
}

func cardTally(teams []Team, matches []Match) *tally {
	t := newTally(teams)
	for i := range matches {
		m := &matches[i]
		for _, lists := range [][]string{m.Result.CardsA, m.Result.CardsB} {
			for _, s := range lists {
				name, yellow, red := ParseCard(s)
				if r := t.row(name); r != nil {
					r.Yellow += yellow
					r.Red += red
					r.Tally += yellow + red
				}
			}
		}
	}
	return t
}

// TopScorers builds the goal leaderboard from the scorer annotations of
// every match. Names missing from all rosters are dropped.
func TopScorers(teams []Team, matches []Match) []Leader {
	return scorerTally(teams, matches).leaders()
}

// TopCards builds the disciplinary leaderboard from the card annotations of
// every match.
func TopCards(teams []Team, matches []Match) []Leader {
	return cardTally(teams, matches).leaders()
}

// filterTeam keeps the rows belonging to the named team.
func filterTeam(rows []Leader, team string) []Leader {
	var out []Leader
	for _, r := range rows {
		if r.Team == team {
			out = append(out, r)
		}
	}
	return out
}
