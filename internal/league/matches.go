package league

// MatchView is a match with both team references resolved for display.
type MatchView struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Time     string   `json:"time,omitempty"`
	TeamA    TeamRef  `json:"teamA"`
	TeamB    TeamRef  `json:"teamB"`
	ScoreA   *int     `json:"scoreA,omitempty"`
	ScoreB   *int     `json:"scoreB,omitempty"`
	ScorersA []string `json:"scorersA,omitempty"`
	ScorersB []string `json:"scorersB,omitempty"`
}

// ref resolves a team reference, degrading to a placeholder when the team
// is unknown.
func (idx *index) ref(name string) TeamRef {
	if t := idx.resolve(name); t != nil {
		return TeamRef{ID: t.ID, Name: t.Name, Logo: t.Logo, Resolved: true}
	}
	if name == "" {
		name = TBD
	}
	return TeamRef{Name: name, Logo: PlaceholderLogo}
}

func (idx *index) view(m *Match) MatchView {
	return MatchView{
		ID:       m.ID,
		Date:     m.Date,
		Time:     m.Time,
		TeamA:    idx.ref(m.TeamA),
		TeamB:    idx.ref(m.TeamB),
		ScoreA:   m.Result.ScoreA,
		ScoreB:   m.Result.ScoreB,
		ScorersA: m.Result.ScorersA,
		ScorersB: m.Result.ScorersB,
	}
}

// Results lists played matches, most recent entry first. Records without an
// id or without any score are skipped.
func Results(teams []Team, matches []Match) []MatchView {
	idx := newIndex(teams)
	out := make([]MatchView, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].ID == "" || !matches[i].Played() {
			continue
		}
		out = append(out, idx.view(&matches[i]))
	}
	return out
}

// Fixtures lists upcoming matches in schedule order.
func Fixtures(teams []Team, upcoming []Match) []MatchView {
	idx := newIndex(teams)
	out := make([]MatchView, 0, len(upcoming))
	for i := range upcoming {
		if upcoming[i].ID == "" {
			continue
		}
		out = append(out, idx.view(&upcoming[i]))
	}
	return out
}
