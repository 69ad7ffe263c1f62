package league

func intp(n int) *int { return &n }

func played(id, a, b string, sa, sb int, scorersA, scorersB []string) Match {
	return Match{
		ID:    id,
		TeamA: a,
		TeamB: b,
		Result: Result{
			ScoreA:   intp(sa),
			ScoreB:   intp(sb),
			ScorersA: scorersA,
			ScorersB: scorersB,
		},
	}
}

func team(id, group string, players ...string) Team {
	t := Team{ID: id, Group: group, Name: id, Logo: "/logos/" + id + ".png"}
	for _, p := range players {
		t.Players = append(t.Players, Player{Name: p})
	}
	return t
}

func names(table []*TableEntry) []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.Team.Name
	}
	return out
}

// tournament is a small three-group fixture set shared by several tests.
func tournament() ([]Team, []Match) {
	teams := []Team{
		team("A1", "A", "Ali"), team("A2", "A", "Omar"), team("A3", "A", "Sami"), team("A4", "A", "Rami"),
		team("B1", "B", "Tarek"), team("B2", "B", "Ziad"), team("B3", "B", "Majd"), team("B4", "B", "Hadi"),
		team("C1", "C", "Louay"), team("C2", "C", "Wael"), team("C3", "C", "Jad"),
	}
	matches := []Match{
		played("m1", "A1", "A2", 2, 0, []string{"Ali (2)"}, nil),
		played("m2", "A3", "A4", 1, 0, []string{"Sami"}, nil),
		played("m3", "A2", "A4", 3, 3, []string{"Omar (3)"}, []string{"Rami (3)"}),
		played("m4", "B1", "B2", 1, 0, []string{"Tarek"}, nil),
		played("m5", "B3", "B4", 0, 2, nil, []string{"Hadi", "Hadi"}),
		played("m6", "C1", "C2", 4, 1, []string{"Louay (4)"}, []string{"Wael"}),
		played("m7", "C2", "C3", 2, 0, []string{"Wael (2)"}, nil),
		played("m8", "A1", "B1", 1, 1, []string{"Ali"}, []string{"Tarek"}),
	}
	return teams, matches
}
