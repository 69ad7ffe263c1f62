package league

// Placeholder shown for a team slot that cannot be resolved or filled.
const (
	TBD             = "TBD"
	PlaceholderLogo = "/placeholder.png"
)

// Player is a roster entry. The counters are the legacy static values from
// the fixture file; tallies are always derived from match annotations.
type Player struct {
	Name        string `json:"name"`
	Goals       int    `json:"goals,omitempty"`
	YellowCards int    `json:"yellowCards,omitempty"`
	RedCards    int    `json:"redCards,omitempty"`
}

// Team represents a club in the tournament.
type Team struct {
	ID      string   `json:"id"`
	Group   string   `json:"group"`
	Name    string   `json:"name"`
	Logo    string   `json:"logo"`
	Players []Player `json:"players"`
}

// Result is the outcome of a played match. A nil score means the field was
// missing in the fixture data.
type Result struct {
	ScoreA, ScoreB     *int
	ScorersA, ScorersB []string
	CardsA, CardsB     []string
}

// Match represents a fixture between two teams, referenced by name.
type Match struct {
	ID     string
	TeamA  string
	TeamB  string
	Date   string
	Time   string
	Result Result
}

// Played reports whether the match carries a result.
func (m *Match) Played() bool {
	return m.Result.ScoreA != nil || m.Result.ScoreB != nil
}

// Goals returns the score pair, counting a missing side as zero.
func (m *Match) Goals() (a, b int) {
	if m.Result.ScoreA != nil {
		a = *m.Result.ScoreA
	}
	if m.Result.ScoreB != nil {
		b = *m.Result.ScoreB
	}
	return a, b
}

// TableEntry holds the standings info for one team.
type TableEntry struct {
	Position     int   `json:"position"`
	Team         *Team `json:"team"`
	Played       int   `json:"played"`
	Wins         int   `json:"wins"`
	Draws        int   `json:"draws"`
	Losses       int   `json:"losses"`
	GoalsFor     int   `json:"goalsFor"`
	GoalsAgainst int   `json:"goalsAgainst"`
	GoalDiff     int   `json:"goalDifference"`
	Points       int   `json:"points"`
}

// Group is one ranked group table.
type Group struct {
	Name  string        `json:"name"`
	Table []*TableEntry `json:"table"`
}

// Options tune the standings computation.
type Options struct {
	// HeadToHead ranks teams level on points by the points they earned in
	// matches among themselves before goal difference.
	HeadToHead bool
}

// TeamRef is a resolved (or placeholder) reference to a team.
type TeamRef struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Resolved bool   `json:"resolved"`
}

// Leader is one leaderboard row.
type Leader struct {
	Player   string `json:"player"`
	Team     string `json:"team"`
	TeamLogo string `json:"teamLogo"`
	Tally    int    `json:"tally"`
	Yellow   int    `json:"yellow,omitempty"`
	Red      int    `json:"red,omitempty"`
}
