// internal/league/logic.go
package league

import (
	"fmt"
	"io"
	"sort"
)

// index resolves the weak team references used by matches.
type index struct {
	byName map[string]*Team
	byID   map[string]*Team
}

func newIndex(teams []Team) *index {
	idx := &index{
		byName: make(map[string]*Team, len(teams)),
		byID:   make(map[string]*Team, len(teams)),
	}
	for i := range teams {
		t := &teams[i]
		// first occurrence wins on duplicates
		if _, ok := idx.byName[t.Name]; !ok {
			idx.byName[t.Name] = t
		}
		if _, ok := idx.byID[t.ID]; !ok {
			idx.byID[t.ID] = t
		}
	}
	return idx
}

// resolve looks a reference up by name, then by id.
func (idx *index) resolve(ref string) *Team {
	if t, ok := idx.byName[ref]; ok {
		return t
	}
	return idx.byID[ref]
}

// sides returns both participants, or ok=false when the match cannot count
// towards any table (unplayed or a team playing itself).
func (idx *index) sides(m *Match) (a, b *Team, ok bool) {
	if !m.Played() {
		return nil, nil, false
	}
	a, b = idx.resolve(m.TeamA), idx.resolve(m.TeamB)
	if a != nil && a == b {
		return nil, nil, false
	}
	return a, b, true
}

// MatchPoints returns the points each side earns from a match: 3/0 for a
// decisive result, 1/1 for a draw and 0/0 when there is no result.
func MatchPoints(m *Match) (a, b int) {
	if !m.Played() {
		return 0, 0
	}
	ga, gb := m.Goals()
	switch {
	case ga > gb:
		return 3, 0
	case ga < gb:
		return 0, 3
	default:
		return 1, 1
	}
}

// record adds one match to an entry from that team's perspective.
func (e *TableEntry) record(scored, received, points int) {
	e.Played++
	e.GoalsFor += scored
	e.GoalsAgainst += received
	e.Points += points
	switch {
	case scored > received:
		e.Wins++
	case scored < received:
		e.Losses++
	default:
		e.Draws++
	}
	e.GoalDiff = e.GoalsFor - e.GoalsAgainst
}

// CalculateTable ranks the given teams from a single scan over the season.
// Every team gets a row, even without matches.
func CalculateTable(teams []Team, matches []Match, opts Options) []*TableEntry {
	members := make([]*Team, len(teams))
	for i := range teams {
		members[i] = &teams[i]
	}
	return calculateTable(newIndex(teams), members, matches, opts)
}

// calculateTable ranks members, resolving match references against idx.
// Matches against teams outside members only count for the member side.
func calculateTable(idx *index, members []*Team, matches []Match, opts Options) []*TableEntry {
	// 1) seed entries in roster order
	entries := make([]*TableEntry, 0, len(members))
	entriesMap := make(map[*Team]*TableEntry, len(members))
	for _, t := range members {
		if _, ok := entriesMap[t]; ok {
			continue
		}
		e := &TableEntry{Team: t}
		entriesMap[t] = e
		entries = append(entries, e)
	}

	// 2) accumulate every played match
	for i := range matches {
		m := &matches[i]
		a, b, ok := idx.sides(m)
		if !ok {
			continue
		}
		ga, gb := m.Goals()
		pa, pb := MatchPoints(m)
		if e, ok := entriesMap[a]; ok {
			e.record(ga, gb, pa)
		}
		if e, ok := entriesMap[b]; ok {
			e.record(gb, ga, pb)
		}
	}

	// 3) rank
	var h2h map[*Team]int
	if opts.HeadToHead {
		h2h = headToHead(entries, matches, idx)
	}
	SortTable(entries, h2h)
	return entries
}

// SortTable orders entries by points, head-to-head points (when h2h is
// non-nil), goal difference and goals scored. Remaining ties keep their
// current order, and positions are renumbered.
func SortTable(entries []*TableEntry, h2h map[*Team]int) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if h2h != nil && h2h[a.Team] != h2h[b.Team] {
			return h2h[a.Team] > h2h[b.Team]
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		return a.GoalsFor > b.GoalsFor
	})
	for i, e := range entries {
		e.Position = i + 1
	}
}

// headToHead computes, for every team, the points earned in matches against
// the other teams level with it on points.
func headToHead(entries []*TableEntry, matches []Match, idx *index) map[*Team]int {
	level := make(map[*Team]int, len(entries))
	for _, e := range entries {
		level[e.Team] = e.Points
	}
	h2h := make(map[*Team]int, len(entries))
	for i := range matches {
		m := &matches[i]
		a, b, ok := idx.sides(m)
		if !ok || a == nil || b == nil {
			continue
		}
		pa, aok := level[a]
		pb, bok := level[b]
		if !aok || !bok || pa != pb {
			continue
		}
		ptsA, ptsB := MatchPoints(m)
		h2h[a] += ptsA
		h2h[b] += ptsB
	}
	return h2h
}

// TeamRecord computes one team's record by scanning only the matches it
// takes part in. It agrees with the row CalculateTable produces.
func TeamRecord(teams []Team, matches []Match, team *Team) TableEntry {
	idx := newIndex(teams)
	rec := TableEntry{Team: team}
	for i := range matches {
		m := &matches[i]
		a, b, ok := idx.sides(m)
		if !ok {
			continue
		}
		ga, gb := m.Goals()
		pa, pb := MatchPoints(m)
		switch team {
		case a:
			rec.record(ga, gb, pa)
		case b:
			rec.record(gb, ga, pb)
		}
	}
	return rec
}

// CalculateStandings partitions the teams by group and ranks every group.
// Groups are returned ordered by name.
func CalculateStandings(teams []Team, matches []Match, opts Options) []Group {
	idx := newIndex(teams)
	grouped := make(map[string][]*Team)
	for i := range teams {
		t := &teams[i]
		grouped[t.Group] = append(grouped[t.Group], t)
	}
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, Group{
			Name:  name,
			Table: calculateTable(idx, grouped[name], matches, opts),
		})
	}
	return groups
}

// FindGroup returns the group with the given name.
func FindGroup(groups []Group, name string) (Group, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// PrintTable writes a fixed-width standings table.
func PrintTable(w io.Writer, label string, table []*TableEntry) {
	fmt.Fprintln(w, label)
	fmt.Fprintf(w, "%3s %-20s %2s %2s %2s %2s %3s %3s %3s %3s\n",
		"#", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts")
	for _, entry := range table {
		fmt.Fprintf(w, "%3d %-20s %2d %2d %2d %2d %3d %3d %+3d %3d\n",
			entry.Position,
			entry.Team.Name,
			entry.Played,
			entry.Wins,
			entry.Draws,
			entry.Losses,
			entry.GoalsFor,
			entry.GoalsAgainst,
			entry.GoalDiff,
			entry.Points,
		)
	}
}
