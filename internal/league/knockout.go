package league

import "fmt"

// Slot is one side of a knockout tie. Unassigned slots carry a placeholder
// name: TBD for a missing group rank, "Winner X" for a pending tie.
type Slot struct {
	Seed     string `json:"seed"`
	Name     string `json:"name"`
	Logo     string `json:"logo,omitempty"`
	Team     *Team  `json:"-"`
	Assigned bool   `json:"assigned"`
}

// Tie is a single knockout match.
type Tie struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Home  Slot   `json:"home"`
	Away  Slot   `json:"away"`
}

// Bracket is the fixed knockout shape: three playoff ties feeding four
// quarterfinals, two semifinals and a final.
type Bracket struct {
	Qualifiers    [5]Slot `json:"qualifiers"`
	Supplements   [3]Tie  `json:"supplements"`
	Quarterfinals [4]Tie  `json:"quarterfinals"`
	Semifinals    [2]Tie  `json:"semifinals"`
	Final         Tie     `json:"final"`
}

// rankSlot returns the team ranked rank (1-based) in group, or an
// unassigned slot when the group is missing or too small.
func rankSlot(groups []Group, group string, rank int) Slot {
	seed := fmt.Sprintf("%s%d", group, rank)
	g, ok := FindGroup(groups, group)
	if !ok || rank < 1 || rank > len(g.Table) {
		return Slot{Seed: seed, Name: TBD}
	}
	t := g.Table[rank-1].Team
	return Slot{Seed: seed, Name: t.Name, Logo: t.Logo, Team: t, Assigned: true}
}

func winnerSlot(tie string) Slot {
	return Slot{Seed: tie, Name: "Winner " + tie}
}

// DeriveBracket seeds the knockout stage from group standings. Groups A and
// B send their top two straight to the quarterfinals, group C its winner;
// A3/A4, B3/B4 and C2/C3 meet in playoff ties whose winners fill the
// remaining slots.
func DeriveBracket(groups []Group) Bracket {
	a1, a2 := rankSlot(groups, "A", 1), rankSlot(groups, "A", 2)
	b1, b2 := rankSlot(groups, "B", 1), rankSlot(groups, "B", 2)
	c1 := rankSlot(groups, "C", 1)

	var br Bracket
	br.Qualifiers = [5]Slot{a1, a2, b1, b2, c1}
	br.Supplements = [3]Tie{
		{ID: "S1", Label: "Group A playoff", Home: rankSlot(groups, "A", 3), Away: rankSlot(groups, "A", 4)},
		{ID: "S2", Label: "Group B playoff", Home: rankSlot(groups, "B", 4), Away: rankSlot(groups, "B", 3)},
		{ID: "S3", Label: "Group C playoff", Home: rankSlot(groups, "C", 2), Away: rankSlot(groups, "C", 3)},
	}
	br.Quarterfinals = [4]Tie{
		{ID: "QF1", Label: "Quarterfinal 1", Home: a1, Away: winnerSlot("S1")},
		{ID: "QF2", Label: "Quarterfinal 2", Home: a2, Away: c1},
		{ID: "QF3", Label: "Quarterfinal 3", Home: b1, Away: winnerSlot("S2")},
		{ID: "QF4", Label: "Quarterfinal 4", Home: b2, Away: winnerSlot("S3")},
	}
	br.Semifinals = [2]Tie{
		{ID: "SF1", Label: "Semi Final 1", Home: winnerSlot("QF1"), Away: winnerSlot("QF2")},
		{ID: "SF2", Label: "Semi Final 2", Home: winnerSlot("QF3"), Away: winnerSlot("QF4")},
	}
	br.Final = Tie{ID: "F", Label: "The Final", Home: winnerSlot("SF1"), Away: winnerSlot("SF2")}
	return br
}
