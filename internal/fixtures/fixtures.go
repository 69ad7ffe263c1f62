// Package fixtures decodes the static fixture files the dashboard is built
// from. Decoding is lenient: malformed numbers become zero and stray
// entries are skipped.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/utakatalp/league-dashboard/internal/league"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidJSON is returned when a fixture file is not valid JSON at all.
var ErrInvalidJSON = errors.New("invalid JSON")

// Dataset is the immutable input of every view.
type Dataset struct {
	Teams    []league.Team
	Matches  []league.Match
	Upcoming []league.Match
}

// Int is a lenient integer: numbers, numeric strings and null decode
// normally, anything else decodes as zero.
type Int int

func (n *Int) UnmarshalJSON(b []byte) error {
	*n = 0
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		*n = Int(x)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			*n = Int(i)
		}
	}
	return nil
}

// Text is a lenient string that also accepts numbers.
type Text string

func (s *Text) UnmarshalJSON(b []byte) error {
	*s = ""
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case string:
		*s = Text(x)
	case float64:
		*s = Text(strconv.FormatFloat(x, 'f', -1, 64))
	}
	return nil
}

// Annotations is a lenient list of scorer or card strings. Non-string
// elements are dropped and a non-list value decodes as empty.
type Annotations []string

func (a *Annotations) UnmarshalJSON(b []byte) error {
	*a = nil
	var raw []interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	for _, v := range raw {
		if s, ok := v.(string); ok {
			*a = append(*a, s)
		}
	}
	return nil
}

type playerRecord struct {
	Name        Text `json:"name"`
	Goals       Int  `json:"goals"`
	YellowCards Int  `json:"yellowCards"`
	RedCards    Int  `json:"redCards"`
}

// Players is a lenient roster: entries that are not objects are dropped and
// a non-list value decodes as an empty roster.
type Players []playerRecord

func (ps *Players) UnmarshalJSON(b []byte) error {
	*ps = nil
	var raw []jsoniter.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	for _, e := range raw {
		var p playerRecord
		if e = bytes.TrimSpace(e); len(e) == 0 || e[0] != '{' {
			continue
		}
		if err := json.Unmarshal(e, &p); err != nil {
			continue
		}
		*ps = append(*ps, p)
	}
	return nil
}

type teamRecord struct {
	ID      Text    `json:"id"`
	Group   Text    `json:"group"`
	Name    Text    `json:"name"`
	Logo    Text    `json:"logo"`
	Players Players `json:"players"`
}

type matchRecord struct {
	ID       Text        `json:"id"`
	TeamA    Text        `json:"teamA"`
	TeamB    Text        `json:"teamB"`
	Date     Text        `json:"date"`
	Time     Text        `json:"time"`
	ScoreA   *Int        `json:"scoreA"`
	ScoreB   *Int        `json:"scoreB"`
	ScorersA Annotations `json:"scorersA"`
	ScorersB Annotations `json:"scorersB"`
	CardsA   Annotations `json:"cardsA"`
	CardsB   Annotations `json:"cardsB"`
}

func (r *teamRecord) team() league.Team {
	t := league.Team{
		ID:    string(r.ID),
		Group: string(r.Group),
		Name:  string(r.Name),
		Logo:  string(r.Logo),
	}
	for _, p := range r.Players {
		t.Players = append(t.Players, league.Player{
			Name:        string(p.Name),
			Goals:       int(p.Goals),
			YellowCards: int(p.YellowCards),
			RedCards:    int(p.RedCards),
		})
	}
	return t
}

func score(n *Int) *int {
	if n == nil {
		return nil
	}
	v := int(*n)
	return &v
}

func (r *matchRecord) match() league.Match {
	return league.Match{
		ID:    string(r.ID),
		TeamA: string(r.TeamA),
		TeamB: string(r.TeamB),
		Date:  string(r.Date),
		Time:  string(r.Time),
		Result: league.Result{
			ScoreA:   score(r.ScoreA),
			ScoreB:   score(r.ScoreB),
			ScorersA: r.ScorersA,
			ScorersB: r.ScorersB,
			CardsA:   r.CardsA,
			CardsB:   r.CardsB,
		},
	}
}

// readArray splits r into its array elements. Empty input and non-array
// documents are an empty collection; elements that are not objects are
// dropped.
func readArray(r io.Reader) ([]jsoniter.RawMessage, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, nil
	}
	if !json.Valid(b) {
		return nil, ErrInvalidJSON
	}
	if b[0] != '[' {
		return nil, nil
	}
	var elems []jsoniter.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, fmt.Errorf("decoding fixtures: %w", err)
	}
	objects := elems[:0]
	for _, e := range elems {
		if e = bytes.TrimSpace(e); len(e) > 0 && e[0] == '{' {
			objects = append(objects, e)
		}
	}
	return objects, nil
}

// DecodeTeams decodes a teams collection.
func DecodeTeams(r io.Reader) ([]league.Team, error) {
	elems, err := readArray(r)
	if err != nil {
		return nil, fmt.Errorf("decoding teams: %w", err)
	}
	teams := make([]league.Team, 0, len(elems))
	for _, e := range elems {
		var rec teamRecord
		if err := json.Unmarshal(e, &rec); err != nil {
			continue
		}
		teams = append(teams, rec.team())
	}
	return teams, nil
}

// DecodeMatches decodes a played or upcoming matches collection.
func DecodeMatches(r io.Reader) ([]league.Match, error) {
	elems, err := readArray(r)
	if err != nil {
		return nil, fmt.Errorf("decoding matches: %w", err)
	}
	matches := make([]league.Match, 0, len(elems))
	for _, e := range elems {
		var rec matchRecord
		if err := json.Unmarshal(e, &rec); err != nil {
			continue
		}
		matches = append(matches, rec.match())
	}
	return matches, nil
}
