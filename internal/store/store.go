package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/utakatalp/league-dashboard/internal/fixtures"
	"github.com/utakatalp/league-dashboard/internal/league"
	"github.com/utakatalp/league-dashboard/internal/logger"
)

// Match kinds stored in the matches table.
const (
	kindPlayed   = "played"
	kindUpcoming = "upcoming"
)

// Annotation categories.
const (
	categoryScorer = "scorer"
	categoryCard   = "card"
)

// Store wraps a SQL connection holding the fixture dataset. It is a
// read-mostly fixture source: the dataset is imported once and loaded at
// process start.
type Store struct {
	DB     *sql.DB
	driver string
}

// NewStore opens a connection. driver is "postgres" or "sqlite".
func NewStore(driver, dsn string) (*Store, error) {
	name := driver
	if driver == "sqlite" {
		name = "sqlite3"
	}
	if name != "postgres" && name != "sqlite3" {
		return nil, fmt.Errorf("opening database: unsupported driver %q", driver)
	}
	db, err := sql.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if name == "sqlite3" {
		// in-memory databases are per connection
		db.SetMaxOpenConns(1)
	}
	// verify early
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	logger.Info("Connected to database", "driver", driver)
	return &Store{DB: db, driver: name}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// rebind rewrites ? placeholders into $n for Postgres.
func (s *Store) rebind(q string) string {
	if s.driver != "postgres" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Migrate creates the necessary tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS teams (
			id          TEXT    PRIMARY KEY,
			group_label TEXT    NOT NULL,
			name        TEXT    NOT NULL,
			logo        TEXT    NOT NULL DEFAULT '',
			position    INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS players (
			team_id      TEXT    NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
			position     INTEGER NOT NULL,
			name         TEXT    NOT NULL,
			goals        INTEGER NOT NULL DEFAULT 0,
			yellow_cards INTEGER NOT NULL DEFAULT 0,
			red_cards    INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (team_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS matches (
			kind      TEXT    NOT NULL,
			position  INTEGER NOT NULL,
			id        TEXT    NOT NULL,
			team_a    TEXT    NOT NULL,
			team_b    TEXT    NOT NULL,
			played_on TEXT    NOT NULL DEFAULT '',
			kickoff   TEXT    NOT NULL DEFAULT '',
			score_a   INTEGER,
			score_b   INTEGER,
			PRIMARY KEY (kind, position)
		)`,
		`CREATE TABLE IF NOT EXISTS annotations (
			kind      TEXT    NOT NULL,
			match_pos INTEGER NOT NULL,
			side      TEXT    NOT NULL,
			category  TEXT    NOT NULL,
			position  INTEGER NOT NULL,
			entry     TEXT    NOT NULL,
			PRIMARY KEY (kind, match_pos, side, category, position)
		)`,
	}
	for _, q := range queries {
		if _, err := s.DB.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrating: %w", err)
		}
	}
	return nil
}

// Import replaces the stored dataset with ds in a single transaction.
func (s *Store) Import(ctx context.Context, ds *fixtures.Dataset) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"annotations", "matches", "players", "teams"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	teamQ := s.rebind(`INSERT INTO teams (id, group_label, name, logo, position) VALUES (?, ?, ?, ?, ?)`)
	playerQ := s.rebind(`INSERT INTO players (team_id, position, name, goals, yellow_cards, red_cards) VALUES (?, ?, ?, ?, ?, ?)`)
	for i, t := range ds.Teams {
		if _, err := tx.ExecContext(ctx, teamQ, t.ID, t.Group, t.Name, t.Logo, i); err != nil {
			return fmt.Errorf("inserting team %s (%s): %w", t.ID, t.Name, err)
		}
		for j, p := range t.Players {
			if _, err := tx.ExecContext(ctx, playerQ, t.ID, j, p.Name, p.Goals, p.YellowCards, p.RedCards); err != nil {
				return fmt.Errorf("inserting player %s of team %s: %w", p.Name, t.ID, err)
			}
		}
	}

	if err := s.insertMatches(ctx, tx, kindPlayed, ds.Matches); err != nil {
		return err
	}
	if err := s.insertMatches(ctx, tx, kindUpcoming, ds.Upcoming); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	logger.Info("Imported fixtures", "teams", len(ds.Teams),
		"matches", len(ds.Matches), "upcoming", len(ds.Upcoming))
	return nil
}

func nullScore(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func (s *Store) insertMatches(ctx context.Context, tx *sql.Tx, kind string, matches []league.Match) error {
	matchQ := s.rebind(`INSERT INTO matches (kind, position, id, team_a, team_b, played_on, kickoff, score_a, score_b)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	noteQ := s.rebind(`INSERT INTO annotations (kind, match_pos, side, category, position, entry)
		VALUES (?, ?, ?, ?, ?, ?)`)

	for i, m := range matches {
		if _, err := tx.ExecContext(ctx, matchQ, kind, i, m.ID, m.TeamA, m.TeamB, m.Date, m.Time,
			nullScore(m.Result.ScoreA), nullScore(m.Result.ScoreB)); err != nil {
			return fmt.Errorf("saving match %s: %w", m.ID, err)
		}
		notes := []struct {
			side, category string
			entries        []string
		}{
			{"A", categoryScorer, m.Result.ScorersA},
			{"B", categoryScorer, m.Result.ScorersB},
			{"A", categoryCard, m.Result.CardsA},
			{"B", categoryCard, m.Result.CardsB},
		}
		for _, n := range notes {
			for j, entry := range n.entries {
				if _, err := tx.ExecContext(ctx, noteQ, kind, i, n.side, n.category, j, entry); err != nil {
					return fmt.Errorf("saving annotation of match %s: %w", m.ID, err)
				}
			}
		}
	}
	return nil
}

// Load reads the stored dataset. It makes Store a fixtures.Source.
func (s *Store) Load(ctx context.Context) (*fixtures.Dataset, error) {
	teams, err := s.loadTeams(ctx)
	if err != nil {
		return nil, err
	}
	played, err := s.loadMatches(ctx, kindPlayed)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.loadMatches(ctx, kindUpcoming)
	if err != nil {
		return nil, err
	}
	return &fixtures.Dataset{Teams: teams, Matches: played, Upcoming: upcoming}, nil
}

func (s *Store) loadTeams(ctx context.Context) ([]league.Team, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, group_label, name, logo FROM teams ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []league.Team
	byID := make(map[string]int)
	for rows.Next() {
		var t league.Team
		if err := rows.Scan(&t.ID, &t.Group, &t.Name, &t.Logo); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		byID[t.ID] = len(teams)
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams rows: %w", err)
	}

	prows, err := s.DB.QueryContext(ctx, `
		SELECT team_id, name, goals, yellow_cards, red_cards
		FROM players
		ORDER BY team_id, position`)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer prows.Close()
	for prows.Next() {
		var teamID string
		var p league.Player
		if err := prows.Scan(&teamID, &p.Name, &p.Goals, &p.YellowCards, &p.RedCards); err != nil {
			return nil, fmt.Errorf("scanning player row: %w", err)
		}
		if i, ok := byID[teamID]; ok {
			teams[i].Players = append(teams[i].Players, p)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players rows: %w", err)
	}
	return teams, nil
}

func (s *Store) loadMatches(ctx context.Context, kind string) ([]league.Match, error) {
	rows, err := s.DB.QueryContext(ctx, s.rebind(`
		SELECT id, team_a, team_b, played_on, kickoff, score_a, score_b
		FROM matches
		WHERE kind = ?
		ORDER BY position`), kind)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	var matches []league.Match
	for rows.Next() {
		var m league.Match
		var a, b sql.NullInt64
		if err := rows.Scan(&m.ID, &m.TeamA, &m.TeamB, &m.Date, &m.Time, &a, &b); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		m.Result.ScoreA = intPtr(a)
		m.Result.ScoreB = intPtr(b)
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches rows: %w", err)
	}

	nrows, err := s.DB.QueryContext(ctx, s.rebind(`
		SELECT match_pos, side, category, entry
		FROM annotations
		WHERE kind = ?
		ORDER BY match_pos, side, category, position`), kind)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer nrows.Close()
	for nrows.Next() {
		var pos int
		var side, category, entry string
		if err := nrows.Scan(&pos, &side, &category, &entry); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		if pos < 0 || pos >= len(matches) {
			continue
		}
		r := &matches[pos].Result
		switch {
		case category == categoryScorer && side == "A":
			r.ScorersA = append(r.ScorersA, entry)
		case category == categoryScorer && side == "B":
			r.ScorersB = append(r.ScorersB, entry)
		case category == categoryCard && side == "A":
			r.CardsA = append(r.CardsA, entry)
		case category == categoryCard && side == "B":
			r.CardsB = append(r.CardsB, entry)
		}
	}
	return matches, nrows.Err()
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// DeleteAll removes every stored fixture.
func (s *Store) DeleteAll(ctx context.Context) error {
	for _, table := range []string{"annotations", "matches", "players", "teams"} {
		if _, err := s.DB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("deleting all %s: %w", table, err)
		}
	}
	return nil
}
