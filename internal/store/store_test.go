package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-dashboard/internal/fixtures"
	"github.com/utakatalp/league-dashboard/internal/league"
)

func intp(n int) *int { return &n }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func dataset() *fixtures.Dataset {
	return &fixtures.Dataset{
		Teams: []league.Team{
			{ID: "ven", Group: "A", Name: "Venom", Logo: "/logos/ven.png", Players: []league.Player{
				{Name: "Ali", Goals: 2, YellowCards: 1},
				{Name: "Omar"},
			}},
			{ID: "fal", Group: "A", Name: "Falcons"},
		},
		Matches: []league.Match{
			{ID: "m1", TeamA: "Venom", TeamB: "Falcons", Date: "2025-10-01", Time: "18:00",
				Result: league.Result{
					ScoreA: intp(2), ScoreB: intp(0),
					ScorersA: []string{"Ali (2)"},
					CardsA:   []string{"Omar (R)"},
				}},
			{ID: "m2", TeamA: "Falcons", TeamB: "Venom", Result: league.Result{ScoreB: intp(1)}},
		},
		Upcoming: []league.Match{
			{ID: "n1", TeamA: "Venom", TeamB: "Falcons", Date: "2025-10-20"},
		},
	}
}

func TestImportLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	want := dataset()

	require.NoError(t, s.Import(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Teams, got.Teams)
	assert.Equal(t, want.Matches, got.Matches)
	assert.Equal(t, want.Upcoming, got.Upcoming)
	assert.Nil(t, got.Matches[1].Result.ScoreA)
	assert.Nil(t, got.Upcoming[0].Result.ScoreA)
}

func TestImportReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Import(ctx, dataset()))
	require.NoError(t, s.Import(ctx, &fixtures.Dataset{Teams: []league.Team{{ID: "x", Group: "B", Name: "X"}}}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got.Teams, 1)
	assert.Equal(t, "X", got.Teams[0].Name)
	assert.Empty(t, got.Matches)
	assert.Empty(t, got.Upcoming)
}

func TestStoreFeedsStandings(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Import(ctx, dataset()))

	var src fixtures.Source = s
	ds, err := src.Load(ctx)
	require.NoError(t, err)

	groups := ds.Standings(league.Options{})
	require.Len(t, groups, 1)
	assert.Equal(t, "Venom", groups[0].Table[0].Team.Name)
	assert.Equal(t, 6, groups[0].Table[0].Points)
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Import(ctx, dataset()))
	require.NoError(t, s.DeleteAll(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Teams)
	assert.Empty(t, got.Matches)
}

func TestNewStoreUnsupportedDriver(t *testing.T) {
	_, err := NewStore("mongo", "x")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: "postgres"}
	lite := &Store{driver: "sqlite3"}
	q := `SELECT a FROM t WHERE b = ? AND c = ?`

	assert.Equal(t, `SELECT a FROM t WHERE b = $1 AND c = $2`, pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
}
