package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utakatalp/league-dashboard/internal/fixtures"
	"github.com/utakatalp/league-dashboard/internal/league"
)

func intp(n int) *int { return &n }

func testRouter() http.Handler {
	data := &fixtures.Dataset{
		Teams: []league.Team{
			{ID: "ven", Group: "A", Name: "Venom", Logo: "/logos/ven.png", Players: []league.Player{{Name: "Ali"}}},
			{ID: "fal", Group: "A", Name: "Falcons", Players: []league.Player{{Name: "Omar"}}},
			{ID: "sha", Group: "C", Name: "Sharks"},
		},
		Matches: []league.Match{
			{ID: "m1", TeamA: "Venom", TeamB: "Falcons", Result: league.Result{
				ScoreA: intp(2), ScoreB: intp(1),
				ScorersA: []string{"Ali (2)"}, ScorersB: []string{"Omar"},
				CardsB: []string{"Omar (R)"},
			}},
		},
		Upcoming: []league.Match{
			{ID: "n1", TeamA: "Falcons", TeamB: "Unknown FC", Date: "2025-10-20"},
		},
	}
	return NewRouter(NewHandlers(data, league.Options{}), []string{"*"})
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	rec, body := get(t, testRouter(), "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["teams"])
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestStandings(t *testing.T) {
	rec, body := get(t, testRouter(), "/api/v1/standings")
	require.Equal(t, http.StatusOK, rec.Code)

	groups := body["groups"].([]interface{})
	require.Len(t, groups, 2)
	a := groups[0].(map[string]interface{})
	assert.Equal(t, "A", a["name"])
	first := a["table"].([]interface{})[0].(map[string]interface{})
	assert.EqualValues(t, 3, first["points"])
	assert.Equal(t, "Venom", first["team"].(map[string]interface{})["name"])
}

func TestGroupStandings(t *testing.T) {
	h := testRouter()
	rec, body := get(t, h, "/api/v1/standings/C")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "C", body["name"])

	rec, body = get(t, h, "/api/v1/standings/Z")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "group not found", body["error"])
}

func TestMatches(t *testing.T) {
	h := testRouter()
	rec, body := get(t, h, "/api/v1/matches/results")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	rec, body = get(t, h, "/api/v1/matches/fixtures")
	assert.Equal(t, http.StatusOK, rec.Code)
	fixture := body["matches"].([]interface{})[0].(map[string]interface{})
	teamB := fixture["teamB"].(map[string]interface{})
	assert.Equal(t, "Unknown FC", teamB["name"])
	assert.Equal(t, league.PlaceholderLogo, teamB["logo"])
	assert.Equal(t, false, teamB["resolved"])
}

func TestLeaderboards(t *testing.T) {
	h := testRouter()
	_, body := get(t, h, "/api/v1/stats/scorers")
	scorers := body["scorers"].([]interface{})
	require.Len(t, scorers, 2)
	assert.Equal(t, "Ali", scorers[0].(map[string]interface{})["player"])

	_, body = get(t, h, "/api/v1/stats/cards")
	cards := body["cards"].([]interface{})
	require.Len(t, cards, 1)
	assert.EqualValues(t, 1, cards[0].(map[string]interface{})["red"])
}

func TestKnockout(t *testing.T) {
	rec, body := get(t, testRouter(), "/api/v1/knockout")
	require.Equal(t, http.StatusOK, rec.Code)

	qualifiers := body["qualifiers"].([]interface{})
	require.Len(t, qualifiers, 5)
	assert.Equal(t, "Venom", qualifiers[0].(map[string]interface{})["name"])
	b1 := qualifiers[2].(map[string]interface{})
	assert.Equal(t, league.TBD, b1["name"])
	assert.Equal(t, false, b1["assigned"])
}

func TestTeam(t *testing.T) {
	h := testRouter()
	rec, body := get(t, h, "/api/v1/teams/ven")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["position"])
	assert.Equal(t, "Ali", body["topScorer"].(map[string]interface{})["player"])

	rec, _ = get(t, h, "/api/v1/teams/Falcons")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = get(t, h, "/api/v1/teams/nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, league.ErrTeamNotFound.Error(), body["error"])
}

func TestTeams(t *testing.T) {
	_, body := get(t, testRouter(), "/api/v1/teams")
	assert.EqualValues(t, 3, body["count"])
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/standings", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnmatchedRoutes(t *testing.T) {
	h := testRouter()

	rec, body := get(t, h, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", body["error"])
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/standings", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestPreflightCarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set(RequestIDHeader, "pre-1")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, "pre-1", rec.Header().Get(RequestIDHeader))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}
