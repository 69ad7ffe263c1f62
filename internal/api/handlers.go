package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"

	"github.com/utakatalp/league-dashboard/internal/fixtures"
	"github.com/utakatalp/league-dashboard/internal/league"
	"github.com/utakatalp/league-dashboard/internal/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handlers serves the dashboard views. Every request recomputes its view
// from the immutable dataset.
type Handlers struct {
	data *fixtures.Dataset
	opts league.Options
}

// NewHandlers creates the handler set over a loaded dataset.
func NewHandlers(data *fixtures.Dataset, opts league.Options) *Handlers {
	return &Handlers{data: data, opts: opts}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "route not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// Health reports liveness and dataset size.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"teams":     len(h.data.Teams),
		"matches":   len(h.data.Matches),
		"upcoming":  len(h.data.Upcoming),
		"timestamp": time.Now().UTC(),
	})
}

// Standings returns every group table.
func (h *Handlers) Standings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"groups": h.data.Standings(h.opts),
	})
}

// GroupStandings returns one group table.
func (h *Handlers) GroupStandings(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["group"]
	g, ok := league.FindGroup(h.data.Standings(h.opts), name)
	if !ok {
		writeError(w, http.StatusNotFound, "group not found")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// Results returns played matches, latest first.
func (h *Handlers) Results(w http.ResponseWriter, r *http.Request) {
	results := league.Results(h.data.Teams, h.data.Matches)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matches": results,
		"count":   len(results),
	})
}

// Fixtures returns upcoming matches.
func (h *Handlers) Fixtures(w http.ResponseWriter, r *http.Request) {
	upcoming := league.Fixtures(h.data.Teams, h.data.Upcoming)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matches": upcoming,
		"count":   len(upcoming),
	})
}

// TopScorers returns the goal leaderboard.
func (h *Handlers) TopScorers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scorers": league.TopScorers(h.data.Teams, h.data.Matches),
	})
}

// TopCards returns the disciplinary leaderboard.
func (h *Handlers) TopCards(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cards": league.TopCards(h.data.Teams, h.data.Matches),
	})
}

// Knockout returns the bracket seeded from the current standings.
func (h *Handlers) Knockout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, league.DeriveBracket(h.data.Standings(h.opts)))
}

// Teams lists all teams.
func (h *Handlers) Teams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"teams": h.data.Teams,
		"count": len(h.data.Teams),
	})
}

// Team returns the detail view of one team, looked up by id or name.
func (h *Handlers) Team(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["id"]
	d, err := league.TeamDetail(h.data.Teams, h.data.Matches, h.data.Upcoming, key, h.opts)
	if errors.Is(err, league.ErrTeamNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		logger.Error("Failed to build team detail", "error", err, "team", key)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, d)
}
