/* handlers.go
 * Contains the HTTP handlers and router wiring for the read-only matchup
 * API. The blocking listen call lives in server.go.
 */

package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/api"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/charts"

	"github.com/gorilla/mux"
)

// NewServer creates a Server around a loaded API
func NewServer(apiPtr *api.API) *Server {
	return &Server{api: apiPtr}
}

// Router builds the mux router with all routes bound. Split out from Start
// so tests can drive the routes without binding a socket.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/cards", s.CardsHandler).Methods("GET")
	r.HandleFunc("/api/matchup/{cardA}/{cardB}", s.MatchupHandler).Methods("GET")
	r.HandleFunc("/api/stats", s.StatsHandler).Methods("GET")
	r.HandleFunc("/heatmap", s.HeatmapHandler).Methods("GET")
	return r
}

// CardsHandler returns the full catalog in index order
func (s *Server) CardsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	writeJSON(w, http.StatusOK, s.api.Cards())
}

// MatchupHandler returns the smoothed winrates between two cards. Card
// names in the path are fuzzy-resolved, so /api/matchup/knigt/wizard works.
func (s *Server) MatchupHandler(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	vars := mux.Vars(r)

	m, err := s.api.Matchup(vars["cardA"], vars["cardB"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, MatchupResponse{
		CardA:     m.CardA,
		CardB:     m.CardB,
		WinrateAB: m.WinrateAB,
		WinrateBA: m.WinrateBA,
		Games:     m.Games,
	})
}

// StatsHandler returns the processed-game counter and catalog size
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	stats := s.api.Stats()
	writeJSON(w, http.StatusOK, StatsResponse{
		GamesProcessed: stats.GamesProcessed,
		CatalogSize:    stats.CatalogSize,
	})
}

// HeatmapHandler renders the winrate heatmap straight to the response
func (s *Server) HeatmapHandler(w http.ResponseWriter, r *http.Request) {
	if !s.ready(w) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.WriteWinrateHeatmap(s.api.Table, charts.DefaultHeatmapConfig(), w); err != nil {
		log.Println("failed to render heatmap:", err)
	}
}

// ready rejects requests with 503 until a table is loaded
func (s *Server) ready(w http.ResponseWriter) bool {
	if s.api == nil || s.api.Table == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "no matchup table loaded"})
		return false
	}
	return true
}

// writeJSON writes v as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}
