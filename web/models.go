/* models.go
 * Contains the configuration and response types for the web server
 */

package web

import (
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server exposes read-only matchup queries over HTTP
type Server struct {
	api *api.API
}

// MatchupResponse is the JSON body for a matchup query. WinrateAB is how
// often CardA beats CardB.
type MatchupResponse struct {
	CardA     string  `json:"cardA"`
	CardB     string  `json:"cardB"`
	WinrateAB float64 `json:"winrateAB"`
	WinrateBA float64 `json:"winrateBA"`
	Games     float64 `json:"games"`
}

// StatsResponse is the JSON body for the stats endpoint
type StatsResponse struct {
	GamesProcessed int `json:"gamesProcessed"`
	CatalogSize    int `json:"catalogSize"`
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error string `json:"error"`
}
