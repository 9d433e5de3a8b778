/* models.go
 * This file contains the structs returned to api consumers
 */

package api

// Stats summarises the loaded table
type Stats struct {
	GamesProcessed int
	CatalogSize    int
}

// Matchup is one resolved card pair with its smoothed winrates. WinrateAB
// is how often CardA beats CardB; Games is the observed sample size for the
// pair.
type Matchup struct {
	CardA     string
	CardB     string
	WinrateAB float64
	WinrateBA float64
	Games     float64
}
