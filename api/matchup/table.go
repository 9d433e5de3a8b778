/* table.go
 * Contains the matchup table: the card name <-> index mappings, the wins and
 * total games matrices that are updated per processed game, and the derived
 * Bayesian-smoothed winrates matrix. Persistence lives in persist.go
 */

package matchup

import (
	"sort"
	"strings"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/shared"
)

// defaultSmoothing adds one virtual win and one virtual loss to every cell,
// so a matchup with no observations comes out at exactly 0.5
const defaultSmoothing = 1.0

// Table wraps three n x n tables, where n is the number of unique cards in
// Clash Royale (tower troops included). Pairwise winrates for each card
// against each other card are calculated in the winrates table from two
// separate tables tracking wins and total games for each matchup.
//
// Wins and TotalGames are only ever incremented by ProcessGame; TotalGames
// stays symmetric because both (i,j) and (j,i) are bumped together.
// Winrates is derived on demand and is not kept in sync automatically.
type Table struct {
	CardNameToIndex map[string]int
	IndexToCardName map[int]string

	Wins       [][]float64
	TotalGames [][]float64
	Winrates   [][]float64

	GamesProcessed int
}

// NewTable builds a table from the catalog's full card listing. Names are
// lowercased and indices follow the order of the listing, so the same
// catalog always produces the same index assignment.
func NewTable(cardNames []string) *Table {
	t := &Table{
		CardNameToIndex: make(map[string]int, len(cardNames)),
		IndexToCardName: make(map[int]string, len(cardNames)),
	}
	for i, name := range cardNames {
		name = strings.ToLower(name)
		t.CardNameToIndex[name] = i
		t.IndexToCardName[i] = name
	}
	n := len(cardNames)
	t.Wins = newMatrix(n)
	t.TotalGames = newMatrix(n)
	t.Winrates = newMatrix(n)
	return t
}

// newMatrix allocates an n x n matrix of zeroes
func newMatrix(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Size returns the number of cards in the index
func (t *Table) Size() int {
	return len(t.CardNameToIndex)
}

// IndicesForDeck maps a deck's card names plus its tower troop to their
// indices. Names that are not in the index are silently dropped and the
// result is deduplicated and sorted.
func (t *Table) IndicesForDeck(deck shared.Deck) []int {
	seen := make(map[int]bool)
	var indices []int
	for _, name := range append(append([]string{}, deck.Cards...), deck.SupportCards...) {
		idx, ok := t.CardNameToIndex[name]
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

// ProcessGame updates the wins and total games tables for a single decoded
// battle. Draws are skipped, as are games where either side has no
// recognised cards, since neither tells us anything about a matchup.
// Every card on the winning side gets full credit against every card it
// faced; there is deliberately no per-card weighting by deck size.
func (t *Table) ProcessGame(info shared.GameInfo) {
	if info.Winner == shared.WinnerDraw {
		return
	}

	teamIdx := t.IndicesForDeck(info.TeamDeck)
	oppIdx := t.IndicesForDeck(info.OpponentDeck)

	if len(teamIdx) == 0 || len(oppIdx) == 0 {
		return
	}

	switch info.Winner {
	case shared.WinnerTeam:
		// team beats opponent: +1 for every team card vs every opponent card
		for _, i := range teamIdx {
			for _, j := range oppIdx {
				t.Wins[i][j] += 1.0
			}
		}
	case shared.WinnerOpponent:
		// opponent beats team: +1 for every opponent card vs every team card
		for _, i := range oppIdx {
			for _, j := range teamIdx {
				t.Wins[i][j] += 1.0
			}
		}
	case shared.WinnerDraw:
		// handled above
		return
	}

	// record the matchup regardless of winner, keeping TotalGames symmetric
	for _, i := range teamIdx {
		for _, j := range oppIdx {
			t.TotalGames[i][j] += 1.0
			t.TotalGames[j][i] += 1.0
		}
	}

	t.GamesProcessed++
}

// DeriveWinrates recomputes the winrates table from the current wins and
// total games tables. Each cell only depends on its own wins/total pair, so
// calling this at any point yields the same result for the same inputs.
func (t *Table) DeriveWinrates() {
	for i := range t.Wins {
		for j := range t.Wins[i] {
			t.Winrates[i][j] = winrate(t.Wins[i][j], t.TotalGames[i][j], defaultSmoothing)
		}
	}
}

// SmoothedWinrate returns the smoothed winrate of card i against card j,
// computed straight from the wins and total games tables so it is accurate
// even if DeriveWinrates has not run since the last update
func (t *Table) SmoothedWinrate(i, j int) float64 {
	return winrate(t.Wins[i][j], t.TotalGames[i][j], defaultSmoothing)
}

// winrate is the Bayesian average: smoothing adds that many virtual wins
// and virtual losses before taking the ratio. The denominator is always
// positive for smoothing > 0, even with zero observed games.
func winrate(wins, totalGames, smoothing float64) float64 {
	return (wins + smoothing) / (totalGames + 2*smoothing)
}
