/* report.go
 * Contains the pure functions that turn the matchup table into readable
 * matchup reports and rankings
 */

package logic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/matchup"
)

// MatchupRank is one opposing card in a best/worst ranking
type MatchupRank struct {
	Card    string
	Winrate float64
	Games   float64
}

// MatchupReport formats both directions of a matchup between two catalog
// card names. Both names must already be resolved to catalog names.
func MatchupReport(t *matchup.Table, cardA string, cardB string) (string, error) {
	i, ok := t.CardNameToIndex[cardA]
	if !ok {
		return "", fmt.Errorf("card '%s' is not in the catalog", cardA)
	}
	j, ok := t.CardNameToIndex[cardB]
	if !ok {
		return "", fmt.Errorf("card '%s' is not in the catalog", cardB)
	}

	games := t.TotalGames[i][j]

	var report strings.Builder
	report.WriteString(fmt.Sprintf("%s vs %s (%.0f games observed)\n", cardA, cardB, games))
	report.WriteString(fmt.Sprintf("- %s beats %s %.2f%% of the time\n", cardA, cardB, t.SmoothedWinrate(i, j)*100))
	report.WriteString(fmt.Sprintf("- %s beats %s %.2f%% of the time\n", cardB, cardA, t.SmoothedWinrate(j, i)*100))
	if games == 0 {
		report.WriteString("no games between these cards have been counted yet, so this is just the prior\n")
	}
	return report.String(), nil
}

// RankMatchups returns the k opposing cards a card does best (or worst)
// against by smoothed winrate. Ties are broken by sample size, then by
// name so the output is stable.
func RankMatchups(t *matchup.Table, card string, k int, worst bool) ([]MatchupRank, error) {
	i, ok := t.CardNameToIndex[card]
	if !ok {
		return nil, fmt.Errorf("card '%s' is not in the catalog", card)
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}

	ranks := make([]MatchupRank, 0, t.Size()-1)
	for j := 0; j < t.Size(); j++ {
		if j == i {
			continue
		}
		ranks = append(ranks, MatchupRank{
			Card:    t.IndexToCardName[j],
			Winrate: t.SmoothedWinrate(i, j),
			Games:   t.TotalGames[i][j],
		})
	}

	sort.Slice(ranks, func(a, b int) bool {
		if ranks[a].Winrate != ranks[b].Winrate {
			if worst {
				return ranks[a].Winrate < ranks[b].Winrate
			}
			return ranks[a].Winrate > ranks[b].Winrate
		}
		if ranks[a].Games != ranks[b].Games {
			return ranks[a].Games > ranks[b].Games
		}
		return ranks[a].Card < ranks[b].Card
	})

	if k > len(ranks) {
		k = len(ranks)
	}
	return ranks[:k], nil
}
