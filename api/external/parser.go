/* parser.go
 * Contains the logic that turns raw battlelog records into the decoded
 * GameInfo values the accumulator consumes
 */

package external

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/shared"
)

// IsRankedBattle reports whether a battlelog record is a ranked game. Only
// ranked games are counted.
func IsRankedBattle(battle Battle) bool {
	return battle.Type == rankedBattleType
}

// GameInfoFromBattle decodes a single battle record into a GameInfo. The
// winner comes from a straight crown comparison: strictly more crowns wins,
// equal crowns is a draw. Malformed records (no players, or a side without
// its tower troop entry) are an error for the caller to surface, not
// something to silently patch up.
func GameInfoFromBattle(battle Battle) (shared.GameInfo, error) {
	if len(battle.Team) == 0 || len(battle.Opponent) == 0 {
		return shared.GameInfo{}, fmt.Errorf("battle at %s is missing a side", battle.BattleTime)
	}

	team := battle.Team[0]
	opponent := battle.Opponent[0]

	var winner shared.Winner
	switch {
	case team.Crowns > opponent.Crowns:
		winner = shared.WinnerTeam
	case opponent.Crowns > team.Crowns:
		winner = shared.WinnerOpponent
	default:
		winner = shared.WinnerDraw
	}

	teamDeck, err := deckFromPlayer(team)
	if err != nil {
		return shared.GameInfo{}, fmt.Errorf("battle at %s: %w", battle.BattleTime, err)
	}
	opponentDeck, err := deckFromPlayer(opponent)
	if err != nil {
		return shared.GameInfo{}, fmt.Errorf("battle at %s: %w", battle.BattleTime, err)
	}

	return shared.GameInfo{
		Winner:         winner,
		TeamCrowns:     team.Crowns,
		OpponentCrowns: opponent.Crowns,
		TeamDeck:       teamDeck,
		OpponentDeck:   opponentDeck,
	}, nil
}

// deckFromPlayer lowercases a player's card names and pulls out their
// single tower troop. Ranked records always carry exactly one supportCards
// entry; a record without one is malformed.
func deckFromPlayer(player BattlePlayer) (shared.Deck, error) {
	if len(player.SupportCards) == 0 {
		return shared.Deck{}, fmt.Errorf("player %s has no support card entry", player.Tag)
	}

	cards := make([]string, 0, len(player.Cards))
	for _, card := range player.Cards {
		cards = append(cards, strings.ToLower(card.Name))
	}

	return shared.Deck{
		Cards:        cards,
		SupportCards: []string{strings.ToLower(player.SupportCards[0].Name)},
	}, nil
}

// BattleKey builds a stable identifier for a battle from its timestamp and
// the two player tags. Both players of a top-ladder game usually rank high
// enough that the same battle shows up in both battlelogs, so the tags are
// sorted to make the key side-independent.
func BattleKey(battle Battle) string {
	var tags []string
	if len(battle.Team) > 0 {
		tags = append(tags, battle.Team[0].Tag)
	}
	if len(battle.Opponent) > 0 {
		tags = append(tags, battle.Opponent[0].Tag)
	}
	sort.Strings(tags)
	return battle.BattleTime + ":" + strings.Join(tags, ":")
}
