/* models.go
 * This file contains the models used by the external package when decoding
 * responses from the official Clash Royale API
 */

package external

// CatalogCard is one entry of the /cards listing. Both regular cards and
// tower troop support items use this shape.
type CatalogCard struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// CatalogResponse is the /cards response: regular cards (troops, buildings,
// spells) in Items and princess tower troops in SupportItems
type CatalogResponse struct {
	Items        []CatalogCard `json:"items"`
	SupportItems []CatalogCard `json:"supportItems"`
}

// AllCardNames returns the catalog names in listing order, items first then
// support items. This order fixes the table's index assignment.
func (c *CatalogResponse) AllCardNames() []string {
	names := make([]string, 0, len(c.Items)+len(c.SupportItems))
	for _, card := range c.Items {
		names = append(names, card.Name)
	}
	for _, card := range c.SupportItems {
		names = append(names, card.Name)
	}
	return names
}

// BattleCard is a card reference inside a battle record
type BattleCard struct {
	Name string `json:"name"`
}

// BattlePlayer is one side of a battle: the player, their crowns and the
// deck they played. SupportCards holds the single tower troop.
type BattlePlayer struct {
	Tag          string       `json:"tag"`
	Name         string       `json:"name"`
	Crowns       int          `json:"crowns"`
	Cards        []BattleCard `json:"cards"`
	SupportCards []BattleCard `json:"supportCards"`
}

// Battle is one entry of a player's battlelog
type Battle struct {
	Type       string         `json:"type"`
	BattleTime string         `json:"battleTime"`
	Team       []BattlePlayer `json:"team"`
	Opponent   []BattlePlayer `json:"opponent"`
}

// RankedPlayer is one entry of a season's ranked leaderboard
type RankedPlayer struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// RankingResponse is the rankings/players response
type RankingResponse struct {
	Items []RankedPlayer `json:"items"`
}
