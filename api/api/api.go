/* api.go
 * This file contains the public methods for interacting with this package.
 * For consistent results, functions should only be called from this file,
 * not the sub packages for matchup, external and logic.
 */

package api

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/external"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/logic"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/matchup"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/store"
)

// API ties the Clash Royale client, the matchup table and the battle
// archive together
type API struct {
	Table  *matchup.Table
	Client *external.Client
	Store  store.Interface // optional, nil disables battle dedup and run records
}

// NewAPI builds a fresh matchup table from the live card catalog. If the
// catalog fetch fails there is nothing usable, so construction aborts.
func NewAPI(client *external.Client, s store.Interface) (*API, error) {
	if client == nil {
		return nil, fmt.Errorf("client is required")
	}

	catalog, err := client.FetchCards()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize matchup table: %w", err)
	}

	return &API{
		Table:  matchup.NewTable(catalog.AllCardNames()),
		Client: client,
		Store:  s,
	}, nil
}

// NewAPIFromFile loads a previously saved matchup table. Used by the
// read-only frontends, which never touch the network.
func NewAPIFromFile(path string) (*API, error) {
	table, err := matchup.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return &API{Table: table}, nil
}

// ProcessPlayerRecentRankedGames fetches a player's battlelog and feeds
// every ranked game into the matchup table. Battles already present in the
// archive are skipped, since top-ladder players mostly fight each other and
// the same game shows up in both battlelogs. It returns the number of games
// that actually updated the table.
func (a *API) ProcessPlayerRecentRankedGames(playerTag string) (int, error) {
	battles, err := a.Client.FetchBattleLog(playerTag)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, battle := range battles {
		if !external.IsRankedBattle(battle) {
			continue
		}

		key := external.BattleKey(battle)
		if a.Store != nil {
			seen, err := a.Store.SeenBattle(key)
			if err != nil {
				return processed, err
			}
			if seen {
				continue
			}
		}

		info, err := external.GameInfoFromBattle(battle)
		if err != nil {
			return processed, err
		}

		before := a.Table.GamesProcessed
		a.Table.ProcessGame(info)
		if a.Table.GamesProcessed == before {
			// draw or nothing learnable, don't archive so a later run with a
			// richer catalog can revisit it
			continue
		}
		processed++

		if a.Store != nil {
			doc := store.BattleDoc{
				Key:        key,
				Season:     a.Store.GetSeason(),
				BattleTime: battle.BattleTime,
				Type:       battle.Type,
			}
			for _, side := range [][]external.BattlePlayer{battle.Team, battle.Opponent} {
				if len(side) > 0 {
					doc.PlayerTags = append(doc.PlayerTags, side[0].Tag)
				}
			}
			if err := a.Store.ArchiveBattle(doc); err != nil {
				return processed, err
			}
		}
	}
	return processed, nil
}

// CountTopRankedPlayerGames gets the top ranked players for a season and
// counts the card to card matchup results of their recent ranked games. If
// a player's battlelog fails mid-run the table accumulated so far is saved
// to snapshotPath before the error is returned, so a long run is never
// lost.
func (a *API) CountTopRankedPlayerGames(season string, limit int, snapshotPath string) error {
	tags, err := a.Client.FetchTopRankedPlayers(season, limit)
	if err != nil {
		return err
	}

	for i, tag := range tags {
		log.Printf("processing recent ranked games for player tag %s (%d/%d)...", tag, i+1, len(tags))
		if _, err := a.ProcessPlayerRecentRankedGames(tag); err != nil {
			log.Printf("something went wrong: %v, saving current matchup table", err)
			if snapshotPath != "" {
				a.Table.DeriveWinrates()
				if saveErr := a.Table.SaveToFile(snapshotPath); saveErr != nil {
					log.Printf("failed to save snapshot: %v", saveErr)
				}
			}
			return fmt.Errorf("processing player %s failed: %w", tag, err)
		}
	}
	log.Printf("processed %d games", a.Table.GamesProcessed)

	if a.Store != nil {
		err := a.Store.RecordRun(store.RunDoc{
			Season:           season,
			Limit:            limit,
			PlayersProcessed: len(tags),
			GamesProcessed:   a.Table.GamesProcessed,
			FinishedAt:       time.Now().Unix(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeriveWinrates recomputes the winrates table from the accumulated counts
func (a *API) DeriveWinrates() {
	a.Table.DeriveWinrates()
}

// SaveTable derives winrates and writes the full table state to path
func (a *API) SaveTable(path string) error {
	a.Table.DeriveWinrates()
	return a.Table.SaveToFile(path)
}

// LoadTable replaces the current table with one loaded from path
func (a *API) LoadTable(path string) error {
	table, err := matchup.LoadFromFile(path)
	if err != nil {
		return err
	}
	a.Table = table
	return nil
}

// Cards returns the catalog names in index order
func (a *API) Cards() []string {
	names := make([]string, 0, a.Table.Size())
	for i := 0; i < a.Table.Size(); i++ {
		names = append(names, a.Table.IndexToCardName[i])
	}
	return names
}

// Stats returns the processed-game counter and the catalog size
func (a *API) Stats() Stats {
	return Stats{
		GamesProcessed: a.Table.GamesProcessed,
		CatalogSize:    a.Table.Size(),
	}
}

// resolveOne fuzzy-matches a single user-typed card name to a catalog name
func (a *API) resolveOne(input string) (string, error) {
	resolved, invalid := logic.ResolveCardNames([]string{input}, a.Cards())
	if len(invalid) > 0 || len(resolved) == 0 {
		return "", fmt.Errorf("'%s' does not match any card", input)
	}
	return resolved[0], nil
}

// Matchup resolves two user-typed card names and returns the smoothed
// winrates both ways plus the observed sample size
func (a *API) Matchup(cardA string, cardB string) (Matchup, error) {
	nameA, err := a.resolveOne(cardA)
	if err != nil {
		return Matchup{}, err
	}
	nameB, err := a.resolveOne(cardB)
	if err != nil {
		return Matchup{}, err
	}
	if nameA == nameB {
		return Matchup{}, errors.New("pick two different cards")
	}

	i := a.Table.CardNameToIndex[nameA]
	j := a.Table.CardNameToIndex[nameB]
	return Matchup{
		CardA:     nameA,
		CardB:     nameB,
		WinrateAB: a.Table.SmoothedWinrate(i, j),
		WinrateBA: a.Table.SmoothedWinrate(j, i),
		Games:     a.Table.TotalGames[i][j],
	}, nil
}

// MatchupReport resolves two card names and formats the matchup between
// them for chat frontends
func (a *API) MatchupReport(cardA string, cardB string) (string, error) {
	nameA, err := a.resolveOne(cardA)
	if err != nil {
		return "", err
	}
	nameB, err := a.resolveOne(cardB)
	if err != nil {
		return "", err
	}
	return logic.MatchupReport(a.Table, nameA, nameB)
}

// TopMatchups returns the k cards a card performs best against
func (a *API) TopMatchups(card string, k int) (string, []logic.MatchupRank, error) {
	return a.rankMatchups(card, k, false)
}

// WorstMatchups returns the k cards a card performs worst against
func (a *API) WorstMatchups(card string, k int) (string, []logic.MatchupRank, error) {
	return a.rankMatchups(card, k, true)
}

func (a *API) rankMatchups(card string, k int, worst bool) (string, []logic.MatchupRank, error) {
	name, err := a.resolveOne(card)
	if err != nil {
		return "", nil, err
	}
	ranks, err := logic.RankMatchups(a.Table, name, k, worst)
	if err != nil {
		return "", nil, err
	}
	return name, ranks, nil
}
