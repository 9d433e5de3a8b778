/* api_test.go
 * Contains unit tests for the API facade against a fake Clash Royale API
 * served by httptest
 */

package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/external"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/matchup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `{
	"items": [{"name": "Knight", "id": 1}, {"name": "Wizard", "id": 2}],
	"supportItems": [{"name": "Tower Princess", "id": 3}]
}`

// battleJSON builds one ranked battle record where the team side runs
// knight + tower princess and the opponent runs wizard + tower princess
func battleJSON(battleTime string, teamTag, oppTag string, teamCrowns, oppCrowns int) string {
	return fmt.Sprintf(`{
		"type": "pathOfLegend",
		"battleTime": "%s",
		"team": [{"tag": "%s", "crowns": %d, "cards": [{"name": "Knight"}], "supportCards": [{"name": "Tower Princess"}]}],
		"opponent": [{"tag": "%s", "crowns": %d, "cards": [{"name": "Wizard"}], "supportCards": [{"name": "Tower Princess"}]}]
	}`, battleTime, teamTag, teamCrowns, oppTag, oppCrowns)
}

// fakeRoyaleAPI serves a catalog, a two-player leaderboard and per-player
// battlelogs
func fakeRoyaleAPI(t *testing.T, battlelogs map[string]string) *external.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.EscapedPath()
		switch {
		case path == "/cards":
			fmt.Fprint(w, testCatalogJSON)
		case strings.HasPrefix(path, "/locations/global/pathoflegend/"):
			fmt.Fprint(w, `{"items": [{"tag": "#AAA", "rank": 1}, {"tag": "#BBB", "rank": 2}]}`)
		case strings.HasPrefix(path, "/players/"):
			tag := strings.TrimSuffix(strings.TrimPrefix(path, "/players/%23"), "/battlelog")
			log, ok := battlelogs[tag]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			fmt.Fprint(w, log)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := external.NewClient(server.URL, "test-key")
	require.NoError(t, err)
	return client
}

// TestNewAPI_BuildsTableFromCatalog tests index construction from the live
// catalog listing
func TestNewAPI_BuildsTableFromCatalog(t *testing.T) {
	client := fakeRoyaleAPI(t, nil)

	a, err := NewAPI(client, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, a.Table.Size())
	assert.Equal(t, []string{"knight", "wizard", "tower princess"}, a.Cards())
}

// TestNewAPI_CatalogFetchFails tests that construction aborts entirely when
// the catalog is unreachable
func TestNewAPI_CatalogFetchFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)
	client, err := external.NewClient(server.URL, "test-key")
	require.NoError(t, err)

	a, err := NewAPI(client, nil)
	assert.Nil(t, a)
	assert.Error(t, err)
}

// TestProcessPlayerRecentRankedGames tests accumulation from one battlelog,
// including non-ranked filtering and draw handling
func TestProcessPlayerRecentRankedGames(t *testing.T) {
	battlelog := "[" + strings.Join([]string{
		battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0), // team win
		battleJSON("20250810T110000.000Z", "#AAA", "#BBB", 1, 1), // draw, not counted
		`{"type": "casual1v1", "battleTime": "20250810T120000.000Z", "team": [], "opponent": []}`,
	}, ",") + "]"
	client := fakeRoyaleAPI(t, map[string]string{"AAA": battlelog})

	a, err := NewAPI(client, nil)
	require.NoError(t, err)

	processed, err := a.ProcessPlayerRecentRankedGames("#AAA")
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, 1, a.Table.GamesProcessed)

	knight := a.Table.CardNameToIndex["knight"]
	wizard := a.Table.CardNameToIndex["wizard"]
	tower := a.Table.CardNameToIndex["tower princess"]
	assert.Equal(t, 1.0, a.Table.Wins[knight][wizard])
	assert.Equal(t, 1.0, a.Table.Wins[tower][wizard])
	assert.Equal(t, 1.0, a.Table.TotalGames[wizard][knight])
}

// TestProcessPlayerRecentRankedGames_DedupAcrossPlayers tests that the same
// battle seen from both players' battlelogs is only counted once
func TestProcessPlayerRecentRankedGames_DedupAcrossPlayers(t *testing.T) {
	fromA := "[" + battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0) + "]"
	fromB := "[" + battleJSON("20250810T100000.000Z", "#BBB", "#AAA", 0, 2) + "]"
	client := fakeRoyaleAPI(t, map[string]string{"AAA": fromA, "BBB": fromB})

	a, err := NewAPI(client, NewMockStore("2025-08"))
	require.NoError(t, err)

	_, err = a.ProcessPlayerRecentRankedGames("#AAA")
	require.NoError(t, err)
	_, err = a.ProcessPlayerRecentRankedGames("#BBB")
	require.NoError(t, err)

	assert.Equal(t, 1, a.Table.GamesProcessed)
}

// TestCountTopRankedPlayerGames tests the full mining flow including the
// run record
func TestCountTopRankedPlayerGames(t *testing.T) {
	client := fakeRoyaleAPI(t, map[string]string{
		"AAA": "[" + battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0) + "]",
		"BBB": "[" + battleJSON("20250811T100000.000Z", "#BBB", "#AAA", 3, 1) + "]",
	})
	mockStore := NewMockStore("2025-08")

	a, err := NewAPI(client, mockStore)
	require.NoError(t, err)

	err = a.CountTopRankedPlayerGames("2025-08", 2, "")
	require.NoError(t, err)

	assert.Equal(t, 2, a.Table.GamesProcessed)
	assert.Len(t, mockStore.Battles, 2)
	require.Len(t, mockStore.Runs, 1)
	assert.Equal(t, "2025-08", mockStore.Runs[0].Season)
	assert.Equal(t, 2, mockStore.Runs[0].GamesProcessed)
}

// TestCountTopRankedPlayerGames_SavesSnapshotOnFailure tests that a failed
// player fetch mid-run persists the accumulated table before propagating
func TestCountTopRankedPlayerGames_SavesSnapshotOnFailure(t *testing.T) {
	// #BBB has no battlelog, so its fetch 404s after #AAA was counted
	client := fakeRoyaleAPI(t, map[string]string{
		"AAA": "[" + battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0) + "]",
	})
	snapshot := filepath.Join(t.TempDir(), "snapshot.csv")

	a, err := NewAPI(client, nil)
	require.NoError(t, err)

	err = a.CountTopRankedPlayerGames("2025-08", 2, snapshot)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#BBB")

	_, statErr := os.Stat(snapshot)
	require.NoError(t, statErr, "snapshot file should exist after a mid-run failure")

	loaded, err := matchup.LoadFromFile(snapshot)
	require.NoError(t, err)
	assert.Equal(t, a.Table.Wins, loaded.Wins)
}

// TestSaveLoadTable tests the facade save/load passthrough
func TestSaveLoadTable(t *testing.T) {
	client := fakeRoyaleAPI(t, map[string]string{
		"AAA": "[" + battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0) + "]",
	})
	a, err := NewAPI(client, nil)
	require.NoError(t, err)
	_, err = a.ProcessPlayerRecentRankedGames("#AAA")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, a.SaveTable(path))

	b, err := NewAPIFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.Table.Wins, b.Table.Wins)
	assert.Equal(t, a.Table.Winrates, b.Table.Winrates)
	assert.Equal(t, a.Cards(), b.Cards())
}

// TestMatchup_FuzzyResolution tests the query surface with user-typed names
func TestMatchup_FuzzyResolution(t *testing.T) {
	client := fakeRoyaleAPI(t, map[string]string{
		"AAA": "[" + battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0) + "]",
	})
	a, err := NewAPI(client, nil)
	require.NoError(t, err)
	_, err = a.ProcessPlayerRecentRankedGames("#AAA")
	require.NoError(t, err)

	m, err := a.Matchup("Knigt", "wizard")
	require.NoError(t, err)
	assert.Equal(t, "knight", m.CardA)
	assert.Equal(t, "wizard", m.CardB)
	assert.InDelta(t, 2.0/3.0, m.WinrateAB, 1e-12)
	assert.InDelta(t, 1.0/3.0, m.WinrateBA, 1e-12)
	assert.Equal(t, 1.0, m.Games)

	_, err = a.Matchup("knight", "knight")
	assert.Error(t, err)

	_, err = a.Matchup("golem", "knight")
	assert.Error(t, err)
}

// TestTopAndWorstMatchups tests the ranking surface
func TestTopAndWorstMatchups(t *testing.T) {
	client := fakeRoyaleAPI(t, map[string]string{
		"AAA": "[" + battleJSON("20250810T100000.000Z", "#AAA", "#BBB", 2, 0) + "]",
	})
	a, err := NewAPI(client, nil)
	require.NoError(t, err)
	_, err = a.ProcessPlayerRecentRankedGames("#AAA")
	require.NoError(t, err)

	name, best, err := a.TopMatchups("knight", 1)
	require.NoError(t, err)
	assert.Equal(t, "knight", name)
	require.Len(t, best, 1)
	assert.Equal(t, "wizard", best[0].Card)

	name, worst, err := a.WorstMatchups("wizard", 1)
	require.NoError(t, err)
	assert.Equal(t, "wizard", name)
	require.Len(t, worst, 1)
	// wizard lost to both knight and tower princess; tie broken by name
	assert.Equal(t, "knight", worst[0].Card)
}

// TestStats tests the stats accessor
func TestStats(t *testing.T) {
	client := fakeRoyaleAPI(t, nil)
	a, err := NewAPI(client, nil)
	require.NoError(t, err)

	stats := a.Stats()
	assert.Equal(t, 0, stats.GamesProcessed)
	assert.Equal(t, 3, stats.CatalogSize)
}
