/* main.go
 * The "main" method for mining card matchups from the Clash Royale API and
 * serving the results.
 * Usage: go run main.go -mode=count -season="2025-08" -limit=200
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"

	apipkg "github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/api"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/external"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/api/store"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/bot"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/charts"
	"github.com/jonathan-lor/are-clash-royale-matchups-rigged/web"

	"github.com/joho/godotenv"
)

const defaultBaseURL = "https://api.clashroyale.com/v1"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	// Flags
	modePtr := flag.String("mode", "count", "What to run: count (mine games and save the table), serve (web API over a saved table), bot (Discord bot over a saved table)")
	seasonPtr := flag.String("season", "2025-08", "Ranked season to mine, e.g. 2025-08")
	limitPtr := flag.Int("limit", 200, "How many top ranked players to mine")
	tablePtr := flag.String("table", "card_matchups.csv", "Path of the matchup table artifact")
	heatmapPtr := flag.String("heatmap", "card_matchups_heatmap.html", "Path of the rendered heatmap (count mode), empty to skip")
	addrPtr := flag.String("addr", ":8080", "Listen address for serve mode")
	testPtr := flag.String("test", "false", "Use main or test bot: takes true or false as argument")

	flag.Parse()

	switch *modePtr {
	case "count":
		runCount(*seasonPtr, *limitPtr, *tablePtr, *heatmapPtr)
	case "serve":
		runServe(*tablePtr, *addrPtr)
	case "bot":
		runBot(*tablePtr, *testPtr)
	default:
		log.Fatalf("invalid mode %q, expected count, serve or bot", *modePtr)
	}
}

// runCount mines the top ladder's recent ranked games into a fresh matchup
// table, saves the table and renders the heatmap
func runCount(season string, limit int, tablePath string, heatmapPath string) {
	baseURL := os.Getenv("CLASH_ROYALE_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client, err := external.NewClient(baseURL, os.Getenv("CLASH_ROYALE_API_KEY"))
	if err != nil {
		log.Fatalf("failed to initialize client: %v", err)
	}

	// the battle archive is optional: without mongo the run still works, it
	// just can't dedup battles across players or record run summaries
	var archive store.Interface
	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		s, err := store.NewStore("matchups", mongoURI, season)
		if err != nil {
			log.Fatalf("failed to initialize store: %v", err)
		}
		defer func() {
			if err := s.Client.Disconnect(context.TODO()); err != nil {
				log.Printf("failed to disconnect from mongo: %v", err)
			}
		}()
		archive = s
	} else {
		log.Println("MONGO_URI not set, running without the battle archive")
	}

	api, err := apipkg.NewAPI(client, archive)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}

	if err := api.CountTopRankedPlayerGames(season, limit, tablePath); err != nil {
		log.Fatalf("ingestion run failed: %v", err)
	}

	if err := api.SaveTable(tablePath); err != nil {
		log.Fatalf("failed to save table: %v", err)
	}
	log.Printf("successfully written to %s", tablePath)

	if heatmapPath != "" {
		if err := charts.RenderWinrateHeatmap(api.Table, charts.DefaultHeatmapConfig(), heatmapPath); err != nil {
			log.Fatalf("failed to render heatmap: %v", err)
		}
		log.Printf("heatmap written to %s", heatmapPath)
	}
}

// runServe loads a saved table and exposes it over HTTP
func runServe(tablePath string, addr string) {
	api, err := apipkg.NewAPIFromFile(tablePath)
	if err != nil {
		log.Fatalf("failed to load table: %v", err)
	}

	if err := web.Start(web.Config{Addr: addr, API: api}); err != nil {
		log.Fatal(err)
	}
}

// runBot loads a saved table and runs the Discord bot over it
func runBot(tablePath string, testFlag string) {
	useTestBot, err := convertStrToBool(testFlag)
	if err != nil {
		log.Fatalf("invalid \"test\" flag: %v", err)
	}

	var discordToken string
	if useTestBot {
		discordToken = os.Getenv("DISCORD_BETA_TOKEN")
	} else {
		discordToken = os.Getenv("DISCORD_PROD_TOKEN")
	}

	api, err := apipkg.NewAPIFromFile(tablePath)
	if err != nil {
		log.Fatalf("failed to load table: %v", err)
	}

	b, err := bot.NewBot(discordToken, api)
	if err != nil {
		log.Fatalf("failed to initialize bot: %v", err)
	}
	if err := b.Run(); err != nil {
		log.Fatal(err)
	}
}
