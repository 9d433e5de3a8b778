/* external.go
 * Contains the HTTP client used to fetch data from the official Clash Royale
 * API (https://api.clashroyale.com/v1) and return decoded results to the
 * higher level functions
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// rankedBattleType is the battlelog type for ranked games. The official API
// still says pathOfLegend when referring to ranked.
const rankedBattleType = "pathOfLegend"

// Client talks to the Clash Royale API. The official API enforces a
// per-key request rate, so all requests go through a shared limiter.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
}

// NewClient creates a Client for the given base URL and API key
func NewClient(baseURL string, apiKey string) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("baseURL and apiKey are required")
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Limiter:    rate.NewLimiter(rate.Limit(10), 10),
	}, nil
}

// get performs an authenticated GET against path and returns the response
// body. Any non-200 status is an error; there is no retry.
func (c *Client) get(path string) ([]byte, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(context.Background()); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	request, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	request.Header.Set("Accept", "application/json")

	response, err := c.HTTPClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request to %s failed with status %d", path, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// FetchCards gets the full card catalog: regular cards plus tower troops.
// The catalog is fetched from the API rather than hardcoded because new
// cards are added roughly every month.
func (c *Client) FetchCards() (*CatalogResponse, error) {
	body, err := c.get("/cards")
	if err != nil {
		return nil, fmt.Errorf("error fetching card catalog: %w", err)
	}

	var catalog CatalogResponse
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("error parsing card catalog: %w", err)
	}
	return &catalog, nil
}

// FetchBattleLog gets a player's recent battles. Player tags start with '#'
// and must be uppercased and escaped in the path.
func (c *Client) FetchBattleLog(playerTag string) ([]Battle, error) {
	path := fmt.Sprintf("/players/%s/battlelog", url.PathEscape(strings.ToUpper(playerTag)))
	body, err := c.get(path)
	if err != nil {
		return nil, fmt.Errorf("error fetching battlelog for %s: %w", playerTag, err)
	}

	var battles []Battle
	if err := json.Unmarshal(body, &battles); err != nil {
		return nil, fmt.Errorf("error parsing battlelog for %s: %w", playerTag, err)
	}
	return battles, nil
}

// FetchTopRankedPlayers gets the tags of the top limit players on the
// global ranked leaderboard for a season (e.g. "2025-08")
func (c *Client) FetchTopRankedPlayers(season string, limit int) ([]string, error) {
	path := fmt.Sprintf("/locations/global/pathoflegend/%s/rankings/players?limit=%d", url.PathEscape(season), limit)
	body, err := c.get(path)
	if err != nil {
		return nil, fmt.Errorf("error fetching season %s rankings: %w", season, err)
	}

	var ranking RankingResponse
	if err := json.Unmarshal(body, &ranking); err != nil {
		return nil, fmt.Errorf("error parsing season %s rankings: %w", season, err)
	}

	tags := make([]string, 0, len(ranking.Items))
	for _, player := range ranking.Items {
		tags = append(tags, player.Tag)
	}
	return tags, nil
}
