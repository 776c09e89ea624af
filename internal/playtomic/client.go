package playtomic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/rafa-garcia/go-playtomic-api/models"
)

const dateLayout = "2006-01-02T15:04:05"

// APIClient is a Playtomic API client that implements the PlaytomicClient interface.
type APIClient struct {
	httpClient *http.Client
	apiClient  *client.Client
	BaseURL    string
}

// NewClient creates a new Playtomic client.
func NewClient() PlaytomicClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiClient: client.NewClient(
			client.WithTimeout(10*time.Second),
			client.WithRetries(3),
		),
		BaseURL: "https://api.playtomic.io",
	}
}

var _ PlaytomicClient = (*APIClient)(nil)

// GetMatches fetches every page of matches matching params.
func (c *APIClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	const pageSize = 300
	var (
		allMatches []MatchSummary
		page       = 0
	)

	for {
		externalParams := &models.SearchMatchesParams{
			SportID:       params.SportID,
			HasPlayers:    params.HasPlayers,
			Sort:          params.Sort,
			TenantIDs:     params.TenantIDs,
			FromStartDate: params.FromStartDate,
			Size:          pageSize,
			Page:          page,
		}

		log.Debug("Fetching matches from Playtomic API", "params", externalParams)
		matches, err := c.apiClient.GetMatches(ctx, externalParams)
		if err != nil {
			return nil, fmt.Errorf("error fetching matches from playtomic api: %w", err)
		}

		for _, m := range matches {
			allMatches = append(allMatches, MatchSummary{
				MatchID: m.MatchID,
				OwnerID: m.OwnerID,
			})
		}
		if len(matches) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched matches", "count", len(allMatches), "pages", page+1)
	return allMatches, nil
}

// GetMatch fetches a single match with its registered players.
func (c *APIClient) GetMatch(ctx context.Context, matchID string) (Booking, error) {
	url := fmt.Sprintf("%s/v1/matches/%s", c.BaseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "CourtDrawClient/1.0")

	log.Debug("Requesting match from Playtomic API", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Playtomic API", "status", resp.StatusCode, "body", string(body))
		return Booking{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var matchResponse playtomicMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResponse); err != nil {
		return Booking{}, fmt.Errorf("failed to decode response: %w", err)
	}

	start, err := time.Parse(dateLayout, matchResponse.StartDate)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	end, err := time.Parse(dateLayout, matchResponse.EndDate)
	if err != nil {
		return Booking{}, fmt.Errorf("failed to parse end time: %w", err)
	}

	booking := Booking{
		MatchID:      matchID,
		ResourceName: matchResponse.ResourceName,
		Start:        start,
		End:          end,
		GameStatus:   parseGameStatus(matchResponse.GameStatus),
	}
	for _, team := range matchResponse.Teams {
		for _, p := range team.Players {
			player := Player{UserID: p.UserID, Name: p.Name}
			if p.LevelValue != nil {
				player.Level = *p.LevelValue
			}
			booking.Players = append(booking.Players, player)
		}
	}
	return booking, nil
}

func parseGameStatus(s string) GameStatus {
	switch status := GameStatus(s); status {
	case GameStatusPending, GameStatusPlayed, GameStatusCanceled, GameStatusWaitingFor,
		GameStatusExpired, GameStatusInProgress:
		return status
	}
	log.Warn("Unknown game status received from Playtomic API", "status", s)
	return GameStatusUnknown
}
