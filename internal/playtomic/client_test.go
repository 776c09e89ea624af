package playtomic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMatch(t *testing.T) {
	mockJSONResponse := `{
		"start_date": "2025-07-09T18:00:00",
		"end_date": "2025-07-09T19:30:00",
		"game_status": "PENDING",
		"resource_name": "Court 1",
		"teams": [
			{"team_id": "1", "players": [
				{"user_id": "user-123", "name": "Player A", "level_value": 3.5},
				{"user_id": "user-456", "name": "Player B"}
			]},
			{"team_id": "2", "players": [
				{"user_id": "user-789", "name": "Player C"}
			]}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	c := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(), // not used by GetMatch
		BaseURL:    server.URL,
	}

	booking, err := c.GetMatch(context.Background(), "match-abc")
	require.NoError(t, err)
	assert.Equal(t, "match-abc", booking.MatchID)
	assert.Equal(t, "Court 1", booking.ResourceName)
	assert.Equal(t, GameStatusPending, booking.GameStatus)
	assert.Equal(t, time.Date(2025, 7, 9, 18, 0, 0, 0, time.UTC), booking.Start)
	require.Len(t, booking.Players, 3)
	assert.Equal(t, Player{UserID: "user-123", Name: "Player A", Level: 3.5}, booking.Players[0])
	assert.Equal(t, "Player C", booking.Players[2].Name)
}

func TestGetMatch_NonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	c := APIClient{httpClient: server.Client(), apiClient: client.NewClient(), BaseURL: server.URL}
	_, err := c.GetMatch(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestParseGameStatus(t *testing.T) {
	assert.Equal(t, GameStatusCanceled, parseGameStatus("CANCELED"))
	assert.Equal(t, GameStatusUnknown, parseGameStatus("SOMETHING_NEW"))
}
