package playtomic

import "time"

// SportPadel is the Playtomic sport id for padel.
const SportPadel = "PADEL"

// SearchMatchesParams narrows a match search.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary is the search result for a single match.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// GameStatus is the lifecycle state reported for a match.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusUnknown    GameStatus = "UNKNOWN"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
	GameStatusInProgress GameStatus = "IN_PROGRESS"
)

// Booking is a court booking with the players registered on it.
type Booking struct {
	MatchID      string
	ResourceName string
	Start        time.Time
	End          time.Time
	GameStatus   GameStatus
	Players      []Player
}

// Player is a registered player on a booking.
type Player struct {
	UserID string
	Name   string
	Level  float64
}

// playtomicMatchResponse is the JSON body of GET /v1/matches/{id}.
type playtomicMatchResponse struct {
	StartDate    string                  `json:"start_date"`
	EndDate      string                  `json:"end_date"`
	GameStatus   string                  `json:"game_status"`
	ResourceName string                  `json:"resource_name"`
	Teams        []playtomicTeamResponse `json:"teams"`
}

type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

type playtomicPlayerResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	LevelValue *float64 `json:"level_value"`
}
