package session

import (
	"errors"

	"github.com/mauv0809/court-draw/internal/bracket"
)

var (
	ErrInvalidDate       = errors.New("date must be formatted as YYYY-MM-DD")
	ErrRosterUnavailable = errors.New("roster import needs a Playtomic tenant")
)

// ScheduleRequest asks for a court rotation.
type ScheduleRequest struct {
	Participants []string `json:"participants"`
	Courts       int      `json:"courts"`
	Rounds       int      `json:"rounds"`
	CourtLabels  []string `json:"court_labels,omitempty"`
	// Seed makes the draw reproducible. A time-based seed is used when nil.
	Seed *int64 `json:"seed,omitempty"`
}

// BracketRequest asks for a knockout bracket.
type BracketRequest struct {
	Name         string                 `json:"name,omitempty"`
	Participants []string               `json:"participants"`
	GameType     bracket.GameType       `json:"game_type"`
	Mode         bracket.AssignmentMode `json:"mode"`
	Teams        []bracket.Team         `json:"teams,omitempty"`
	Seed         *int64                 `json:"seed,omitempty"`
}

// ScoreUpdate records one side's score. A zero Version applies to the latest bracket.
type ScoreUpdate struct {
	Round   int          `json:"round"`
	Match   int          `json:"match"`
	Side    bracket.Side `json:"side"`
	Score   int          `json:"score"`
	Version int          `json:"version,omitempty"`
}

// Roster lists the players booked at the club on one day.
type Roster struct {
	Date         string   `json:"date"`
	Participants []string `json:"participants"`
	Bookings     int      `json:"bookings"`
}
