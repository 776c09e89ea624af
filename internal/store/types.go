package store

import (
	"errors"
	"time"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/schedule"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// ScheduleRecord is a persisted rotation schedule.
type ScheduleRecord struct {
	ID           string                     `json:"id"`
	CourtCount   int                        `json:"court_count"`
	RoundCount   int                        `json:"round_count"`
	Participants []schedule.Participant     `json:"participants"`
	Rounds       []schedule.RoundAssignment `json:"rounds"`
	Seed         int64                      `json:"seed"`
	CreatedAt    time.Time                  `json:"created_at"`
}

// BracketRecord is a persisted knockout bracket.
type BracketRecord struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name,omitempty"`
	GameType bracket.GameType       `json:"game_type"`
	Mode     bracket.AssignmentMode `json:"assignment_mode"`
	Bracket  bracket.Bracket        `json:"bracket"`
	Seed     int64                  `json:"seed"`
	Version  int                    `json:"version"`
	// ThreadTS is the Slack timestamp of the announcement; follow-ups are posted in its thread.
	ThreadTS  string    `json:"thread_ts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
