package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

type noopClient struct{}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventScheduleGenerated EventType = "schedule-generated"
	EventBracketGenerated  EventType = "bracket-generated"
	EventBracketUpdated    EventType = "bracket-updated"
)

// ScheduleGenerated is published after a schedule is stored.
type ScheduleGenerated struct {
	ScheduleID   string   `msgpack:"schedule_id"`
	Participants []string `msgpack:"participants"`
	CourtCount   int      `msgpack:"court_count"`
	RoundCount   int      `msgpack:"round_count"`
	CreatedAt    int64    `msgpack:"created_at"`
}

// BracketChanged is published when a bracket is created or its results change.
type BracketChanged struct {
	BracketID string `msgpack:"bracket_id"`
	GameType  string `msgpack:"game_type"`
	Version   int    `msgpack:"version"`
	// Round is the round that changed, -1 for a new bracket.
	Round    int    `msgpack:"round"`
	Champion string `msgpack:"champion,omitempty"`
}
