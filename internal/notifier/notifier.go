package notifier

import (
	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/store"
)

// Notifier announces generated schedules and bracket progress to the club.
type Notifier interface {
	SendSchedule(rec *store.ScheduleRecord, dryRun bool) error
	// SendBracket returns the message timestamp so follow-ups can be threaded under it.
	SendBracket(rec *store.BracketRecord, dryRun bool) (string, error)
	SendRoundAdvanced(rec *store.BracketRecord, round int, dryRun bool) error
	SendChampion(rec *store.BracketRecord, champion bracket.Team, dryRun bool) error
}

type discard struct{}

// Discard returns a Notifier that only logs. Used when no Slack token is configured.
func Discard() Notifier {
	return discard{}
}

func (discard) SendSchedule(rec *store.ScheduleRecord, dryRun bool) error {
	log.Debug("Notifications disabled, skipping schedule", "id", rec.ID)
	return nil
}

func (discard) SendBracket(rec *store.BracketRecord, dryRun bool) (string, error) {
	log.Debug("Notifications disabled, skipping bracket", "id", rec.ID)
	return "", nil
}

func (discard) SendRoundAdvanced(rec *store.BracketRecord, round int, dryRun bool) error {
	log.Debug("Notifications disabled, skipping round update", "id", rec.ID, "round", round)
	return nil
}

func (discard) SendChampion(rec *store.BracketRecord, champion bracket.Team, dryRun bool) error {
	log.Debug("Notifications disabled, skipping champion", "id", rec.ID, "champion", champion.Name())
	return nil
}
