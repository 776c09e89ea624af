package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/metrics"
	"github.com/mauv0809/court-draw/internal/notifier"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/store"
	"github.com/slack-go/slack"
)

// Slack rejects messages with more than 50 blocks.
const maxRoundBlocks = 45

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) SendSchedule(rec *store.ScheduleRecord, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatSchedule(rec), "", dryRun)
	return err
}

func (s *Notifier) SendBracket(rec *store.BracketRecord, dryRun bool) (string, error) {
	_, ts, err := s.sendMessage(s.formatBracket(rec), "", dryRun)
	return ts, err
}

func (s *Notifier) SendRoundAdvanced(rec *store.BracketRecord, round int, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatRoundAdvanced(rec, round), rec.ThreadTS, dryRun)
	return err
}

func (s *Notifier) SendChampion(rec *store.BracketRecord, champion bracket.Team, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatChampion(rec, champion), rec.ThreadTS, dryRun)
	return err
}

// sendMessage posts to the configured channel, as a thread reply when threadTS is set.
func (s *Notifier) sendMessage(message slack.Message, threadTS string, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "thread_ts", threadTS, "message", string(jsonMsg))
		return s.channelID, "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	options := []slack.MsgOption{
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	}
	if threadTS != "" {
		options = append(options, slack.MsgOptionTS(threadTS))
	}

	channelID, timestamp, err := s.api.PostMessageContext(ctx, s.channelID, options...)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp, "thread_ts", threadTS)
	return channelID, timestamp, nil
}

func (s *Notifier) formatSchedule(rec *store.ScheduleRecord) slack.Message {
	blocks := make([]slack.Block, 0, len(rec.Rounds)+3)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 Court rotation is ready 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	summary := fmt.Sprintf("%d players, %d courts, %d rounds", len(rec.Participants), rec.CourtCount, len(rec.Rounds))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", summary, true, false), nil, nil))

	for i, round := range rec.Rounds {
		if i == maxRoundBlocks {
			more := fmt.Sprintf("...and %d more rounds", len(rec.Rounds)-maxRoundBlocks)
			blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", more, true, false)))
			break
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", roundText(round), false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func roundText(round schedule.RoundAssignment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Round %d*", round.Round)
	for _, m := range round.Matches {
		fmt.Fprintf(&b, "\n• %s: %s & %s vs %s & %s", m.Court, m.TeamA[0], m.TeamA[1], m.TeamB[0], m.TeamB[1])
	}
	if len(round.Waiting) > 0 {
		names := make([]string, len(round.Waiting))
		for i, p := range round.Waiting {
			names[i] = string(p)
		}
		fmt.Fprintf(&b, "\n_Waiting: %s_", strings.Join(names, ", "))
	}
	return b.String()
}

func (s *Notifier) formatBracket(rec *store.BracketRecord) slack.Message {
	blocks := make([]slack.Block, 0, 4)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s 🏆", bracketTitle(rec)), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	labels := make([]string, len(rec.Bracket.Rounds))
	for i, r := range rec.Bracket.Rounds {
		labels[i] = r.Label
	}
	details := fmt.Sprintf("%d teams\n%s", teamCount(rec.Bracket), strings.Join(labels, " → "))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	if len(rec.Bracket.Rounds) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", matchesText(rec.Bracket.Rounds[0]), false, false), nil, nil))
	}

	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "Bracket "+rec.ID, false, false)))
	return slack.NewBlockMessage(blocks...)
}

func (s *Notifier) formatRoundAdvanced(rec *store.BracketRecord, round int) slack.Message {
	rounds := rec.Bracket.Rounds
	if round < 0 || round+1 >= len(rounds) {
		text := fmt.Sprintf("Round %d of %s was updated.", round+1, bracketTitle(rec))
		return slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil))
	}

	intro := fmt.Sprintf("Winners of the %s are through.", strings.ToLower(rounds[round].Label))
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", intro, true, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", matchesText(rounds[round+1]), false, false), nil, nil),
	)
}

func (s *Notifier) formatChampion(rec *store.BracketRecord, champion bracket.Team) slack.Message {
	headerText := slack.NewTextBlockObject("plain_text", "🏆 We have a champion! 🏆", true, false)
	text := fmt.Sprintf("*%s* won the %s!", champion.Name(), bracketTitle(rec))
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(headerText),
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

func matchesText(round bracket.Round) string {
	var b strings.Builder
	b.WriteString("*" + round.Label + "*")
	for _, m := range round.Matches {
		fmt.Fprintf(&b, "\n• %s vs %s", slotName(m.Team1), slotName(m.Team2))
	}
	return b.String()
}

func slotName(t *bracket.Team) string {
	if t == nil {
		return "TBD"
	}
	return t.Name()
}

func bracketTitle(rec *store.BracketRecord) string {
	if rec.Name != "" {
		return rec.Name
	}
	return strings.ToLower(string(rec.GameType)) + " bracket"
}

func teamCount(b bracket.Bracket) int {
	if len(b.Rounds) == 0 {
		return 0
	}
	n := 0
	for _, m := range b.Rounds[0].Matches {
		for _, t := range []*bracket.Team{m.Team1, m.Team2} {
			if t != nil && !t.IsBye() {
				n++
			}
		}
	}
	return n
}
