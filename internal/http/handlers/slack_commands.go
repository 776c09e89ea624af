package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/session"
	"github.com/slack-go/slack"
)

const drawUsage = "Usage: `/draw <courts> <rounds> <player> <player> ...` or `/draw bracket <singles|doubles> <player> ...`"

var errDrawUsage = errors.New(drawUsage)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

func ephemeral(text string) slack.Message {
	msg := slack.NewBlockMessage(slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil))
	msg.ResponseType = "ephemeral"
	return msg
}

// parseDrawText reads the text of a /draw command into a schedule or bracket request.
// Exactly one of the returned requests is non-nil on success.
func parseDrawText(text string) (*session.ScheduleRequest, *session.BracketRequest, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil, errDrawUsage
	}

	if strings.EqualFold(fields[0], "bracket") {
		if len(fields) < 2 {
			return nil, nil, errDrawUsage
		}
		return nil, &session.BracketRequest{
			GameType:     bracket.GameType(strings.ToUpper(fields[1])),
			Mode:         bracket.Random,
			Participants: fields[2:],
		}, nil
	}

	if len(fields) < 2 {
		return nil, nil, errDrawUsage
	}
	courts, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, nil, errDrawUsage
	}
	rounds, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, nil, errDrawUsage
	}
	return &session.ScheduleRequest{Courts: courts, Rounds: rounds, Participants: fields[2:]}, nil, nil
}

// DrawCommandHandler serves the /draw slash command. The draw is posted to the channel
// by the notifier; the command itself answers only the caller.
func DrawCommandHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		log.Info("Received draw command", "user", cmd.UserName, "text", cmd.Text)

		scheduleReq, bracketReq, err := parseDrawText(cmd.Text)
		if err != nil {
			respondWithSlackMsg(w, ephemeral(err.Error()))
			return
		}
		isDryRun := IsDryRunFromContext(r)

		if scheduleReq != nil {
			rec, err := svc.GenerateSchedule(r.Context(), *scheduleReq, isDryRun)
			if err != nil {
				respondWithSlackMsg(w, ephemeral(fmt.Sprintf("Could not draw the courts: %s", err)))
				return
			}
			respondWithSlackMsg(w, ephemeral("```"+schedule.FormatText(rec.Rounds)+"```"))
			return
		}

		rec, err := svc.GenerateBracket(r.Context(), *bracketReq, isDryRun)
		if err != nil {
			respondWithSlackMsg(w, ephemeral(fmt.Sprintf("Could not draw the bracket: %s", err)))
			return
		}
		var sb strings.Builder
		first := rec.Bracket.Rounds[0]
		fmt.Fprintf(&sb, "*%s*\n", first.Label)
		for _, m := range first.Matches {
			fmt.Fprintf(&sb, "• %s vs %s\n", m.Team1.Name(), m.Team2.Name())
		}
		respondWithSlackMsg(w, ephemeral(sb.String()))
	}
}
